package compile

import (
	"context"
	"fmt"

	"github.com/garciat/roto/algos"
	"github.com/garciat/roto/check"
	. "github.com/garciat/roto/common"
	"github.com/garciat/roto/files"
	"github.com/garciat/roto/ir"
	"github.com/garciat/roto/parse"
	"github.com/garciat/roto/source"
	"github.com/garciat/roto/tree"
)

// CompilationUnit collects declaration files and resolves roots against them.
type CompilationUnit struct {
	finder  files.Finder
	parser  parse.Parser
	Options check.Options
	Files   []*source.FileDef

	env *source.Environment
}

func NewCompilationUnit() *CompilationUnit {
	return &CompilationUnit{
		finder:  files.NewFinder(),
		parser:  parse.NewParser(),
		Options: check.DefaultOptions(),
	}
}

func (u *CompilationUnit) AddFile(path string) error {
	file, err := u.parser.ParseFile(path)
	if err != nil {
		return err
	}
	u.LoadFile(file)
	return nil
}

func (u *CompilationUnit) AddSource(path string, data []byte) error {
	file, err := u.parser.ParseSource(path, data)
	if err != nil {
		return err
	}
	u.LoadFile(file)
	return nil
}

func (u *CompilationUnit) AddDir(dir string) error {
	paths, err := u.finder.FindDeclFiles(dir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := u.AddFile(path); err != nil {
			return err
		}
	}
	return nil
}

func (u *CompilationUnit) LoadFile(file *source.FileDef) {
	check.GeneralPrintf("loading file %v (%d declarations)\n", file.Path, len(file.Decls))
	u.Files = append(u.Files, file)
	u.env = nil
}

// Environment builds the declaration environment from every loaded file.
func (u *CompilationUnit) Environment() (*source.Environment, error) {
	if u.env != nil {
		return u.env, nil
	}
	env, err := source.NewEnvironmentFromFiles(u.Files)
	if err != nil {
		return nil, err
	}
	check.GeneralPrintf("environment: %d declarations\n", env.Len())
	u.env = env
	return env, nil
}

// Roots lists the roots requested by the loaded files, first occurrence first.
func (u *CompilationUnit) Roots() []string {
	var roots []string
	for _, file := range u.Files {
		roots = append(roots, file.Roots...)
	}
	return algos.UniqBy(roots, func(s string) string { return s })
}

func (u *CompilationUnit) Compile(root string) (*ir.Table, error) {
	env, err := u.Environment()
	if err != nil {
		return nil, err
	}
	return check.ResolveName(root, env, u.Options)
}

// CompileRoots resolves several roots into one shared table.
func (u *CompilationUnit) CompileRoots(roots []string) (*ir.Table, error) {
	env, err := u.Environment()
	if err != nil {
		return nil, err
	}
	exprs := MapSlice(roots, func(name string) tree.TypeExpr { return tree.Name(name) })
	return check.NewChecker(env, u.Options).Resolve(exprs...)
}

func (u *CompilationUnit) CompileGlobals() (*ir.Table, error) {
	env, err := u.Environment()
	if err != nil {
		return nil, err
	}
	return check.ResolveGlobals(env, u.Options)
}

// CompileDefault resolves the roots the files ask for, or every global when
// they ask for none.
func (u *CompilationUnit) CompileDefault() (*ir.Table, error) {
	if roots := u.Roots(); len(roots) > 0 {
		return u.CompileRoots(roots)
	}
	return u.CompileGlobals()
}

// CompileAll resolves each root into its own table, in parallel.
func (u *CompilationUnit) CompileAll(ctx context.Context, roots []string) (map[string]*ir.Table, error) {
	env, err := u.Environment()
	if err != nil {
		return nil, err
	}
	roots = algos.UniqBy(roots, func(s string) string { return s })
	exprs := MapSlice(roots, func(name string) tree.TypeExpr { return tree.Name(name) })

	tables, err := check.ResolveAll(ctx, env, exprs, u.Options)
	if err != nil {
		return nil, err
	}

	result := make(map[string]*ir.Table, len(roots))
	for i, root := range roots {
		result[root] = tables[i]
	}
	return result, nil
}

// Expectations compares each file's expected IR, if any, with the output of
// resolving that file's roots (or globals) on its own.
func (u *CompilationUnit) Expectations() error {
	for _, file := range u.Files {
		if !file.HasExpect {
			continue
		}
		single := &CompilationUnit{finder: u.finder, parser: u.parser, Options: u.Options}
		single.LoadFile(file)
		table, err := single.CompileDefault()
		if err != nil {
			return fmt.Errorf("%s: %w", file.Path, err)
		}
		if got := table.String(); got != file.Expect {
			return fmt.Errorf("%s: unexpected IR:\n--- got ---\n%s--- want ---\n%s", file.Path, got, file.Expect)
		}
	}
	return nil
}
