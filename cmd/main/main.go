package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/garciat/roto/check"
	"github.com/garciat/roto/compile"
	"github.com/garciat/roto/ir"
)

type rootList []string

func (r *rootList) String() string {
	return strings.Join(*r, ",")
}

func (r *rootList) Set(value string) error {
	*r = append(*r, value)
	return nil
}

func main() {
	log.SetFlags(0)

	var roots rootList
	flag.Var(&roots, "root", "type to resolve (repeatable); defaults to the files' roots or every global")
	separate := flag.Bool("separate", false, "resolve each root into its own table")
	maxDepth := flag.Int("max-depth", check.DefaultMaxDepth, "maximum instantiation depth")
	maxInstances := flag.Int("max-instances", check.DefaultMaxInstances, "maximum table entries")
	maxArgSize := flag.Int("max-arg-size", check.DefaultMaxArgSize, "maximum nodes in one type argument")
	parallelism := flag.Int("parallelism", 0, "concurrent resolutions with -separate (0 = unlimited)")
	dump := flag.Bool("dump", false, "dump the table structure instead of printing it")
	flag.BoolVar(&check.DebugAll, "v", false, "enable all debug output")
	flag.BoolVar(&check.DebugGeneral, "debug", false, "log loaded files")
	flag.BoolVar(&check.DebugChecker, "debug-checker", false, "trace instantiation")
	flag.BoolVar(&check.DebugSubst, "debug-subst", false, "trace substitution")
	flag.Parse()

	unit := compile.NewCompilationUnit()
	unit.Options.MaxDepth = *maxDepth
	unit.Options.MaxInstances = *maxInstances
	unit.Options.MaxArgSize = *maxArgSize
	unit.Options.Parallelism = *parallelism

	if value, ok := os.LookupEnv("ROTO_MAX_INSTANCES"); ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			log.Fatalf("ERROR: ROTO_MAX_INSTANCES: %v", err)
		}
		unit.Options.MaxInstances = n
	}

	if flag.NArg() == 0 {
		log.Fatalf("usage: %s [flags] FILE|DIR|- ...", os.Args[0])
	}

	for _, arg := range flag.Args() {
		if err := load(unit, arg); err != nil {
			log.Fatalf("ERROR: %v", err)
		}
	}

	if err := run(unit, roots, *separate, *dump); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func load(unit *compile.CompilationUnit, arg string) error {
	if arg == "-" {
		stdin, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		return unit.AddSource("stdin.json", stdin)
	}
	info, err := os.Stat(arg)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return unit.AddDir(arg)
	}
	return unit.AddFile(arg)
}

func run(unit *compile.CompilationUnit, roots []string, separate, dump bool) error {
	if separate {
		if len(roots) == 0 {
			roots = unit.Roots()
		}
		tables, err := unit.CompileAll(context.Background(), roots)
		if err != nil {
			return err
		}
		for _, root := range roots {
			fmt.Printf("// %s\n", root)
			if err := output(tables[root], dump); err != nil {
				return err
			}
		}
		return nil
	}

	var table *ir.Table
	var err error
	if len(roots) > 0 {
		table, err = unit.CompileRoots(roots)
	} else {
		table, err = unit.CompileDefault()
	}
	if err != nil {
		return err
	}
	return output(table, dump)
}

func output(table *ir.Table, dump bool) error {
	if dump {
		ir.Dump(os.Stdout, table)
		return nil
	}
	return ir.Fprint(os.Stdout, table)
}
