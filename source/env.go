package source

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-set/v3"

	. "github.com/garciat/roto/common"
	"github.com/garciat/roto/tree"
)

// Environment maps declared type names to their declarations. It is built
// once and never mutated afterwards, so it can be shared between goroutines.
type Environment struct {
	decls *Map[Identifier, *tree.TypeDecl]
}

func NewEnvironment(decls []*tree.TypeDecl) (*Environment, error) {
	env := &Environment{decls: NewMap[Identifier, *tree.TypeDecl]()}
	for _, decl := range decls {
		if _, ok := tree.LookupBuiltinKind(decl.Name.Value); ok {
			return nil, &ReservedNameError{Name: decl.Name}
		}
		if env.decls.Contains(decl.Name) {
			return nil, &DuplicateDeclarationError{Name: decl.Name}
		}
		if err := validateDecl(decl); err != nil {
			return nil, err
		}
		env.decls.Add(decl.Name, decl)
	}
	return env, nil
}

func NewEnvironmentFromFiles(files []*FileDef) (*Environment, error) {
	return NewEnvironment(CollectDecls(files))
}

func (e *Environment) Lookup(name Identifier) (*tree.TypeDecl, error) {
	decl, ok := e.decls.Get(name)
	if !ok {
		return nil, &UnknownTypeNameError{Name: name}
	}
	return decl, nil
}

func (e *Environment) Contains(name Identifier) bool {
	return e.decls.Contains(name)
}

func (e *Environment) Len() int {
	return e.decls.Len()
}

// Names returns the declared names in declaration order.
func (e *Environment) Names() []Identifier {
	return e.decls.Keys()
}

// Globals returns the declarations without type parameters, in declaration order.
func (e *Environment) Globals() []*tree.TypeDecl {
	var globals []*tree.TypeDecl
	e.decls.Iter(func(_ Identifier, decl *tree.TypeDecl) {
		if !decl.IsGeneric() {
			globals = append(globals, decl)
		}
	})
	return globals
}

// ========================

func validateDecl(decl *tree.TypeDecl) error {
	params := set.New[Identifier](len(decl.Params))
	for _, param := range decl.Params {
		if !params.Insert(param) {
			return &DuplicateParamError{Decl: decl.Name, Param: param}
		}
	}
	return validateExpr(decl.Name, decl.Type)
}

func validateExpr(owner Identifier, expr tree.TypeExpr) error {
	switch expr := expr.(type) {
	case *tree.BuiltinType, *tree.TypeName:
		return nil
	case *tree.TypeApplication:
		for _, arg := range expr.Args {
			if err := validateExpr(owner, arg.Type); err != nil {
				return err
			}
		}
		return nil
	case *tree.StructType:
		names := set.New[Identifier](len(expr.Fields))
		for _, field := range expr.Fields {
			if !names.Insert(field.Name) {
				return &DuplicateMemberError{Decl: owner, Member: field.Name, Kind: MemberKindField}
			}
			if err := validateExpr(owner, field.Type); err != nil {
				return err
			}
		}
		return nil
	case *tree.EnumType:
		names := set.New[Identifier](len(expr.Variants))
		for _, variant := range expr.Variants {
			if !names.Insert(variant.Name) {
				return &DuplicateMemberError{Decl: owner, Member: variant.Name, Kind: MemberKindVariant}
			}
			if err := validateExpr(owner, variant.Type); err != nil {
				return err
			}
		}
		return nil
	case *tree.IntersectionType:
		if err := validateExpr(owner, expr.Left); err != nil {
			return err
		}
		return validateExpr(owner, expr.Right)
	default:
		spew.Dump(expr)
		panic("unreachable")
	}
}
