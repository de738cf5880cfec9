package check

import (
	"fmt"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"

	. "github.com/garciat/roto/common"
	"github.com/garciat/roto/tree"
)

// Subst binds the type parameters of one generic application. Each
// application gets its own Subst; they are never merged.
type Subst map[Identifier]tree.TypeExpr

func (s Subst) String() string {
	parts := make([]string, 0, len(s))
	for k, v := range s {
		parts = append(parts, fmt.Sprintf("%v -> %v", k, v))
	}
	slices.Sort(parts)
	return fmt.Sprintf("{{ %v }}", strings.Join(parts, " ; "))
}

// ApplySubst rewrites every reference to a bound parameter in expr. It is a
// pure tree transform: names that are not bound are left alone and are never
// looked up. Replacements are inserted as is and not substituted again.
func ApplySubst(expr tree.TypeExpr, subst Subst) tree.TypeExpr {
	if len(subst) == 0 {
		return expr
	}
	switch expr := expr.(type) {
	case *tree.BuiltinType:
		return expr
	case *tree.TypeName:
		if substTy, ok := subst[expr.Name]; ok {
			SubstPrintf("subst %v -> %v\n", expr.Name, substTy)
			return substTy
		}
		return expr
	case *tree.TypeApplication:
		args := make([]*tree.TypeArg, len(expr.Args))
		for i, arg := range expr.Args {
			args[i] = &tree.TypeArg{Param: arg.Param, Type: ApplySubst(arg.Type, subst)}
		}
		substTy, ok := subst[expr.Name]
		if !ok {
			return &tree.TypeApplication{Name: expr.Name, Args: args}
		}
		if len(args) == 0 {
			return substTy
		}
		switch substTy := substTy.(type) {
		case *tree.TypeName:
			return &tree.TypeApplication{Name: substTy.Name, Args: args}
		case *tree.TypeApplication:
			if len(substTy.Args) == 0 {
				return &tree.TypeApplication{Name: substTy.Name, Args: args}
			}
		}
		panic(&ParamApplicationError{Param: expr.Name, Bound: substTy})
	case *tree.StructType:
		fields := make([]*tree.FieldDecl, len(expr.Fields))
		for i, field := range expr.Fields {
			fields[i] = &tree.FieldDecl{
				Name:    field.Name,
				Type:    ApplySubst(field.Type, subst),
				Comment: field.Comment,
			}
		}
		return &tree.StructType{Fields: fields}
	case *tree.EnumType:
		variants := make([]*tree.VariantDecl, len(expr.Variants))
		for i, variant := range expr.Variants {
			variants[i] = &tree.VariantDecl{
				Name:    variant.Name,
				Type:    ApplySubst(variant.Type, subst),
				Comment: variant.Comment,
			}
		}
		return &tree.EnumType{Variants: variants}
	case *tree.IntersectionType:
		return &tree.IntersectionType{
			Left:  ApplySubst(expr.Left, subst),
			Right: ApplySubst(expr.Right, subst),
		}
	default:
		spew.Dump(expr)
		panic("unreachable")
	}
}
