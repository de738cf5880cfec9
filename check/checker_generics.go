package check

import (
	"fmt"
	"strings"

	. "github.com/garciat/roto/common"
	"github.com/garciat/roto/ir"
	"github.com/garciat/roto/source"
	"github.com/garciat/roto/tree"
)

// InstanceKey identifies one concrete instantiation: the declaration name and
// its arguments rendered canonically in parameter order.
type InstanceKey struct {
	Name string
	Args string
}

func (k InstanceKey) String() string {
	if k.Args == "" {
		return k.Name
	}
	return fmt.Sprintf("%s<%s>", k.Name, k.Args)
}

func NewInstanceKey(decl *tree.TypeDecl, subst Subst) InstanceKey {
	return instanceKey(decl, instanceArgs(decl, subst))
}

// instanceArgs renders each bound argument once, in parameter order.
func instanceArgs(decl *tree.TypeDecl, subst Subst) []ir.LabelArg {
	args := make([]ir.LabelArg, 0, len(decl.Params))
	for _, param := range decl.Params {
		args = append(args, ir.LabelArg{Param: param.Value, Value: tree.Render(subst[param])})
	}
	return args
}

func instanceKey(decl *tree.TypeDecl, args []ir.LabelArg) InstanceKey {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Param)
		sb.WriteByte('=')
		sb.WriteString(arg.Value)
	}
	return InstanceKey{Name: decl.Name.Value, Args: sb.String()}
}

func instanceLabel(decl *tree.TypeDecl, args []ir.LabelArg) ir.Label {
	if !decl.IsGeneric() {
		return ir.NamedLabel(decl.Name.Value)
	}
	return ir.GenericLabel(decl.Name.Value, args)
}

// ========================

// Bind pairs the declaration's parameters with the application's arguments.
// Positional arguments bind in order; keyed arguments bind by name.
func Bind(decl *tree.TypeDecl, app *tree.TypeApplication) (Subst, error) {
	if len(app.Args) != len(decl.Params) {
		return nil, &GenericArityError{Name: decl.Name, Expected: len(decl.Params), Got: len(app.Args)}
	}
	subst := Subst{}
	for i, arg := range app.Args {
		param := arg.Param
		if arg.IsPositional() {
			param = decl.Params[i]
		} else if !isParam(decl, param) {
			return nil, &GenericParamError{Name: decl.Name, Param: param, Reason: "no such type parameter"}
		}
		if _, ok := subst[param]; ok {
			return nil, &GenericParamError{Name: decl.Name, Param: param, Reason: "bound more than once"}
		}
		subst[param] = arg.Type
	}
	return subst, nil
}

func isParam(decl *tree.TypeDecl, name Identifier) bool {
	for _, param := range decl.Params {
		if param == name {
			return true
		}
	}
	return false
}

// Normalize rewrites positional type arguments into keyed ones, so that
// Box<string> and Box<T=string> produce the same instantiation key. Every
// name must be declared, even in arguments the body never uses.
// Applications with the wrong number of arguments are left untouched;
// resolving them reports the error.
func (c *Checker) Normalize(expr tree.TypeExpr) tree.TypeExpr {
	switch expr := expr.(type) {
	case *tree.TypeName:
		if !c.Env.Contains(expr.Name) {
			panic(&source.UnknownTypeNameError{Name: expr.Name})
		}
		return expr
	case *tree.TypeApplication:
		decl, err := c.Env.Lookup(expr.Name)
		if err != nil {
			panic(err)
		}
		args := make([]*tree.TypeArg, len(expr.Args))
		for i, arg := range expr.Args {
			args[i] = &tree.TypeArg{Param: arg.Param, Type: c.Normalize(arg.Type)}
		}
		if len(decl.Params) == len(args) {
			for i, arg := range args {
				if arg.IsPositional() {
					arg.Param = decl.Params[i]
				}
			}
		}
		return &tree.TypeApplication{Name: expr.Name, Args: args}
	case *tree.StructType:
		fields := make([]*tree.FieldDecl, len(expr.Fields))
		for i, field := range expr.Fields {
			fields[i] = &tree.FieldDecl{Name: field.Name, Type: c.Normalize(field.Type), Comment: field.Comment}
		}
		return &tree.StructType{Fields: fields}
	case *tree.EnumType:
		variants := make([]*tree.VariantDecl, len(expr.Variants))
		for i, variant := range expr.Variants {
			variants[i] = &tree.VariantDecl{Name: variant.Name, Type: c.Normalize(variant.Type), Comment: variant.Comment}
		}
		return &tree.EnumType{Variants: variants}
	case *tree.IntersectionType:
		return &tree.IntersectionType{Left: c.Normalize(expr.Left), Right: c.Normalize(expr.Right)}
	default:
		return expr
	}
}

// Instance is one bound application of a declaration.
type Instance struct {
	Decl  *tree.TypeDecl
	Subst Subst
	Args  []ir.LabelArg
	Key   InstanceKey
}

// InstantiateType binds app against its declaration. Arguments larger than
// Options.MaxArgSize nodes are rejected before they are rendered into a key.
func (c *Checker) InstantiateType(app *tree.TypeApplication) *Instance {
	decl, err := c.Env.Lookup(app.Name)
	if err != nil {
		panic(err)
	}
	subst, err := Bind(decl, app)
	if err != nil {
		panic(err)
	}
	for param, arg := range subst {
		if size := tree.Size(arg); size > c.Options.MaxArgSize {
			panic(&ResolutionLimitExceededError{What: "type argument size", Limit: c.Options.MaxArgSize})
		}
		subst[param] = c.Normalize(arg)
	}
	args := instanceArgs(decl, subst)
	return &Instance{Decl: decl, Subst: subst, Args: args, Key: instanceKey(decl, args)}
}
