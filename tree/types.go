package tree

import (
	"fmt"
	"strings"

	. "github.com/garciat/roto/common"
)

// TypeExpr is a surface type expression. String renders a canonical form
// without comments; equal renderings mean structurally equal expressions.
type TypeExpr interface {
	Node
	fmt.Stringer
	_TypeExpr()
}

type TypeExprBase struct {
	NodeBase
}

func (*TypeExprBase) _TypeExpr() {}

// ========================

type BuiltinKind string

const (
	BuiltinKindInt    BuiltinKind = "int"
	BuiltinKindFloat  BuiltinKind = "float"
	BuiltinKindString BuiltinKind = "string"
	BuiltinKindBool   BuiltinKind = "bool"
	BuiltinKindUnit   BuiltinKind = "unit"
)

var BuiltinKinds = []BuiltinKind{
	BuiltinKindInt,
	BuiltinKindFloat,
	BuiltinKindString,
	BuiltinKindBool,
	BuiltinKindUnit,
}

func LookupBuiltinKind(name string) (BuiltinKind, bool) {
	for _, kind := range BuiltinKinds {
		if string(kind) == name {
			return kind, true
		}
	}
	return "", false
}

var (
	BuiltinTypeInt    = &BuiltinType{Kind: BuiltinKindInt}
	BuiltinTypeFloat  = &BuiltinType{Kind: BuiltinKindFloat}
	BuiltinTypeString = &BuiltinType{Kind: BuiltinKindString}
	BuiltinTypeBool   = &BuiltinType{Kind: BuiltinKindBool}
	BuiltinTypeUnit   = &BuiltinType{Kind: BuiltinKindUnit}
)

type BuiltinType struct {
	TypeExprBase
	Kind BuiltinKind
}

func (t *BuiltinType) String() string {
	return string(t.Kind)
}

// ========================

type TypeName struct {
	TypeExprBase
	Name Identifier
}

func (t *TypeName) String() string {
	return t.Name.Value
}

// ========================

// TypeArg is one argument of a TypeApplication. An empty Param makes it
// positional.
type TypeArg struct {
	Param Identifier
	Type  TypeExpr
}

func (a *TypeArg) IsPositional() bool {
	return a.Param.IsEmpty()
}

func (a *TypeArg) String() string {
	var sb strings.Builder
	writeTypeArg(&sb, a)
	return sb.String()
}

type TypeApplication struct {
	TypeExprBase
	Name Identifier
	Args []*TypeArg
}

func (t *TypeApplication) String() string {
	return Render(t)
}

// ========================

type FieldDecl struct {
	Name    Identifier
	Type    TypeExpr
	Comment string
}

type StructType struct {
	TypeExprBase
	Fields []*FieldDecl
}

func (t *StructType) String() string {
	return Render(t)
}

type VariantDecl struct {
	Name    Identifier
	Type    TypeExpr
	Comment string
}

type EnumType struct {
	TypeExprBase
	Variants []*VariantDecl
}

func (t *EnumType) String() string {
	return Render(t)
}

// ========================

type IntersectionType struct {
	TypeExprBase
	Left  TypeExpr
	Right TypeExpr
}

func (t *IntersectionType) String() string {
	return Render(t)
}

// Intersect folds operands left-associatively: Intersect(a, b, c) is (a & b) & c.
func Intersect(first TypeExpr, rest ...TypeExpr) TypeExpr {
	result := first
	for _, ty := range rest {
		result = &IntersectionType{Left: result, Right: ty}
	}
	return result
}
