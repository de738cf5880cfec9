package tree

import (
	. "github.com/garciat/roto/common"
)

// Shorthands for building declaration graphs in code.

func Name(name string) *TypeName {
	return &TypeName{Name: NewIdentifier(name)}
}

func Apply(name string, args ...*TypeArg) *TypeApplication {
	return &TypeApplication{Name: NewIdentifier(name), Args: args}
}

func Arg(param string, ty TypeExpr) *TypeArg {
	return &TypeArg{Param: NewIdentifier(param), Type: ty}
}

func PosArg(ty TypeExpr) *TypeArg {
	return &TypeArg{Type: ty}
}

func Struct(fields ...*FieldDecl) *StructType {
	return &StructType{Fields: fields}
}

func Field(name string, ty TypeExpr) *FieldDecl {
	return &FieldDecl{Name: NewIdentifier(name), Type: ty}
}

func Enum(variants ...*VariantDecl) *EnumType {
	return &EnumType{Variants: variants}
}

func Variant(name string, ty TypeExpr) *VariantDecl {
	return &VariantDecl{Name: NewIdentifier(name), Type: ty}
}

func UnitVariant(name string) *VariantDecl {
	return Variant(name, BuiltinTypeUnit)
}

func Decl(name string, ty TypeExpr) *TypeDecl {
	return &TypeDecl{Name: NewIdentifier(name), Type: ty}
}

func GenericDecl(name string, params []string, ty TypeExpr) *TypeDecl {
	return &TypeDecl{Name: NewIdentifier(name), Params: NewIdentifiers(params...), Type: ty}
}
