package source

import (
	"fmt"

	. "github.com/garciat/roto/common"
)

type UnknownTypeNameError struct {
	Name Identifier
}

func (e *UnknownTypeNameError) Error() string {
	return fmt.Sprintf("unknown type name: %v", e.Name)
}

type DuplicateDeclarationError struct {
	Name Identifier
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("duplicate declaration: %v", e.Name)
}

type DuplicateParamError struct {
	Decl  Identifier
	Param Identifier
}

func (e *DuplicateParamError) Error() string {
	return fmt.Sprintf("type %v: duplicate type parameter %v", e.Decl, e.Param)
}

type MemberKind string

const (
	MemberKindField   MemberKind = "field"
	MemberKindVariant MemberKind = "variant"
)

type DuplicateMemberError struct {
	Decl   Identifier
	Member Identifier
	Kind   MemberKind
}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("type %v: duplicate %s %v", e.Decl, e.Kind, e.Member)
}

type ReservedNameError struct {
	Name Identifier
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("cannot declare builtin type name: %v", e.Name)
}
