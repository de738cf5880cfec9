package tree

import (
	"fmt"
	"strings"

	. "github.com/garciat/roto/common"
)

type Node interface {
	_Node()
}

type NodeBase struct{}

func (NodeBase) _Node() {}

// ========================

type AnnotationArg struct {
	Key   string
	Value string
}

// Annotation is an opaque `@name(key=value, ...)` marker on a declaration.
// Resolution carries it through to IR entries without interpreting it.
type Annotation struct {
	Name string
	Args []AnnotationArg
}

func (a *Annotation) Arg(key string) (string, bool) {
	for _, arg := range a.Args {
		if arg.Key == key {
			return arg.Value, true
		}
	}
	return "", false
}

func (a *Annotation) String() string {
	if len(a.Args) == 0 {
		return "@" + a.Name
	}
	parts := make([]string, 0, len(a.Args))
	for _, arg := range a.Args {
		parts = append(parts, fmt.Sprintf("%s=%q", arg.Key, arg.Value))
	}
	return fmt.Sprintf("@%s(%s)", a.Name, strings.Join(parts, ", "))
}

// ========================

type TypeDecl struct {
	NodeBase
	Name        Identifier
	Params      []Identifier
	Type        TypeExpr
	Annotations []*Annotation
	Comment     string
}

func (d *TypeDecl) IsGeneric() bool {
	return len(d.Params) > 0
}

func (d *TypeDecl) String() string {
	if !d.IsGeneric() {
		return fmt.Sprintf("type %v = %v;", d.Name, d.Type)
	}
	params := MapSlice(d.Params, Identifier.String)
	return fmt.Sprintf("type %v<%s> = %v;", d.Name, strings.Join(params, ", "), d.Type)
}
