// Package ir is the flat, generics-free output of type resolution: a table of
// numbered entries, each a concrete shape or a reference to another entry.
package ir

import (
	"fmt"
	"strings"

	"github.com/garciat/roto/tree"
)

type ID int

// ========================

// Ref is what a field or variant points at: a builtin or a table entry.
type Ref interface {
	fmt.Stringer
	_Ref()
}

type BuiltinRef struct {
	Kind tree.BuiltinKind
}

func (*BuiltinRef) _Ref() {}

func (r *BuiltinRef) String() string {
	return string(r.Kind)
}

type EntryRef struct {
	ID ID
}

func (*EntryRef) _Ref() {}

func (r *EntryRef) String() string {
	return fmt.Sprintf("reference %d", r.ID)
}

func SameRef(a, b Ref) bool {
	switch a := a.(type) {
	case *BuiltinRef:
		b, ok := b.(*BuiltinRef)
		return ok && a.Kind == b.Kind
	case *EntryRef:
		b, ok := b.(*EntryRef)
		return ok && a.ID == b.ID
	default:
		return false
	}
}

// ========================

type ShapeKind int

const (
	ShapeKindStruct ShapeKind = iota
	ShapeKindEnum
	ShapeKindReference
	ShapeKindBuiltin
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeKindStruct:
		return "struct"
	case ShapeKindEnum:
		return "enum"
	case ShapeKindReference:
		return "reference"
	case ShapeKindBuiltin:
		return "builtin"
	default:
		panic("unreachable")
	}
}

type Shape interface {
	Kind() ShapeKind
}

type Field struct {
	Name    string
	Type    Ref
	Comment string
}

type StructShape struct {
	Fields []*Field
}

func (*StructShape) Kind() ShapeKind { return ShapeKindStruct }

func (s *StructShape) Field(name string) (*Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return nil, false
}

type Variant struct {
	Name    string
	Type    Ref
	Comment string
}

type EnumShape struct {
	Variants []*Variant
}

func (*EnumShape) Kind() ShapeKind { return ShapeKindEnum }

func (s *EnumShape) Variant(name string) (*Variant, bool) {
	for _, variant := range s.Variants {
		if variant.Name == name {
			return variant, true
		}
	}
	return nil, false
}

// ReferenceShape marks an entry that is purely an alias of another entry.
type ReferenceShape struct {
	ID ID
}

func (*ReferenceShape) Kind() ShapeKind { return ShapeKindReference }

// BuiltinShape is the body of a declaration that names a builtin directly,
// as in `type Email = string;`.
type BuiltinShape struct {
	Builtin tree.BuiltinKind
}

func (*BuiltinShape) Kind() ShapeKind { return ShapeKindBuiltin }

// ========================

type LabelKind int

const (
	LabelNamed LabelKind = iota
	LabelGeneric
	LabelTemporary
)

type LabelArg struct {
	Param string
	Value string
}

// Label records where an entry came from. It is for readability only.
type Label struct {
	Kind  LabelKind
	Name  string
	Args  []LabelArg
	Index int // temporaries only
}

func NamedLabel(name string) Label {
	return Label{Kind: LabelNamed, Name: name}
}

func GenericLabel(name string, args []LabelArg) Label {
	return Label{Kind: LabelGeneric, Name: name, Args: args}
}

func TemporaryLabel(index int) Label {
	return Label{Kind: LabelTemporary, Index: index}
}

func (l Label) String() string {
	switch l.Kind {
	case LabelNamed:
		return l.Name
	case LabelGeneric:
		parts := make([]string, 0, len(l.Args))
		for _, arg := range l.Args {
			parts = append(parts, fmt.Sprintf("%s=%s", arg.Param, arg.Value))
		}
		return fmt.Sprintf("%s<%s>", l.Name, strings.Join(parts, ", "))
	case LabelTemporary:
		return fmt.Sprintf("T%d", l.Index)
	default:
		panic("unreachable")
	}
}

// ========================

type Entry struct {
	ID          ID
	Label       Label
	Shape       Shape // nil while reserved
	Annotations []*tree.Annotation
	Comment     string
}

func (e *Entry) IsFilled() bool {
	return e.Shape != nil
}
