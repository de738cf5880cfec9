package check

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-set/v3"

	"github.com/garciat/roto/ir"
)

// Identical reports whether two refs denote the same shape. Reference
// entries are followed first. Distinct entries are compared structurally,
// assuming pairs already under comparison are equal so recursive shapes
// terminate. An entry that is still reserved is only identical to itself.
func Identical(table *ir.Table, a, b ir.Ref) bool {
	eq := &identity{table: table, assumed: set.New[entryPair](0)}
	return eq.refs(a, b)
}

type entryPair struct {
	a, b ir.ID
}

type identity struct {
	table   *ir.Table
	assumed *set.Set[entryPair]
}

func (e *identity) refs(a, b ir.Ref) bool {
	sa, ea := e.table.Deref(a)
	sb, eb := e.table.Deref(b)
	if ea != nil && eb != nil {
		if ea.ID == eb.ID {
			return true
		}
		if !e.assumed.Insert(entryPair{ea.ID, eb.ID}) {
			return true
		}
	}
	return e.shapes(sa, sb)
}

func (e *identity) shapes(a, b ir.Shape) bool {
	switch a := a.(type) {
	case nil:
		return false
	case *ir.BuiltinShape:
		b, ok := b.(*ir.BuiltinShape)
		return ok && a.Builtin == b.Builtin
	case *ir.StructShape:
		b, ok := b.(*ir.StructShape)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name {
				return false
			}
			if !e.refs(a.Fields[i].Type, b.Fields[i].Type) {
				return false
			}
		}
		return true
	case *ir.EnumShape:
		b, ok := b.(*ir.EnumShape)
		if !ok || len(a.Variants) != len(b.Variants) {
			return false
		}
		for i := range a.Variants {
			if a.Variants[i].Name != b.Variants[i].Name {
				return false
			}
			if !e.refs(a.Variants[i].Type, b.Variants[i].Type) {
				return false
			}
		}
		return true
	default:
		spew.Dump(a)
		panic("unreachable")
	}
}
