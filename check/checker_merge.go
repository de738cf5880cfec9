package check

import (
	"github.com/garciat/roto/ir"
	"github.com/garciat/roto/tree"
)

// Intersect resolves both operands down to their concrete shapes and merges
// them. Chains like a & b & c are merged pairwise, left to right.
func (c *Checker) Intersect(expr *tree.IntersectionType) *ir.StructShape {
	left := c.structural(c.ResolveType(expr.Left))
	right := c.structural(c.ResolveType(expr.Right))
	merged, err := MergeShapes(c.Table, left, right)
	if err != nil {
		panic(err)
	}
	return merged
}

func (c *Checker) structural(shape ir.Shape) ir.Shape {
	ref, ok := shape.(*ir.ReferenceShape)
	if !ok {
		return shape
	}
	target, entry := c.Table.Deref(ir.RefTo(ref.ID))
	if target == nil {
		panic(&CyclicIntersectionError{Label: entry.Label})
	}
	return target
}

// MergeShapes intersects two struct shapes. The result has the left fields in
// order followed by the right fields the left does not have. A field present
// on both sides must have identical types on both sides; no side wins.
func MergeShapes(table *ir.Table, a, b ir.Shape) (*ir.StructShape, error) {
	left, lok := a.(*ir.StructShape)
	right, rok := b.(*ir.StructShape)
	if !lok || !rok {
		return nil, &UnsupportedIntersectionError{Left: a.Kind(), Right: b.Kind()}
	}

	fields := make([]*ir.Field, 0, len(left.Fields)+len(right.Fields))
	for _, lf := range left.Fields {
		field := *lf
		if rf, ok := right.Field(lf.Name); ok {
			if !Identical(table, lf.Type, rf.Type) {
				return nil, &FieldConflictError{Field: lf.Name, Left: lf.Type, Right: rf.Type}
			}
			if field.Comment == "" {
				field.Comment = rf.Comment
			}
		}
		fields = append(fields, &field)
	}
	for _, rf := range right.Fields {
		if _, ok := left.Field(rf.Name); !ok {
			field := *rf
			fields = append(fields, &field)
		}
	}
	return &ir.StructShape{Fields: fields}, nil
}
