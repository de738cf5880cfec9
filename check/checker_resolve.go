package check

import (
	"github.com/davecgh/go-spew/spew"

	. "github.com/garciat/roto/common"
	"github.com/garciat/roto/ir"
	"github.com/garciat/roto/tree"
)

// ResolveType lowers expr to a shape. Names and applications become a
// ReferenceShape to their entry; literals and intersections become anonymous
// shapes that do not occupy a slot yet.
func (c *Checker) ResolveType(expr tree.TypeExpr) ir.Shape {
	switch expr := expr.(type) {
	case *tree.BuiltinType:
		return &ir.BuiltinShape{Builtin: expr.Kind}
	case *tree.TypeName:
		return &ir.ReferenceShape{ID: c.Instantiate(&tree.TypeApplication{Name: expr.Name})}
	case *tree.TypeApplication:
		return &ir.ReferenceShape{ID: c.Instantiate(expr)}
	case *tree.StructType:
		fields := make([]*ir.Field, len(expr.Fields))
		for i, field := range expr.Fields {
			fields[i] = &ir.Field{
				Name:    field.Name.Value,
				Type:    c.ResolveRef(field.Type),
				Comment: field.Comment,
			}
		}
		return &ir.StructShape{Fields: fields}
	case *tree.EnumType:
		variants := make([]*ir.Variant, len(expr.Variants))
		for i, variant := range expr.Variants {
			variants[i] = &ir.Variant{
				Name:    variant.Name.Value,
				Type:    c.ResolveRef(variant.Type),
				Comment: variant.Comment,
			}
		}
		return &ir.EnumShape{Variants: variants}
	case *tree.IntersectionType:
		return c.Intersect(expr)
	default:
		spew.Dump(expr)
		panic("unreachable")
	}
}

// ResolveRef lowers expr to something a field can point at. Anonymous
// literals get a temporary entry once their contents are resolved.
func (c *Checker) ResolveRef(expr tree.TypeExpr) ir.Ref {
	switch shape := c.ResolveType(expr).(type) {
	case *ir.BuiltinShape:
		return ir.BuiltinOf(shape.Builtin)
	case *ir.ReferenceShape:
		return ir.RefTo(shape.ID)
	case *ir.StructShape, *ir.EnumShape:
		c.checkLimits()
		id := c.Table.Alloc(shape)
		CheckerPrintf("%stemporary #%d = %s\n", c.indent(), id, ir.ShapeString(shape))
		return ir.RefTo(id)
	default:
		spew.Dump(shape)
		panic("unreachable")
	}
}

// Instantiate returns the entry id for app, resolving it on first sight.
// The id is reserved and memoized before the body is resolved, so recursive
// references to the same instantiation find it instead of recursing.
func (c *Checker) Instantiate(app *tree.TypeApplication) ir.ID {
	inst := c.InstantiateType(app)
	decl, subst := inst.Decl, inst.Subst
	if id, ok := c.seen[inst.Key]; ok {
		CheckerPrintf("%sreuse %v -> #%d\n", c.indent(), inst.Key, id)
		return id
	}

	c.checkLimits()

	label := instanceLabel(decl, inst.Args)
	id := c.Table.Reserve(label)
	c.seen[inst.Key] = id
	CheckerPrintf("%sreserve %v -> #%d %v\n", c.indent(), inst.Key, id, subst)

	c.trail = append(c.trail, label)
	body := ApplySubst(decl.Type, subst)
	shape := c.ResolveType(body)
	_, c.trail = PopBack(c.trail)

	entry := c.Table.Fill(id, shape)
	entry.Annotations = decl.Annotations
	entry.Comment = decl.Comment
	CheckerPrintf("%sfill #%d = %s\n", c.indent(), id, ir.ShapeString(shape))
	return id
}
