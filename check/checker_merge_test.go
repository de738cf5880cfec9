package check

import (
	"errors"
	"testing"

	"github.com/garciat/roto/ir"
	"github.com/garciat/roto/tree"
)

var (
	refInt    = ir.BuiltinOf(tree.BuiltinKindInt)
	refString = ir.BuiltinOf(tree.BuiltinKindString)
)

func fields(pairs ...any) *ir.StructShape {
	shape := &ir.StructShape{}
	for i := 0; i < len(pairs); i += 2 {
		shape.Fields = append(shape.Fields, &ir.Field{Name: pairs[i].(string), Type: pairs[i+1].(ir.Ref)})
	}
	return shape
}

func TestMergeShapes(t *testing.T) {
	table := ir.NewTable()

	merged, err := MergeShapes(table,
		fields("name", refString, "age", refInt),
		fields("id", refString, "name", refString),
	)
	if err != nil {
		t.Fatalf("MergeShapes: %v", err)
	}
	if got := ir.ShapeString(merged); got != "struct {\n  name: string,\n  age: int,\n  id: string,\n}" {
		t.Fatalf("unexpected shape:\n%s", got)
	}
}

func TestMergeShapesCommentFallback(t *testing.T) {
	left := fields("name", refString)
	right := fields("name", refString)
	right.Fields[0].Comment = "display name"

	merged, err := MergeShapes(ir.NewTable(), left, right)
	if err != nil {
		t.Fatalf("MergeShapes: %v", err)
	}
	if merged.Fields[0].Comment != "display name" {
		t.Fatalf("expected comment from right operand")
	}
	if left.Fields[0].Comment != "" {
		t.Fatalf("left operand was modified")
	}
}

func TestMergeShapesConflict(t *testing.T) {
	for _, swap := range []bool{false, true} {
		a, b := fields("name", refString), fields("name", refInt)
		if swap {
			a, b = b, a
		}
		_, err := MergeShapes(ir.NewTable(), a, b)
		var conflict *FieldConflictError
		if !errors.As(err, &conflict) || conflict.Field != "name" {
			t.Fatalf("swap=%v: expected field conflict, got %v", swap, err)
		}
	}
}

func TestMergeShapesUnsupported(t *testing.T) {
	enum := &ir.EnumShape{Variants: []*ir.Variant{{Name: "A", Type: ir.BuiltinOf(tree.BuiltinKindUnit)}}}
	tests := []struct {
		name string
		a, b ir.Shape
	}{
		{"enum & struct", enum, fields("x", refInt)},
		{"struct & enum", fields("x", refInt), enum},
		{"enum & enum", enum, enum},
		{"builtin & struct", &ir.BuiltinShape{Builtin: tree.BuiltinKindInt}, fields("x", refInt)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MergeShapes(ir.NewTable(), tt.a, tt.b)
			var unsupported *UnsupportedIntersectionError
			if !errors.As(err, &unsupported) {
				t.Fatalf("expected unsupported intersection, got %v", err)
			}
			if unsupported.Left != tt.a.Kind() || unsupported.Right != tt.b.Kind() {
				t.Fatalf("unexpected kinds %v & %v", unsupported.Left, unsupported.Right)
			}
		})
	}
}

func TestIdentical(t *testing.T) {
	table := ir.NewTable()

	// Two separately declared linked lists.
	l1 := table.Reserve(ir.NamedLabel("L1"))
	table.Fill(l1, fields("value", refInt, "next", ir.RefTo(l1)))
	l2 := table.Reserve(ir.NamedLabel("L2"))
	table.Fill(l2, fields("value", refInt, "next", ir.RefTo(l2)))

	l3 := table.Reserve(ir.NamedLabel("L3"))
	table.Fill(l3, fields("value", refString, "next", ir.RefTo(l3)))

	alias := table.Reserve(ir.NamedLabel("Alias"))
	table.Fill(alias, &ir.ReferenceShape{ID: l1})

	pending := table.Reserve(ir.NamedLabel("Pending"))

	tests := []struct {
		name string
		a, b ir.Ref
		want bool
	}{
		{"same builtin", refInt, refInt, true},
		{"different builtins", refInt, refString, false},
		{"builtin vs entry", refInt, ir.RefTo(l1), false},
		{"same entry", ir.RefTo(l1), ir.RefTo(l1), true},
		{"recursive structural", ir.RefTo(l1), ir.RefTo(l2), true},
		{"recursive different", ir.RefTo(l1), ir.RefTo(l3), false},
		{"through alias", ir.RefTo(alias), ir.RefTo(l2), true},
		{"reserved self", ir.RefTo(pending), ir.RefTo(pending), true},
		{"reserved other", ir.RefTo(pending), ir.RefTo(l1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identical(table, tt.a, tt.b); got != tt.want {
				t.Fatalf("Identical(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := Identical(table, tt.b, tt.a); got != tt.want {
				t.Fatalf("Identical(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}
