package tree

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Render writes expr in its canonical form in one pass.
func Render(expr TypeExpr) string {
	var sb strings.Builder
	WriteTypeExpr(&sb, expr)
	return sb.String()
}

func WriteTypeExpr(sb *strings.Builder, expr TypeExpr) {
	switch expr := expr.(type) {
	case *BuiltinType:
		sb.WriteString(string(expr.Kind))
	case *TypeName:
		sb.WriteString(expr.Name.Value)
	case *TypeApplication:
		sb.WriteString(expr.Name.Value)
		if len(expr.Args) == 0 {
			return
		}
		sb.WriteByte('<')
		for i, arg := range expr.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeTypeArg(sb, arg)
		}
		sb.WriteByte('>')
	case *StructType:
		if len(expr.Fields) == 0 {
			sb.WriteString("struct {}")
			return
		}
		sb.WriteString("struct { ")
		for i, field := range expr.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(field.Name.Value)
			sb.WriteString(": ")
			WriteTypeExpr(sb, field.Type)
		}
		sb.WriteString(" }")
	case *EnumType:
		if len(expr.Variants) == 0 {
			sb.WriteString("enum {}")
			return
		}
		sb.WriteString("enum { ")
		for i, variant := range expr.Variants {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(variant.Name.Value)
			sb.WriteByte('(')
			WriteTypeExpr(sb, variant.Type)
			sb.WriteByte(')')
		}
		sb.WriteString(" }")
	case *IntersectionType:
		sb.WriteByte('(')
		WriteTypeExpr(sb, expr.Left)
		sb.WriteString(" & ")
		WriteTypeExpr(sb, expr.Right)
		sb.WriteByte(')')
	default:
		spew.Dump(expr)
		panic("unreachable")
	}
}

func writeTypeArg(sb *strings.Builder, arg *TypeArg) {
	if !arg.IsPositional() {
		sb.WriteString(arg.Param.Value)
		sb.WriteByte('=')
	}
	WriteTypeExpr(sb, arg.Type)
}

// Size counts the nodes of expr.
func Size(expr TypeExpr) int {
	switch expr := expr.(type) {
	case *TypeApplication:
		n := 1
		for _, arg := range expr.Args {
			n += Size(arg.Type)
		}
		return n
	case *StructType:
		n := 1
		for _, field := range expr.Fields {
			n += Size(field.Type)
		}
		return n
	case *EnumType:
		n := 1
		for _, variant := range expr.Variants {
			n += Size(variant.Type)
		}
		return n
	case *IntersectionType:
		return 1 + Size(expr.Left) + Size(expr.Right)
	default:
		return 1
	}
}
