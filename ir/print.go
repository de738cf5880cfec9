package ir

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

func ShapeString(shape Shape) string {
	var sb strings.Builder
	writeShape(&sb, shape)
	return sb.String()
}

func writeShape(sb *strings.Builder, shape Shape) {
	switch shape := shape.(type) {
	case nil:
		sb.WriteString("<reserved>")
	case *StructShape:
		sb.WriteString("struct {")
		for _, field := range shape.Fields {
			writeComment(sb, field.Comment)
			fmt.Fprintf(sb, "\n  %s: %v,", field.Name, field.Type)
		}
		sb.WriteString("\n}")
	case *EnumShape:
		sb.WriteString("enum {")
		for _, variant := range shape.Variants {
			writeComment(sb, variant.Comment)
			fmt.Fprintf(sb, "\n  %s(%v),", variant.Name, variant.Type)
		}
		sb.WriteString("\n}")
	case *ReferenceShape:
		fmt.Fprintf(sb, "reference %d", shape.ID)
	case *BuiltinShape:
		sb.WriteString(string(shape.Builtin))
	default:
		spew.Dump(shape)
		panic("unreachable")
	}
}

func writeComment(sb *strings.Builder, comment string) {
	if comment == "" {
		return
	}
	for _, line := range strings.Split(comment, "\n") {
		fmt.Fprintf(sb, "\n  // %s", line)
	}
}

func (e *Entry) String() string {
	return fmt.Sprintf("type %v#%d = %s", e.Label, e.ID, ShapeString(e.Shape))
}

func (t *Table) String() string {
	var sb strings.Builder
	for _, entry := range t.Entries {
		sb.WriteString(entry.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Fprint writes one `type Label#id = shape` block per entry.
func Fprint(w io.Writer, t *Table) error {
	_, err := io.WriteString(w, t.String())
	return err
}

// Dump writes the raw table structure, for debugging.
func Dump(w io.Writer, t *Table) {
	cfg := spew.ConfigState{Indent: "  ", DisableMethods: true, DisablePointerAddresses: true, SortKeys: true}
	cfg.Fdump(w, t)
}
