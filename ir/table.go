package ir

import (
	"fmt"

	. "github.com/garciat/roto/common"
	"github.com/garciat/roto/tree"
)

// Table is the resolver's output. Entries are indexed by ID in discovery
// order; a low ID may reference a higher one, and recursive types form
// cycles, so consumers must walk it as a graph.
type Table struct {
	Entries []*Entry
	Root    Ref

	temporaries int
}

func NewTable() *Table {
	return &Table{}
}

func (t *Table) Len() int {
	return len(t.Entries)
}

func (t *Table) Has(id ID) bool {
	return id >= 0 && int(id) < len(t.Entries)
}

func (t *Table) Entry(id ID) *Entry {
	if !t.Has(id) {
		panic(fmt.Errorf("no such entry: %d", id))
	}
	return t.Entries[id]
}

// Reserve appends an empty entry and returns its id. The entry must be
// filled exactly once with Fill.
func (t *Table) Reserve(label Label) ID {
	id := ID(len(t.Entries))
	t.Entries = append(t.Entries, &Entry{ID: id, Label: label})
	return id
}

func (t *Table) Fill(id ID, shape Shape) *Entry {
	entry := t.Entry(id)
	Assert(shape != nil, "filling entry with nil shape")
	Assert(!entry.IsFilled(), fmt.Sprintf("entry %d filled twice", id))
	entry.Shape = shape
	return entry
}

// Alloc adds a filled entry for an anonymous literal.
func (t *Table) Alloc(shape Shape) ID {
	id := t.Reserve(TemporaryLabel(t.temporaries))
	t.temporaries++
	t.Fill(id, shape)
	return id
}

// Deref follows reference entries starting at ref and returns the first
// shape that is not a reference, together with the entry holding it. A
// builtin ref yields a BuiltinShape and no entry. It returns a nil shape
// when the chain reaches an entry that is still reserved, and panics with a
// *ReferenceCycleError on a reference-only cycle.
func (t *Table) Deref(ref Ref) (Shape, *Entry) {
	switch ref := ref.(type) {
	case *BuiltinRef:
		return &BuiltinShape{Builtin: ref.Kind}, nil
	case *EntryRef:
		id := ref.ID
		for steps := 0; steps <= len(t.Entries); steps++ {
			entry := t.Entry(id)
			next, ok := entry.Shape.(*ReferenceShape)
			if !ok {
				return entry.Shape, entry
			}
			id = next.ID
		}
		panic(t.referenceCycleError(t.referenceCycle([]ID{ref.ID})))
	default:
		panic("unreachable")
	}
}

// Target follows reference entries and returns the id of the first entry
// that holds a concrete shape. Builtin refs are returned unchanged.
func (t *Table) Target(ref Ref) Ref {
	_, entry := t.Deref(ref)
	if entry == nil {
		return ref
	}
	return &EntryRef{ID: entry.ID}
}

func BuiltinOf(kind tree.BuiltinKind) Ref {
	return &BuiltinRef{Kind: kind}
}

func RefTo(id ID) Ref {
	return &EntryRef{ID: id}
}
