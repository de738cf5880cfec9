package ir

import (
	"fmt"
	"strings"

	"github.com/garciat/roto/algos"
)

type DanglingReferenceError struct {
	From ID
	To   ID
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("entry %d references missing entry %d", e.From, e.To)
}

type UnfilledEntryError struct {
	ID    ID
	Label Label
}

func (e *UnfilledEntryError) Error() string {
	return fmt.Sprintf("entry %v#%d was reserved but never filled", e.Label, e.ID)
}

// ReferenceCycleError reports entries that only alias each other and never
// reach a concrete shape, as in `type A = B; type B = A;`.
type ReferenceCycleError struct {
	IDs    []ID
	Labels []Label
}

func (e *ReferenceCycleError) Error() string {
	parts := make([]string, 0, len(e.Labels)+1)
	for i, label := range e.Labels {
		parts = append(parts, fmt.Sprintf("%v#%d", label, e.IDs[i]))
	}
	if len(e.Labels) > 0 {
		parts = append(parts, fmt.Sprintf("%v#%d", e.Labels[0], e.IDs[0]))
	}
	return fmt.Sprintf("reference cycle: %s", strings.Join(parts, " -> "))
}

// Validate checks the invariants of a finished table: every entry is filled,
// every referenced id exists, and no entry is part of a reference-only cycle.
func (t *Table) Validate() error {
	for _, entry := range t.Entries {
		if !entry.IsFilled() {
			return &UnfilledEntryError{ID: entry.ID, Label: entry.Label}
		}
		for _, id := range ShapeRefs(entry.Shape) {
			if !t.Has(id) {
				return &DanglingReferenceError{From: entry.ID, To: id}
			}
		}
	}
	if root, ok := t.Root.(*EntryRef); ok && !t.Has(root.ID) {
		return &DanglingReferenceError{From: -1, To: root.ID}
	}

	ids := make([]ID, len(t.Entries))
	for i := range t.Entries {
		ids[i] = ID(i)
	}
	if cycle := t.referenceCycle(ids); cycle != nil {
		return t.referenceCycleError(cycle)
	}
	return nil
}

func (t *Table) referenceCycle(start []ID) []ID {
	return algos.FindCycle(start, func(id ID) []ID {
		if ref, ok := t.Entries[id].Shape.(*ReferenceShape); ok && t.Has(ref.ID) {
			return []ID{ref.ID}
		}
		return nil
	})
}

func (t *Table) referenceCycleError(cycle []ID) *ReferenceCycleError {
	err := &ReferenceCycleError{IDs: cycle}
	for _, id := range cycle {
		err.Labels = append(err.Labels, t.Entries[id].Label)
	}
	return err
}

// ShapeRefs lists the entry ids a shape points at, in field order.
func ShapeRefs(shape Shape) []ID {
	var ids []ID
	add := func(ref Ref) {
		if ref, ok := ref.(*EntryRef); ok {
			ids = append(ids, ref.ID)
		}
	}
	switch shape := shape.(type) {
	case *StructShape:
		for _, field := range shape.Fields {
			add(field.Type)
		}
	case *EnumShape:
		for _, variant := range shape.Variants {
			add(variant.Type)
		}
	case *ReferenceShape:
		ids = append(ids, shape.ID)
	}
	return ids
}
