// Package sections implements the ordering engine for a company's content
// blocks. All operations are pure list transforms: the editor drives them
// against an in-memory list and the resulting list is committed in one
// whole-company save. Invariant: after any completed operation the order
// values of the returned list form a dense permutation of {0..N-1}.
package sections

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	e "github.com/hirecanvas/hirecanvas/internal/builder/errors"
	"github.com/hirecanvas/hirecanvas/internal/builder/models"
)

// NewID produces a fresh opaque section id. Ids are generated before the
// section is ever persisted so unsaved sections remain addressable.
func NewID() string {
	return "section-" + uuid.NewString()
}

// Add appends a new section of the given type: fresh id, default title
// derived from the type's display name, empty content, order equal to the
// current list length. Existing entries are never touched. A type outside
// the fixed enumeration is rejected with ErrInvalidInput.
func Add(list []models.Section, companyID string, sectionType string) ([]models.Section, error) {
	t, err := models.ParseSectionType(sectionType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
	}
	out := make([]models.Section, len(list), len(list)+1)
	copy(out, list)
	out = append(out, models.Section{
		ID:        NewID(),
		CompanyID: companyID,
		Type:      t,
		Title:     t.DisplayName(),
		Content:   "",
		Order:     len(list),
	})
	return out, nil
}

// Update replaces the title and content of the section with the given id.
// Order and every other entry are untouched. Unknown ids are a no-op.
func Update(list []models.Section, sectionID, title, content string) []models.Section {
	out := make([]models.Section, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == sectionID {
			out[i].Title = title
			out[i].Content = content
			break
		}
	}
	return out
}

// Delete removes the section with the given id and renormalizes the
// survivors to their new zero-based positions. Relative order of the
// survivors is preserved. Unknown ids are a no-op.
func Delete(list []models.Section, sectionID string) []models.Section {
	out := make([]models.Section, 0, len(list))
	for _, s := range list {
		if s.ID != sectionID {
			out = append(out, s)
		}
	}
	return renumber(out)
}

// Reorder moves the source section to the position currently occupied by
// the target section, shifting intervening entries by one slot. This is a
// single-element move, not a swap. The whole list is then renormalized.
// No-op when source equals target or either id is absent.
func Reorder(list []models.Section, sourceID, targetID string) []models.Section {
	out := make([]models.Section, len(list))
	copy(out, list)
	if sourceID == targetID {
		return out
	}
	src, dst := indexOf(out, sourceID), indexOf(out, targetID)
	if src < 0 || dst < 0 {
		return out
	}
	moved := out[src]
	out = append(out[:src], out[src+1:]...)
	out = append(out[:dst], append([]models.Section{moved}, out[dst:]...)...)
	return renumber(out)
}

// SortedView returns the sections sorted ascending by order. The sort is
// stable, so sections sharing an order value (which a well-formed list
// never contains) keep their original relative position.
func SortedView(list []models.Section) []models.Section {
	out := make([]models.Section, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// Renormalize sorts the list into its order-field sequence and reassigns
// dense zero-based orders. It tolerates sparse or duplicated input orders,
// which makes it a safe guard before persisting a client-submitted list.
func Renormalize(list []models.Section) []models.Section {
	return renumber(SortedView(list))
}

// renumber stamps each entry's order with its current list position.
func renumber(list []models.Section) []models.Section {
	for i := range list {
		list[i].Order = i
	}
	return list
}

func indexOf(list []models.Section, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
