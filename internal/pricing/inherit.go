package pricing

import "github.com/google/uuid"

// EffectiveModifierGroups returns the item's explicit groups followed by the
// category's groups when the item inherits. Duplicates are dropped, first
// occurrence wins.
func EffectiveModifierGroups(item Item, category *Category) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(item.ModifierGroupIDs))
	seen := make(map[uuid.UUID]bool)
	add := func(ids []uuid.UUID) {
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}

	add(item.ModifierGroupIDs)
	if item.InheritModifierGroups && category != nil {
		add(category.ModifierGroupIDs)
	}
	return out
}

// EffectiveTax returns the item's own tax, else the category's, else nil.
func EffectiveTax(item Item, category *Category) *uuid.UUID {
	if item.TaxID != nil {
		return item.TaxID
	}
	if category != nil && category.TaxID != nil {
		return category.TaxID
	}
	return nil
}
