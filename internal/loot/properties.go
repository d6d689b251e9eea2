// Package loot decides which dropped items deserve an alert and how each alert
// looks.
//
// The package is pure: [IsWorthAlerting] and [Resolve] depend only on their
// arguments, hold no state, and have no side effects. The configuration lists
// that feed them (the currency name list and the crafting-base table) are
// parsed by [LoadCurrencyFile] and [LoadCraftingBasesFile].
package loot

import "github.com/krfshft/PoeHud-Sunbeam/pkg/game"

// Properties are the facts about one item that classification and styling
// read. A Properties value is immutable once built for a given entity.
type Properties struct {
	// Name is the translated display name of the item's base type.
	Name string

	game.ItemInfo

	// IsCraftingBase is set by [Properties.WithCraftingBase] when the item
	// matches an entry of the crafting-base table.
	IsCraftingBase bool
}

// NewProperties builds the properties of an item named name.
func NewProperties(name string, info game.ItemInfo) Properties {
	return Properties{Name: name, ItemInfo: info}
}

// DisplayName returns the alert text for the item: the name, prefixed with
// "Superior " when the item has any quality.
func (p Properties) DisplayName() string {
	if p.Quality > 0 {
		return "Superior " + p.Name
	}
	return p.Name
}

// WithCraftingBase returns a copy of p flagged as a crafting base when the
// table contains a matching entry and crafting alerts are enabled.
func (p Properties) WithCraftingBase(table CraftingTable, enabled bool) Properties {
	if !enabled {
		return p
	}
	if base, ok := table.Lookup(p.Name); ok && base.Matches(p) {
		p.IsCraftingBase = true
	}
	return p
}
