package loot

import (
	"strings"

	"github.com/krfshft/PoeHud-Sunbeam/pkg/game"
)

// Rules are the user thresholds that decide which items raise an alert.
type Rules struct {
	Rares   bool
	Uniques bool
	Maps    bool

	// MinLinks alerts on items with at least this many linked sockets.
	MinLinks int

	// MinSockets alerts on items with at least this many sockets.
	MinSockets int

	Currency bool

	SkillGems                 bool
	QualitySkillGems          bool
	QualitySkillGemsThreshold int

	// RGB alerts on items worth vendoring for a chromatic orb.
	RGB bool

	// Crafting enables crafting-base matching.
	Crafting bool

	QualityItems QualityRules
}

// QualityRules gate alerts for weapons, armour and flasks by quality.
type QualityRules struct {
	Enabled bool
	Weapon  QualityGate
	Armour  QualityGate
	Flask   QualityGate
}

// QualityGate is a single per-category quality threshold.
type QualityGate struct {
	Enabled    bool
	MinQuality int
}

func (g QualityGate) passes(quality int) bool {
	return g.Enabled && quality >= g.MinQuality
}

// IsWorthAlerting reports whether p deserves an alert under rules. A nil
// currency set means no currency list is configured; currency is then matched
// by the scroll-of-wisdom heuristic.
//
// The result is a plain disjunction: no rule can suppress another.
func IsWorthAlerting(p Properties, currency *CurrencySet, rules Rules) bool {
	switch {
	case p.Rarity == game.RarityRare && rules.Rares:
		return true
	case p.Rarity == game.RarityUnique && rules.Uniques:
		return true
	case (p.MapLevel > 0 || p.IsVaalFragment) && rules.Maps:
		return true
	case p.NumLinks >= rules.MinLinks:
		return true
	case p.IsCurrency && rules.Currency && currencyMatches(p.Name, currency):
		return true
	case p.IsSkillGem && rules.SkillGems:
		return true
	case p.IsSkillGem && rules.QualitySkillGems && p.Quality >= rules.QualitySkillGemsThreshold:
		return true
	case p.WorthChrome && rules.RGB:
		return true
	case rules.QualityItems.Enabled && qualityItemMatches(p, rules.QualityItems):
		return true
	case p.NumSockets >= rules.MinSockets:
		return true
	}
	return p.IsCraftingBase
}

func currencyMatches(name string, currency *CurrencySet) bool {
	if currency == nil {
		return strings.Contains(name, "Wisdom") && !strings.Contains(name, "Portal")
	}
	return currency.Contains(name)
}

func qualityItemMatches(p Properties, q QualityRules) bool {
	return p.IsWeapon && q.Weapon.passes(p.Quality) ||
		p.IsArmour && q.Armour.passes(p.Quality) ||
		p.IsFlask && q.Flask.passes(p.Quality)
}
