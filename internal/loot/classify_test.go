package loot_test

import (
	"testing"

	"github.com/krfshft/PoeHud-Sunbeam/internal/loot"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/game"
)

// quietRules enables nothing: link and socket thresholds are out of reach.
func quietRules() loot.Rules {
	return loot.Rules{MinLinks: 7, MinSockets: 7}
}

func TestIsWorthAlerting_EachRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		props loot.Properties
		rules func(*loot.Rules)
		want  bool
	}{
		{
			name:  "nothing enabled",
			props: loot.NewProperties("Iron Ring", game.ItemInfo{Rarity: game.RarityRare}),
			want:  false,
		},
		{
			name:  "rare with rares on",
			props: loot.NewProperties("Iron Ring", game.ItemInfo{Rarity: game.RarityRare}),
			rules: func(r *loot.Rules) { r.Rares = true },
			want:  true,
		},
		{
			name:  "magic with rares on",
			props: loot.NewProperties("Iron Ring", game.ItemInfo{Rarity: game.RarityMagic}),
			rules: func(r *loot.Rules) { r.Rares = true },
			want:  false,
		},
		{
			name:  "unique with uniques on",
			props: loot.NewProperties("Goldrim", game.ItemInfo{Rarity: game.RarityUnique}),
			rules: func(r *loot.Rules) { r.Uniques = true },
			want:  true,
		},
		{
			name:  "map with maps on",
			props: loot.NewProperties("Strand Map", game.ItemInfo{MapLevel: 68}),
			rules: func(r *loot.Rules) { r.Maps = true },
			want:  true,
		},
		{
			name:  "vaal fragment with maps on",
			props: loot.NewProperties("Sacrifice at Dusk", game.ItemInfo{IsVaalFragment: true}),
			rules: func(r *loot.Rules) { r.Maps = true },
			want:  true,
		},
		{
			name:  "map with maps off",
			props: loot.NewProperties("Strand Map", game.ItemInfo{MapLevel: 68}),
			want:  false,
		},
		{
			name:  "links at threshold",
			props: loot.NewProperties("Plate Vest", game.ItemInfo{NumLinks: 5}),
			rules: func(r *loot.Rules) { r.MinLinks = 5 },
			want:  true,
		},
		{
			name:  "links below threshold",
			props: loot.NewProperties("Plate Vest", game.ItemInfo{NumLinks: 4}),
			rules: func(r *loot.Rules) { r.MinLinks = 5 },
			want:  false,
		},
		{
			name:  "skill gem with skill gems on",
			props: loot.NewProperties("Fireball", game.ItemInfo{IsSkillGem: true}),
			rules: func(r *loot.Rules) { r.SkillGems = true },
			want:  true,
		},
		{
			name:  "quality skill gem at threshold",
			props: loot.NewProperties("Fireball", game.ItemInfo{IsSkillGem: true, Quality: 10}),
			rules: func(r *loot.Rules) { r.QualitySkillGems = true; r.QualitySkillGemsThreshold = 10 },
			want:  true,
		},
		{
			name:  "quality skill gem below threshold",
			props: loot.NewProperties("Fireball", game.ItemInfo{IsSkillGem: true, Quality: 9}),
			rules: func(r *loot.Rules) { r.QualitySkillGems = true; r.QualitySkillGemsThreshold = 10 },
			want:  false,
		},
		{
			name:  "chrome with rgb on",
			props: loot.NewProperties("Leather Belt", game.ItemInfo{WorthChrome: true}),
			rules: func(r *loot.Rules) { r.RGB = true },
			want:  true,
		},
		{
			name:  "quality weapon passes gate",
			props: loot.NewProperties("Rusted Sword", game.ItemInfo{IsWeapon: true, Quality: 15}),
			rules: func(r *loot.Rules) {
				r.QualityItems = loot.QualityRules{Enabled: true, Weapon: loot.QualityGate{Enabled: true, MinQuality: 12}}
			},
			want: true,
		},
		{
			name:  "quality weapon with master switch off",
			props: loot.NewProperties("Rusted Sword", game.ItemInfo{IsWeapon: true, Quality: 15}),
			rules: func(r *loot.Rules) {
				r.QualityItems = loot.QualityRules{Weapon: loot.QualityGate{Enabled: true, MinQuality: 12}}
			},
			want: false,
		},
		{
			name:  "quality armour with only weapon gate",
			props: loot.NewProperties("Plate Vest", game.ItemInfo{IsArmour: true, Quality: 20}),
			rules: func(r *loot.Rules) {
				r.QualityItems = loot.QualityRules{Enabled: true, Weapon: loot.QualityGate{Enabled: true}}
			},
			want: false,
		},
		{
			name:  "quality flask passes gate",
			props: loot.NewProperties("Small Life Flask", game.ItemInfo{IsFlask: true, Quality: 20}),
			rules: func(r *loot.Rules) {
				r.QualityItems = loot.QualityRules{Enabled: true, Flask: loot.QualityGate{Enabled: true, MinQuality: 20}}
			},
			want: true,
		},
		{
			name:  "sockets at threshold",
			props: loot.NewProperties("Plate Vest", game.ItemInfo{NumSockets: 6}),
			rules: func(r *loot.Rules) { r.MinSockets = 6 },
			want:  true,
		},
		{
			name:  "crafting base flag",
			props: loot.Properties{Name: "Vaal Regalia", IsCraftingBase: true},
			want:  true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rules := quietRules()
			if tc.rules != nil {
				tc.rules(&rules)
			}
			if got := loot.IsWorthAlerting(tc.props, nil, rules); got != tc.want {
				t.Errorf("IsWorthAlerting = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsWorthAlerting_CurrencyHeuristic(t *testing.T) {
	t.Parallel()

	rules := quietRules()
	rules.Currency = true

	tests := []struct {
		name string
		want bool
	}{
		{"Scroll of Wisdom", true},
		{"Portal Scroll", false},
		{"Chaos Orb", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := loot.NewProperties(tc.name, game.ItemInfo{IsCurrency: true})
			if got := loot.IsWorthAlerting(p, nil, rules); got != tc.want {
				t.Errorf("IsWorthAlerting(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestIsWorthAlerting_CurrencyList(t *testing.T) {
	t.Parallel()

	set := loot.NewCurrencySet("chaos orb", "Exalted Orb")
	rules := quietRules()
	rules.Currency = true

	tests := []struct {
		name string
		want bool
	}{
		{"Chaos Orb", true},
		{"EXALTED ORB", true},
		{"Scroll of Wisdom", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := loot.NewProperties(tc.name, game.ItemInfo{IsCurrency: true})
			if got := loot.IsWorthAlerting(p, set, rules); got != tc.want {
				t.Errorf("IsWorthAlerting(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}

	t.Run("currency rule off", func(t *testing.T) {
		t.Parallel()
		p := loot.NewProperties("Chaos Orb", game.ItemInfo{IsCurrency: true})
		if loot.IsWorthAlerting(p, set, quietRules()) {
			t.Error("expected no alert with currency alerts disabled")
		}
	})
}

// Enabling a rule never turns an alert off.
func TestIsWorthAlerting_Monotonic(t *testing.T) {
	t.Parallel()

	items := []loot.Properties{
		loot.NewProperties("Iron Ring", game.ItemInfo{Rarity: game.RarityRare}),
		loot.NewProperties("Goldrim", game.ItemInfo{Rarity: game.RarityUnique, NumSockets: 6}),
		loot.NewProperties("Strand Map", game.ItemInfo{MapLevel: 70}),
		loot.NewProperties("Scroll of Wisdom", game.ItemInfo{IsCurrency: true}),
		loot.NewProperties("Fireball", game.ItemInfo{IsSkillGem: true, Quality: 20}),
		loot.NewProperties("Plate Vest", game.ItemInfo{IsArmour: true, Quality: 20, WorthChrome: true, NumLinks: 6}),
		{Name: "Vaal Regalia", IsCraftingBase: true},
	}
	enablers := map[string]func(*loot.Rules){
		"rares":              func(r *loot.Rules) { r.Rares = true },
		"uniques":            func(r *loot.Rules) { r.Uniques = true },
		"maps":               func(r *loot.Rules) { r.Maps = true },
		"currency":           func(r *loot.Rules) { r.Currency = true },
		"skill gems":         func(r *loot.Rules) { r.SkillGems = true },
		"quality skill gems": func(r *loot.Rules) { r.QualitySkillGems = true },
		"rgb":                func(r *loot.Rules) { r.RGB = true },
		"crafting":           func(r *loot.Rules) { r.Crafting = true },
		"quality items": func(r *loot.Rules) {
			r.QualityItems.Enabled = true
			r.QualityItems.Armour = loot.QualityGate{Enabled: true, MinQuality: 5}
		},
		"min links":   func(r *loot.Rules) { r.MinLinks = 5 },
		"min sockets": func(r *loot.Rules) { r.MinSockets = 5 },
	}
	bases := []loot.Rules{
		quietRules(),
		{Rares: true, MinLinks: 7, MinSockets: 7},
		{Uniques: true, Maps: true, RGB: true, MinLinks: 6, MinSockets: 6},
	}

	for _, base := range bases {
		for _, p := range items {
			if !loot.IsWorthAlerting(p, nil, base) {
				continue
			}
			for name, enable := range enablers {
				rules := base
				enable(&rules)
				if !loot.IsWorthAlerting(p, nil, rules) {
					t.Errorf("enabling %s turned off alert for %q (base %+v)", name, p.Name, base)
				}
			}
		}
	}
}
