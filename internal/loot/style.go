package loot

import (
	"github.com/krfshft/PoeHud-Sunbeam/pkg/game"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
)

// Icon slots in the item icon sprite strip.
const (
	IconNone         = -1
	IconSixSockets   = 0
	IconChrome       = 1
	IconCraftingBase = 2
	IconSixLinks     = 3

	// IconSlots is the number of cells in the sprite strip.
	IconSlots = 4
)

// Alert text colours.
var (
	NormalColor   = geom.White
	MagicColor    = geom.RGB(136, 136, 255)
	RareColor     = geom.RGB(255, 255, 119)
	UniqueColor   = geom.RGB(175, 96, 37)
	SkillGemColor = geom.RGB(26, 162, 155)
	CurrencyColor = geom.RGB(170, 158, 130)
)

// Style is how a single alert is drawn.
type Style struct {
	Color geom.Color

	// FrameWidth is 1 for maps and vaal fragments, otherwise 0.
	FrameWidth int

	// Text is the alert label.
	Text string

	// IconIndex selects a cell of the icon strip, or [IconNone].
	IconIndex int
}

// Resolve maps item properties to their alert style.
//
// Colour precedence is currency over skill gem over rarity. Icon precedence is
// six links over crafting base over six sockets over chromatic.
func Resolve(p Properties) Style {
	color := rarityColor(p.Rarity)
	if p.IsSkillGem {
		color = SkillGemColor
	}
	if p.IsCurrency {
		color = CurrencyColor
	}

	icon := IconNone
	if p.WorthChrome {
		icon = IconChrome
	}
	if p.NumSockets == 6 {
		icon = IconSixSockets
	}
	if p.IsCraftingBase {
		icon = IconCraftingBase
	}
	if p.NumLinks == 6 {
		icon = IconSixLinks
	}

	frame := 0
	if p.MapLevel > 0 || p.IsVaalFragment {
		frame = 1
	}

	return Style{
		Color:      color,
		FrameWidth: frame,
		Text:       p.DisplayName(),
		IconIndex:  icon,
	}
}

func rarityColor(r game.Rarity) geom.Color {
	switch r {
	case game.RarityMagic:
		return MagicColor
	case game.RarityRare:
		return RareColor
	case game.RarityUnique:
		return UniqueColor
	}
	return NormalColor
}
