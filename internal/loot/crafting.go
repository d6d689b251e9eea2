package loot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/krfshft/PoeHud-Sunbeam/pkg/game"
)

// ErrInvalidRarity is reported for a crafting-base line with an unknown
// rarity token.
var ErrInvalidRarity = errors.New("incorrect rarity definition")

// ErrDuplicateBase is reported for a crafting-base name defined more than
// once. The first definition wins.
var ErrDuplicateBase = errors.New("duplicate definition for item was ignored")

// rarityColumn is the first column holding rarity tokens.
const rarityColumn = 3

// CraftingBase is one entry of the crafting-base table.
type CraftingBase struct {
	Name string

	// MinItemLevel is the lowest accepted item level; 0 accepts any.
	MinItemLevel int

	// MinQuality is the lowest accepted quality; 0 accepts any.
	MinQuality int

	// Rarities lists accepted rarities; nil accepts any.
	Rarities []game.Rarity
}

// Matches reports whether p satisfies the entry's thresholds. Name equality
// is the caller's concern.
func (b CraftingBase) Matches(p Properties) bool {
	if p.ItemLevel < b.MinItemLevel || p.Quality < b.MinQuality {
		return false
	}
	return b.Rarities == nil || slices.Contains(b.Rarities, p.Rarity)
}

// CraftingTable maps lower-cased base names to their entries. A nil table is
// empty.
type CraftingTable map[string]CraftingBase

// Lookup finds the entry for name, ignoring case.
func (t CraftingTable) Lookup(name string) (CraftingBase, bool) {
	b, ok := t[strings.ToLower(strings.TrimSpace(name))]
	return b, ok
}

// ParseCraftingBases reads a crafting-base table. Each non-blank line not
// starting with '#' has the form
//
//	name[, minItemLevel[, minQuality[, rarity...]]]
//
// Non-numeric level and quality columns are ignored. Every invalid rarity and
// duplicate name is collected and returned together as one joined error; the
// table is returned only when the whole input is clean.
func ParseCraftingBases(r io.Reader) (CraftingTable, error) {
	table := make(CraftingTable)
	var errs []error

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		base, err := parseCraftingLine(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w: %s", lineNo, err, line))
		}

		key := strings.ToLower(base.Name)
		if _, dup := table[key]; dup {
			errs = append(errs, fmt.Errorf("line %d: %w: %s", lineNo, ErrDuplicateBase, line))
			continue
		}
		table[key] = base
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("loot: read crafting bases: %w", err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return table, nil
}

// parseCraftingLine parses one table line. An invalid rarity token voids the
// entry's rarity list and is reported as [ErrInvalidRarity]; the entry itself
// is still returned.
func parseCraftingLine(line string) (CraftingBase, error) {
	parts := strings.Split(line, ",")
	base := CraftingBase{Name: strings.TrimSpace(parts[0])}

	if len(parts) > 1 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			base.MinItemLevel = v
		}
	}
	if len(parts) > 2 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil {
			base.MinQuality = v
		}
	}
	if len(parts) <= rarityColumn {
		return base, nil
	}

	rarities := make([]game.Rarity, 0, len(parts)-rarityColumn)
	for _, tok := range parts[rarityColumn:] {
		r, ok := game.ParseRarity(tok)
		if !ok {
			return base, ErrInvalidRarity
		}
		rarities = append(rarities, r)
	}
	base.Rarities = rarities
	return base, nil
}

// LoadCraftingBasesFile loads the crafting-base table at path. A missing file
// yields an empty table and no error.
func LoadCraftingBasesFile(path string) (CraftingTable, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return CraftingTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loot: open %q: %w", path, err)
	}
	defer f.Close()

	table, err := ParseCraftingBases(f)
	if err != nil {
		return nil, fmt.Errorf("loot: parse %q: %w", path, err)
	}

	names := make([]string, 0, len(table))
	for _, b := range table {
		names = append(names, b.Name)
	}
	LintNames("crafting base", names)
	return table, nil
}
