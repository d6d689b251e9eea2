package loot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/antzucaro/matchr"
)

// closestThreshold is the minimum Jaro-Winkler similarity for
// [CurrencySet.Closest] to report a configured name.
const closestThreshold = 0.85

// CurrencySet is a case-insensitive set of currency names. A nil *CurrencySet
// means "no list configured" and is valid to call methods on.
type CurrencySet struct {
	names map[string]struct{}
}

// NewCurrencySet returns a set holding names.
func NewCurrencySet(names ...string) *CurrencySet {
	s := &CurrencySet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.add(n)
	}
	return s
}

func (s *CurrencySet) add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	s.names[strings.ToLower(name)] = struct{}{}
}

// Contains reports whether name is in the set, ignoring case.
func (s *CurrencySet) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.names[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Len returns the number of names in the set.
func (s *CurrencySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the lower-cased names in the set, in no particular order.
func (s *CurrencySet) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	return out
}

// Closest returns the configured name most similar to name, for hinting at
// typos in the currency list. ok is false when nothing scores at least 0.85.
func (s *CurrencySet) Closest(name string) (closest string, score float64, ok bool) {
	if s == nil {
		return "", 0, false
	}
	query := strings.ToLower(strings.TrimSpace(name))
	for n := range s.names {
		if sc := matchr.JaroWinkler(query, n, false); sc > score {
			closest, score = n, sc
		}
	}
	if score < closestThreshold {
		return "", 0, false
	}
	return closest, score, true
}

// ParseCurrency reads a currency list: one name per line, blank lines and
// lines starting with '#' ignored.
func ParseCurrency(r io.Reader) (*CurrencySet, error) {
	s := NewCurrencySet()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.add(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("loot: read currency list: %w", err)
	}
	return s, nil
}

// LoadCurrencyFile loads the currency list at path. A missing file is not an
// error: it returns a nil set, which enables the heuristic fallback of
// [IsWorthAlerting].
func LoadCurrencyFile(path string) (*CurrencySet, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loot: open %q: %w", path, err)
	}
	defer f.Close()

	s, err := ParseCurrency(f)
	if err != nil {
		return nil, fmt.Errorf("loot: parse %q: %w", path, err)
	}
	LintNames("currency", s.Names())
	return s, nil
}
