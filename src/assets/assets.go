// Package assets exposes the static instrument universe the game trades on.
package assets

import (
	"sort"
	"strings"
)

type AssetType string

const (
	TypeStock AssetType = "stock"
	TypeBond  AssetType = "bond"
	TypeIndex AssetType = "index"
)

func (t AssetType) Valid() bool {
	return t == TypeStock || t == TypeBond || t == TypeIndex
}

type Asset struct {
	Symbol   string    `json:"symbol"`
	Name     string    `json:"name"`
	Type     AssetType `json:"type"`
	Category string    `json:"category,omitempty"`
	Exchange string    `json:"exchange,omitempty"`
}

var (
	bySymbol = make(map[string]Asset, len(universe))
	symbols  = make([]string, 0, len(universe))
)

func init() {
	for _, a := range universe {
		bySymbol[a.Symbol] = a
		symbols = append(symbols, a.Symbol)
	}
}

func IsValidSymbol(symbol string) bool {
	_, ok := bySymbol[symbol]
	return ok
}

// AllSymbols returns a copy of every symbol in universe order.
func AllSymbols() []string {
	out := make([]string, len(symbols))
	copy(out, symbols)
	return out
}

func All() []Asset {
	out := make([]Asset, len(universe))
	copy(out, universe)
	return out
}

func Get(symbol string) (Asset, bool) {
	a, ok := bySymbol[symbol]
	return a, ok
}

func ByType(t AssetType) []Asset {
	var out []Asset
	for _, a := range universe {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

// SymbolsOfType returns the symbols of t as a set.
func SymbolsOfType(t AssetType) map[string]struct{} {
	out := make(map[string]struct{})
	for _, a := range universe {
		if a.Type == t {
			out[a.Symbol] = struct{}{}
		}
	}
	return out
}

// Search matches query case-insensitively against symbol and name.
func Search(query string) []Asset {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return All()
	}
	var out []Asset
	for _, a := range universe {
		if strings.Contains(strings.ToLower(a.Symbol), q) || strings.Contains(strings.ToLower(a.Name), q) {
			out = append(out, a)
		}
	}
	return out
}

// Sample returns up to n symbols spread evenly over the universe, deterministic for a given n.
func Sample(n int) []string {
	if n <= 0 {
		return nil
	}
	if n >= len(symbols) {
		return AllSymbols()
	}
	step := float64(len(symbols)) / float64(n)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, symbols[int(float64(i)*step)])
	}
	sort.Strings(out)
	return out
}
