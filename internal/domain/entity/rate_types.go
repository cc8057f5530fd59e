package entity

import (
	"strings"
	"time"
)

// Rate is the price of one whole coin expressed in a fiat currency.
type Rate struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

// Alternative is a selectable fiat currency.
type Alternative struct {
	Name    string `json:"name"`
	IsoCode string `json:"isoCode"`
}

// RateTable is an immutable snapshot of a chain's rates. It is replaced as a
// whole on every successful refresh.
type RateTable struct {
	Chain     ChainID
	UpdatedAt time.Time
	entries   []Rate
	index     map[string]float64
}

// NormalizeCode returns the canonical form of a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewRateTable builds a table from rates in source order. Codes are normalized;
// when a code repeats, the first rate wins for lookups while all entries are kept.
func NewRateTable(chain ChainID, rates []Rate, updatedAt time.Time) *RateTable {
	entries := make([]Rate, 0, len(rates))
	index := make(map[string]float64, len(rates))
	for _, r := range rates {
		r.Code = NormalizeCode(r.Code)
		if r.Code == "" {
			continue
		}
		entries = append(entries, r)
		if _, ok := index[r.Code]; !ok {
			index[r.Code] = r.Rate
		}
	}
	return &RateTable{
		Chain:     chain,
		UpdatedAt: updatedAt,
		entries:   entries,
		index:     index,
	}
}

// Rate returns the rate for a currency code.
func (t *RateTable) Rate(code string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	r, ok := t.index[NormalizeCode(code)]
	return r, ok
}

// Entries returns a copy of the table rows in source order.
func (t *RateTable) Entries() []Rate {
	if t == nil {
		return nil
	}
	out := make([]Rate, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of rows.
func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Derive builds a new table for another chain with every rate multiplied by factor.
func (t *RateTable) Derive(chain ChainID, factor float64, updatedAt time.Time) *RateTable {
	rates := t.Entries()
	for i := range rates {
		rates[i].Rate *= factor
	}
	return NewRateTable(chain, rates, updatedAt)
}
