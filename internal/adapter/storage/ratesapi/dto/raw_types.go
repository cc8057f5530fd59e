package ratesapi_dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// RateRaw represents one entry of a fiat rate list as received from the rate service.
type RateRaw struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

// TickerRaw represents one entry of the altcoin ticker feed.
type TickerRaw struct {
	ID       string      `json:"id,omitempty"`
	Symbol   string      `json:"symbol,omitempty"`
	PriceBTC NumberOrStr `json:"price_btc"`
}

// NumberOrStr is a float that may be encoded as a JSON number or a numeric string.
type NumberOrStr float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumberOrStr) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("price is null")
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price %q is not numeric: %w", s, err)
		}
		*n = NumberOrStr(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = NumberOrStr(f)
	return nil
}
