package trip

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Price is an amount in VND. The backend returns prices either as raw
// numbers or as formatted strings like "50.000đ"; both decode to the same
// integer value.
type Price int64

func (p *Price) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = 0
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*p = Price(parsePriceString(s))
		return nil
	}

	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return err
	}
	*p = Price(int64(f))
	return nil
}

// ParsePrice converts whatever shape a price arrives in to an integer VND
// amount. Numbers pass through; strings keep only their digits; anything
// else is 0.
func ParsePrice(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case Price:
		return int64(x)
	case int:
		return int64(x)
	case int64:
		return x
	case float64:
		return int64(x)
	case string:
		return parsePriceString(x)
	default:
		return 0
	}
}

func parsePriceString(s string) int64 {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	if len(digits) == 0 {
		return 0
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
