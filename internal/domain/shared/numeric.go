package shared

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var leadingNumber = regexp.MustCompile(`^[+-]?\d+(\.\d+)?`)

// NumericText is a quantity-like field that may arrive as a JSON number or as
// free text carrying unit decoration ("12.5 kg"). The raw text is stored
// verbatim and coerced to a decimal only when arithmetic needs it.
type NumericText string

// UnmarshalJSON accepts both string and bare number forms.
func (n *NumericText) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*n = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericText(s)
		return nil
	}
	*n = NumericText(trimmed)
	return nil
}

func (n NumericText) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}

// Decimal coerces the text with CoerceDecimal.
func (n NumericText) Decimal() decimal.Decimal {
	return CoerceDecimal(string(n))
}

// LeadingDecimal extracts the leading signed numeric portion of s after
// trimming. It reports false when s carries no leading number at all, which
// callers use to tell junk apart from a genuine zero.
func LeadingDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}
	m := leadingNumber.FindString(s)
	if m == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// CoerceDecimal parses quantity text leniently: trim, then take the leading
// signed numeric portion. Text with no leading number ("abc", "-", "")
// degrades to zero rather than erroring, matching how mixed data generations
// are read everywhere in the system.
func CoerceDecimal(raw string) decimal.Decimal {
	d, _ := LeadingDecimal(raw)
	return d
}
