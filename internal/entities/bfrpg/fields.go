package bfrpg

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric payload value. Host payloads sometimes carry numbers as
// strings, booleans or empty strings; anything that does not parse as a
// number decodes to NaN instead of failing the whole document.
type Number float64

// NaN returns the Number used for malformed input
func NaN() Number {
	return Number(math.NaN())
}

// Valid reports whether n is a finite number
func (n Number) Valid() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Float returns n, or 0 when n is not a finite number
func (n Number) Float() float64 {
	if !n.Valid() {
		return 0
	}
	return float64(n)
}

// Int returns n truncated toward zero, or 0 when n is not a finite number
func (n Number) Int() int {
	return int(n.Float())
}

// IsInteger reports whether n is a finite whole number
func (n Number) IsInteger() bool {
	return n.Valid() && float64(n) == math.Trunc(float64(n))
}

// UnmarshalJSON decodes numbers and numeric strings; other values become NaN
func (n *Number) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*n = NaN()
		return nil
	}

	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			*n = NaN()
			return nil
		}
		text = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		*n = NaN()
		return nil
	}
	*n = Number(f)
	return nil
}

// MarshalJSON encodes NaN and infinities as null
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(n), 'f', -1, 64)), nil
}

// Text is a string payload value that also accepts bare numbers, so a target
// number may be stored either as 12 or as "@wis.bonus + 12".
type Text string

// UnmarshalJSON decodes strings and numbers; other values become empty
func (t *Text) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*t = ""
		return nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			*t = ""
			return nil
		}
		*t = Text(s)
		return nil
	}

	if _, err := strconv.ParseFloat(string(raw), 64); err == nil {
		*t = Text(raw)
		return nil
	}

	*t = ""
	return nil
}

// Flag is a boolean payload value that also accepts "true"/"false" strings
// and numbers. Anything unrecognised decodes as false.
type Flag bool

// UnmarshalJSON decodes booleans leniently
func (f *Flag) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on":
		*f = true
	default:
		*f = false
	}
	return nil
}

// Field is the {"value": n} wrapper used throughout the host payloads
type Field struct {
	Value Number `json:"value"`
}

// TextField is the {"value": "..."} wrapper for strings and formulas
type TextField struct {
	Value Text `json:"value"`
}

// FlagField is the {"value": bool} wrapper
type FlagField struct {
	Value Flag `json:"value"`
}

// Pool is a current/maximum pair such as hit points
type Pool struct {
	Value Number `json:"value"`
	Max   Number `json:"max"`
}
