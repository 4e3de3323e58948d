package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// LoadStatus describes what was found in storage. Anything but LoadOK means the
// confirmation view has nothing to show and should send the buyer back to the
// catalog.
type LoadStatus int

const (
	LoadOK LoadStatus = iota
	LoadMissing
	LoadEmpty
	LoadMalformed
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadMissing:
		return "missing"
	case LoadEmpty:
		return "empty"
	case LoadMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ShouldRedirect reports whether the consuming view should navigate to the catalog.
func (s LoadStatus) ShouldRedirect() bool {
	return s != LoadOK
}

// maxExactFloat is the largest integer a float64 holds without rounding.
const maxExactFloat = 1 << 53

// Encode serialises c as a JSON object of id -> quantity.
func Encode(c Cart) (string, error) {
	b, err := json.Marshal(map[string]int(c.Clone()))
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// Decode parses a persisted cart. Any JSON object is a candidate cart; entries
// whose value is not a positive integer are dropped and reported in skipped.
// Non-object or malformed input decodes to an empty cart with LoadMalformed.
func Decode(raw string) (c Cart, status LoadStatus, skipped []string, err error) {
	if strings.TrimSpace(raw) == "" {
		return New(), LoadMissing, nil, nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return New(), LoadMalformed, nil, fmt.Errorf("decode cart: %w", err)
	}
	if entries == nil {
		return New(), LoadMalformed, nil, fmt.Errorf("decode cart: not an object")
	}

	c = make(Cart, len(entries))
	for id, value := range entries {
		qty, ok := quantityFrom(value)
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		c[id] = qty
	}

	if c.IsEmpty() {
		return c, LoadEmpty, skipped, nil
	}
	return c, LoadOK, skipped, nil
}

func quantityFrom(raw json.RawMessage) (int, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] == '"' {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return 0, false
	}
	v, err := n.Int64()
	if err != nil {
		// Integral values written in float form, e.g. 2.0 or 1e3.
		f, ferr := n.Float64()
		if ferr != nil || f != math.Trunc(f) || f > maxExactFloat || f < 1 {
			return 0, false
		}
		v = int64(f)
	}
	if v < 1 || int64(int(v)) != v {
		return 0, false
	}
	return int(v), true
}
