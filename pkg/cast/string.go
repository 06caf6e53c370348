// Package cast converts loosely typed JSON body values into the text fields
// stored on products and the SEO record.
package cast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrCast reports a body value that has no text form (an object or array).
var ErrCast = errors.New("cast to string failed")

// String is one optional text field of a request body.
//
// Strings are kept as is, numbers and booleans are stored in their text form
// and null clears the field. Objects and arrays decode without error but
// report ErrCast from Err, so the failure surfaces at write time.
type String struct {
	Set   bool
	Value string
	kind  string
}

// Of returns a present field holding v.
func Of(v string) String {
	return String{Set: true, Value: v}
}

func (s *String) UnmarshalJSON(b []byte) error {
	*s = String{Set: true}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}

	switch b[0] {
	case 'n':
		return nil
	case '"':
		return json.Unmarshal(b, &s.Value)
	case 't', 'f':
		s.Value = string(b)
		return nil
	case '{':
		s.kind = "object"
		return nil
	case '[':
		s.kind = "array"
		return nil
	}

	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil && !math.IsInf(f, 0) {
		return fmt.Errorf("invalid number %s: %w", b, err)
	}
	s.Value = FormatNumber(f)
	return nil
}

// Err returns ErrCast when the decoded value was an object or array.
func (s String) Err() error {
	if s.kind == "" {
		return nil
	}
	return fmt.Errorf("%w: %s value", ErrCast, s.kind)
}

// FormatNumber renders f the way a JavaScript runtime prints a number, so
// 1700000000 becomes "1700000000", 1.50 becomes "1.5" and 1e21 stays "1e+21".
func FormatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if a := math.Abs(f); a >= 1e21 || a < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
