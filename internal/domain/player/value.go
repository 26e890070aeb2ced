package player

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

type ValueKind uint8

const (
	KindText ValueKind = iota
	KindNumber
)

// Placeholder is shown for ability scalars the export did not provide.
const Placeholder = "-"

// Value is a normalized export cell: either a number or a piece of text.
// Text always holds the trimmed source text, also for numbers.
type Value struct {
	Kind   ValueKind
	Number float64
	Text   string
}

func Number(n float64) Value {
	return Value{Kind: KindNumber, Number: n, Text: strconv.FormatFloat(n, 'f', -1, 64)}
}

func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

func PlaceholderValue() Value {
	return Text(Placeholder)
}

func (v Value) IsNumber() bool { return v.Kind == KindNumber }

// IsEmpty reports a text value with no content.
func (v Value) IsEmpty() bool { return v.Kind == KindText && v.Text == "" }

// Float returns the numeric value and whether v is numeric.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Number, true
}

func (v Value) String() string {
	if v.Kind == KindNumber && v.Text == "" {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindNumber {
		return strconv.AppendFloat(nil, v.Number, 'f', -1, 64), nil
	}
	return sonic.Marshal(v.Text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = Value{}
		return nil
	case data[0] == '"':
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode text value: %w", err)
		}
		*v = Text(s)
		return nil
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("decode numeric value %q: %w", data, err)
		}
		*v = Number(n)
		return nil
	}
}
