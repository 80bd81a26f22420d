package table

import (
	"encoding/json"
	"strings"
	"time"

	"report-validator/core/utils"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical calendar-date rendering used for Date cells.
const DateLayout = "2006-01-02"

// Kind identifies which field of a Value is populated.
type Kind int

const (
	// KindNull is an empty cell.
	KindNull Kind = iota
	// KindText is a string cell.
	KindText
	// KindNumber is an exact decimal cell.
	KindNumber
	// KindDate is a date or timestamp cell.
	KindDate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "null"
	}
}

// Value is a single scalar cell.
type Value struct {
	Kind Kind
	Text string
	Num  decimal.Decimal
	Time time.Time
}

// Null returns an empty cell.
func Null() Value { return Value{Kind: KindNull} }

// Text returns a text cell.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Number returns a numeric cell.
func Number(d decimal.Decimal) Value { return Value{Kind: KindNumber, Num: d} }

// Int returns a numeric cell holding an integer.
func Int(i int64) Value { return Number(decimal.NewFromInt(i)) }

// Float returns a numeric cell holding the shortest decimal form of f.
func Float(f float64) Value { return Number(decimal.NewFromFloat(f)) }

// Date returns a date cell.
func Date(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// IsNull reports whether the cell is empty.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// String renders the cell the way it appears in keys and reports.
// Null renders as the empty string.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return v.Num.String()
	case KindDate:
		return utils.ToString(v.Time)
	default:
		return ""
	}
}

// Equal reports whether two cells hold the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindText:
		return v.Text == o.Text
	case KindNumber:
		return v.Num.Equal(o.Num)
	case KindDate:
		return v.Time.Equal(o.Time)
	default:
		return true
	}
}

// Decimal returns the numeric content, treating anything that is not a number as zero.
func (v Value) Decimal() decimal.Decimal {
	if v.Kind == KindNumber {
		return v.Num
	}
	return decimal.Zero
}

// MarshalJSON renders numbers as JSON numbers, null as null and everything else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindNumber:
		return []byte(v.Num.String()), nil
	default:
		return json.Marshal(v.String())
	}
}

// UnmarshalJSON accepts null, numbers and strings. Strings are kept as text;
// declared column types decide later coercion.
func (v *Value) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*v = Null()
		return nil
	}
	if strings.HasPrefix(s, "\"") {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == "" {
			*v = Null()
			return nil
		}
		*v = Text(str)
		return nil
	}
	if s == "true" || s == "false" {
		*v = Text(strings.ToUpper(s))
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*v = Number(d)
	return nil
}

// FromAny converts a Go value produced by a driver or decoder into a cell,
// choosing the kind from the Go type.
func FromAny(val any) Value {
	switch v := val.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case string:
		if v == "" {
			return Null()
		}
		return Text(v)
	case []byte:
		if len(v) == 0 {
			return Null()
		}
		return Text(string(v))
	case time.Time:
		return Date(v)
	case *time.Time:
		if v == nil {
			return Null()
		}
		return Date(*v)
	case bool:
		return Text(strings.ToUpper(utils.ToString(v)))
	}
	if d, ok := utils.ToDecimal(val); ok {
		return Number(d)
	}
	return Text(utils.ToString(val))
}

// Convert converts a Go value into a cell of the declared column type.
// Values that cannot take the declared type are kept as text so the
// normalizer can report them.
func Convert(val any, t Type) Value {
	cell := FromAny(val)
	if cell.IsNull() {
		return cell
	}
	switch t {
	case TypeNumber:
		if cell.Kind == KindText {
			if d, ok := utils.ParseDecimal(cell.Text); ok {
				return Number(d)
			}
		}
	case TypeDate:
		if cell.Kind == KindText {
			if ts, ok := ParseDate(cell.Text); ok {
				return Date(ts)
			}
		}
	case TypeText:
		if cell.Kind == KindNumber {
			return Text(cell.String())
		}
	}
	return cell
}
