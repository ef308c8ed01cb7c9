package excel

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Kind is the stored type of a copied cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
	KindBool
	KindFormula
	KindDate
)

const dateLayout = "2006-01-02 15:04:05"

// NumberFormat is a cell number format: a built-in ID, or a custom code
// when Code is set.
type NumberFormat struct {
	ID   int
	Code string
}

// Value is a cell value as read from a source sheet. Only the field
// matching Kind is meaningful.
type Value struct {
	Kind    Kind
	Number  float64
	Text    string
	Bool    bool
	Formula string
	// Date values keep the serial in Number, the decoded time in Time and
	// the source cell's format in Format.
	Time   time.Time
	Format NumberFormat
}

func NumberValue(n float64) Value { return Value{Kind: KindNumber, Number: n} }

func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// FormulaValue stores formula text without the leading '='.
func FormulaValue(f string) Value {
	return Value{Kind: KindFormula, Formula: strings.TrimPrefix(f, "=")}
}

// DateValue is a serial date read from a cell formatted as a date.
func DateValue(serial float64, t time.Time, format NumberFormat) Value {
	return Value{Kind: KindDate, Number: serial, Time: t, Format: format}
}

// IsEmpty reports whether the value holds nothing.
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

// String renders the value the way it appears in the trace log.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindText:
		return v.Text
	case KindBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case KindFormula:
		return "=" + v.Formula
	case KindDate:
		return v.Time.Format(dateLayout)
	}
	return ""
}

// classifyValue turns a stored cell type and its raw text into a Value.
// Formulas are detected by the caller before this is reached.
func classifyValue(typ excelize.CellType, raw string) Value {
	if raw == "" {
		return Value{}
	}
	switch typ {
	case excelize.CellTypeBool:
		return BoolValue(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeError, excelize.CellTypeDate, excelize.CellTypeFormula:
		return TextValue(raw)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return NumberValue(n)
	}
	return TextValue(raw)
}

// isDateFormat reports whether a number format displays a date or time.
func isDateFormat(format NumberFormat) bool {
	if format.Code == "" {
		switch {
		case format.ID >= 14 && format.ID <= 22,
			format.ID >= 27 && format.ID <= 36,
			format.ID >= 45 && format.ID <= 47,
			format.ID >= 50 && format.ID <= 58:
			return true
		}
		return false
	}

	// Quoted literals, escaped characters and [..] sections such as
	// colors and locales do not count
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range format.Code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(r)
		}
	}
	code := strings.ToLower(b.String())
	if code == "general" {
		return false
	}
	return strings.ContainsAny(code, "ymdhs")
}
