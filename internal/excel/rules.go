package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Overflow decides which rule a column past the end of the table gets.
type Overflow string

const (
	OverflowError Overflow = "error"
	OverflowLast  Overflow = "last"
	OverflowCycle Overflow = "cycle"
)

// ParseOverflow accepts error, last or cycle. Empty means error.
func ParseOverflow(s string) (Overflow, error) {
	switch Overflow(strings.ToLower(strings.TrimSpace(s))) {
	case "", OverflowError:
		return OverflowError, nil
	case OverflowLast:
		return OverflowLast, nil
	case OverflowCycle:
		return OverflowCycle, nil
	}
	return "", fmt.Errorf("unknown column overflow policy %q (must be error, last or cycle)", s)
}

type Font struct {
	Name  string  `toml:"name"`
	Size  float64 `toml:"size"`
	Color string  `toml:"color"`
	Bold  bool    `toml:"bold"`
}

type Alignment struct {
	Horizontal string `toml:"horizontal"`
	Vertical   string `toml:"vertical"`
	WrapText   bool   `toml:"wrap_text"`
}

// Border is drawn on all four sides of every written cell.
type Border struct {
	Style string `toml:"style"`
	Color string `toml:"color"`
}

// CellFormatRule is the presentation applied to one column position.
// A nil Alignment or empty NumberFormat leaves the cell's existing
// setting alone.
type CellFormatRule struct {
	Font         Font       `toml:"font"`
	Alignment    *Alignment `toml:"alignment,omitempty"`
	NumberFormat string     `toml:"number_format,omitempty"`
}

// RuleTable is the ordered per-column format list plus the shared border.
type RuleTable struct {
	Rules    []CellFormatRule
	Border   Border
	Overflow Overflow
}

const (
	numberFormatPlainInt   = "0_ "
	numberFormatGroupedInt = "#,##0_ "
	numberFormatGroupedDec = "#,##0.00_ "
)

var defaultFont = Font{Name: "Meiryo UI", Size: 10, Color: "000000"}

// DefaultRules returns the four column formats of the summary sheet:
// plain number, left-aligned text, 2-decimal grouped number and
// grouped integer.
func DefaultRules() []CellFormatRule {
	return []CellFormatRule{
		{Font: defaultFont, NumberFormat: numberFormatPlainInt},
		{Font: defaultFont, Alignment: &Alignment{Horizontal: "left", Vertical: "top", WrapText: true}},
		{Font: defaultFont, NumberFormat: numberFormatGroupedDec},
		{Font: defaultFont, NumberFormat: numberFormatGroupedInt},
	}
}

func DefaultBorder() Border {
	return Border{Style: "thin", Color: "000000"}
}

func DefaultRuleTable() RuleTable {
	return RuleTable{
		Rules:    DefaultRules(),
		Border:   DefaultBorder(),
		Overflow: OverflowError,
	}
}

// Check fails with ErrTooManyColumns when column positions cannot all
// be mapped to a rule under the table's overflow policy.
func (t RuleTable) Check(columns int) error {
	if len(t.Rules) == 0 {
		return fmt.Errorf("column format table is empty")
	}
	if columns > len(t.Rules) && (t.Overflow == OverflowError || t.Overflow == "") {
		return fmt.Errorf("%w: %d columns in range, %d format rules", ErrTooManyColumns, columns, len(t.Rules))
	}
	return nil
}

// Index maps a zero-based column position to a rule index.
func (t RuleTable) Index(pos int) (int, error) {
	n := len(t.Rules)
	switch {
	case n == 0:
		return 0, fmt.Errorf("column format table is empty")
	case pos < n:
		return pos, nil
	case t.Overflow == OverflowLast:
		return n - 1, nil
	case t.Overflow == OverflowCycle:
		return pos % n, nil
	}
	return 0, fmt.Errorf("%w: column position %d, %d format rules", ErrTooManyColumns, pos, n)
}

var borderStyles = map[string]int{
	"none":   0,
	"thin":   1,
	"medium": 2,
	"dashed": 3,
	"dotted": 4,
	"thick":  5,
	"double": 6,
	"hair":   7,
}

// BorderStyleID returns the excelize border style number for a name.
func BorderStyleID(name string) (int, error) {
	id, ok := borderStyles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown border style %q", name)
	}
	return id, nil
}

func (b Border) sides() ([]excelize.Border, error) {
	style, err := BorderStyleID(b.Style)
	if err != nil {
		return nil, err
	}
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, side := range sides {
		borders = append(borders, excelize.Border{Type: side, Color: b.Color, Style: style})
	}
	return borders, nil
}

// merge layers rule idx and the border on top of base. base is not modified.
// keep is the number format of the written value; it is used when the rule
// sets none.
func (t RuleTable) merge(base *excelize.Style, idx int, keep NumberFormat) (*excelize.Style, error) {
	if idx < 0 || idx >= len(t.Rules) {
		return nil, fmt.Errorf("format rule %d out of range", idx)
	}
	rule := t.Rules[idx]

	style := excelize.Style{}
	if base != nil {
		style = *base
	}

	borders, err := t.Border.sides()
	if err != nil {
		return nil, err
	}
	style.Border = borders

	style.Font = &excelize.Font{
		Family: rule.Font.Name,
		Size:   rule.Font.Size,
		Color:  rule.Font.Color,
		Bold:   rule.Font.Bold,
	}

	if rule.Alignment != nil {
		style.Alignment = &excelize.Alignment{
			Horizontal: rule.Alignment.Horizontal,
			Vertical:   rule.Alignment.Vertical,
			WrapText:   rule.Alignment.WrapText,
		}
	}

	switch {
	case rule.NumberFormat != "":
		numFmt := rule.NumberFormat
		style.NumFmt = 0
		style.CustomNumFmt = &numFmt
	case keep.Code != "":
		numFmt := keep.Code
		style.NumFmt = 0
		style.CustomNumFmt = &numFmt
	case keep.ID != 0:
		style.NumFmt = keep.ID
		style.CustomNumFmt = nil
	}

	return &style, nil
}
