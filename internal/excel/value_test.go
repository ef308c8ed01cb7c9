package excel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestValue_String(t *testing.T) {
	assert.Equal(t, "", Value{}.String())
	assert.Equal(t, "12", NumberValue(12).String())
	assert.Equal(t, "1234.5", NumberValue(1234.5).String())
	assert.Equal(t, "-0.25", NumberValue(-0.25).String())
	assert.Equal(t, "Widget", TextValue("Widget").String())
	assert.Equal(t, "TRUE", BoolValue(true).String())
	assert.Equal(t, "FALSE", BoolValue(false).String())
	assert.Equal(t, "=SUM(B4:B6)", FormulaValue("=SUM(B4:B6)").String())
	assert.Equal(t, "=A1*2", FormulaValue("A1*2").String())

	date := DateValue(45411, time.Date(2024, 4, 29, 0, 0, 0, 0, time.UTC), NumberFormat{ID: 14})
	assert.Equal(t, "2024-04-29 00:00:00", date.String())
	assert.Equal(t, "2024-04-29 13:05:09", DateValue(45411.5452, time.Date(2024, 4, 29, 13, 5, 9, 0, time.UTC), NumberFormat{ID: 22}).String())
}

func TestIsDateFormat(t *testing.T) {
	for _, id := range []int{14, 17, 20, 22, 27, 36, 45, 47, 50, 58} {
		assert.True(t, isDateFormat(NumberFormat{ID: id}), "built-in %d", id)
	}
	for _, id := range []int{0, 1, 2, 4, 9, 10, 11, 37, 49} {
		assert.False(t, isDateFormat(NumberFormat{ID: id}), "built-in %d", id)
	}

	assert.True(t, isDateFormat(NumberFormat{Code: "yyyy/mm/dd"}))
	assert.True(t, isDateFormat(NumberFormat{Code: "[$-409]d-mmm-yy;@"}))
	assert.True(t, isDateFormat(NumberFormat{Code: "hh:mm:ss"}))
	assert.False(t, isDateFormat(NumberFormat{Code: "General"}))
	assert.False(t, isDateFormat(NumberFormat{Code: "#,##0.00_ "}))
	assert.False(t, isDateFormat(NumberFormat{Code: "[Red]0.00"}))
	assert.False(t, isDateFormat(NumberFormat{Code: `0.0 "days"`}))
	assert.False(t, isDateFormat(NumberFormat{Code: `0\h`}))
}

func TestClassifyValue(t *testing.T) {
	assert.True(t, classifyValue(excelize.CellTypeUnset, "").IsEmpty())
	assert.True(t, classifyValue(excelize.CellTypeSharedString, "").IsEmpty())

	assert.Equal(t, NumberValue(42), classifyValue(excelize.CellTypeUnset, "42"))
	assert.Equal(t, NumberValue(3.5), classifyValue(excelize.CellTypeNumber, "3.5"))
	assert.Equal(t, TextValue("abc"), classifyValue(excelize.CellTypeUnset, "abc"))

	// Text that looks numeric stays text when stored as a string
	assert.Equal(t, TextValue("007"), classifyValue(excelize.CellTypeSharedString, "007"))
	assert.Equal(t, TextValue("12"), classifyValue(excelize.CellTypeInlineString, "12"))

	assert.Equal(t, BoolValue(true), classifyValue(excelize.CellTypeBool, "1"))
	assert.Equal(t, BoolValue(true), classifyValue(excelize.CellTypeBool, "TRUE"))
	assert.Equal(t, BoolValue(false), classifyValue(excelize.CellTypeBool, "0"))

	assert.Equal(t, TextValue("#DIV/0!"), classifyValue(excelize.CellTypeError, "#DIV/0!"))
	assert.Equal(t, TextValue("2024-04-29T00:00:00Z"), classifyValue(excelize.CellTypeDate, "2024-04-29T00:00:00Z"))
}
