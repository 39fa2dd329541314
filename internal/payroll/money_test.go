package payroll

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "0"},
		{"blank", "", "0"},
		{"spaces", "   ", "0"},
		{"text", "abc", "0"},
		{"nan text", "nan", "0"},
		{"plain string", " 1500.25 ", "1500.25"},
		{"negative string", "-20", "-20"},
		{"exponent", "1e3", "1000"},
		{"int", 7500, "7500"},
		{"int64", int64(42), "42"},
		{"float", 0.1, "0.1"},
		{"float nan", math.NaN(), "0"},
		{"float inf", math.Inf(1), "0"},
		{"json number", json.Number("12.5"), "12.5"},
		{"bytes", []byte("3"), "3"},
		{"decimal", decimal.RequireFromString("9.99"), "9.99"},
		{"null decimal", decimal.NullDecimal{}, "0"},
		{"valid null decimal", decimal.NewNullDecimal(decimal.NewFromInt(5)), "5"},
		{"bool true", true, "1"},
		{"struct", struct{}{}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.in)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestFormatPeso(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{1234.5, "₱1,234.50"},
		{0, "₱0.00"},
		{"abc", "₱0.00"},
		{nil, "₱0.00"},
		{"1000000", "₱1,000,000.00"},
		{999.999, "₱1,000.00"},
		{12.345, "₱12.35"},
		{-500, "₱-500.00"},
		{decimal.RequireFromString("123456789012.34"), "₱123,456,789,012.34"},
		{math.NaN(), "₱0.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPeso(tt.in), "input %v", tt.in)
	}
}
