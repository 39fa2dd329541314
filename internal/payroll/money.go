package payroll

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const pesoSign = "₱"

// ParseAmount is the only place loosely typed input becomes money. Anything
// missing, blank, non-numeric or non-finite is zero; it never fails.
func ParseAmount(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case decimal.NullDecimal:
		if !x.Valid {
			return decimal.Zero
		}
		return x.Decimal
	case int:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt32(x)
	case int64:
		return decimal.NewFromInt(x)
	case uint:
		return decimal.NewFromUint64(uint64(x))
	case uint64:
		return decimal.NewFromUint64(x)
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case bool:
		if x {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	case json.Number:
		return fromString(x.String())
	case []byte:
		return fromString(string(x))
	case string:
		return fromString(x)
	case *string:
		if x == nil {
			return decimal.Zero
		}
		return fromString(*x)
	default:
		return decimal.Zero
	}
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func fromString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatPeso renders an amount as "₱1,234.50". Input goes through ParseAmount,
// so anything non-numeric prints as "₱0.00".
func FormatPeso(v any) string {
	d := ParseAmount(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	frac := "00"
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		frac = fixed[i+1:]
	}
	whole := humanize.BigComma(d.Truncate(0).BigInt())
	return pesoSign + sign + whole + "." + frac
}
