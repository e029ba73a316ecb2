package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"propdash/internal/core"
)

// labelValue is the (label, value) pair shape chart consumers receive.
type labelValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// templateMoney is the template-facing money formatter. Templates hand over
// whatever numeric type the record carries.
func templateMoney(v any) string {
	switch n := v.(type) {
	case float64:
		return formatMoney(n)
	case core.Amount:
		return formatMoney(float64(n))
	case int:
		return formatMoney(float64(n))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatMoney formats a dollar amount with thousands separators, e.g.
// "$1,500" or "$1,250.50". Whole amounts drop the decimals.
func formatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	cents := int64(v*100 + 0.5)
	whole := cents / 100
	frac := cents % 100

	s := groupThousands(strconv.FormatInt(whole, 10))
	if frac != 0 {
		s += fmt.Sprintf(".%02d", frac)
	}
	if neg {
		return "-$" + s
	}
	return "$" + s
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// barWidth scales a value against the series maximum to a rounded percent,
// clamped so small non-zero bars stay visible.
func barWidth(value, max float64) int {
	if max <= 0 || value <= 0 {
		return 0
	}
	width := int(value/max*100 + 0.5)
	if width < 2 {
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("JSON encode failed", "error", err)
	}
}

// queryParam returns a trimmed query parameter with a fallback default.
func queryParam(r *http.Request, key, def string) string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	return v
}
