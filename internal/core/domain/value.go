package domain

import (
	"fmt"
	"strconv"
	"time"
)

// FormatValue renders a field value as text. Times use RFC 3339 and floats
// drop trailing zeros.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
