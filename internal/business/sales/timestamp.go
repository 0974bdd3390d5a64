package sales

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateFromOrderID derives the UTC calendar date (YYYY-MM-DD) encoded in the
// last "-" segment of an order ID as milliseconds since the epoch.
// It returns false when that segment is not a plain run of ASCII digits.
func DateFromOrderID(id string) (string, bool) {
	segment := id
	if i := strings.LastIndexByte(id, '-'); i >= 0 {
		segment = id[i+1:]
	}
	if !isDigits(segment) {
		return "", false
	}
	ms, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return "", false
	}
	t := time.UnixMilli(ms).UTC()
	if t.Year() > 9999 {
		return "", false
	}
	return t.Format(dateLayout), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
