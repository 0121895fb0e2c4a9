package brief

import (
	"fmt"
	"strconv"
	"time"
)

// fmtUSD renders dollar amounts at the precision the brief uses:
// trillions to two decimals, billions to one, millions to none,
// everything smaller comma-grouped.
func fmtUSD(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("$%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.0fM", v/1e6)
	default:
		return "$" + groupThousands(int64(v))
	}
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// formatTimestamp renders the generation time in US Pacific time for
// display. If the zone database is unavailable it falls back to UTC.
func formatTimestamp(now time.Time) string {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		return now.UTC().Format("Monday, January 2, 2006 — 3:04 PM") + " UTC"
	}
	local := now.In(loc)
	return local.Format("Monday, January 2, 2006 — 3:04 PM ") + local.Format("MST")
}
