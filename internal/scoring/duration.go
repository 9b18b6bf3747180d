package scoring

import (
	"strconv"
	"strings"
)

// ParseDurationLabel converts a tracking option label such as "15 mins",
// "1 hour" or "1.5 hours" into minutes. The first numeric token is scaled
// by the unit that follows it: hours multiply by 60, anything else is read
// as minutes. Unparseable labels yield 0, which downstream code treats the
// same as no practice.
func ParseDurationLabel(label string) int {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(label)))
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		unit := 1.0
		if i+1 < len(fields) && strings.HasPrefix(fields[i+1], "h") {
			unit = 60
		}
		m := n * unit
		if m < 0 {
			return 0
		}
		return int(m + 0.5)
	}
	return 0
}
