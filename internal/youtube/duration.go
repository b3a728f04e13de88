package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

var isoDurationRegex = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration converts a Data API duration such as "PT1H2M3S" to
// seconds.
func ParseISODuration(value string) (int, error) {
	match := isoDurationRegex.FindStringSubmatch(value)
	if match == nil || value == "P" || value == "PT" {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q", value)
	}

	multipliers := []int{86400, 3600, 60, 1}
	total := 0
	for i, m := range multipliers {
		if match[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(match[i+1])
		if err != nil {
			return 0, fmt.Errorf("invalid ISO-8601 duration %q: %w", value, err)
		}
		total += n * m
	}
	return total, nil
}
