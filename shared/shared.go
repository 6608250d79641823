package shared

import (
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

// CheckboxChecked reads an HTML checkbox, which posts "on" when ticked and nothing otherwise.
func CheckboxChecked(value string) bool {
	if value == "on" {
		return true
	}

	checked := ConvertStringToBool(value)

	return checked != nil && *checked
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TrimmedOrNil returns nil for blank input so optional JSON fields are omitted.
func TrimmedOrNil(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

// Deref returns the pointed-to string or "".
func Deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}

// CompactStrings drops blank entries and duplicates, keeping first-seen order.
func CompactStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		if _, ok := seen[value]; ok {
			continue
		}

		seen[value] = struct{}{}
		out = append(out, value)
	}

	return out
}
