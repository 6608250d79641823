package timezone

import (
	"backoffice/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	mu          sync.RWMutex
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	name := cfg.App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Jakarta', 'UTC', 'America/New_York'")

		SetLocation(time.UTC)

		return
	}

	SetLocation(loc)
	log.Info().
		Str("timezone", name).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// SetLocation replaces the application timezone. Tests use it to pin calendar boundaries.
func SetLocation(loc *time.Location) {
	mu.Lock()
	defer mu.Unlock()

	appLocation = loc
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	mu.RLock()
	defer mu.RUnlock()

	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Date builds local midnight of the given calendar day in the application timezone.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, GetLocation())
}

// Today returns local midnight of the current day.
func Today() time.Time {
	now := Now()

	return Date(now.Year(), now.Month(), now.Day())
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
