package timezone

import (
	"time"

	"solireserve/config"

	"github.com/rs/zerolog/log"
)

const hoursPerDay = 24

var appLocation *time.Location

func init() {
	appLocation = load(config.Get().App.Timezone)
}

func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Please use IANA names like 'Europe/Paris' or 'America/Cayenne'")

		return time.UTC
	}

	log.Info().Str("timezone", name).Msg("Application timezone initialized")

	return loc
}

// GetLocation returns the application timezone, UTC when it could not be loaded.
func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone.
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse parses a time string in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

// Format formats a time in the application timezone.
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Day returns the calendar date of t in the application timezone as midnight UTC,
// so that day arithmetic is not affected by daylight saving changes.
func Day(t time.Time) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from a to b in the application timezone.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / hoursPerDay)
}
