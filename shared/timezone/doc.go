// Package timezone keeps every date in the application timezone (APP_TIMEZONE, an IANA
// name such as "Europe/Paris"; UTC when unset or unknown).
//
// Stays, convention validity windows and process stamps are compared by calendar day,
// so dates coming from requests must be parsed here rather than with time.Parse:
//
//	arrival, err := timezone.Parse(constant.DayFormat, "2025-03-14")
//	now := timezone.Now()
//	label := timezone.Format(now, constant.DayFormat)
package timezone
