package services

import (
	"fmt"
	"time"

	"github.com/ioremap/wpmigrate/internal/core/domain"
	"github.com/ioremap/wpmigrate/internal/logger"
)

// ParsePostDateStrict parses raw using domain.PostDateLayout in UTC.
// Fractional seconds, missing zero padding and trailing text are rejected.
func ParsePostDateStrict(raw string) (time.Time, error) {
	if len(raw) != len(domain.PostDateLayout) {
		return time.Time{}, fmt.Errorf("%w: date %q does not match %q", domain.ErrInvalidInput, raw, domain.PostDateLayout)
	}
	return time.ParseInLocation(domain.PostDateLayout, raw, time.UTC)
}

// ParsePostDate parses raw, falling back to domain.SentinelTimestamp.
// Malformed dates are logged with the post title and never fail the run.
func ParsePostDate(raw, title string) time.Time {
	ts, err := ParsePostDateStrict(raw)
	if err != nil {
		logger.Warn("could not parse date: %s: '%s': %v", raw, title, err)
		return domain.SentinelTimestamp
	}
	return ts
}
