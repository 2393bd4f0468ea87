package documents

import (
	"math"
	"time"
)

// ExpiresAt returns uploadedAt plus the expiration window of t.
// ok is false when documents of type t never expire.
func ExpiresAt(uploadedAt time.Time, t Type) (expiresAt time.Time, ok bool, err error) {
	cfg, err := Resolve(t)
	if err != nil {
		return time.Time{}, false, err
	}
	exp, ok := expiresAtFor(uploadedAt, cfg)
	return exp, ok, nil
}

// IsExpired reports whether a document of type t uploaded at uploadedAt is past
// its expiration date at now. Types without a window never expire.
func IsExpired(uploadedAt time.Time, t Type, now time.Time) (bool, error) {
	cfg, err := Resolve(t)
	if err != nil {
		return false, err
	}
	return isExpiredFor(uploadedAt, cfg, now), nil
}

// DaysUntilExpiry returns whole days left before expiry, negative once expired.
// ok is false for types that never expire.
func DaysUntilExpiry(uploadedAt time.Time, t Type, now time.Time) (remaining int, ok bool, err error) {
	cfg, err := Resolve(t)
	if err != nil {
		return 0, false, err
	}
	exp, ok := expiresAtFor(uploadedAt, cfg)
	if !ok {
		return 0, false, nil
	}
	hours := exp.Sub(now).Hours()
	return int(math.Floor(hours / 24)), true, nil
}

func expiresAtFor(uploadedAt time.Time, cfg TypeConfig) (time.Time, bool) {
	if cfg.ExpiresAfterDays == nil {
		return time.Time{}, false
	}
	return uploadedAt.AddDate(0, 0, *cfg.ExpiresAfterDays), true
}

func isExpiredFor(uploadedAt time.Time, cfg TypeConfig, now time.Time) bool {
	exp, ok := expiresAtFor(uploadedAt, cfg)
	return ok && now.After(exp)
}
