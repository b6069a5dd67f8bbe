package model

import "time"

// LockStatus describes a pool's liquidity lock relative to now.
type LockStatus string

const (
	LockNone     LockStatus = "none"
	LockLocked   LockStatus = "locked"
	LockWarning  LockStatus = "warning"
	LockUnlocked LockStatus = "unlocked"
)

// LockWarningPeriod is how far ahead of expiry a lock starts warning.
const LockWarningPeriod = 7 * 24 * time.Hour

// LockStatusAt derives the lock status of expiry at now.
func LockStatusAt(expiry *time.Time, now time.Time) LockStatus {
	if expiry == nil {
		return LockNone
	}
	remaining := expiry.Sub(now)
	switch {
	case remaining < 0:
		return LockUnlocked
	case remaining < LockWarningPeriod:
		return LockWarning
	default:
		return LockLocked
	}
}

// UnlockSignal is an alert-worthy lock state.
type UnlockSignal struct {
	Status   LockStatus
	DaysLeft int
	Risk     RiskLevel
}
