package monitor

import (
	"time"

	"liquidityGuard/internal/model"
)

// CheckUnlock reports an alert-worthy lock state for pool at now. Pools without an expiry,
// or locked for at least another week, produce no signal.
func CheckUnlock(pool model.Pool, now time.Time) (model.UnlockSignal, bool) {
	switch model.LockStatusAt(pool.LockExpiry, now) {
	case model.LockUnlocked:
		return model.UnlockSignal{Status: model.LockUnlocked, Risk: model.RiskCritical}, true
	case model.LockWarning:
		remaining := pool.LockExpiry.Sub(now)
		return model.UnlockSignal{
			Status:   model.LockWarning,
			DaysLeft: int(remaining / (24 * time.Hour)),
			Risk:     model.RiskRisky,
		}, true
	default:
		return model.UnlockSignal{}, false
	}
}
