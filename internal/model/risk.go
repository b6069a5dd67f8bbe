package model

import "strings"

// RiskLevel classifies the liquidity health of a pool.
type RiskLevel string

const (
	RiskSafe        RiskLevel = "safe"
	RiskModerate    RiskLevel = "moderate"
	RiskRisky       RiskLevel = "risky"
	RiskCritical    RiskLevel = "critical"
	RiskRugDetected RiskLevel = "rug_detected"
)

// Severity orders risk levels for escalation; rug_detected ranks above everything.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskSafe:
		return 0
	case RiskModerate:
		return 1
	case RiskRisky:
		return 2
	case RiskCritical:
		return 3
	case RiskRugDetected:
		return 4
	default:
		return -1
	}
}

// Alerting reports whether the level warrants a risk alert.
func (r RiskLevel) Alerting() bool {
	return r == RiskCritical || r == RiskRugDetected
}

func (r RiskLevel) String() string {
	return string(r)
}

// MaxRisk returns the more severe of a and b.
func MaxRisk(a, b RiskLevel) RiskLevel {
	if b.Severity() > a.Severity() {
		return b
	}
	return a
}

// ParseRiskLevel accepts the canonical names plus the legacy "rug" spelling, case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe":
		return RiskSafe, true
	case "moderate":
		return RiskModerate, true
	case "risky":
		return RiskRisky, true
	case "critical":
		return RiskCritical, true
	case "rug", "rug_detected":
		return RiskRugDetected, true
	default:
		return "", false
	}
}
