package model

import "strings"

// Flag is the latest risk state published for a symbol.
type Flag struct {
	Risk      string `json:"risk"`
	UpdatedAt string `json:"updated_at"`
}

// FlagMap maps symbol to its flag.
type FlagMap map[string]Flag

// Blocked reports whether trading on symbol should be blocked: critical or rug risk.
func (m FlagMap) Blocked(symbol string) bool {
	flag, ok := m[symbol]
	if !ok {
		return false
	}
	risk := strings.ToUpper(flag.Risk)
	return strings.Contains(risk, "RUG") || strings.Contains(risk, "CRITICAL")
}
