package report

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"liquidityGuard/internal/model"
)

func ptr(v float64) *float64 { return &v }

func TestSummarizeGroupsWithinWindow(t *testing.T) {
	now := time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC)
	records := []model.AlertRecord{
		{Timestamp: now.Add(-30 * time.Hour), Kind: model.AlertKindRisk, Symbol: "ZEC", Risk: model.RiskCritical},
		{Timestamp: now.Add(-2 * time.Hour), Kind: model.AlertKindRisk, Symbol: "ZEC", Risk: model.RiskCritical},
		{Timestamp: now.Add(-1 * time.Hour), Kind: model.AlertKindRisk, Symbol: "ZEC", Risk: model.RiskRugDetected},
		{Timestamp: now.Add(-3 * time.Hour), Kind: model.AlertKindUnlock, Symbol: "ZEC", Risk: model.RiskRisky},
		{Timestamp: now.Add(-4 * time.Hour), Kind: model.AlertKindRisk, Symbol: "ABC", Risk: model.RiskCritical},
	}

	groups := Summarize(records, now, 24*time.Hour)
	var got []string
	for _, g := range groups {
		got = append(got, g.Symbol+"/"+string(g.Kind)+"/"+g.Last.Risk.String())
	}
	want := []string{"ABC/risk/critical", "ZEC/risk/rug_detected", "ZEC/unlock/risky"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("groups = %v, want %v", got, want)
	}
	if groups[1].Count != 2 {
		t.Fatalf("ZEC risk count = %d, want 2", groups[1].Count)
	}
}

func TestSummarizeLastIsNewest(t *testing.T) {
	now := time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC)
	records := []model.AlertRecord{
		{Timestamp: now.Add(-1 * time.Hour), Kind: model.AlertKindRisk, Symbol: "ZEC", Risk: model.RiskRugDetected},
		{Timestamp: now.Add(-5 * time.Hour), Kind: model.AlertKindRisk, Symbol: "ZEC", Risk: model.RiskCritical},
	}
	groups := Summarize(records, now, 0)
	if len(groups) != 1 || groups[0].Last.Risk != model.RiskRugDetected {
		t.Fatalf("groups = %+v", groups)
	}
}

func TestRender(t *testing.T) {
	now := time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC)
	groups := []Group{{
		Symbol: "ZEC",
		Kind:   model.AlertKindRisk,
		Count:  3,
		Last: model.AlertRecord{
			Timestamp: now.Add(-time.Hour),
			Kind:      model.AlertKindRisk,
			Symbol:    "ZEC",
			Dex:       "uniswap",
			Chain:     "bsc",
			Risk:      model.RiskCritical,
			Liquidity: ptr(45000),
			Ratio:     ptr(0.015),
			Change1h:  ptr(-31.5),
		},
	}}

	var buf bytes.Buffer
	if err := Render(&buf, groups, now, 24*time.Hour); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ZEC [risk]", "Alerts: 3", "Liquidity: $45,000", "Liq/MCap: 1.50%", "5m=+0.0%, 1h=-31.5%, 24h=+0.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, nil, time.Now(), 24*time.Hour); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No alerts in the last 24h0m0s.\n" {
		t.Fatalf("output = %q", buf.String())
	}
}
