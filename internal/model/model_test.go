package model

import (
	"errors"
	"testing"
)

func TestIsPrimeHour(t *testing.T) {
	prime := map[int]bool{7: true, 8: true, 9: true, 10: true, 18: true, 19: true, 20: true, 21: true}
	for _, h := range Hours() {
		if got := IsPrimeHour(h); got != prime[h] {
			t.Fatalf("hour %d: expected prime=%v, got %v", h, prime[h], got)
		}
	}
}

func TestHoursCoverOpeningWindow(t *testing.T) {
	hours := Hours()
	if len(hours) != HourCount {
		t.Fatalf("expected %d hours, got %d", HourCount, len(hours))
	}
	if hours[0] != 6 || hours[len(hours)-1] != 22 {
		t.Fatalf("unexpected hour range: %d..%d", hours[0], hours[len(hours)-1])
	}
}

func TestDayNames(t *testing.T) {
	if Saturday.Short() != "Sat" || Monday.Name() != "Monday" {
		t.Fatalf("unexpected names: %s %s", Saturday.Short(), Monday.Name())
	}
	for _, d := range Days() {
		if d.IsWeekend() != (int(d) >= 5) {
			t.Fatalf("unexpected weekend flag for %s", d)
		}
	}
	if Day(7).Valid() {
		t.Fatalf("expected day 7 to be invalid")
	}
}

func TestParseFacility(t *testing.T) {
	got, err := ParseFacility("  player lab ")
	if err != nil {
		t.Fatalf("parse facility: %v", err)
	}
	if got != PlayerLab {
		t.Fatalf("expected %q, got %q", PlayerLab, got)
	}
	if got, _ := ParseFacility("ALL"); got != FacilityAll {
		t.Fatalf("expected all, got %q", got)
	}
	if _, err := ParseFacility("Tennis Courts"); !errors.Is(err, ErrUnknownFacility) {
		t.Fatalf("expected ErrUnknownFacility, got %v", err)
	}
}

func TestParseTier(t *testing.T) {
	got, err := ParseTier("all-access")
	if err != nil {
		t.Fatalf("parse tier: %v", err)
	}
	if got != AllAccess {
		t.Fatalf("expected %q, got %q", AllAccess, got)
	}
	if _, err := ParseTier("Gold"); !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("expected ErrUnknownTier, got %v", err)
	}
}

func TestParseTimeframe(t *testing.T) {
	if got, _ := ParseTimeframe(""); got != TimeframeWeek {
		t.Fatalf("expected week default, got %q", got)
	}
	if got, _ := ParseTimeframe("Quarter"); got != TimeframeQuarter {
		t.Fatalf("expected quarter, got %q", got)
	}
	if _, err := ParseTimeframe("year"); !errors.Is(err, ErrUnknownTimeframe) {
		t.Fatalf("expected ErrUnknownTimeframe, got %v", err)
	}
}

func TestTierConstants(t *testing.T) {
	want := map[Tier][2]float64{
		VentureNorthClub: {1.4, 147},
		AllAccess:        {1.1, 743},
		FamilyPlan:       {0.9, 312},
		BasicMember:      {0.7, 587},
	}
	for tier, w := range want {
		if tier.Multiplier() != w[0] {
			t.Fatalf("%s: expected multiplier %.1f, got %.1f", tier, w[0], tier.Multiplier())
		}
		if tier.MemberCount() != int(w[1]) {
			t.Fatalf("%s: expected %d members, got %d", tier, int(w[1]), tier.MemberCount())
		}
	}
}

func TestFilterMatches(t *testing.T) {
	fact := UsageFact{Day: Monday, Hour: 8, Facility: PlayerLab, MemberTier: FamilyPlan}
	cases := []struct {
		filter FilterState
		want   bool
	}{
		{DefaultFilter(), true},
		{FilterState{Facility: PlayerLab, MemberTier: TierAll}, true},
		{FilterState{Facility: SoccerFields, MemberTier: TierAll}, false},
		{FilterState{Facility: FacilityAll, MemberTier: FamilyPlan}, true},
		{FilterState{Facility: PlayerLab, MemberTier: BasicMember}, false},
	}
	for i, c := range cases {
		if got := c.filter.Matches(fact); got != c.want {
			t.Fatalf("case %d: expected %v, got %v", i, c.want, got)
		}
	}
}

func TestFilterValidate(t *testing.T) {
	if err := DefaultFilter().Validate(); err != nil {
		t.Fatalf("default filter should be valid: %v", err)
	}
	if err := (FilterState{Facility: "Pool", MemberTier: TierAll}).Validate(); !errors.Is(err, ErrUnknownFacility) {
		t.Fatalf("expected ErrUnknownFacility, got %v", err)
	}
	if err := (FilterState{Facility: FacilityAll, MemberTier: "Gold"}).Validate(); !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("expected ErrUnknownTier, got %v", err)
	}
	if err := (FilterState{Facility: FacilityAll, MemberTier: TierAll, Timeframe: "decade"}).Validate(); !errors.Is(err, ErrUnknownTimeframe) {
		t.Fatalf("expected ErrUnknownTimeframe, got %v", err)
	}
}

func TestViewsCell(t *testing.T) {
	var v Views
	v.Grid[GridIndex(Sunday, 22)] = GridCell{Day: Sunday, Hour: 22, Usage: 42}
	cell, err := v.Cell(Sunday, 22)
	if err != nil {
		t.Fatalf("cell: %v", err)
	}
	if cell.Usage != 42 {
		t.Fatalf("expected usage 42, got %d", cell.Usage)
	}
	if GridIndex(Sunday, 22) != GridCellCount-1 {
		t.Fatalf("expected last grid index, got %d", GridIndex(Sunday, 22))
	}
	if _, err := v.Cell(Monday, 5); !errors.Is(err, ErrUnknownHour) {
		t.Fatalf("expected ErrUnknownHour, got %v", err)
	}
}

func TestRoundUsage(t *testing.T) {
	cases := map[float64]int{2.5: 3, 3.5: 4, 2.4999: 2, 99.5: 100, 5: 5, 0: 0}
	for in, want := range cases {
		if got := RoundUsage(in); got != want {
			t.Fatalf("RoundUsage(%v): expected %d, got %d", in, want, got)
		}
	}
}
