package stats

import (
	"testing"

	"github.com/verte-zerg/usageheat/internal/generator"
	"github.com/verte-zerg/usageheat/internal/model"
)

func TestComputeInsightsPeaksAndBoosts(t *testing.T) {
	facts := []model.UsageFact{
		fact(model.Monday, 7, model.SoccerFields, model.VentureNorthClub, 80),
		fact(model.Monday, 12, model.SoccerFields, model.VentureNorthClub, 40),
		fact(model.Saturday, 12, model.SoccerFields, model.VentureNorthClub, 60),
	}
	ins, err := ComputeInsights(facts, allFilter())
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if ins.FactCount != 3 {
		t.Fatalf("expected 3 facts, got %d", ins.FactCount)
	}
	if ins.PeakHour != 7 {
		t.Fatalf("expected peak hour 7, got %d", ins.PeakHour)
	}
	if ins.PeakDay != model.Monday {
		t.Fatalf("expected tie to resolve to Monday, got %s", ins.PeakDay)
	}
	if ins.PrimeTimeAvg != 80 || ins.OffPeakAvg != 50 || ins.PrimeTimeBoost != 60 {
		t.Fatalf("unexpected prime time stats: %+v", ins)
	}
	if ins.WeekendAvg != 60 || ins.WeekdayAvg != 60 || ins.WeekendBoost != 0 {
		t.Fatalf("unexpected weekend stats: %+v", ins)
	}
	if len(ins.FacilityPeaks) != 1 || ins.FacilityPeaks[0].Facility != model.SoccerFields || ins.FacilityPeaks[0].Hour != 7 {
		t.Fatalf("unexpected facility peaks: %+v", ins.FacilityPeaks)
	}
}

func TestComputeInsightsEmptySelection(t *testing.T) {
	facts := []model.UsageFact{fact(model.Monday, 7, model.SoccerFields, model.VentureNorthClub, 80)}
	ins, err := ComputeInsights(facts, model.FilterState{Facility: model.PlayerLab, MemberTier: model.TierAll})
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if ins.FactCount != 0 || ins.PrimeTimeBoost != 0 || ins.FacilityPeaks != nil {
		t.Fatalf("expected zero insights, got %+v", ins)
	}
}

func TestComputeInsightsMissingBaseline(t *testing.T) {
	facts := []model.UsageFact{fact(model.Sunday, 19, model.PlayerLab, model.FamilyPlan, 70)}
	ins, err := ComputeInsights(facts, allFilter())
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if ins.PrimeTimeBoost != 0 || ins.WeekendBoost != 0 {
		t.Fatalf("expected zero boosts without a baseline, got %+v", ins)
	}
	if ins.PeakDay != model.Sunday || ins.PeakHour != 19 {
		t.Fatalf("unexpected peaks: %+v", ins)
	}
}

func TestComputeInsightsNoiseless(t *testing.T) {
	facts := generator.NewSeeded(1, 0).Generate()
	ins, err := ComputeInsights(facts, allFilter())
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if ins.FactCount != model.FactCount {
		t.Fatalf("expected %d facts, got %d", model.FactCount, ins.FactCount)
	}
	if !model.IsPrimeHour(ins.PeakHour) {
		t.Fatalf("expected peak hour in prime time, got %d", ins.PeakHour)
	}
	if !ins.PeakDay.IsWeekend() {
		t.Fatalf("expected weekend peak day, got %s", ins.PeakDay)
	}
	if ins.PrimeTimeBoost <= 0 || ins.WeekendBoost <= 0 {
		t.Fatalf("expected positive boosts, got %+v", ins)
	}
	if len(ins.FacilityPeaks) != model.FacilityCount {
		t.Fatalf("expected %d facility peaks, got %d", model.FacilityCount, len(ins.FacilityPeaks))
	}
	for _, p := range ins.FacilityPeaks {
		if p.Facility == model.FitnessCenter && p.Hour != 7 {
			t.Fatalf("expected Fitness Center to peak at 7, got %d", p.Hour)
		}
		if p.Facility == model.BasketballCourts && p.Hour != 18 {
			t.Fatalf("expected Basketball Courts to peak at 18, got %d", p.Hour)
		}
	}
}

func TestComputeInsightsRejectsUnknownFilter(t *testing.T) {
	if _, err := ComputeInsights(nil, model.FilterState{Facility: "Pool", MemberTier: model.TierAll}); err == nil {
		t.Fatalf("expected error for unknown facility")
	}
}
