package stats

import (
	"errors"
	"testing"

	"github.com/verte-zerg/usageheat/internal/generator"
	"github.com/verte-zerg/usageheat/internal/model"
)

func TestBuildReport(t *testing.T) {
	facts := generator.NewSeeded(3, generator.DefaultNoise).Generate()
	filter := model.FilterState{Facility: model.PlayerLab, MemberTier: model.TierAll, Timeframe: model.TimeframeMonth}
	report, err := BuildReport(facts, filter)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Filter != filter {
		t.Fatalf("expected filter to be carried, got %+v", report.Filter)
	}
	if report.Insights.FactCount != model.DayCount*model.HourCount*model.TierCount {
		t.Fatalf("unexpected fact count %d", report.Insights.FactCount)
	}
	views, err := Aggregate(facts, filter)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if report.Views != views {
		t.Fatalf("expected report views to match Aggregate")
	}
}

func TestBuildReportRejectsUnknownFilter(t *testing.T) {
	_, err := BuildReport(nil, model.FilterState{Facility: "Ice Rink", MemberTier: model.TierAll})
	if !errors.Is(err, model.ErrUnknownFacility) {
		t.Fatalf("expected ErrUnknownFacility, got %v", err)
	}
}
