// Package stats contains usage aggregation and reporting.
package stats

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/verte-zerg/usageheat/internal/model"
)

type gridKey struct {
	day  model.Day
	hour int
}

// Aggregate derives every summary view from the fact table and a filter.
// The facility view ignores the facility filter and the tier view ignores the
// tier filter, so each always enumerates its full dimension.
func Aggregate(facts []model.UsageFact, filter model.FilterState) (model.Views, error) {
	if err := filter.Validate(); err != nil {
		return model.Views{}, fmt.Errorf("invalid filter: %w", err)
	}
	if err := validateFacts(facts); err != nil {
		return model.Views{}, err
	}

	selected := lo.Filter(facts, func(f model.UsageFact, _ int) bool {
		return filter.Matches(f)
	})
	byTier := lo.Filter(facts, func(f model.UsageFact, _ int) bool {
		return filter.MatchesTier(f.MemberTier)
	})
	byFacility := lo.Filter(facts, func(f model.UsageFact, _ int) bool {
		return filter.MatchesFacility(f.Facility)
	})

	var views model.Views
	views.Hourly = hourlySummaries(selected)
	views.Daily = dailySummaries(selected)
	views.Facilities = facilitySummaries(byTier)
	views.Tiers = tierSummaries(byFacility)
	views.Grid = gridCells(selected)
	return views, nil
}

// FilterFacts returns the facts admitted by both filters, in input order.
func FilterFacts(facts []model.UsageFact, filter model.FilterState) ([]model.UsageFact, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return lo.Filter(facts, func(f model.UsageFact, _ int) bool {
		return filter.Matches(f)
	}), nil
}

func validateFacts(facts []model.UsageFact) error {
	for i, f := range facts {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("invalid fact %d: %w", i, err)
		}
	}
	return nil
}

func hourlySummaries(facts []model.UsageFact) [model.HourCount]model.HourlySummary {
	groups := lo.GroupBy(facts, func(f model.UsageFact) int { return f.Hour })
	var out [model.HourCount]model.HourlySummary
	for i, hour := range model.Hours() {
		out[i] = model.HourlySummary{
			Hour:        hour,
			Label:       model.HourLabel(hour),
			Usage:       meanUsage(groups[hour]),
			IsPrimeTime: model.IsPrimeHour(hour),
		}
	}
	return out
}

func dailySummaries(facts []model.UsageFact) [model.DayCount]model.DailySummary {
	groups := lo.GroupBy(facts, func(f model.UsageFact) model.Day { return f.Day })
	var out [model.DayCount]model.DailySummary
	for i, day := range model.Days() {
		out[i] = model.DailySummary{
			Day:       day,
			Usage:     meanUsage(groups[day]),
			IsWeekend: day.IsWeekend(),
		}
	}
	return out
}

func facilitySummaries(facts []model.UsageFact) [model.FacilityCount]model.FacilitySummary {
	groups := lo.GroupBy(facts, func(f model.UsageFact) model.Facility { return f.Facility })
	var out [model.FacilityCount]model.FacilitySummary
	for i, facility := range model.Facilities() {
		group := groups[facility]
		out[i] = model.FacilitySummary{
			Facility:  facility,
			AvgUsage:  meanUsage(group),
			PrimeTime: meanUsage(lo.Filter(group, isPrime)),
			OffPeak:   meanUsage(lo.Reject(group, isPrime)),
		}
	}
	return out
}

func tierSummaries(facts []model.UsageFact) [model.TierCount]model.TierSummary {
	groups := lo.GroupBy(facts, func(f model.UsageFact) model.Tier { return f.MemberTier })
	var out [model.TierCount]model.TierSummary
	for i, tier := range model.Tiers() {
		group := groups[tier]
		out[i] = model.TierSummary{
			Tier:           tier,
			AvgUsage:       meanUsage(group),
			PrimeTimeUsage: meanUsage(lo.Filter(group, isPrime)),
			MemberCount:    tier.MemberCount(),
		}
	}
	return out
}

func gridCells(facts []model.UsageFact) [model.GridCellCount]model.GridCell {
	groups := lo.GroupBy(facts, func(f model.UsageFact) gridKey {
		return gridKey{day: f.Day, hour: f.Hour}
	})
	var out [model.GridCellCount]model.GridCell
	for _, day := range model.Days() {
		for _, hour := range model.Hours() {
			out[model.GridIndex(day, hour)] = model.GridCell{
				Day:         day,
				Hour:        hour,
				Usage:       meanUsage(groups[gridKey{day: day, hour: hour}]),
				IsPrimeTime: model.IsPrimeHour(hour),
			}
		}
	}
	return out
}

func isPrime(f model.UsageFact, _ int) bool {
	return f.IsPrimeTime
}

// meanUsage rounds the mean half up. An empty bucket reports 0.
func meanUsage(facts []model.UsageFact) int {
	return model.RoundUsage(meanFloat(facts))
}

func meanFloat(facts []model.UsageFact) float64 {
	sum := lo.SumBy(facts, func(f model.UsageFact) int { return f.Usage })
	return float64(sum) / float64(max(len(facts), 1))
}
