// Package stats contains usage aggregation and reporting.
package stats

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/verte-zerg/usageheat/internal/model"
)

// FacilityPeak is the busiest hour of a facility.
type FacilityPeak struct {
	Facility model.Facility
	Hour     int
}

// Insights summarizes where and when usage peaks.
type Insights struct {
	FactCount      int
	PeakHour       int
	PeakDay        model.Day
	PrimeTimeAvg   float64
	OffPeakAvg     float64
	WeekendAvg     float64
	WeekdayAvg     float64
	PrimeTimeBoost float64
	WeekendBoost   float64
	FacilityPeaks  []FacilityPeak
}

type bucketMean struct {
	key  int
	mean float64
}

// ComputeInsights derives peak statistics from the facts matching filter.
// Averages and boosts are rounded to one decimal; boosts are percentages and
// report 0 when the baseline is empty. Facility peaks follow the facility
// view and honor only the tier filter.
func ComputeInsights(facts []model.UsageFact, filter model.FilterState) (Insights, error) {
	if err := filter.Validate(); err != nil {
		return Insights{}, fmt.Errorf("invalid filter: %w", err)
	}
	if err := validateFacts(facts); err != nil {
		return Insights{}, err
	}
	selected := lo.Filter(facts, func(f model.UsageFact, _ int) bool {
		return filter.Matches(f)
	})
	ins := Insights{FactCount: len(selected)}
	if len(selected) == 0 {
		return ins, nil
	}

	ins.PeakHour = peakHour(selected)
	byDay := lo.GroupBy(selected, func(f model.UsageFact) model.Day { return f.Day })
	dayMeans := make([]bucketMean, 0, model.DayCount)
	for _, day := range model.Days() {
		if group, ok := byDay[day]; ok {
			dayMeans = append(dayMeans, bucketMean{key: int(day), mean: meanFloat(group)})
		}
	}
	ins.PeakDay = model.Day(firstMax(dayMeans).key)

	primeFacts, offFacts := lo.Filter(selected, isPrime), lo.Reject(selected, isPrime)
	weekendFacts := lo.Filter(selected, func(f model.UsageFact, _ int) bool { return f.IsWeekend })
	weekdayFacts := lo.Reject(selected, func(f model.UsageFact, _ int) bool { return f.IsWeekend })
	primeAvg, offAvg := meanFloat(primeFacts), meanFloat(offFacts)
	weekendAvg, weekdayAvg := meanFloat(weekendFacts), meanFloat(weekdayFacts)

	ins.PrimeTimeAvg = roundTenth(primeAvg)
	ins.OffPeakAvg = roundTenth(offAvg)
	ins.WeekendAvg = roundTenth(weekendAvg)
	ins.WeekdayAvg = roundTenth(weekdayAvg)
	ins.PrimeTimeBoost = roundTenth(boostPct(primeFacts, offFacts, primeAvg, offAvg))
	ins.WeekendBoost = roundTenth(boostPct(weekendFacts, weekdayFacts, weekendAvg, weekdayAvg))

	tierFacts := lo.Filter(facts, func(f model.UsageFact, _ int) bool {
		return filter.MatchesTier(f.MemberTier)
	})
	byFacility := lo.GroupBy(tierFacts, func(f model.UsageFact) model.Facility { return f.Facility })
	for _, facility := range model.Facilities() {
		group, ok := byFacility[facility]
		if !ok {
			continue
		}
		ins.FacilityPeaks = append(ins.FacilityPeaks, FacilityPeak{Facility: facility, Hour: peakHour(group)})
	}
	return ins, nil
}

func peakHour(facts []model.UsageFact) int {
	byHour := lo.GroupBy(facts, func(f model.UsageFact) int { return f.Hour })
	means := make([]bucketMean, 0, model.HourCount)
	for _, hour := range model.Hours() {
		if group, ok := byHour[hour]; ok {
			means = append(means, bucketMean{key: hour, mean: meanFloat(group)})
		}
	}
	return firstMax(means).key
}

// firstMax keeps the earliest bucket on ties.
func firstMax(buckets []bucketMean) bucketMean {
	return lo.MaxBy(buckets, func(a, b bucketMean) bool { return a.mean > b.mean })
}

func boostPct(subject, baseline []model.UsageFact, subjectAvg, baselineAvg float64) float64 {
	if len(subject) == 0 || len(baseline) == 0 || baselineAvg == 0 {
		return 0
	}
	return (subjectAvg - baselineAvg) / baselineAvg * 100
}

func roundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
