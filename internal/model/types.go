// Package model defines shared data structures.
package model

import (
	"fmt"
	"math"
)

// UsageFact is one generated usage score for a (day, hour, facility, tier) combination.
type UsageFact struct {
	Day         Day
	Hour        int
	Facility    Facility
	MemberTier  Tier
	Usage       int
	IsPrimeTime bool
	IsWeekend   bool
}

// FactCount is the size of a complete fact table.
const FactCount = DayCount * HourCount * FacilityCount * TierCount

// GridCellCount is the number of (day, hour) pairs.
const GridCellCount = DayCount * HourCount

// HourlySummary is the mean usage for one hour of the day.
type HourlySummary struct {
	Hour        int
	Label       string
	Usage       int
	IsPrimeTime bool
}

// PrimeTimeLabel returns the display category of the hour.
func (s HourlySummary) PrimeTimeLabel() string {
	if s.IsPrimeTime {
		return "Prime Time"
	}
	return "Off-Peak"
}

// DailySummary is the mean usage for one weekday.
type DailySummary struct {
	Day       Day
	Usage     int
	IsWeekend bool
}

// WeekendLabel returns the display category of the day.
func (s DailySummary) WeekendLabel() string {
	if s.IsWeekend {
		return "Weekend"
	}
	return "Weekday"
}

// FacilitySummary splits a facility's usage into prime and off-peak means.
type FacilitySummary struct {
	Facility  Facility
	AvgUsage  int
	PrimeTime int
	OffPeak   int
}

// TierSummary describes a member tier's usage.
type TierSummary struct {
	Tier           Tier
	AvgUsage       int
	PrimeTimeUsage int
	MemberCount    int
}

// GridCell is the mean usage for one (day, hour) pair.
type GridCell struct {
	Day         Day
	Hour        int
	Usage       int
	IsPrimeTime bool
}

// Views holds every aggregate derived from a fact table and a filter.
type Views struct {
	Hourly     [HourCount]HourlySummary
	Daily      [DayCount]DailySummary
	Facilities [FacilityCount]FacilitySummary
	Tiers      [TierCount]TierSummary
	Grid       [GridCellCount]GridCell
}

// Cell returns the grid cell for a day and hour.
func (v *Views) Cell(day Day, hour int) (GridCell, error) {
	if !day.Valid() {
		return GridCell{}, fmt.Errorf("%w: %d", ErrUnknownDay, int(day))
	}
	if !ValidHour(hour) {
		return GridCell{}, fmt.Errorf("%w: %d", ErrUnknownHour, hour)
	}
	return v.Grid[GridIndex(day, hour)], nil
}

// GridIndex returns the day-major index of a (day, hour) pair.
func GridIndex(day Day, hour int) int {
	return int(day)*HourCount + HourIndex(hour)
}

// RoundUsage rounds a usage value half up to a whole percent.
func RoundUsage(v float64) int {
	return int(math.Floor(v + 0.5))
}
