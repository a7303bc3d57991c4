package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for values outside the fixed enumerations.
var (
	ErrUnknownDay       = errors.New("unknown day")
	ErrUnknownHour      = errors.New("unknown hour")
	ErrUnknownFacility  = errors.New("unknown facility")
	ErrUnknownTier      = errors.New("unknown member tier")
	ErrUnknownTimeframe = errors.New("unknown timeframe")
)

// Day is a weekday index, Monday = 0.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DayCount is the number of days in the week.
const DayCount = 7

var dayNames = [DayCount]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Days returns all days in week order.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Valid reports whether d is one of the seven days.
func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Name returns the full day name.
func (d Day) Name() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// Short returns the three-letter day name.
func (d Day) Short() string {
	return d.Name()[:3]
}

func (d Day) String() string {
	return d.Name()
}

// IsWeekend reports whether d is Saturday or Sunday.
func (d Day) IsWeekend() bool {
	return d >= Saturday
}

// Opening hours, inclusive.
const (
	MinHour   = 6
	MaxHour   = 22
	HourCount = MaxHour - MinHour + 1
)

// Hours returns every opening hour in order.
func Hours() []int {
	hours := make([]int, 0, HourCount)
	for h := MinHour; h <= MaxHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// ValidHour reports whether h is an opening hour.
func ValidHour(h int) bool {
	return h >= MinHour && h <= MaxHour
}

// HourIndex returns the zero-based position of an opening hour.
func HourIndex(h int) int {
	return h - MinHour
}

// HourLabel formats an hour as "18:00".
func HourLabel(h int) string {
	return fmt.Sprintf("%d:00", h)
}

// IsPrimeHour reports whether h falls in the morning or evening prime window.
func IsPrimeHour(h int) bool {
	return (h >= 18 && h <= 21) || (h >= 7 && h <= 10)
}

// Facility names a bookable facility.
type Facility string

const (
	FacilityAll      Facility = "all"
	BasketballCourts Facility = "Basketball Courts"
	SoccerFields     Facility = "Soccer Fields"
	VolleyballCourts Facility = "Volleyball Courts"
	PlayerLab        Facility = "Player Lab"
	FitnessCenter    Facility = "Fitness Center"
)

// FacilityCount is the number of facilities.
const FacilityCount = 5

// Facilities returns the facilities in display order.
func Facilities() []Facility {
	return []Facility{BasketballCourts, SoccerFields, VolleyballCourts, PlayerLab, FitnessCenter}
}

// Valid reports whether f is one of the known facilities. "all" is not a facility.
func (f Facility) Valid() bool {
	return f.Index() >= 0
}

// Index returns the display position of f, or -1.
func (f Facility) Index() int {
	for i, known := range Facilities() {
		if f == known {
			return i
		}
	}
	return -1
}

// ParseFacility resolves a facility name or "all".
func ParseFacility(s string) (Facility, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(FacilityAll)) {
		return FacilityAll, nil
	}
	for _, f := range Facilities() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFacility, s)
}

// Tier names a membership tier.
type Tier string

const (
	TierAll          Tier = "all"
	VentureNorthClub Tier = "Venture North Club"
	AllAccess        Tier = "All-Access"
	FamilyPlan       Tier = "Family Plan"
	BasicMember      Tier = "Basic Member"
)

// TierCount is the number of member tiers.
const TierCount = 4

// Tiers returns the tiers from top to fourth.
func Tiers() []Tier {
	return []Tier{VentureNorthClub, AllAccess, FamilyPlan, BasicMember}
}

// Valid reports whether t is one of the known tiers. "all" is not a tier.
func (t Tier) Valid() bool {
	return t.Index() >= 0
}

// Index returns the rank of t (0 = top tier), or -1.
func (t Tier) Index() int {
	for i, known := range Tiers() {
		if t == known {
			return i
		}
	}
	return -1
}

// Multiplier is applied to a tier's usage score after additive boosts.
func (t Tier) Multiplier() float64 {
	return float64(t.MultiplierTenths()) / 10
}

// MultiplierTenths is Multiplier in integer tenths.
func (t Tier) MultiplierTenths() int {
	switch t {
	case VentureNorthClub:
		return 14
	case AllAccess:
		return 11
	case FamilyPlan:
		return 9
	case BasicMember:
		return 7
	default:
		return 0
	}
}

// MemberCount is the reference head count for a tier.
func (t Tier) MemberCount() int {
	switch t {
	case VentureNorthClub:
		return 147
	case AllAccess:
		return 743
	case FamilyPlan:
		return 312
	case BasicMember:
		return 587
	default:
		return 0
	}
}

// ParseTier resolves a tier name or "all".
func ParseTier(s string) (Tier, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(TierAll)) {
		return TierAll, nil
	}
	for _, t := range Tiers() {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownTier, s)
}

// Timeframe is the reporting period selector. It does not narrow aggregation.
type Timeframe string

const (
	TimeframeWeek    Timeframe = "week"
	TimeframeMonth   Timeframe = "month"
	TimeframeQuarter Timeframe = "quarter"
)

// Timeframes returns the selectable timeframes.
func Timeframes() []Timeframe {
	return []Timeframe{TimeframeWeek, TimeframeMonth, TimeframeQuarter}
}

// Label returns the selector label.
func (t Timeframe) Label() string {
	switch t {
	case TimeframeMonth:
		return "This Month"
	case TimeframeQuarter:
		return "This Quarter"
	default:
		return "This Week"
	}
}

// ParseTimeframe resolves a timeframe; empty means week.
func ParseTimeframe(s string) (Timeframe, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TimeframeWeek, nil
	}
	for _, t := range Timeframes() {
		if s == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownTimeframe, s)
}
