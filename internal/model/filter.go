package model

import "fmt"

// FilterState selects the subset of facts to aggregate.
type FilterState struct {
	Facility   Facility
	MemberTier Tier
	// Timeframe is carried for the presentation layer and never narrows facts.
	Timeframe Timeframe
}

// DefaultFilter selects every fact.
func DefaultFilter() FilterState {
	return FilterState{
		Facility:   FacilityAll,
		MemberTier: TierAll,
		Timeframe:  TimeframeWeek,
	}
}

// Validate rejects values outside the enumerations.
func (f FilterState) Validate() error {
	if f.Facility != FacilityAll && !f.Facility.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownFacility, string(f.Facility))
	}
	if f.MemberTier != TierAll && !f.MemberTier.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownTier, string(f.MemberTier))
	}
	if f.Timeframe != "" {
		if _, err := ParseTimeframe(string(f.Timeframe)); err != nil {
			return err
		}
	}
	return nil
}

// MatchesFacility reports whether the facility filter admits facility.
func (f FilterState) MatchesFacility(facility Facility) bool {
	return f.Facility == FacilityAll || f.Facility == facility
}

// MatchesTier reports whether the tier filter admits tier.
func (f FilterState) MatchesTier(tier Tier) bool {
	return f.MemberTier == TierAll || f.MemberTier == tier
}

// Matches reports whether a fact is included by both filters.
func (f FilterState) Matches(fact UsageFact) bool {
	return f.MatchesFacility(fact.Facility) && f.MatchesTier(fact.MemberTier)
}

// Validate checks that a fact's keys are inside the enumerations.
func (u UsageFact) Validate() error {
	if !u.Day.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDay, int(u.Day))
	}
	if !ValidHour(u.Hour) {
		return fmt.Errorf("%w: %d", ErrUnknownHour, u.Hour)
	}
	if !u.Facility.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownFacility, string(u.Facility))
	}
	if !u.MemberTier.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownTier, string(u.MemberTier))
	}
	return nil
}
