// Package generator builds the synthetic usage fact table.
package generator

import (
	"math"
	"math/rand"
	"time"

	"github.com/verte-zerg/usageheat/internal/model"
)

const (
	baseUsage       = 20
	primeTimeBoost  = 40
	weekendBoost    = 20
	basketballBoost = 25
	fitnessBoost    = 30
	playerLabBoost  = 35

	minUsage = 5.0
	maxUsage = 100.0
)

// DefaultNoise is the half-width of the uniform noise added to each score.
const DefaultNoise = 10.0

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Generator produces usage facts with bounded random noise.
type Generator struct {
	rnd   Source
	noise float64
}

// New returns a Generator seeded with the current time.
func New(noise float64) *Generator {
	return NewSeeded(time.Now().UnixNano(), noise)
}

// NewSeeded returns a Generator whose noise is reproducible for a seed.
func NewSeeded(seed int64, noise float64) *Generator {
	return NewWithSource(rand.New(rand.NewSource(seed)), noise)
}

// NewWithSource returns a Generator drawing noise from src.
func NewWithSource(src Source, noise float64) *Generator {
	if noise < 0 {
		noise = 0
	}
	return &Generator{rnd: src, noise: noise}
}

// Generate returns one fact per (day, hour, facility, tier) combination,
// ordered by day, then hour, then facility, then tier.
func (g *Generator) Generate() []model.UsageFact {
	facts := make([]model.UsageFact, 0, model.FactCount)
	for _, day := range model.Days() {
		for _, hour := range model.Hours() {
			for _, facility := range model.Facilities() {
				for _, tier := range model.Tiers() {
					facts = append(facts, model.UsageFact{
						Day:         day,
						Hour:        hour,
						Facility:    facility,
						MemberTier:  tier,
						Usage:       Score(day, hour, facility, tier, g.nextNoise()),
						IsPrimeTime: model.IsPrimeHour(hour),
						IsWeekend:   day.IsWeekend(),
					})
				}
			}
		}
	}
	return facts
}

func (g *Generator) nextNoise() float64 {
	if g.noise == 0 {
		return 0
	}
	return (g.rnd.Float64() - 0.5) * 2 * g.noise
}

// Score computes the usage percentage for one combination.
// Additive boosts come before the tier multiplier, noise after it, and the
// clamp last. The noiseless part is computed in integer tenths so exact
// halves round up.
func Score(day model.Day, hour int, facility model.Facility, tier model.Tier, noise float64) int {
	points := baseUsage
	if model.IsPrimeHour(hour) {
		points += primeTimeBoost
	}
	if day.IsWeekend() {
		points += weekendBoost
	}
	points += facilityBoost(hour, facility, tier)
	tenths := float64(points*tier.MultiplierTenths()) + noise*10
	tenths = math.Max(minUsage*10, math.Min(maxUsage*10, tenths))
	return int(math.Floor((tenths + 5) / 10))
}

func facilityBoost(hour int, facility model.Facility, tier model.Tier) int {
	var boost int
	if facility == model.BasketballCourts && hour >= 18 && hour <= 21 {
		boost += basketballBoost
	}
	if facility == model.FitnessCenter && hour >= 6 && hour <= 9 {
		boost += fitnessBoost
	}
	if facility == model.PlayerLab && tier == model.VentureNorthClub {
		boost += playerLabBoost
	}
	return boost
}
