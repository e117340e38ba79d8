package valuation

import (
	"math"
	"math/rand"
	"sort"

	"github.com/tgriffin/draftedge/internal/league"
)

const seasonWeeks = 17

// simInput is one player's parameters for the weekly-value simulation.
type simInput struct {
	AdjustedPoints float64
	Position       league.Position
	ByeWeek        int
	Age            *float64
	StartProb      float64
}

// simulateWeeklyValue runs the Monte Carlo season simulation and returns the
// median season value across trials. The median is deliberately used over the
// mean to stay robust to the skew injuries introduce.
//
// Each trial draws a per-week score from a normal distribution
// (mean adjusted/17, sd mean*volatility) via a Box-Muller transform, clamps
// it to [0, 3*mean], weights it by start probability, then flips an injury
// Bernoulli whose rate grows 1.5%/year past age 26. An injured trial accrues
// no further weeks.
func (e *Engine) simulateWeeklyValue(in simInput, rng *rand.Rand) float64 {
	if in.AdjustedPoints <= 0 || e.tables.Trials <= 0 {
		return 0
	}

	weekMean := in.AdjustedPoints / seasonWeeks
	volatility := e.tables.PositionVolatility[in.Position]
	sd := weekMean * volatility
	injuryRate := e.injuryRate(in.Position, in.Age)

	totals := make([]float64, e.tables.Trials)
	for t := 0; t < e.tables.Trials; t++ {
		var season float64
		for week := 1; week <= seasonWeeks; week++ {
			if week == in.ByeWeek {
				continue
			}

			score := weekMean + sd*boxMuller(rng)
			if score < 0 {
				score = 0
			}
			if limit := 3 * weekMean; score > limit {
				score = limit
			}
			season += score * in.StartProb

			if rng.Float64() < injuryRate {
				break
			}
		}
		totals[t] = season
	}

	sort.Float64s(totals)
	mid := len(totals) / 2
	if len(totals)%2 == 1 {
		return totals[mid]
	}
	return (totals[mid-1] + totals[mid]) / 2
}

func (e *Engine) injuryRate(pos league.Position, age *float64) float64 {
	rate := e.tables.InjuryBaseRate[pos]
	if age != nil && *age > e.tables.InjuryAgeThreshold {
		rate += (*age - e.tables.InjuryAgeThreshold) * e.tables.InjuryAgeRate
	}
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return rate
}

// boxMuller draws one standard normal variate.
func boxMuller(rng *rand.Rand) float64 {
	u1 := rng.Float64()
	for u1 == 0 {
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
