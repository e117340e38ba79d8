// Package pricing converts intrinsic values into buy/pass recommendations
// against an observed or ADP-derived market price.
package pricing

import (
	"math"

	"github.com/tgriffin/draftedge/internal/league"
)

// Curve holds the fitted constants of the ADP price decay A*e^(-B*adp),
// plus the recommendation thresholds for both market regimes.
type Curve struct {
	DecayA float64 // price of the first pick off the board
	DecayB float64 // decay rate per ADP slot

	// ADP at or under which the market is treated as efficient and
	// smaller edges are meaningful.
	EfficientADP float64

	// Edge thresholds (weighted edge, dollars) per regime, ordered
	// STRONG_BUY / BUY / FAIR / SLIGHT_OVERPAY / OVERPAY boundaries.
	Efficient RegimeThresholds
	Standard  RegimeThresholds
}

// RegimeThresholds are the weighted-edge cutoffs for one market regime.
type RegimeThresholds struct {
	StrongBuy float64 // edge >= StrongBuy
	Buy       float64 // edge >= Buy
	Fair      float64 // edge >= -Fair (absolute band around zero)
	SlightPay float64 // edge >= -SlightPay
	Overpay   float64 // edge >= -Overpay, below is AVOID
}

// DefaultCurve returns the constants fitted against historical auction results.
func DefaultCurve() Curve {
	return Curve{
		DecayA:       65,
		DecayB:       0.025,
		EfficientADP: 30,
		Efficient: RegimeThresholds{
			StrongBuy: 6,
			Buy:       3,
			Fair:      2,
			SlightPay: 5,
			Overpay:   10,
		},
		Standard: RegimeThresholds{
			StrongBuy: 10,
			Buy:       5,
			Fair:      3,
			SlightPay: 8,
			Overpay:   15,
		},
	}
}

// MarketPrice returns the observed auction value when a source reported one,
// otherwise the ADP-derived decay price. Players with neither signal price
// at the $1 floor.
func (c Curve) MarketPrice(auctionValue, adp *float64) float64 {
	if auctionValue != nil && *auctionValue > 0 {
		return *auctionValue
	}
	if adp != nil && *adp > 0 {
		price := c.DecayA * math.Exp(-c.DecayB**adp)
		if price < 1 {
			price = 1
		}
		return price
	}
	return 1
}

// Price fills the market fields of a valuation result: market price, edge,
// confidence-weighted edge, and the recommendation tier.
func (c Curve) Price(r *league.ValuationResult, auctionValue *float64) {
	r.MarketPrice = c.MarketPrice(auctionValue, r.ADP)
	r.Edge = float64(r.IntrinsicValue) - r.MarketPrice
	r.WeightedEdge = r.Edge * r.Confidence
	r.Recommendation = c.Recommend(r.WeightedEdge, r.ADP)
}

// Recommend maps a weighted edge onto the six-way tier. Efficient-market
// players (ADP at or under the cutoff) use the tighter threshold set.
func (c Curve) Recommend(weightedEdge float64, adp *float64) league.Recommendation {
	t := c.Standard
	if adp != nil && *adp > 0 && *adp <= c.EfficientADP {
		t = c.Efficient
	}

	switch {
	case weightedEdge >= t.StrongBuy:
		return league.RecStrongBuy
	case weightedEdge >= t.Buy:
		return league.RecBuy
	case weightedEdge >= -t.Fair:
		return league.RecFairValue
	case weightedEdge >= -t.SlightPay:
		return league.RecSlightPay
	case weightedEdge >= -t.Overpay:
		return league.RecOverpay
	default:
		return league.RecAvoid
	}
}
