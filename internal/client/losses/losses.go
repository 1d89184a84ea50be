// Package losses computes loss totals over a siniestro's loss lines.
//
// The figure shown to users as "estimated loss" is the net total: recovered
// amounts are excluded, since a recovered loss is not an actual loss. All
// functions are pure and treat a nil slice as an empty sequence.
package losses

import "github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"

// GrossTotal sums every amount regardless of recovery state.
func GrossTotal(ll []models.LossDetail) float64 {
	var total float64
	for _, l := range ll {
		total += l.Amount
	}
	return total
}

// RecoveredTotal sums the amounts of recovered losses.
func RecoveredTotal(ll []models.LossDetail) float64 {
	var total float64
	for _, l := range ll {
		if l.Recovered {
			total += l.Amount
		}
	}
	return total
}

// NetLossTotal sums the amounts of unrecovered losses. This is the figure
// displayed as the total/estimated loss.
func NetLossTotal(ll []models.LossDetail) float64 {
	var total float64
	for _, l := range ll {
		if !l.Recovered {
			total += l.Amount
		}
	}
	return total
}

// RecoveryRatio returns recovered/gross, or 0 when the gross total is 0.
func RecoveryRatio(ll []models.LossDetail) float64 {
	gross := GrossTotal(ll)
	if gross == 0 {
		return 0
	}
	return RecoveredTotal(ll) / gross
}

// Summary bundles all four figures for display.
type Summary struct {
	Gross         float64
	Recovered     float64
	Net           float64
	RecoveryRatio float64
}

// Summarize computes a Summary in one pass over the helpers above.
func Summarize(ll []models.LossDetail) Summary {
	return Summary{
		Gross:         GrossTotal(ll),
		Recovered:     RecoveredTotal(ll),
		Net:           NetLossTotal(ll),
		RecoveryRatio: RecoveryRatio(ll),
	}
}
