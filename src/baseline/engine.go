package baseline

import (
	"sort"

	"walletengine/src/model"
	"walletengine/src/pricing"
)

// The engine turns two series of minute bars (reference crypto and one
// equity) into per-session baseline ratio statistics.

// SessionBars holds a day of bars split by trading session. Bars outside
// both sessions (overnight, pre-market) are discarded.
type SessionBars struct {
	Core     []model.Bar
	Extended []model.Bar
}

// SplitIntoSessions classifies bars by their ET wall-clock minute.
func SplitIntoSessions(bars []model.Bar) SessionBars {
	var out SessionBars
	for _, bar := range bars {
		session, ok := pricing.SessionOfBar(bar.Timestamp)
		if !ok {
			continue
		}
		if session == model.SessionExtended {
			out.Extended = append(out.Extended, bar)
		} else {
			out.Core = append(out.Core, bar)
		}
	}
	return out
}

// Bars returns the bars for the given session.
func (s SessionBars) Bars(session model.Session) []model.Bar {
	if session == model.SessionExtended {
		return s.Extended
	}
	return s.Core
}

// AlignedPoint is one minute where both series have a usable bar.
type AlignedPoint struct {
	Ratio        float64
	RefClose     float64
	RefVolume    float64
	SymbolClose  float64
	SymbolVolume float64
}

// Align joins the two series on exact millisecond timestamps. Minutes where
// either close is missing or non-positive are dropped.
func Align(refBars, symbolBars []model.Bar) []AlignedPoint {
	bySymbolTS := make(map[int64]model.Bar, len(symbolBars))
	for _, bar := range symbolBars {
		bySymbolTS[bar.Timestamp.UnixMilli()] = bar
	}

	var points []AlignedPoint
	for _, ref := range refBars {
		sym, ok := bySymbolTS[ref.Timestamp.UnixMilli()]
		if !ok {
			continue
		}
		if ref.Close <= 0 || sym.Close <= 0 {
			continue
		}
		points = append(points, AlignedPoint{
			Ratio:        ref.Close / sym.Close,
			RefClose:     ref.Close,
			RefVolume:    ref.Volume,
			SymbolClose:  sym.Close,
			SymbolVolume: sym.Volume,
		})
	}
	return points
}

// Compute evaluates one baseline method over the aligned points.
// ok is false when the method has nothing to work with (no points, or zero
// total volume for the volume-based methods).
func Compute(method model.Method, points []AlignedPoint) (float64, bool) {
	if len(points) == 0 {
		return 0, false
	}

	switch method {
	case model.MethodEqualMean:
		return equalMean(points), true
	case model.MethodMedian:
		return median(points), true
	case model.MethodVWAPRatio:
		return vwapRatio(points)
	case model.MethodVolWeighted:
		return volWeighted(points)
	case model.MethodWinsorized:
		return winsorized(points), true
	default:
		return 0, false
	}
}

func equalMean(points []AlignedPoint) float64 {
	sum := 0.0
	for _, p := range points {
		sum += p.Ratio
	}
	return sum / float64(len(points))
}

func median(points []AlignedPoint) float64 {
	ratios := sortedRatios(points)
	n := len(ratios)
	if n%2 == 1 {
		return ratios[n/2]
	}
	return (ratios[n/2-1] + ratios[n/2]) / 2
}

// vwapRatio is the ratio of the two series' VWAPs, not the mean of the
// per-minute ratios.
func vwapRatio(points []AlignedPoint) (float64, bool) {
	var refNotional, refVolume, symNotional, symVolume float64
	for _, p := range points {
		refNotional += p.RefClose * p.RefVolume
		refVolume += p.RefVolume
		symNotional += p.SymbolClose * p.SymbolVolume
		symVolume += p.SymbolVolume
	}
	if refVolume <= 0 || symVolume <= 0 {
		return 0, false
	}
	refVWAP := refNotional / refVolume
	symVWAP := symNotional / symVolume
	if symVWAP <= 0 {
		return 0, false
	}
	return refVWAP / symVWAP, true
}

// volWeighted weights each minute's ratio by the equity's volume that minute.
func volWeighted(points []AlignedPoint) (float64, bool) {
	var weighted, volume float64
	for _, p := range points {
		weighted += p.Ratio * p.SymbolVolume
		volume += p.SymbolVolume
	}
	if volume <= 0 {
		return 0, false
	}
	return weighted / volume, true
}

// winsorized drops the lowest and highest 5% of ratios (by index, after
// sorting) and averages the rest.
func winsorized(points []AlignedPoint) float64 {
	ratios := sortedRatios(points)
	trim := int(float64(len(ratios)) * 0.05)

	kept := ratios[trim : len(ratios)-trim]
	sum := 0.0
	for _, r := range kept {
		sum += r
	}
	return sum / float64(len(kept))
}

func sortedRatios(points []AlignedPoint) []float64 {
	ratios := make([]float64, len(points))
	for i, p := range points {
		ratios[i] = p.Ratio
	}
	sort.Float64s(ratios)
	return ratios
}
