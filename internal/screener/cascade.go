package screener

import (
	"context"
	"fmt"
	"math"

	"github.com/guregu/null/v6"

	"MarketScope/internal/calculator"
	"MarketScope/internal/model"
)

// evaluate runs the cascade for one symbol. It returns (nil, nil) when a
// filter rejects the symbol and a *CandidateError when the symbol could not
// be evaluated at all.
func (s *Screener) evaluate(ctx context.Context, entry model.UniverseEntry) (*model.Candidate, error) {
	fail := func(stage string, err error) (*model.Candidate, error) {
		return nil, &CandidateError{Symbol: entry.Symbol, Stage: stage, Err: err}
	}

	// 1. cheap window
	cheap, err := s.loader.Load(ctx, s.feed, entry.Symbol, model.Period1M)
	if err != nil {
		return fail(StageFetch, err)
	}
	if cheap.Len() < MinCheapBars {
		return fail(StageFetch, fmt.Errorf("%w: %d bars, need %d", ErrInsufficientHistory, cheap.Len(), MinCheapBars))
	}

	// 2. new high
	high, err := calculator.RecentHigh(cheap.Bars, NewHighWindow)
	if err != nil {
		return fail(StageNewHigh, err)
	}
	if cheap.Latest().Close < s.rules.NewHighRatio*high {
		return nil, nil
	}

	// 3. volume surge
	var volumeChange null.Float
	if s.rules.VolumeSurge {
		pct, ok, err := volumeSurge(cheap.Bars)
		if err != nil {
			return fail(StageVolume, err)
		}
		if !ok {
			return nil, nil
		}
		volumeChange = null.FloatFrom(pct)
	}

	// 4. trend
	rich, err := s.loader.Load(ctx, s.feed, entry.Symbol, model.Period3M)
	if err != nil {
		return fail(StageTrend, err)
	}
	if s.rules.Trend && rich.Len() < TrendPeriod {
		// long exchange closures can leave a 3mo window short of TrendPeriod sessions
		if padded, err := s.loader.Load(ctx, s.feed, entry.Symbol, TrendPaddedPeriod); err == nil && padded.Len() > rich.Len() {
			rich = padded
		}
	}
	if s.rules.Trend {
		if rich.Len() < TrendPeriod {
			return fail(StageTrend, fmt.Errorf("%w: %d bars, need %d", ErrInsufficientHistory, rich.Len(), TrendPeriod))
		}
		sma, err := calculator.CalculateSMA(rich.Closes(), TrendPeriod)
		if err != nil {
			return fail(StageTrend, err)
		}
		if rich.Latest().Close <= sma {
			return nil, nil
		}
	}

	frame := calculator.Compute(rich)

	// 5. lagging-span breakout
	if s.rules.LaggingBreakout {
		j := frame.LastLaggingIndex()
		if j < 0 {
			return fail(StageLagging, fmt.Errorf("%w: %d bars, need %d", ErrInsufficientHistory, frame.Len(), model.IchimokuShift+1))
		}
		p := frame.Points[j]
		if !p.BBUpper.Valid || p.IchimokuLagging.Float64 <= p.BBUpper.Float64 {
			return nil, nil
		}
	}

	// 6. full pass
	if frame.Len() < 2 {
		return fail(StageIndicators, ErrInsufficientHistory)
	}
	latest := frame.Latest()
	prev := frame.Points[frame.Len()-2]

	cand := &model.Candidate{
		Name:            entry.Name,
		Symbol:          entry.Symbol,
		Frame:           frame,
		Latest:          latest,
		VolumeChangePct: volumeChange,
		EPSChangePct:    s.epsChange(ctx, entry.Symbol),
	}
	if pct, err := calculator.PercentChange(prev.Close, latest.Close); err == nil {
		cand.PriceChangePct = null.FloatFrom(pct)
	}
	cand.RankValue = rankValue(cand, s.rules.RankKey)
	return cand, nil
}

// volumeSurge compares the mean volume of the last SurgeRecentBars bars with
// the SurgePriorBars bars before them. It reports the percent change and
// whether recent volume exceeds SurgeFactor times the prior mean.
func volumeSurge(bars []model.OHLCV) (float64, bool, error) {
	n := len(bars)
	if n < SurgeRecentBars+SurgePriorBars {
		return 0, false, fmt.Errorf("%w: %d bars, need %d", ErrInsufficientHistory, n, SurgeRecentBars+SurgePriorBars)
	}
	recent, err := calculator.MeanVolume(bars, n-SurgeRecentBars, n)
	if err != nil {
		return 0, false, err
	}
	prior, err := calculator.MeanVolume(bars, n-SurgeRecentBars-SurgePriorBars, n-SurgeRecentBars)
	if err != nil {
		return 0, false, err
	}
	if prior == 0 {
		return 0, false, nil
	}
	pct, err := calculator.PercentChange(prior, recent)
	if err != nil {
		return 0, false, err
	}
	return pct, recent > SurgeFactor*prior, nil
}

func rankValue(c *model.Candidate, key model.RankKey) float64 {
	var v null.Float
	switch key {
	case model.RankVolumeChange:
		v = c.VolumeChangePct
	case model.RankPriceChange:
		v = c.PriceChangePct
	case model.RankRSI:
		v = c.Latest.RSI
	}
	if !v.Valid || math.IsNaN(v.Float64) {
		return 0
	}
	return v.Float64
}
