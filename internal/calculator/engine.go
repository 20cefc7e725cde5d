package calculator

import "MarketScope/internal/model"

// Indicator windows.
const (
	MAShort = 20
	MAMid   = 50
	MALong  = 200

	RSIPeriod       = 14
	RSISignalPeriod = 6

	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9

	BollingerPeriod = 18
	BollingerK      = 2.0

	StochPeriod  = 10
	StochKSmooth = 6
	StochDSmooth = 6

	IchimokuConversion = 9
	IchimokuBase       = 26
	IchimokuSpanB      = 52
)

// Compute derives the full indicator battery for a series. It has no side
// effects and returns a fresh frame on every call; short input simply leaves
// late-stage fields null.
func Compute(series *model.Series) *model.IndicatorFrame {
	bars := series.Bars
	closes := extractCloses(bars)

	ma20 := SMASeries(closes, MAShort)
	ma50 := SMASeries(closes, MAMid)
	ma200 := SMASeries(closes, MALong)

	rsi := RSISeries(closes, RSIPeriod)
	rsiSignal := rollingMean(rsi, RSISignalPeriod)

	macd := MACD(closes, MACDFast, MACDSlow, MACDSignal)
	bb := Bollinger(closes, BollingerPeriod, BollingerK)
	stochK, stochD := SlowStochastic(bars, StochPeriod, StochKSmooth, StochDSmooth)
	ichi := Ichimoku(bars, IchimokuConversion, IchimokuBase, IchimokuSpanB, model.IchimokuShift)

	points := make([]model.IndicatorPoint, len(bars))
	for i, b := range bars {
		points[i] = model.IndicatorPoint{
			OHLCV: b,

			MA20:  ma20[i],
			MA50:  ma50[i],
			MA200: ma200[i],

			RSI:       rsi[i],
			RSISignal: rsiSignal[i],

			MACD:       macd.MACD[i],
			MACDSignal: macd.Signal[i],
			MACDHist:   macd.Hist[i],

			BBUpper:  bb.Upper[i],
			BBMiddle: bb.Middle[i],
			BBLower:  bb.Lower[i],

			StochK: stochK[i],
			StochD: stochD[i],

			IchimokuConversion: ichi.Conversion[i],
			IchimokuBase:       ichi.Base[i],
			IchimokuSpanA:      ichi.SpanA[i],
			IchimokuSpanB:      ichi.SpanB[i],
			IchimokuLagging:    ichi.Lagging[i],
		}
	}

	return &model.IndicatorFrame{
		Symbol: series.Symbol,
		Market: series.Market,
		Points: points,
	}
}
