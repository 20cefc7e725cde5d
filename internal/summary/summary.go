package summary

import (
	"fmt"

	"github.com/guregu/null/v6"

	"MarketScope/internal/calculator"
	"MarketScope/internal/model"
)

// RSI bands.
const (
	Overbought = 70.0
	Oversold   = 30.0
)

// Summarize reads the latest bar of a frame into a TechnicalSummary.
// Every line degrades to null/unknown when its inputs are missing.
func Summarize(frame *model.IndicatorFrame) model.TechnicalSummary {
	s := model.TechnicalSummary{RSIState: model.RSIUnknown, Lagging: model.LaggingUnavailable}
	if frame == nil || frame.Len() == 0 {
		return s
	}
	latest := frame.Latest()
	s.Close = latest.Close

	if frame.Len() >= 2 {
		prev := frame.Points[frame.Len()-2]
		if pct, err := calculator.PercentChange(prev.Close, latest.Close); err == nil {
			s.ChangePct = null.FloatFrom(pct)
		}
	}

	var note string
	s.RSI, s.RSIState, note = readRSI(latest)
	s.Notes = appendNote(s.Notes, note)
	s.MACDUp, note = readMACD(latest)
	s.Notes = appendNote(s.Notes, note)
	s.AboveMA20, note = readMA20(latest)
	s.Notes = appendNote(s.Notes, note)
	s.Lagging, note = readLagging(frame)
	s.Notes = appendNote(s.Notes, note)
	s.Bullish, note = readCloud(frame)
	s.Notes = appendNote(s.Notes, note)
	return s
}

// readRSI classifies the latest RSI into overbought (>70), oversold (<30) or neutral.
func readRSI(p model.IndicatorPoint) (null.Float, model.RSIState, string) {
	if !p.RSI.Valid {
		return null.Float{}, model.RSIUnknown, ""
	}
	rsi := p.RSI.Float64
	switch {
	case rsi > Overbought:
		return p.RSI, model.RSIOverbought, fmt.Sprintf("RSI %.1f overbought", rsi)
	case rsi < Oversold:
		return p.RSI, model.RSIOversold, fmt.Sprintf("RSI %.1f oversold", rsi)
	default:
		return p.RSI, model.RSINeutral, fmt.Sprintf("RSI %.1f neutral", rsi)
	}
}

func readMACD(p model.IndicatorPoint) (null.Bool, string) {
	if !p.MACD.Valid || !p.MACDSignal.Valid {
		return null.Bool{}, ""
	}
	if p.MACD.Float64 > p.MACDSignal.Float64 {
		return null.BoolFrom(true), "MACD above signal (rising)"
	}
	return null.BoolFrom(false), "MACD below signal (falling)"
}

func readMA20(p model.IndicatorPoint) (null.Bool, string) {
	if !p.MA20.Valid {
		return null.Bool{}, ""
	}
	if p.Close > p.MA20.Float64 {
		return null.BoolFrom(true), "price above MA20"
	}
	return null.BoolFrom(false), "price below MA20"
}

// readLagging places today's close (the lagging span at its last defined
// index) against the bands and the price of that bar.
func readLagging(frame *model.IndicatorFrame) (model.LaggingRelation, string) {
	j := frame.LastLaggingIndex()
	if j < 0 {
		return model.LaggingUnavailable, ""
	}
	p := frame.Points[j]
	lag := p.IchimokuLagging.Float64

	switch {
	case p.BBUpper.Valid && lag > p.BBUpper.Float64:
		return model.LaggingAboveUpper, "lagging span broke above the upper band"
	case p.BBLower.Valid && lag < p.BBLower.Float64:
		return model.LaggingBelowLower, "lagging span fell below the lower band"
	case lag > p.Close:
		return model.LaggingAbovePrice, "lagging span above price"
	case lag < p.Close:
		return model.LaggingBelowPrice, "lagging span below price"
	default:
		return model.LaggingEqualPrice, "lagging span at price"
	}
}

func readCloud(frame *model.IndicatorFrame) (null.Bool, string) {
	segments := calculator.Cloud(frame)
	if len(segments) == 0 {
		return null.Bool{}, ""
	}
	if segments[len(segments)-1].Bullish {
		return null.BoolFrom(true), "bullish cloud"
	}
	return null.BoolFrom(false), "bearish cloud"
}

func appendNote(notes []string, note string) []string {
	if note == "" {
		return notes
	}
	return append(notes, note)
}
