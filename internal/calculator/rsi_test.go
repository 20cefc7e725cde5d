package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSISeries_Monotonic(t *testing.T) {
	up := RSISeries(linear(60, 100, 1), 14)
	down := RSISeries(linear(60, 200, -1), 14)

	for i := 0; i < 13; i++ {
		assert.False(t, up[i].Valid)
		assert.False(t, down[i].Valid)
	}
	require.True(t, up[59].Valid)
	require.True(t, down[59].Valid)
	assert.InDelta(t, 100.0, up[59].Float64, 1e-9)
	assert.InDelta(t, 0.0, down[59].Float64, 1e-9)
}

func TestRSISeries_KnownValues(t *testing.T) {
	// period 2: gains/losses smoothed as (prev*(n-1)+x)/n
	// i=1: +1 -> avgGain 0.5, avgLoss 0 -> 100
	// i=2: -1 -> avgGain 0.25, avgLoss 0.5 -> 100 - 100/1.5
	rsi := RSISeries([]float64{1, 2, 1}, 2)

	assert.False(t, rsi[0].Valid)
	assert.InDelta(t, 100.0, rsi[1].Float64, 1e-9)
	assert.InDelta(t, 100.0-100.0/1.5, rsi[2].Float64, 1e-9)
}

func TestRSISeries_FlatPriceIs100(t *testing.T) {
	rsi := RSISeries(linear(20, 50, 0), 14)
	assert.InDelta(t, 100.0, rsi[19].Float64, 1e-9)
}

func TestRSISeries_Bounded(t *testing.T) {
	s := wavySeries(200)
	for _, v := range RSISeries(s.Closes(), 14) {
		if v.Valid {
			assert.GreaterOrEqual(t, v.Float64, 0.0)
			assert.LessOrEqual(t, v.Float64, 100.0)
		}
	}
}

func TestRSISeries_BadPeriod(t *testing.T) {
	for _, v := range RSISeries(linear(10, 1, 1), 0) {
		assert.False(t, v.Valid)
	}
}
