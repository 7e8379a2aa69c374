package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

// TestDailyReturns は終値系列からリターン系列への変換を検証します。
func TestDailyReturns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		closes   []float64
		expected []float64
	}{
		{
			name:     "empty input produces empty output",
			closes:   nil,
			expected: nil,
		},
		{
			name:     "single price produces empty output",
			closes:   []float64{100},
			expected: nil,
		},
		{
			name:     "two prices produce one return",
			closes:   []float64{100, 102},
			expected: []float64{0.02},
		},
		{
			name:     "rising and falling prices",
			closes:   []float64{100, 102, 101, 105},
			expected: []float64{0.02, -1.0 / 102.0, 4.0 / 101.0},
		},
		{
			name:     "interval with zero prior close is skipped",
			closes:   []float64{100, 0, 50, 100},
			expected: []float64{-1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DailyReturns(tt.closes)
			require.Len(t, got, len(tt.expected))
			for i := range tt.expected {
				assert.InDelta(t, tt.expected[i], got[i], delta)
			}
		})
	}
}

// TestDailyReturns_Length は正の終値N点からちょうどN-1個のリターンが得られ、
// 各リターンが隣接する終値から再計算した値と一致することを検証します。
func TestDailyReturns_Length(t *testing.T) {
	t.Parallel()

	closes := []float64{1000, 1010, 1005, 1020, 1015, 1030, 1028}
	got := DailyReturns(closes)
	require.Len(t, got, len(closes)-1)
	for i, r := range got {
		want := (closes[i+1] - closes[i]) / closes[i]
		assert.InDelta(t, want, r, delta)
	}
}

// TestAlignCloses は取引日による系列の突き合わせを検証します。
func TestAlignCloses(t *testing.T) {
	t.Parallel()

	t.Run("unmatched dates are dropped in order", func(t *testing.T) {
		t.Parallel()
		stock := []PriceSample{
			{Date: "2024-01-04", Close: 100},
			{Date: "2024-01-05", Close: 102},
			{Date: "2024-01-09", Close: 101},
		}
		index := []PriceSample{
			{Date: "2024-01-04", Close: 1000},
			{Date: "2024-01-09", Close: 1010},
			{Date: "2024-01-10", Close: 1005},
		}

		sc, ic := AlignCloses(stock, index)

		require.Len(t, sc, 2)
		require.Len(t, ic, 2)
		assert.Equal(t, []float64{100, 101}, sc)
		assert.Equal(t, []float64{1000, 1010}, ic)
	})

	t.Run("no overlap yields empty series", func(t *testing.T) {
		t.Parallel()
		stock := []PriceSample{{Date: "2024-01-04", Close: 100}}
		index := []PriceSample{{Date: "2024-01-05", Close: 1000}}

		sc, ic := AlignCloses(stock, index)

		assert.Empty(t, sc)
		assert.Empty(t, ic)
	})
}

// TestEstimateBeta は縮退入力が中立値に落ちることを検証します。
func TestEstimateBeta_Degenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		stock          []float64
		market         []float64
		expectedReason UndefinedReason
	}{
		{
			name:           "mismatched lengths",
			stock:          []float64{0.01, 0.02, -0.01},
			market:         []float64{0.01, 0.02},
			expectedReason: ReasonInsufficientData,
		},
		{
			name:           "empty series",
			stock:          nil,
			market:         nil,
			expectedReason: ReasonInsufficientData,
		},
		{
			name:           "single sample",
			stock:          []float64{0.01},
			market:         []float64{0.02},
			expectedReason: ReasonInsufficientData,
		},
		{
			name:           "zero market variance",
			stock:          []float64{0.01, -0.02, 0.03},
			market:         []float64{0.01, 0.01, 0.01},
			expectedReason: ReasonZeroVariance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := EstimateBeta(tt.stock, tt.market)
			assert.False(t, got.Defined())
			assert.Equal(t, tt.expectedReason, got.Undefined)
			assert.Equal(t, 1.0, got.Beta)
			assert.Equal(t, 0.0, got.Correlation)
		})
	}
}

// TestEstimateBeta_Computed は実際の計算結果を検証します。
func TestEstimateBeta_Computed(t *testing.T) {
	t.Parallel()

	t.Run("identical series gives beta 1 and correlation 1", func(t *testing.T) {
		t.Parallel()
		returns := []float64{0.01, -0.02, 0.03, 0.005}

		got := EstimateBeta(returns, returns)

		require.True(t, got.Defined())
		assert.InDelta(t, 1.0, got.Beta, delta)
		assert.InDelta(t, 1.0, got.Correlation, delta)
		assert.Equal(t, 4, got.Samples)
	})

	t.Run("stock moving at twice the market gives beta 2", func(t *testing.T) {
		t.Parallel()
		stock := []float64{0.02, -0.04, 0.06}
		market := []float64{0.01, -0.02, 0.03}

		got := EstimateBeta(stock, market)

		require.True(t, got.Defined())
		assert.InDelta(t, 2.0, got.Beta, delta)
		assert.InDelta(t, 1.0, got.Correlation, delta)
	})

	t.Run("inverse movement gives negative beta and correlation", func(t *testing.T) {
		t.Parallel()
		stock := []float64{-0.01, 0.02, -0.03}
		market := []float64{0.01, -0.02, 0.03}

		got := EstimateBeta(stock, market)

		require.True(t, got.Defined())
		assert.InDelta(t, -1.0, got.Beta, delta)
		assert.InDelta(t, -1.0, got.Correlation, delta)
	})

	t.Run("constant stock returns give zero correlation", func(t *testing.T) {
		t.Parallel()
		stock := []float64{0.01, 0.01, 0.01}
		market := []float64{0.01, -0.02, 0.03}

		got := EstimateBeta(stock, market)

		require.True(t, got.Defined())
		assert.InDelta(t, 0.0, got.Beta, delta)
		assert.InDelta(t, 0.0, got.Correlation, delta)
	})
}

// TestComputeBeta は整列からリターン変換、推定、丸めまでの一連の処理を検証します。
func TestComputeBeta(t *testing.T) {
	t.Parallel()

	t.Run("end to end with fully matching dates", func(t *testing.T) {
		t.Parallel()
		dates := []string{"2024-01-04", "2024-01-05", "2024-01-09", "2024-01-10", "2024-01-11"}
		stockCloses := []float64{100, 102, 101, 105, 104}
		indexCloses := []float64{1000, 1010, 1005, 1020, 1015}

		stock := make([]PriceSample, len(dates))
		index := make([]PriceSample, len(dates))
		for i, d := range dates {
			stock[i] = PriceSample{Date: d, Close: stockCloses[i]}
			index[i] = PriceSample{Date: d, Close: indexCloses[i]}
		}

		got := ComputeBeta(stock, index)

		require.True(t, got.Defined())
		assert.Equal(t, 4, got.Samples)
		assert.False(t, got.Beta == 1 && got.Correlation == 0, "should be a computed result, not the neutral default")
		// 丸め後は小数第2位まで
		assert.InDelta(t, got.Beta, Round2(got.Beta), delta)
		assert.InDelta(t, got.Correlation, Round2(got.Correlation), delta)
	})

	t.Run("partially matching dates are aligned before returns", func(t *testing.T) {
		t.Parallel()
		stock := []PriceSample{
			{Date: "2024-01-04", Close: 100},
			{Date: "2024-01-05", Close: 102},
			{Date: "2024-01-09", Close: 101},
			{Date: "2024-01-10", Close: 105},
		}
		index := []PriceSample{
			{Date: "2024-01-04", Close: 1000},
			{Date: "2024-01-09", Close: 1005},
			{Date: "2024-01-10", Close: 1020},
			{Date: "2024-01-11", Close: 1015},
		}

		got := ComputeBeta(stock, index)

		// 共通日付は3日分なのでリターンは2標本
		assert.Equal(t, 2, got.Samples)
	})

	t.Run("too few overlapping dates falls back to neutral", func(t *testing.T) {
		t.Parallel()
		stock := []PriceSample{{Date: "2024-01-04", Close: 100}, {Date: "2024-01-05", Close: 102}}
		index := []PriceSample{{Date: "2024-01-04", Close: 1000}, {Date: "2024-01-05", Close: 1010}}

		got := ComputeBeta(stock, index)

		assert.False(t, got.Defined())
		assert.Equal(t, ReasonInsufficientData, got.Undefined)
		assert.Equal(t, 1.0, got.Beta)
		assert.Equal(t, 0.0, got.Correlation)
	})
}

// TestRound2 は表示用の丸め処理を検証します。
func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       float64
		expected float64
	}{
		{1.004, 1.0},
		// 0.125は浮動小数点で正確に表現できる0.5刻みの値
		{0.125, 0.13},
		{-0.125, -0.13},
		{0.994999, 0.99},
		{2.0, 2.0},
		{1.23456, 1.23},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, Round2(tt.in), delta, "Round2(%v)", tt.in)
	}
}
