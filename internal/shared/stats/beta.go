// Package stats は株価系列からベータ値と相関係数を計算する純粋関数を提供します。
// I/Oや共有状態を持たないため、複数のゴルーチンから同時に呼び出しても安全です。
package stats

import "math"

// PriceSample は1営業日分の終値を表します。
type PriceSample struct {
	Date  string  // 取引日（YYYY-MM-DD）
	Close float64 // 終値
}

// UndefinedReason はベータ値が統計的に定義できなかった理由を表します。
type UndefinedReason string

const (
	// ReasonNone は正常に計算できたことを示します。
	ReasonNone UndefinedReason = ""
	// ReasonInsufficientData はリターン系列が2点未満、または長さ不一致だったことを示します。
	ReasonInsufficientData UndefinedReason = "insufficient_data"
	// ReasonZeroVariance は市場リターンの分散がゼロだったことを示します。
	ReasonZeroVariance UndefinedReason = "zero_variance"
)

// Result はベータ推定の結果です。
// 計算が定義できない場合でも中立値（Beta=1, Correlation=0）を保持し、
// Undefinedに理由を設定します。呼び出し側はDefinedで判別できます。
type Result struct {
	Beta        float64
	Correlation float64
	Samples     int // 整列後のリターン標本数
	Undefined   UndefinedReason
}

// Defined はベータ値が実際に計算されたものかどうかを返します。
func (r Result) Defined() bool {
	return r.Undefined == ReasonNone
}

// neutral は計算不能時の中立的なデフォルト値を返します。
func neutral(samples int, reason UndefinedReason) Result {
	return Result{Beta: 1, Correlation: 0, Samples: samples, Undefined: reason}
}

// DailyReturns は終値系列を単純日次リターン系列に変換します。
// return[i] = (close[i] - close[i-1]) / close[i-1] で、要素数は最大N-1です。
// 前日終値が0以下の区間はゼロ割を避けるためスキップします。
// 終値が2点未満の場合は空を返します。エラーは返しません。
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev <= 0 {
			continue
		}
		out = append(out, (closes[i]-prev)/prev)
	}
	return out
}

// AlignCloses は銘柄と指数の終値系列を取引日で突き合わせます。
// 指数側の日付をキーにしたルックアップを作り、銘柄側の順序を保ったまま
// 両方に存在する日付のみを残します。片方にしか存在しない日（祝日・欠損）は
// 捨てられ、補間は一切行いません。
func AlignCloses(stock, index []PriceSample) (stockCloses, indexCloses []float64) {
	byDate := make(map[string]float64, len(index))
	for _, s := range index {
		byDate[s.Date] = s.Close
	}
	for _, s := range stock {
		ic, ok := byDate[s.Date]
		if !ok {
			continue
		}
		stockCloses = append(stockCloses, s.Close)
		indexCloses = append(indexCloses, ic)
	}
	return stockCloses, indexCloses
}

// EstimateBeta は同じ長さのリターン系列2本からベータ値とピアソン相関係数を計算します。
// 標本共分散・標本分散は不偏推定（N-1で除算）を用います。
// 長さ不一致・2点未満・市場分散ゼロのいずれも中立値に縮退し、決してpanicしません。
// 結果は丸め前の生値です。表示用の丸めはRound2で別途行います。
func EstimateBeta(stockReturns, marketReturns []float64) Result {
	n := len(stockReturns)
	if n != len(marketReturns) {
		return neutral(0, ReasonInsufficientData)
	}
	if n < 2 {
		return neutral(n, ReasonInsufficientData)
	}

	var meanS, meanM float64
	for i := 0; i < n; i++ {
		meanS += stockReturns[i]
		meanM += marketReturns[i]
	}
	meanS /= float64(n)
	meanM /= float64(n)

	var cov, varS, varM float64
	for i := 0; i < n; i++ {
		ds := stockReturns[i] - meanS
		dm := marketReturns[i] - meanM
		cov += ds * dm
		varS += ds * ds
		varM += dm * dm
	}
	cov /= float64(n - 1)
	varS /= float64(n - 1)
	varM /= float64(n - 1)

	if varM == 0 {
		return neutral(n, ReasonZeroVariance)
	}

	res := Result{Beta: cov / varM, Samples: n}
	if varS > 0 {
		res.Correlation = cov / (math.Sqrt(varS) * math.Sqrt(varM))
	}
	return res
}

// ComputeBeta は銘柄と指数の終値系列からベータ値と相関係数を一括で計算します。
// 日付整列 → 日次リターン変換 → 推定 → 表示用丸め、の順で処理します。
// リターン変換は整列を崩さないよう両系列を同時に処理し、前日終値が0以下の
// 区間は両方から除外します。Samplesは整列後のリターン標本数です。
func ComputeBeta(stockPrices, marketPrices []PriceSample) Result {
	sc, ic := AlignCloses(stockPrices, marketPrices)

	var rs, rm []float64
	for i := 1; i < len(sc); i++ {
		ps, pm := sc[i-1], ic[i-1]
		if ps <= 0 || pm <= 0 {
			continue
		}
		rs = append(rs, (sc[i]-ps)/ps)
		rm = append(rm, (ic[i]-pm)/pm)
	}

	res := EstimateBeta(rs, rm)
	res.Beta = Round2(res.Beta)
	res.Correlation = Round2(res.Correlation)
	return res
}

// Round2 は小数第2位に四捨五入します（0.5は0から遠い方向へ丸め）。
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
