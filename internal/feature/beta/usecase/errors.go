// Package usecase はベータ値計算のビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrInsufficientData is returned when the stock or index history has fewer
	// than MinDataPoints samples, before or after date alignment.
	ErrInsufficientData = errors.New("insufficient price data")
)
