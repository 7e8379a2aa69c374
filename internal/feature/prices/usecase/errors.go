// Package usecase は株価データ操作のビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrInvalidPeriod is returned when the requested lookback period is not supported.
	ErrInvalidPeriod = errors.New("invalid period")
)
