// Package usecase はポートフォリオ操作のビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrHoldingNotFound is returned when the user has no holding for the given symbol.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrInvalidCSV is returned when the import file is not a parseable CSV
	// with the expected header.
	ErrInvalidCSV = errors.New("invalid csv format")
)
