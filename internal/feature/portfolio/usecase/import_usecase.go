package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"stock_buddy/internal/feature/portfolio/domain/entity"
)

// importHeader はCSVインポートで要求するヘッダー行です。
var importHeader = []string{"symbol", "quantity", "avg_cost"}

// SkippedRow は取り込めなかったCSV行の情報です。
type SkippedRow struct {
	Line   int    // 1始まりの行番号（ヘッダーを1行目として数える）
	Reason string // スキップ理由
}

// ImportResult はCSVインポートの結果です。
type ImportResult struct {
	Imported int
	Skipped  []SkippedRow
}

// ImportCSV は証券会社からエクスポートしたCSVを読み取り、保有銘柄として取り込みます。
// ヘッダーは symbol,quantity,avg_cost 固定です。不正な行は取り込みをスキップして
// 理由を記録し、残りの行の処理を続けます（部分的な成功を許容する）。
// ヘッダー自体が不正な場合はErrInvalidCSVを返します。
func (pu *portfolioUsecase) ImportCSV(ctx context.Context, userID uint, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(importHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header", ErrInvalidCSV)
	}
	for i, want := range importHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return nil, fmt.Errorf("%w: expected header %q", ErrInvalidCSV, strings.Join(importHeader, ","))
		}
	}

	result := &ImportResult{}
	line := 1 // ヘッダーが1行目
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedRow{Line: line, Reason: "malformed row"})
			continue
		}

		holding, reason := parseHoldingRow(userID, record)
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedRow{Line: line, Reason: reason})
			continue
		}

		if err := pu.holdings.Upsert(ctx, holding); err != nil {
			return nil, fmt.Errorf("failed to import row %d: %w", line, err)
		}
		result.Imported++
	}

	return result, nil
}

// parseHoldingRow はCSVの1行を検証してHoldingに変換します。
// 不正な場合は空でないスキップ理由を返します。
func parseHoldingRow(userID uint, record []string) (*entity.Holding, string) {
	symbol := strings.TrimSpace(record[0])
	if symbol == "" {
		return nil, "empty symbol"
	}

	quantity, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil || quantity <= 0 {
		return nil, "invalid quantity"
	}

	avgCost, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil || avgCost <= 0 {
		return nil, "invalid avg_cost"
	}

	return &entity.Holding{
		UserID:   userID,
		Symbol:   symbol,
		Quantity: quantity,
		AvgCost:  avgCost,
	}, ""
}
