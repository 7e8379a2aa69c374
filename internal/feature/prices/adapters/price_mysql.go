// Package adapters はpricesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_buddy/internal/feature/prices/domain/entity"
	"stock_buddy/internal/feature/prices/usecase"
)

// priceMySQL はPriceRepositoryインターフェースのMySQL実装です。
type priceMySQL struct {
	db *gorm.DB
}

// priceMySQLがPriceRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PriceRepository = (*priceMySQL)(nil)

// NewPriceRepository は指定されたgorm.DB接続でpriceMySQLの新しいインスタンスを生成します。
func NewPriceRepository(db *gorm.DB) *priceMySQL {
	return &priceMySQL{db: db}
}

// PriceModel is the GORM model for the prices table.
type PriceModel struct {
	ID     uint      `gorm:"primaryKey"`
	Symbol string    `gorm:"size:32;not null;uniqueIndex:price_sym_date,priority:1"`
	Date   time.Time `gorm:"not null;uniqueIndex:price_sym_date,priority:2"`
	Close  float64   `gorm:"not null"`
	Volume int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM.
func (PriceModel) TableName() string {
	return "prices"
}

func toModel(e entity.Price) PriceModel {
	return PriceModel{
		Symbol: e.Symbol,
		Date:   e.Date,
		Close:  e.Close,
		Volume: e.Volume,
	}
}

// UpsertBatch は日次終値を(symbol, date)をキーに一括で挿入または更新します。
func (r *priceMySQL) UpsertBatch(ctx context.Context, prices []entity.Price) error {
	if len(prices) == 0 {
		return nil
	}
	ms := make([]PriceModel, 0, len(prices))
	for _, e := range prices {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"close", "volume"}),
	}).Create(&ms).Error
}

// FindRange は指定銘柄のfrom以降の終値を日付昇順で返します。
func (r *priceMySQL) FindRange(ctx context.Context, symbol string, from time.Time) ([]entity.Price, error) {
	var rows []PriceModel
	if err := r.db.WithContext(ctx).
		Where("symbol = ? AND date >= ?", symbol, from).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Price, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Price{
			Symbol: m.Symbol,
			Date:   m.Date,
			Close:  m.Close,
			Volume: m.Volume,
		})
	}
	return out, nil
}
