// Package adapters はportfolioフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_buddy/internal/feature/portfolio/domain/entity"
	"stock_buddy/internal/feature/portfolio/usecase"
)

// holdingMySQL はHoldingRepositoryインターフェースのMySQL実装です。
type holdingMySQL struct {
	db *gorm.DB
}

// holdingMySQLがHoldingRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.HoldingRepository = (*holdingMySQL)(nil)

// NewHoldingRepository は指定されたgorm.DB接続でholdingMySQLの新しいインスタンスを生成します。
func NewHoldingRepository(db *gorm.DB) *holdingMySQL {
	return &holdingMySQL{db: db}
}

// HoldingModel is the GORM model for the holdings table.
type HoldingModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:holding_user_sym,priority:1"`
	Symbol    string    `gorm:"size:32;not null;uniqueIndex:holding_user_sym,priority:2"`
	Quantity  float64   `gorm:"not null"`
	AvgCost   float64   `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM.
func (HoldingModel) TableName() string {
	return "holdings"
}

func toModel(e *entity.Holding) HoldingModel {
	return HoldingModel{
		UserID:   e.UserID,
		Symbol:   e.Symbol,
		Quantity: e.Quantity,
		AvgCost:  e.AvgCost,
	}
}

func toEntity(m HoldingModel) entity.Holding {
	return entity.Holding{
		UserID:    m.UserID,
		Symbol:    m.Symbol,
		Quantity:  m.Quantity,
		AvgCost:   m.AvgCost,
		UpdatedAt: m.UpdatedAt,
	}
}

// Upsert は(user_id, symbol)をキーに保有銘柄を挿入または更新します。
func (r *holdingMySQL) Upsert(ctx context.Context, h *entity.Holding) error {
	m := toModel(h)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "avg_cost"}),
	}).Create(&m).Error
}

// FindByUserID は指定ユーザーの全保有銘柄をシンボル昇順で返します。
func (r *holdingMySQL) FindByUserID(ctx context.Context, userID uint) ([]entity.Holding, error) {
	var rows []HoldingModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("symbol ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Holding, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Update は既存の保有銘柄を更新します。
// 対象が存在しない場合、usecase.ErrHoldingNotFoundを返します。
func (r *holdingMySQL) Update(ctx context.Context, h *entity.Holding) error {
	result := r.db.WithContext(ctx).
		Model(&HoldingModel{}).
		Where("user_id = ? AND symbol = ?", h.UserID, h.Symbol).
		Updates(map[string]interface{}{"quantity": h.Quantity, "avg_cost": h.AvgCost})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrHoldingNotFound
	}
	return nil
}

// Delete は保有銘柄を削除します。
// 対象が存在しない場合、usecase.ErrHoldingNotFoundを返します。
func (r *holdingMySQL) Delete(ctx context.Context, userID uint, symbol string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&HoldingModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrHoldingNotFound
	}
	return nil
}
