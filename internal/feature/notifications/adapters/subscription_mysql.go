// Package adapters はnotificationsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_buddy/internal/feature/notifications/domain/entity"
	"stock_buddy/internal/feature/notifications/usecase"
)

// subscriptionMySQL はSubscriptionRepositoryインターフェースのMySQL実装です。
type subscriptionMySQL struct {
	db *gorm.DB
}

// subscriptionMySQLがSubscriptionRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SubscriptionRepository = (*subscriptionMySQL)(nil)

// NewSubscriptionRepository は指定されたgorm.DB接続でsubscriptionMySQLの新しいインスタンスを生成します。
func NewSubscriptionRepository(db *gorm.DB) *subscriptionMySQL {
	return &subscriptionMySQL{db: db}
}

// SubscriptionModel is the GORM model for the push_subscriptions table.
type SubscriptionModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Endpoint  string    `gorm:"size:512;not null;uniqueIndex"`
	P256dh    string    `gorm:"size:255;not null"`
	Auth      string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (SubscriptionModel) TableName() string {
	return "push_subscriptions"
}

// Upsert はendpointをキーに購読を挿入または更新します。
func (r *subscriptionMySQL) Upsert(ctx context.Context, sub *entity.Subscription) error {
	m := SubscriptionModel{
		UserID:   sub.UserID,
		Endpoint: sub.Endpoint,
		P256dh:   sub.P256dh,
		Auth:     sub.Auth,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth"}),
	}).Create(&m).Error
}

// FindByUserID は指定ユーザーの全購読を返します。
func (r *subscriptionMySQL) FindByUserID(ctx context.Context, userID uint) ([]entity.Subscription, error) {
	var rows []SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Subscription, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Subscription{
			UserID:    m.UserID,
			Endpoint:  m.Endpoint,
			P256dh:    m.P256dh,
			Auth:      m.Auth,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// DeleteByEndpoint は指定endpointの購読を削除します。
// 対象が存在しなくてもエラーにはしません（失効購読の掃除に使うため冪等）。
func (r *subscriptionMySQL) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	return r.db.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		Delete(&SubscriptionModel{}).Error
}

// ListUserIDs は購読を持つ全ユーザーIDを重複なしで返します。
func (r *subscriptionMySQL) ListUserIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&SubscriptionModel{}).
		Distinct("user_id").
		Order("user_id ASC").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
