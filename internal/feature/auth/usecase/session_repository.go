package usecase

import (
	"context"

	"stock_buddy/internal/feature/auth/domain/entity"
)

// SessionRepository はセッション（リフレッシュトークン）の永続化層を抽象化します。
// Redis実装（platform/session）とMySQL実装（adapters）が存在し、DIで選択されます。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SessionRepository interface {
	// Create は新しいセッションを永続化します。
	Create(ctx context.Context, session *entity.Session) error

	// FindByID はIDでセッションを取得します。
	// 存在しない場合はErrSessionNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke はセッションを失効させます。
	Revoke(ctx context.Context, id string) error

	// CountByUserID は指定ユーザーの有効なセッション数を返します。
	CountByUserID(ctx context.Context, userID uint) (int64, error)

	// DeleteOldestByUserID は指定ユーザーの最も古いセッションを削除します。
	DeleteOldestByUserID(ctx context.Context, userID uint) error
}
