package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"stock_buddy/internal/feature/notifications/domain/entity"
)

// SubscriptionRepository はWeb Push購読の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SubscriptionRepository interface {
	// Upsert はendpointをキーに購読を挿入または更新します。
	Upsert(ctx context.Context, sub *entity.Subscription) error

	// FindByUserID は指定ユーザーの全購読を返します。
	FindByUserID(ctx context.Context, userID uint) ([]entity.Subscription, error)

	// DeleteByEndpoint は指定endpointの購読を削除します。
	DeleteByEndpoint(ctx context.Context, endpoint string) error

	// ListUserIDs は購読を持つ全ユーザーIDを重複なしで返します。
	ListUserIDs(ctx context.Context) ([]uint, error)
}

// Pusher はWeb Push配信層を抽象化します。
// 実装はadapters/webpushが提供します。
type Pusher interface {
	// Send は1つの購読にペイロードを配信します。
	// 購読が失効している場合はErrSubscriptionGoneを返します。
	Send(ctx context.Context, sub entity.Subscription, payload []byte) error
}

// pushPayload はブラウザのService Workerが受け取るJSONペイロードです。
type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// notifyUsecase はWeb Push通知のユースケースを定義します。
type notifyUsecase struct {
	subs   SubscriptionRepository
	pusher Pusher
}

// NewNotifyUsecase はnotifyUsecaseの新しいインスタンスを生成します。
func NewNotifyUsecase(subs SubscriptionRepository, pusher Pusher) *notifyUsecase {
	return &notifyUsecase{subs: subs, pusher: pusher}
}

// Subscribe はユーザーのWeb Push購読を登録します。
// 同じendpointの再登録は上書きになります（冪等）。
func (nu *notifyUsecase) Subscribe(ctx context.Context, userID uint, endpoint, p256dh, auth string) error {
	return nu.subs.Upsert(ctx, &entity.Subscription{
		UserID:   userID,
		Endpoint: endpoint,
		P256dh:   p256dh,
		Auth:     auth,
	})
}

// NotifyUser は指定ユーザーの全購読へ通知を配信します。
// 失効した購読（ErrSubscriptionGone）はストレージから削除します。
// 個々の配信失敗はログに残して続行し、全体としてはエラーを返しません。
func (nu *notifyUsecase) NotifyUser(ctx context.Context, userID uint, title, body string) error {
	subs, err := nu.subs.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load subscriptions: %w", err)
	}

	payload, err := json.Marshal(pushPayload{Title: title, Body: body})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	for _, sub := range subs {
		if err := nu.pusher.Send(ctx, sub, payload); err != nil {
			if errors.Is(err, ErrSubscriptionGone) {
				// 失効した購読は掃除する
				if delErr := nu.subs.DeleteByEndpoint(ctx, sub.Endpoint); delErr != nil {
					slog.Warn("failed to delete dead subscription", "endpoint", sub.Endpoint, "error", delErr)
				}
				continue
			}
			slog.Error("push delivery failed", "user_id", userID, "endpoint", sub.Endpoint, "error", err)
		}
	}
	return nil
}

// ListUserIDs は購読を持つ全ユーザーIDを返します。バッチの巡回対象に使います。
func (nu *notifyUsecase) ListUserIDs(ctx context.Context) ([]uint, error) {
	return nu.subs.ListUserIDs(ctx)
}
