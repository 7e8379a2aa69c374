// Package webpush はWeb Pushプロトコルによる通知配信を提供します。
package webpush

import (
	"context"
	"fmt"
	"net/http"
	"os"

	webpush "github.com/SherClockHolmes/webpush-go"

	"stock_buddy/internal/feature/notifications/domain/entity"
	"stock_buddy/internal/feature/notifications/usecase"
)

// Config holds VAPID configuration for Web Push delivery.
type Config struct {
	Subscriber      string // Contact mailto: or https: URL reported to push services
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	TTL             int // Seconds the push service may queue the message
}

// LoadConfig loads Web Push configuration from environment variables.
func LoadConfig() Config {
	return Config{
		Subscriber:      os.Getenv("VAPID_SUBSCRIBER"),
		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		TTL:             3600,
	}
}

// Sender はwebpush-goを使ったPusher実装です。
type Sender struct {
	cfg Config
}

// SenderがPusherを実装していることをコンパイル時に検証します。
var _ usecase.Pusher = (*Sender)(nil)

// NewSender は指定された設定でSenderの新しいインスタンスを生成します。
func NewSender(cfg Config) *Sender {
	return &Sender{cfg: cfg}
}

// Send は1つの購読にペイロードを配信します。
// プッシュサービスが404/410を返した場合（購読失効）はErrSubscriptionGoneを返します。
func (s *Sender) Send(ctx context.Context, sub entity.Subscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.cfg.Subscriber,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		TTL:             s.cfg.TTL,
	})
	if err != nil {
		return fmt.Errorf("webpush send failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return usecase.ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}
	return nil
}
