// Package usecase はWeb Pushによる通知配信のビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrSubscriptionGone is returned by the pusher when the push service reports
	// the subscription no longer exists (HTTP 404/410). The subscription should be
	// removed from storage.
	ErrSubscriptionGone = errors.New("push subscription gone")
)
