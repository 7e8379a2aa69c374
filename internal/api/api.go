// Package api はHTTPトランスポート層で共有されるリクエスト/レスポンスDTOを定義します。
package api

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は成功時の簡易メッセージレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// SignupRequest は新規ユーザー登録のリクエストボディです。
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest はログインのリクエストボディです。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse はログイン・リフレッシュ成功時のレスポンスです。
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest はトークンリフレッシュのリクエストボディです。
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// PriceResponse は1営業日分の終値レスポンスです。
type PriceResponse struct {
	Date   string  `json:"date"`   // 取引日（YYYY-MM-DD）
	Close  float64 `json:"close"`  // 終値
	Volume int64   `json:"volume"` // 出来高
}

// BetaResponse はベータ値計算のレスポンスです。
type BetaResponse struct {
	Beta        float64 `json:"beta"`
	Correlation float64 `json:"correlation"`
	DataPoints  int     `json:"dataPoints"`
	Label       string  `json:"label"`
}

// SymbolItem は銘柄一覧の1要素です。
type SymbolItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// HoldingRequest は保有銘柄の登録・更新リクエストです。
type HoldingRequest struct {
	Symbol   string  `json:"symbol" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	AvgCost  float64 `json:"avg_cost" binding:"required,gt=0"`
}

// HoldingResponse は保有銘柄1件のレスポンスです。
type HoldingResponse struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	AvgCost  float64 `json:"avg_cost"`
}

// SkippedRow はCSVインポートで取り込めなかった行の情報です。
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResponse はCSVインポートの結果レスポンスです。
type ImportResponse struct {
	Imported int          `json:"imported"`
	Skipped  []SkippedRow `json:"skipped"`
}

// SafetyFinding は安全ルールチェックで検出された1件の注意事項です。
type SafetyFinding struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// SafetyResponse は安全ルールチェックのレスポンスです。
type SafetyResponse struct {
	Findings []SafetyFinding `json:"findings"`
}

// AdviceResponse はAIコメント生成のレスポンスです。
type AdviceResponse struct {
	Comment string `json:"comment"`
}

// SubscriptionKeys はWeb Push購読の暗号化キーです。
type SubscriptionKeys struct {
	P256dh string `json:"p256dh" binding:"required"`
	Auth   string `json:"auth" binding:"required"`
}

// SubscribeRequest はWeb Push購読登録のリクエストボディです。
type SubscribeRequest struct {
	Endpoint string           `json:"endpoint" binding:"required,url"`
	Keys     SubscriptionKeys `json:"keys" binding:"required"`
}
