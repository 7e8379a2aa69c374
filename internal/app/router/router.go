// Package router はアプリケーションのHTTPルーティングを定義します。
package router

import (
	"github.com/gin-gonic/gin"

	advicehandler "stock_buddy/internal/feature/advice/transport/handler"
	authhandler "stock_buddy/internal/feature/auth/transport/handler"
	betahandler "stock_buddy/internal/feature/beta/transport/handler"
	notifhandler "stock_buddy/internal/feature/notifications/transport/handler"
	portfoliohandler "stock_buddy/internal/feature/portfolio/transport/handler"
	priceshandler "stock_buddy/internal/feature/prices/transport/handler"
	symbolhandler "stock_buddy/internal/feature/symbols/transport/handler"
	handler "stock_buddy/internal/platform/http/handler"
	jwtmw "stock_buddy/internal/platform/jwt"
)

// NewRouter は全フィーチャーのハンドラーを受け取り、ルーティング済みのginエンジンを返します。
func NewRouter(auth *authhandler.AuthHandler, prices *priceshandler.PriceHandler,
	beta *betahandler.BetaHandler, symbol *symbolhandler.SymbolHandler,
	portfolio *portfoliohandler.PortfolioHandler, advice *advicehandler.AdviceHandler,
	subscription *notifhandler.SubscriptionHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", auth.Signup)
	// ログイン（JWT + リフレッシュトークン発行）
	r.POST("/login", auth.Login)
	// トークンリフレッシュ
	r.POST("/refresh", auth.Refresh)
	// ログアウト
	r.POST("/logout", auth.Logout)

	// 認証必須のルート
	authorized := r.Group("/")
	authorized.Use(jwtmw.AuthRequired())
	{
		authorized.GET("/prices/:code", prices.GetPricesHandler)
		authorized.GET("/stocks/:code/beta", beta.GetBetaHandler)
		authorized.GET("/symbols", symbol.List)

		authorized.GET("/portfolio", portfolio.List)
		authorized.POST("/portfolio", portfolio.Add)
		authorized.POST("/portfolio/import", portfolio.Import)
		authorized.GET("/portfolio/safety", portfolio.Safety)
		authorized.PUT("/portfolio/:symbol", portfolio.Update)
		authorized.DELETE("/portfolio/:symbol", portfolio.Remove)

		authorized.GET("/advice", advice.GetAdviceHandler)
		authorized.POST("/notifications/subscribe", subscription.Subscribe)
	}

	return r
}
