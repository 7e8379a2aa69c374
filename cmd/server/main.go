package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"stock_buddy/internal/app/di"
	"stock_buddy/internal/app/router"
	advicegemini "stock_buddy/internal/feature/advice/adapters/gemini"
	advicehandler "stock_buddy/internal/feature/advice/transport/handler"
	adviceusecase "stock_buddy/internal/feature/advice/usecase"
	authadapters "stock_buddy/internal/feature/auth/adapters"
	authhandler "stock_buddy/internal/feature/auth/transport/handler"
	authusecase "stock_buddy/internal/feature/auth/usecase"
	betahandler "stock_buddy/internal/feature/beta/transport/handler"
	betausecase "stock_buddy/internal/feature/beta/usecase"
	notifadapters "stock_buddy/internal/feature/notifications/adapters"
	notifhandler "stock_buddy/internal/feature/notifications/transport/handler"
	notifusecase "stock_buddy/internal/feature/notifications/usecase"
	portfolioadapters "stock_buddy/internal/feature/portfolio/adapters"
	portfoliohandler "stock_buddy/internal/feature/portfolio/transport/handler"
	portfoliousecase "stock_buddy/internal/feature/portfolio/usecase"
	pricesadapters "stock_buddy/internal/feature/prices/adapters"
	priceshandler "stock_buddy/internal/feature/prices/transport/handler"
	pricesusecase "stock_buddy/internal/feature/prices/usecase"
	symboladapters "stock_buddy/internal/feature/symbols/adapters"
	symbolhandler "stock_buddy/internal/feature/symbols/transport/handler"
	symbolusecase "stock_buddy/internal/feature/symbols/usecase"
	"stock_buddy/internal/platform/cache"
	infradb "stock_buddy/internal/platform/db"
	jwtmw "stock_buddy/internal/platform/jwt"
	infraredis "stock_buddy/internal/platform/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	symbolRepo := symboladapters.NewSymbolRepository(db)
	priceRepo := pricesadapters.NewPriceRepository(db)
	holdingRepo := portfolioadapters.NewHoldingRepository(db)
	subscriptionRepo := notifadapters.NewSubscriptionRepository(db)

	// Redisキャッシュでラップ（東証の取引開始前にキャッシュが切れるTTL）
	ttl := cache.TimeUntilNext8AM()
	cachedPriceRepo := cache.NewCachingPriceRepository(rdb, ttl, priceRepo, "prices")

	// JWT
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	jwtGen := jwtmw.NewGenerator(secret, 15*time.Minute)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen)
	symbolUC := symbolusecase.NewSymbolUsecase(symbolRepo)
	pricesUC := pricesusecase.NewPricesUsecase(cachedPriceRepo)
	betaUC := betausecase.NewBetaUsecase(cachedPriceRepo, os.Getenv("BETA_INDEX_SYMBOL"))
	portfolioUC := portfoliousecase.NewPortfolioUsecase(holdingRepo)
	safetyUC := portfoliousecase.NewSafetyUsecase(holdingRepo, betaUC, portfoliousecase.DefaultThresholds())
	notifyUC := notifusecase.NewNotifyUsecase(subscriptionRepo, nil) // server側は購読登録のみ。配信はcmd/batch

	// Gemini（認証情報がない環境では起動を止めずにコメント機能のみ無効化）
	ctx := context.Background()
	var adviceH *advicehandler.AdviceHandler
	if gen, err := advicegemini.NewGeminiGenerator(ctx); err != nil {
		log.Println("[WARN] Gemini unavailable. /advice will return errors:", err)
		adviceH = advicehandler.NewAdviceHandler(adviceusecase.NewAdviceUsecase(holdingRepo, betaUC, unavailableGenerator{}))
	} else {
		adviceH = advicehandler.NewAdviceHandler(adviceusecase.NewAdviceUsecase(holdingRepo, betaUC, gen))
	}

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	symbolH := symbolhandler.NewSymbolHandler(symbolUC)
	pricesH := priceshandler.NewPriceHandler(pricesUC)
	betaH := betahandler.NewBetaHandler(betaUC)
	portfolioH := portfoliohandler.NewPortfolioHandler(portfolioUC, safetyUC)
	subscriptionH := notifhandler.NewSubscriptionHandler(notifyUC)

	// ルータ生成
	r := router.NewRouter(authH, pricesH, betaH, symbolH, portfolioH, adviceH, subscriptionH)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}

// unavailableGenerator はGeminiクライアントを初期化できなかった場合の代替実装です。
type unavailableGenerator struct{}

func (unavailableGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("comment generator is not configured")
}
