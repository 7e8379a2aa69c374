package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"stock_buddy/internal/app/di"
	"stock_buddy/internal/app/scheduler"
	betausecase "stock_buddy/internal/feature/beta/usecase"
	notifadapters "stock_buddy/internal/feature/notifications/adapters"
	"stock_buddy/internal/feature/notifications/adapters/webpush"
	notifusecase "stock_buddy/internal/feature/notifications/usecase"
	portfolioadapters "stock_buddy/internal/feature/portfolio/adapters"
	portfoliousecase "stock_buddy/internal/feature/portfolio/usecase"
	pricesadapters "stock_buddy/internal/feature/prices/adapters"
	pricesusecase "stock_buddy/internal/feature/prices/usecase"
	symboladapters "stock_buddy/internal/feature/symbols/adapters"
	symbolusecase "stock_buddy/internal/feature/symbols/usecase"
	"stock_buddy/internal/platform/config"
	infradb "stock_buddy/internal/platform/db"
	"stock_buddy/internal/shared/ratelimiter"
)

func main() {
	configPath := flag.String("config", "configs/batch.yaml", "バッチ設定ファイルのパス")
	once := flag.Bool("once", false, "常駐せず全タスクを1回だけ実行して終了する")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config:", err)
	}

	db := infradb.OpenDB()

	// Repository
	marketRepo := di.NewMarket()
	priceRepo := pricesadapters.NewPriceRepository(db)
	symbolRepo := symboladapters.NewSymbolRepository(db)
	holdingRepo := portfolioadapters.NewHoldingRepository(db)
	subscriptionRepo := notifadapters.NewSubscriptionRepository(db)

	// Usecase
	// TwelveData無料プランは8リクエスト/分まで
	limiter := ratelimiter.NewRateLimiter(8, time.Minute)
	ingestUC := pricesusecase.NewIngestUsecase(marketRepo, priceRepo, limiter)
	symbolUC := symbolusecase.NewSymbolUsecase(symbolRepo)
	betaUC := betausecase.NewBetaUsecase(priceRepo, cfg.IndexSymbol)
	safetyUC := portfoliousecase.NewSafetyUsecase(holdingRepo, betaUC, cfg.Thresholds())
	pusher := webpush.NewSender(webpush.LoadConfig())
	notifyUC := notifusecase.NewNotifyUsecase(subscriptionRepo, pusher)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(ctx, ingestUC, symbolUC, safetyUC, notifyUC,
		cfg.IndexSymbol, cfg.ExtraSymbols)

	if *once {
		sched.RunOnce()
		return
	}

	if err := sched.Register(cfg.IngestCron, cfg.SafetyCron); err != nil {
		log.Fatal("failed to register batch tasks:", err)
	}
	sched.Start()
	log.Println("batch scheduler started")

	<-ctx.Done()
	log.Println("shutting down batch scheduler")
	sched.Stop()
}
