// Package scheduler はバッチジョブのcron登録と実行を提供します。
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	portfoliousecase "stock_buddy/internal/feature/portfolio/usecase"
)

// Ingester は日次株価の取り込みを実行します。
type Ingester interface {
	IngestAll(ctx context.Context, symbols []string) error
}

// SymbolSource は取り込み対象の銘柄コードを提供します。
type SymbolSource interface {
	ListActiveCodes(ctx context.Context) ([]string, error)
}

// SafetyChecker はユーザーのポートフォリオに安全ルールを適用します。
type SafetyChecker interface {
	Check(ctx context.Context, userID uint) ([]portfoliousecase.Finding, error)
}

// Notifier は通知対象ユーザーの列挙とWeb Push配信を行います。
type Notifier interface {
	ListUserIDs(ctx context.Context) ([]uint, error)
	NotifyUser(ctx context.Context, userID uint, title, body string) error
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	cron        *cron.Cron
	ingester    Ingester
	symbols     SymbolSource
	safety      SafetyChecker
	notifier    Notifier
	indexSymbol string
	extra       []string
	ctx         context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, ingester Ingester, symbols SymbolSource,
	safety SafetyChecker, notifier Notifier, indexSymbol string, extraSymbols []string) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		ingester:    ingester,
		symbols:     symbols,
		safety:      safety,
		notifier:    notifier,
		indexSymbol: indexSymbol,
		extra:       extraSymbols,
		ctx:         ctx,
	}
}

// Register は日次取り込みと安全ルール巡回のタスクをcronに登録します。
func (s *Scheduler) Register(ingestCron, safetyCron string) error {
	if _, err := s.cron.AddFunc(ingestCron, s.ingestTask); err != nil {
		return fmt.Errorf("register ingest task: %w", err)
	}
	if _, err := s.cron.AddFunc(safetyCron, s.safetyTask); err != nil {
		return fmt.Errorf("register safety task: %w", err)
	}
	return nil
}

// Start はcronスケジューラを開始します。
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop はcronスケジューラを停止し、実行中のジョブの完了を待ちます。
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce は全タスクを1回だけ順に実行します。
// Cloud Run jobsなど外部のCRONから起動される環境向けです。
func (s *Scheduler) RunOnce() {
	s.ingestTask()
	s.safetyTask()
}

// ingestTask は銘柄マスタの全アクティブ銘柄と市場指数の株価を取り込みます。
func (s *Scheduler) ingestTask() {
	codes, err := s.symbols.ListActiveCodes(s.ctx)
	if err != nil {
		slog.Error("failed to load symbol list", "error", err)
		return
	}

	// 指数と追加銘柄も取り込み対象に含める
	targets := append([]string{s.indexSymbol}, s.extra...)
	targets = append(targets, codes...)

	if err := s.ingester.IngestAll(s.ctx, targets); err != nil {
		slog.Error("price ingest failed", "error", err)
		return
	}
	slog.Info("price ingest completed", "symbols", len(targets))
}

// safetyTask は購読ユーザー全員のポートフォリオを巡回し、
// 検出された注意事項をWeb Pushで配信します。
func (s *Scheduler) safetyTask() {
	userIDs, err := s.notifier.ListUserIDs(s.ctx)
	if err != nil {
		slog.Error("failed to list notification users", "error", err)
		return
	}

	for _, userID := range userIDs {
		findings, err := s.safety.Check(s.ctx, userID)
		if err != nil {
			slog.Error("safety check failed", "user_id", userID, "error", err)
			continue
		}
		for _, f := range findings {
			if err := s.notifier.NotifyUser(s.ctx, userID, "ポートフォリオの注意事項", f.Message); err != nil {
				slog.Error("failed to notify user", "user_id", userID, "rule", f.Rule, "error", err)
			}
		}
	}
	slog.Info("safety sweep completed", "users", len(userIDs))
}
