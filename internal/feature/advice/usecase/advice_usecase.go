// Package usecase はAI投資コメント生成のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	betausecase "stock_buddy/internal/feature/beta/usecase"
	portfolioentity "stock_buddy/internal/feature/portfolio/domain/entity"
)

// disclaimer はAIコメントの末尾に必ず付与する免責事項です。
const disclaimer = "※このコメントはAIによる参考情報であり、投資助言ではありません。投資判断はご自身の責任で行ってください。"

// ErrEmptyPortfolio はコメント対象の保有銘柄がない場合に返されます。
var ErrEmptyPortfolio = errors.New("portfolio is empty")

// HoldingReader は保有銘柄の読み取り層を抽象化します。
type HoldingReader interface {
	FindByUserID(ctx context.Context, userID uint) ([]portfolioentity.Holding, error)
}

// BetaSource は銘柄のベータ値を提供します。
type BetaSource interface {
	GetBeta(ctx context.Context, code, period string) (*betausecase.BetaReport, error)
}

// CommentGenerator はプロンプトからコメント本文を生成します。
// 実装はadapters/gemini（Google Gemini API）が提供します。
type CommentGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// adviceUsecase はポートフォリオの内容からAIコメントを生成するユースケースです。
type adviceUsecase struct {
	holdings  HoldingReader
	beta      BetaSource
	generator CommentGenerator
}

// NewAdviceUsecase はadviceUsecaseの新しいインスタンスを生成します。
func NewAdviceUsecase(holdings HoldingReader, beta BetaSource, generator CommentGenerator) *adviceUsecase {
	return &adviceUsecase{holdings: holdings, beta: beta, generator: generator}
}

// GetAdvice は保有銘柄とベータラベルからプロンプトを組み立て、
// 初心者向けの日本語コメントを生成します。末尾に免責事項を付与します。
func (au *adviceUsecase) GetAdvice(ctx context.Context, userID uint) (string, error) {
	holdings, err := au.holdings.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(holdings) == 0 {
		return "", ErrEmptyPortfolio
	}

	comment, err := au.generator.Generate(ctx, au.buildPrompt(ctx, holdings))
	if err != nil {
		return "", fmt.Errorf("failed to generate advice: %w", err)
	}

	return strings.TrimSpace(comment) + "\n\n" + disclaimer, nil
}

// buildPrompt は保有銘柄とベータラベルからGemini用のプロンプトを組み立てます。
// ベータ値が取得できない銘柄はラベルなしで列挙します。
func (au *adviceUsecase) buildPrompt(ctx context.Context, holdings []portfolioentity.Holding) string {
	var b strings.Builder
	b.WriteString("あなたは投資初心者向けのやさしいアシスタントです。")
	b.WriteString("以下のポートフォリオについて、専門用語を避けて300文字程度の日本語でコメントしてください。")
	b.WriteString("断定的な売買推奨はしないでください。\n\n保有銘柄:\n")

	for _, h := range holdings {
		fmt.Fprintf(&b, "- %s（%.0f株、平均取得単価%.1f円）", h.Symbol, h.Quantity, h.AvgCost)
		if report, err := au.beta.GetBeta(ctx, h.Symbol, ""); err == nil {
			fmt.Fprintf(&b, " ベータ値%.2f（%s）", report.Beta, report.Label)
		}
		b.WriteString("\n")
	}
	return b.String()
}
