package usecase

import (
	"context"
	"errors"
	"fmt"

	betausecase "stock_buddy/internal/feature/beta/usecase"
	"stock_buddy/internal/feature/portfolio/domain/entity"
	"stock_buddy/internal/shared/stats"
)

// 安全ルールの識別子。
const (
	RuleConcentration   = "concentration"
	RuleDiversification = "diversification"
	RuleHighBeta        = "high_beta"
)

// Thresholds は初心者向け安全ルールのしきい値です。
type Thresholds struct {
	MaxConcentration float64 // 1銘柄の取得額比率の上限（0〜1）
	MinHoldings      int     // 分散投資とみなす最低保有銘柄数
	MaxPortfolioBeta float64 // ポートフォリオ全体の推定ベータの上限
}

// DefaultThresholds は既定のしきい値を返します。
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxConcentration: 0.3,
		MinHoldings:      3,
		MaxPortfolioBeta: 1.5,
	}
}

// Finding は安全ルールチェックで検出された1件の注意事項です。
type Finding struct {
	Rule    string // ルール識別子
	Message string // 初心者向けの日本語メッセージ
}

// BetaSource は銘柄のベータ値を提供します。
// Goの慣例に従い、インターフェースは利用者（safetyUsecase）側で定義します。
type BetaSource interface {
	GetBeta(ctx context.Context, code, period string) (*betausecase.BetaReport, error)
}

// safetyUsecase はポートフォリオに対するしきい値ベースの安全ルールチェックです。
// 数十行の算術のみで、外部I/Oは保有銘柄とベータ値の取得だけです。
type safetyUsecase struct {
	holdings   HoldingRepository
	beta       BetaSource
	thresholds Thresholds
}

// NewSafetyUsecase はsafetyUsecaseの新しいインスタンスを生成します。
func NewSafetyUsecase(holdings HoldingRepository, beta BetaSource, thresholds Thresholds) *safetyUsecase {
	return &safetyUsecase{holdings: holdings, beta: beta, thresholds: thresholds}
}

// Check は指定ユーザーのポートフォリオに全安全ルールを適用し、
// 注意事項の一覧を返します。保有銘柄がない場合は空を返します。
func (su *safetyUsecase) Check(ctx context.Context, userID uint) ([]Finding, error) {
	holdings, err := su.holdings.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return nil, nil
	}

	findings := su.checkDiversification(holdings)
	findings = append(findings, su.checkConcentration(holdings)...)
	findings = append(findings, su.checkPortfolioBeta(ctx, holdings)...)
	return findings, nil
}

// checkDiversification は保有銘柄数が少なすぎないかをチェックします。
func (su *safetyUsecase) checkDiversification(holdings []entity.Holding) []Finding {
	if len(holdings) >= su.thresholds.MinHoldings {
		return nil
	}
	return []Finding{{
		Rule: RuleDiversification,
		Message: fmt.Sprintf("保有銘柄が%d銘柄のみです。%d銘柄以上への分散投資を検討しましょう。",
			len(holdings), su.thresholds.MinHoldings),
	}}
}

// checkConcentration は1銘柄への取得額の集中をチェックします。
func (su *safetyUsecase) checkConcentration(holdings []entity.Holding) []Finding {
	var total float64
	for _, h := range holdings {
		total += h.CostBasis()
	}
	if total <= 0 {
		return nil
	}

	var findings []Finding
	for _, h := range holdings {
		weight := h.CostBasis() / total
		if weight > su.thresholds.MaxConcentration {
			findings = append(findings, Finding{
				Rule: RuleConcentration,
				Message: fmt.Sprintf("%sに資産の%.0f%%が集中しています（上限の目安: %.0f%%）。",
					h.Symbol, weight*100, su.thresholds.MaxConcentration*100),
			})
		}
	}
	return findings
}

// checkPortfolioBeta は取得額加重のポートフォリオベータをチェックします。
// ベータ値が計算できない銘柄（データ不足）は加重平均から除外します。
// すべての銘柄でベータ値が得られない場合、このルールはスキップされます。
func (su *safetyUsecase) checkPortfolioBeta(ctx context.Context, holdings []entity.Holding) []Finding {
	var weightedBeta, coveredBasis float64
	for _, h := range holdings {
		report, err := su.beta.GetBeta(ctx, h.Symbol, "")
		if err != nil {
			if errors.Is(err, betausecase.ErrInsufficientData) {
				continue
			}
			// 価格取得の一時的な失敗でチェック全体を落とさない
			continue
		}
		weightedBeta += report.Beta * h.CostBasis()
		coveredBasis += h.CostBasis()
	}
	if coveredBasis <= 0 {
		return nil
	}

	portfolioBeta := stats.Round2(weightedBeta / coveredBasis)
	if portfolioBeta <= su.thresholds.MaxPortfolioBeta {
		return nil
	}
	return []Finding{{
		Rule: RuleHighBeta,
		Message: fmt.Sprintf("ポートフォリオ全体の値動きが市場より大きくなっています（推定ベータ: %.2f）。",
			portfolioBeta),
	}}
}
