package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"LithiumHedge/internal/domain/models"
	applogger "LithiumHedge/pkg/logger"
)

// ReportBuilder aggregates the calculators into a plain-text narrative.
type ReportBuilder struct {
	hedge    *HedgeCalculator
	exposure *ExposureCalculator
	scenario *ScenarioComparator
	basis    *BasisAnalyzer
	rec      recorder
}

// NewReportBuilder wires the report aggregator.
func NewReportBuilder(
	hedge *HedgeCalculator,
	exposure *ExposureCalculator,
	scenario *ScenarioComparator,
	basis *BasisAnalyzer,
	logger *applogger.Logger,
) *ReportBuilder {
	return &ReportBuilder{
		hedge:    hedge,
		exposure: exposure,
		scenario: scenario,
		basis:    basis,
		rec:      recorder{logger: logger},
	}
}

// Build runs the requested analyses and renders one narrative report.
// The hedge section is mandatory; exposure and basis are included when
// their inputs are present.
func (r *ReportBuilder) Build(ctx context.Context, userID string, req models.ReportRequest) (string, error) {
	result, _, err := r.hedge.Compute(ctx, userID, req.Hedge.Input())
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Lithium Carbonate Hedge Analysis Report\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().UTC().Format("2006-01-02 15:04 MST"))

	fmt.Fprintf(&b, "1. Hedge position\n")
	fmt.Fprintf(&b, "   Symbol %s, latest close %.0f (%s, %s)\n",
		result.Symbol, result.CurrentPrice, result.LatestDate.Format("2006-01-02"), result.PriceSource)
	fmt.Fprintf(&b, "   Contracts: %.1f (rounded to %d), margin requirement %.0f\n",
		result.HedgeContracts, result.HedgeContractsInt, result.TotalMargin)
	fmt.Fprintf(&b, "   Unrealized inventory P&L %.0f (%.1f%%)\n", result.CurrentProfit, result.ProfitPercentage)
	if result.FullyHedged {
		fmt.Fprintf(&b, "   Position is fully hedged: P&L is invariant to price moves\n")
	} else {
		fmt.Fprintf(&b, "   Breakeven without hedge %.0f, with hedge %.0f\n",
			result.NoHedgeBreakeven, result.HedgeBreakeven)
	}
	fmt.Fprintf(&b, "   Coverage assessment: %s\n\n", advisory(result.RiskBand))

	if req.Exposure != nil {
		exp, err := r.exposure.Compute(ctx, userID, models.ExposureInput{
			FuturePurchase: req.Exposure.FuturePurchase,
			Inventory:      req.Exposure.Inventory,
			LockedSales:    req.Exposure.LockedSales,
		})
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "2. Exposure\n")
		fmt.Fprintf(&b, "   Net exposure %.0f tons (%s risk, direction: %s)\n",
			exp.NetExposure, exp.RiskLevel, exp.Direction)
		fmt.Fprintf(&b, "   Cost impact per 10k yuan/ton move: %.0f yuan\n\n", exp.ImpactPer10K)
	} else {
		fmt.Fprintf(&b, "2. Exposure: not assessed\n\n")
	}

	rows, err := r.scenario.Compare(ctx, userID, req.Hedge.Input(), req.CustomShock)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "3. Scenario comparison\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "   %-12s future price %.0f, P&L unhedged %.0f / hedged %.0f\n",
			row.Name, row.FuturePrice, row.NoHedgeProfit, row.HedgeProfit)
	}
	b.WriteString("\n")

	if req.SpotPrice > 0 {
		basis, err := r.basis.Basis(ctx, req.Hedge.Symbol, req.SpotPrice, "3m")
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "4. Basis\n")
		fmt.Fprintf(&b, "   Latest basis %.0f (futures %.0f vs spot %.0f), 3-month mean %.0f\n\n",
			basis.Latest.Basis, basis.Latest.Futures, basis.SpotReference, basis.MeanBasis)
	} else {
		fmt.Fprintf(&b, "4. Basis: not assessed\n\n")
	}

	b.WriteString("Note: widening basis erodes hedge efficiency; choose futures or options\n")
	b.WriteString("according to the exposure direction and review the position monthly.\n")

	report := b.String()
	r.rec.record(ctx, userID, models.AnalysisReport, req, map[string]int{"length": len(report)})
	return report, nil
}

func advisory(band models.RiskBand) string {
	switch band {
	case models.RiskExtreme:
		return "hedge ratio extremely low, exposure is nearly unhedged"
	case models.RiskElevated:
		return "hedge ratio low, significant exposure remains"
	case models.RiskModerate:
		return "hedge ratio moderate, partial protection in place"
	case models.RiskAdequate:
		return "hedge ratio adequate for the stated inventory"
	default:
		return "position is over-hedged relative to inventory"
	}
}
