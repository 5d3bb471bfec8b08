// Package insight computes deterministic financial health metrics and
// combines them with an optional AI-generated narrative.
package insight

import (
	"fmt"
	"math"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

// Penalty thresholds for the health score. Each penalty is applied
// independently; all of them can stack on one record.
const (
	minSavingsRate = 0.10
	maxDebtRatio   = 0.50
	maxEMIBurden   = 0.40
	minIncome      = 20000
)

// Advisory strings, appended in the fixed order the conditions are checked.
const (
	adviceSavingsRate = "Increase savings to at least 10% of your income."
	adviceDebtRatio   = "Reduce liabilities to improve debt-to-asset ratio."
	adviceEMIBurden   = "EMI burden is high. Consider refinancing or repaying loans early."
	adviceNetWorth    = "Net worth is negative. Focus on reducing debt and increasing assets."
	adviceIncome      = "Consider upskilling or seeking higher-paying opportunities."
)

const (
	summaryPositive = "You're saving money. Keep going!"
	summaryNegative = "You're overspending. Reduce your expenses."
)

// ComputeMetrics derives the local health metrics from a record. Pure
// function: no I/O, never fails, all divisions guarded. Zero income means a
// zero savings rate and maximal EMI burden; zero assets means maximal debt
// ratio.
func ComputeMetrics(rec core.FinancialRecord) core.InsightResult {
	income := rec.Income
	expenses := rec.MonthlyExpenses()
	assets := rec.Assets()
	liabilities := rec.Liabilities()

	savings := income - expenses
	netWorth := assets - liabilities

	savingsRate := 0.0
	if income > 0 {
		savingsRate = savings / income
	}
	debtRatio := 1.0
	if assets > 0 {
		debtRatio = liabilities / assets
	}
	emiBurden := 1.0
	if income > 0 {
		emiBurden = liabilities / income
	}

	healthScore := 100
	var suggested []string

	if savingsRate < minSavingsRate {
		healthScore -= 20
		suggested = append(suggested, adviceSavingsRate)
	}
	if debtRatio > maxDebtRatio {
		healthScore -= 20
		suggested = append(suggested, adviceDebtRatio)
	}
	if emiBurden > maxEMIBurden {
		healthScore -= 20
		suggested = append(suggested, adviceEMIBurden)
	}
	if netWorth < 0 {
		healthScore -= 20
		suggested = append(suggested, adviceNetWorth)
	}
	if income < minIncome {
		healthScore -= 10
		suggested = append(suggested, adviceIncome)
	}

	if healthScore < 0 {
		healthScore = 0
	}
	if healthScore > 100 {
		healthScore = 100
	}

	summary := summaryNegative
	if savings > 0 {
		summary = summaryPositive
	}

	return core.InsightResult{
		HealthScore:      healthScore,
		DebtToAssetRatio: round2(debtRatio * 100),
		MonthlyBurn:      expenses,
		NetWorth:         netWorth,
		SavingsRate:      fmt.Sprintf("%.2f%%", savingsRate*100),
		SuggestedChanges: suggested,
		Summary:          summary,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
