package core

import (
	"errors"
	"time"
)

// Canonical expense categories. Every keyword hit in the categorizer maps
// onto one of these; nothing else can appear as a CategoryAmountMap key.
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryShopping      = "Shopping"
	CategorySubscriptions = "Subscriptions"
	CategoryHousing       = "Housing"
	CategoryLoans         = "Loans"
	CategoryGroceries     = "Groceries"
	CategoryUtilities     = "Utilities"
)

// Categories lists the canonical category names in display order.
func Categories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategorySubscriptions,
		CategoryHousing,
		CategoryLoans,
		CategoryGroceries,
		CategoryUtilities,
	}
}

// CategoryAmountMap maps a canonical category name to a non-negative
// accumulated amount. Built fresh per recognition pass.
type CategoryAmountMap map[string]float64

var (
	ErrNoRecord       = errors.New("no financial record found")
	ErrEmptyStatement = errors.New("empty statement text")
)

// FinancialRecord is one person's self-reported (or OCR-derived) snapshot.
// All fields are optional; zero means "not provided" and is treated as zero
// for arithmetic. Monetary amounts are in the caller's currency unit.
type FinancialRecord struct {
	Income float64 `json:"income,omitempty"`

	// Monthly costs
	Rent          float64 `json:"rent,omitempty"`
	Food          float64 `json:"food,omitempty"`
	Transport     float64 `json:"transport,omitempty"`
	Utilities     float64 `json:"utilities,omitempty"`
	Misc          float64 `json:"misc,omitempty"`
	Shopping      float64 `json:"shopping,omitempty"`
	Subscriptions float64 `json:"subscriptions,omitempty"`
	Groceries     float64 `json:"groceries,omitempty"`

	// Assets
	Savings       float64 `json:"savings,omitempty"`
	FixedDeposits float64 `json:"fd,omitempty"`
	Stocks        float64 `json:"stocks,omitempty"`
	Crypto        float64 `json:"crypto,omitempty"`
	RealEstate    float64 `json:"realEstate,omitempty"`

	// Liabilities
	LoanAmount     float64 `json:"loanAmount,omitempty"`
	EMI            float64 `json:"emi,omitempty"`
	CreditCardDebt float64 `json:"creditCardDebt,omitempty"`

	// Personal
	Age           int    `json:"age,omitempty"`
	Profession    string `json:"profession,omitempty"`
	RiskTolerance string `json:"risk,omitempty"`

	// Retirement planning (optional)
	RetirementAge  int     `json:"retirementAge,omitempty"`
	CurrentSavings float64 `json:"currentSavings,omitempty"`
}

// MonthlyExpenses aggregates the cost fields that count toward the dashboard
// expense figure: food, rent, transport, utilities and miscellaneous.
func (r FinancialRecord) MonthlyExpenses() float64 {
	return r.Food + r.Rent + r.Transport + r.Utilities + r.Misc
}

// MonthlySaving is income minus aggregated monthly expenses. May be negative.
func (r FinancialRecord) MonthlySaving() float64 {
	return r.Income - r.MonthlyExpenses()
}

// Assets sums all asset fields.
func (r FinancialRecord) Assets() float64 {
	return r.Savings + r.FixedDeposits + r.Stocks + r.Crypto + r.RealEstate
}

// Liabilities sums all liability fields.
func (r FinancialRecord) Liabilities() float64 {
	return r.LoanAmount + r.CreditCardDebt
}

// NetWorth is assets minus liabilities; the only monetary figure allowed to
// go negative.
func (r FinancialRecord) NetWorth() float64 {
	return r.Assets() - r.Liabilities()
}

// RetirementMonths returns the number of months until the retirement age,
// defaulting the target to 60 when not provided. Zero when the age fields
// don't yield a positive horizon.
func (r FinancialRecord) RetirementMonths() int {
	target := r.RetirementAge
	if target == 0 {
		target = 60
	}
	if r.Age <= 0 || target <= r.Age {
		return 0
	}
	return (target - r.Age) * 12
}

// ApplyCategories merges OCR-derived category amounts into the record,
// overwriting only the fields a category was re-detected for. The mapping
// mirrors the statement upload flow: Housing feeds rent, Loans feeds the
// monthly installment.
func (r FinancialRecord) ApplyCategories(categories CategoryAmountMap) FinancialRecord {
	for category, amount := range categories {
		switch category {
		case CategoryFood:
			r.Food = amount
		case CategoryTransport:
			r.Transport = amount
		case CategoryShopping:
			r.Shopping = amount
		case CategorySubscriptions:
			r.Subscriptions = amount
		case CategoryHousing:
			r.Rent = amount
		case CategoryLoans:
			r.EMI = amount
		case CategoryGroceries:
			r.Groceries = amount
		case CategoryUtilities:
			r.Utilities = amount
		}
	}
	return r
}

// InsightResult is the immutable outcome of one analysis pass. It is only
// ever replaced wholesale, never mutated in place.
type InsightResult struct {
	HealthScore      int      `json:"healthScore"`
	DebtToAssetRatio float64  `json:"debtToAssetRatio"`
	MonthlyBurn      float64  `json:"monthlyBurn"`
	NetWorth         float64  `json:"netWorth"`
	SavingsRate      string   `json:"savingsRate"`
	SuggestedChanges []string `json:"suggestedChanges"`
	Summary          string   `json:"summary"`
	AISummary        string   `json:"aiSummary,omitempty"`
}

// ForecastPoint is one charting sample: a date-or-period label and a value.
type ForecastPoint struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// ForecastSeries is a time-ordered sequence of points for one forecast kind.
// It is rebuilt entirely on each fetch.
type ForecastSeries []ForecastPoint

// Statement is a raw uploaded statement text awaiting (or past)
// categorization.
type Statement struct {
	ID        string
	RawText   string
	Status    string
	CreatedAt time.Time
}

// Statement processing states.
const (
	StatementPending   = "pending"
	StatementProcessed = "processed"
	StatementFailed    = "failed"
)
