package core

import "testing"

func TestFinancialRecord_MonthlyExpenses(t *testing.T) {
	tests := []struct {
		name   string
		record FinancialRecord
		want   float64
	}{
		{
			name:   "empty record - zero expenses",
			record: FinancialRecord{},
			want:   0,
		},
		{
			name: "all dashboard cost fields counted",
			record: FinancialRecord{
				Food:      8000,
				Rent:      15000,
				Transport: 3000,
				Utilities: 1500,
				Misc:      2000,
			},
			want: 29500,
		},
		{
			name: "shopping and subscriptions excluded from aggregate",
			record: FinancialRecord{
				Food:          8000,
				Shopping:      4000,
				Subscriptions: 900,
			},
			want: 8000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.MonthlyExpenses(); got != tt.want {
				t.Errorf("MonthlyExpenses() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFinancialRecord_NetWorth(t *testing.T) {
	rec := FinancialRecord{
		Savings:        50000,
		Stocks:         30000,
		RealEstate:     20000,
		LoanAmount:     60000,
		CreditCardDebt: 10000,
	}

	if got := rec.Assets(); got != 100000 {
		t.Errorf("Assets() = %v, want 100000", got)
	}
	if got := rec.Liabilities(); got != 70000 {
		t.Errorf("Liabilities() = %v, want 70000", got)
	}
	if got := rec.NetWorth(); got != 30000 {
		t.Errorf("NetWorth() = %v, want 30000", got)
	}

	// Net worth is the only figure allowed to go negative
	underwater := FinancialRecord{Savings: 1000, LoanAmount: 5000}
	if got := underwater.NetWorth(); got != -4000 {
		t.Errorf("NetWorth() = %v, want -4000", got)
	}
}

func TestFinancialRecord_RetirementMonths(t *testing.T) {
	tests := []struct {
		name   string
		record FinancialRecord
		want   int
	}{
		{name: "no age - no horizon", record: FinancialRecord{}, want: 0},
		{name: "default target 60", record: FinancialRecord{Age: 30}, want: 360},
		{name: "explicit target", record: FinancialRecord{Age: 40, RetirementAge: 65}, want: 300},
		{name: "already past target", record: FinancialRecord{Age: 62}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.RetirementMonths(); got != tt.want {
				t.Errorf("RetirementMonths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFinancialRecord_ApplyCategories(t *testing.T) {
	rec := FinancialRecord{Income: 50000, Rent: 10000, Food: 5000}

	merged := rec.ApplyCategories(CategoryAmountMap{
		CategoryHousing:   12000,
		CategoryLoans:     4500,
		CategoryUtilities: 1800,
	})

	if merged.Rent != 12000 {
		t.Errorf("Rent = %v, want 12000 (Housing overwrites)", merged.Rent)
	}
	if merged.EMI != 4500 {
		t.Errorf("EMI = %v, want 4500 (Loans feeds installment)", merged.EMI)
	}
	if merged.Utilities != 1800 {
		t.Errorf("Utilities = %v, want 1800", merged.Utilities)
	}
	// Untouched categories keep prior values
	if merged.Food != 5000 {
		t.Errorf("Food = %v, want 5000 (not re-detected)", merged.Food)
	}
	if merged.Income != 50000 {
		t.Errorf("Income = %v, want 50000 (never touched by categories)", merged.Income)
	}
	// Original record untouched (value semantics)
	if rec.Rent != 10000 {
		t.Errorf("original Rent mutated to %v", rec.Rent)
	}
}
