package categorize

import (
	"testing"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want core.CategoryAmountMap
	}{
		{
			name: "empty input - empty map",
			text: "",
			want: core.CategoryAmountMap{},
		},
		{
			name: "no keywords - empty map",
			text: "opening balance 45000\nclosing balance 43000",
			want: core.CategoryAmountMap{},
		},
		{
			name: "rent with currency prefix",
			text: "Rent paid Rs. 12000 today",
			want: core.CategoryAmountMap{core.CategoryHousing: 12000},
		},
		{
			name: "rupee symbol",
			text: "zomato ₹450 dinner",
			want: core.CategoryAmountMap{core.CategoryFood: 450},
		},
		{
			name: "currency-prefixed number beats earlier bare number",
			text: "swiggy order 4521 total rs 350",
			want: core.CategoryAmountMap{core.CategoryFood: 350},
		},
		{
			name: "bare digit fallback when no currency marker",
			text: "uber trip 1200",
			want: core.CategoryAmountMap{core.CategoryTransport: 1200},
		},
		{
			name: "two-digit amount allowed with currency prefix",
			text: "spotify rs 99",
			want: core.CategoryAmountMap{core.CategorySubscriptions: 99},
		},
		{
			name: "keyword match with no digits still creates the key",
			text: "rent due",
			want: core.CategoryAmountMap{core.CategoryHousing: 0},
		},
		{
			name: "line matching two categories contributes to both",
			text: "netflix via amazon pay rs. 649",
			want: core.CategoryAmountMap{
				core.CategorySubscriptions: 649,
				core.CategoryShopping:      649,
			},
		},
		{
			name: "amounts accumulate across lines",
			text: "swiggy rs 250\nzomato rs. 300\nuber ₹180",
			want: core.CategoryAmountMap{
				core.CategoryFood:      550,
				core.CategoryTransport: 180,
			},
		},
		{
			name: "mixed case keywords and markers",
			text: "NETFLIX RENEWAL RS.649",
			want: core.CategoryAmountMap{core.CategorySubscriptions: 649},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Categorize() = %v, want %v", got, tt.want)
			}
			for category, amount := range tt.want {
				gotAmount, ok := got[category]
				if !ok {
					t.Errorf("missing category %q in %v", category, got)
					continue
				}
				if gotAmount != amount {
					t.Errorf("category %q = %v, want %v", category, gotAmount, amount)
				}
			}
		})
	}
}

func TestCategorize_OnlyCanonicalCategories(t *testing.T) {
	canonical := make(map[string]bool)
	for _, c := range core.Categories() {
		canonical[c] = true
	}

	for keyword, category := range Keywords() {
		if !canonical[category] {
			t.Errorf("keyword %q maps to non-canonical category %q", keyword, category)
		}
	}
}

func TestEstimateAmount(t *testing.T) {
	tests := []struct {
		name string
		line string
		want float64
	}{
		{name: "rs with period and space", line: "paid rs. 12000", want: 12000},
		{name: "rs without period", line: "paid rs 500", want: 500},
		{name: "inr abbreviation", line: "inr 2500 debited", want: 2500},
		{name: "symbol no space", line: "₹750 transfer", want: 750},
		{name: "bare fallback", line: "payment 4300 done", want: 4300},
		{name: "two digits too short for fallback", line: "paid 42", want: 0},
		{name: "no digits", line: "pending payment", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateAmount(tt.line); got != tt.want {
				t.Errorf("estimateAmount(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
