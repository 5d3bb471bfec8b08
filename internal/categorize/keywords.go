package categorize

import "github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"

// keywordCategoryMap maps lowercase statement keywords to canonical
// categories. Substring matching, so keep entries lowercase and specific
// enough not to fire on unrelated lines.
var keywordCategoryMap = map[string]string{
	// Food delivery and dining out
	"swiggy":     core.CategoryFood,
	"zomato":     core.CategoryFood,
	"restaurant": core.CategoryFood,
	"dominos":    core.CategoryFood,
	"mcdonald":   core.CategoryFood,
	"cafe":       core.CategoryFood,

	// Transport
	"uber":   core.CategoryTransport,
	"ola":    core.CategoryTransport,
	"rapido": core.CategoryTransport,
	"petrol": core.CategoryTransport,
	"fuel":   core.CategoryTransport,
	"metro":  core.CategoryTransport,

	// Shopping
	"amazon":   core.CategoryShopping,
	"flipkart": core.CategoryShopping,
	"myntra":   core.CategoryShopping,
	"ajio":     core.CategoryShopping,

	// Subscriptions
	"netflix":      core.CategorySubscriptions,
	"spotify":      core.CategorySubscriptions,
	"prime":        core.CategorySubscriptions,
	"hotstar":      core.CategorySubscriptions,
	"subscription": core.CategorySubscriptions,

	// Housing
	"rent":        core.CategoryHousing,
	"maintenance": core.CategoryHousing,

	// Loans
	"emi":  core.CategoryLoans,
	"loan": core.CategoryLoans,

	// Groceries
	"grocery":   core.CategoryGroceries,
	"bigbasket": core.CategoryGroceries,
	"blinkit":   core.CategoryGroceries,
	"zepto":     core.CategoryGroceries,
	"dmart":     core.CategoryGroceries,

	// Utilities
	"electricity": core.CategoryUtilities,
	"water bill":  core.CategoryUtilities,
	"gas bill":    core.CategoryUtilities,
	"broadband":   core.CategoryUtilities,
	"recharge":    core.CategoryUtilities,
	"wifi":        core.CategoryUtilities,
}

// Keywords returns the keyword table. Exposed for the categorize preview
// endpoint and for tests; callers must not mutate it.
func Keywords() map[string]string {
	return keywordCategoryMap
}
