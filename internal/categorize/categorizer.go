// Package categorize converts raw statement text into accumulated amounts
// per canonical expense category.
//
// The pipeline is intentionally forgiving: it never fails, and degenerate
// input (no keywords, no digits) simply yields an empty or zero-valued map.
package categorize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

var (
	// Currency-prefixed amounts win: a symbol or short abbreviation,
	// optionally followed by a period and/or space, then 2-6 digits.
	currencyAmountRe = regexp.MustCompile(`(?i)(?:rs\.?|inr\.?|₹)\s?(\d{2,6})`)

	// Fallback: the first bare run of 3-6 consecutive digits on the line.
	bareAmountRe = regexp.MustCompile(`\d{3,6}`)
)

// Categorize scans raw statement text line by line and accumulates amounts
// into canonical categories. A line matching keywords of two different
// categories contributes its amount to both; that over-counting is part of
// the contract, not a defect. A keyword match always creates the category
// key, even when no amount could be extracted from the line.
func Categorize(rawText string) core.CategoryAmountMap {
	categorized := core.CategoryAmountMap{}
	if rawText == "" {
		return categorized
	}

	for _, line := range strings.Split(rawText, "\n") {
		line = strings.ToLower(line)
		for keyword, category := range keywordCategoryMap {
			if strings.Contains(line, keyword) {
				categorized[category] += estimateAmount(line)
			}
		}
	}

	return categorized
}

// estimateAmount extracts the monetary amount from a lowercased line,
// preferring a currency-prefixed number over a bare digit run. Lines with
// neither contribute zero.
func estimateAmount(line string) float64 {
	if m := currencyAmountRe.FindStringSubmatch(line); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return v
		}
	}
	if m := bareAmountRe.FindString(line); m != "" {
		v, err := strconv.ParseFloat(m, 64)
		if err == nil {
			return v
		}
	}
	return 0
}
