package core

import "strings"

// Type filter values accepted by Filter.
const (
	FilterAll      = "all"
	FilterTransfer = "transfer"
)

// Filter narrows a tagged transaction collection by type and free-text
// search term. It is pure and order-preserving.
//
// The "transfer" filter selects every transfer-shaped record; any other
// non-"all" value selects regular records whose kind equals it. The
// search term matches case-insensitive substrings against kind-specific
// fields only: source/destination account name and notes for transfers,
// category name and notes for regular transactions. An empty term is a
// no-op.
func Filter(items []TaggedTransaction, typeFilter, term string) []TaggedTransaction {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]TaggedTransaction, 0, len(items))
	for _, tt := range items {
		if !matchesType(tt, typeFilter) {
			continue
		}
		if term != "" && !matchesTerm(tt, term) {
			continue
		}
		out = append(out, tt)
	}
	return out
}

func matchesType(tt TaggedTransaction, typeFilter string) bool {
	switch typeFilter {
	case "", FilterAll:
		return true
	case FilterTransfer:
		return tt.Tag == TagTransfer
	default:
		return tt.Tag == TagRegular && tt.Regular != nil && string(tt.Regular.Kind) == typeFilter
	}
}

func matchesTerm(tt TaggedTransaction, term string) bool {
	contains := func(field string) bool {
		return strings.Contains(strings.ToLower(field), term)
	}
	if tt.Tag == TagTransfer && tt.Transfer != nil {
		return contains(tt.Transfer.FromAccountName) ||
			contains(tt.Transfer.ToAccountName) ||
			contains(tt.Transfer.Notes)
	}
	if tt.Regular != nil {
		return contains(tt.Regular.CategoryName) || contains(tt.Regular.Notes)
	}
	return false
}
