package core

import "sort"

// Merge tags both record shapes, concatenates them and returns the
// combined sequence sorted by date descending (most recent first). The
// sort is stable, so records sharing an instant keep their fetch order:
// regulars before transfers.
func Merge(regulars []Transaction, transfers []Transfer) []TaggedTransaction {
	merged := make([]TaggedTransaction, 0, len(regulars)+len(transfers))
	for i := range regulars {
		merged = append(merged, TaggedTransaction{Tag: TagRegular, Regular: &regulars[i]})
	}
	for i := range transfers {
		merged = append(merged, TaggedTransaction{Tag: TagTransfer, Transfer: &transfers[i]})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date().After(merged[j].Date())
	})
	return merged
}

// OnlyExpenses extracts the regular expense transactions from a merged
// sequence. Budget matching operates on this subset.
func OnlyExpenses(items []TaggedTransaction) []Transaction {
	var out []Transaction
	for _, tt := range items {
		if tt.Tag == TagRegular && tt.Regular != nil && tt.Regular.Kind == Expense {
			out = append(out, *tt.Regular)
		}
	}
	return out
}

// MergeCategories combines the shared default categories with the
// user-owned ones (defaults first, no de-duplication; colliding names
// may both appear) and sorts ascending by case-folded name.
func MergeCategories(defaults, owned []Category) []Category {
	merged := make([]Category, 0, len(defaults)+len(owned))
	merged = append(merged, defaults...)
	merged = append(merged, owned...)
	sort.SliceStable(merged, func(i, j int) bool {
		return foldName(merged[i].Name) < foldName(merged[j].Name)
	})
	return merged
}
