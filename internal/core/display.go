package core

// Amount color classes used by the rendering layer.
const (
	ColorPositive = "positive"
	ColorNegative = "negative"
	ColorNeutral  = "neutral"
)

// Display fallbacks for records missing category name or icon.
const (
	transferGlyph      = "⇄"
	defaultIncomeIcon  = "💰"
	defaultExpenseIcon = "💸"
	defaultIncomeName  = "Income"
	defaultExpenseName = "Expense"
)

// DisplayIcon derives the list icon for either shape. Transfers always
// get the bidirectional glyph; regular transactions fall back to a
// kind-default when the category icon is absent.
func (tt TaggedTransaction) DisplayIcon() string {
	if tt.Tag == TagTransfer && tt.Transfer != nil {
		return transferGlyph
	}
	if tt.Regular != nil {
		if tt.Regular.CategoryIcon != "" {
			return tt.Regular.CategoryIcon
		}
		if tt.Regular.Kind == Income {
			return defaultIncomeIcon
		}
	}
	return defaultExpenseIcon
}

// DisplayName derives the list label: "{source} → {destination}" for
// transfers, the category name (or kind default) otherwise.
func (tt TaggedTransaction) DisplayName() string {
	if tt.Tag == TagTransfer && tt.Transfer != nil {
		return tt.Transfer.FromAccountName + " → " + tt.Transfer.ToAccountName
	}
	if tt.Regular != nil {
		if tt.Regular.CategoryName != "" {
			return tt.Regular.CategoryName
		}
		if tt.Regular.Kind == Income {
			return defaultIncomeName
		}
	}
	return defaultExpenseName
}

// AmountColor maps the shape/kind to its color class: transfers are
// neutral, income positive, expense negative.
func (tt TaggedTransaction) AmountColor() string {
	if tt.Tag == TagTransfer {
		return ColorNeutral
	}
	if tt.Regular != nil && tt.Regular.Kind == Income {
		return ColorPositive
	}
	return ColorNegative
}

// AmountPrefix is the glyph shown before the raw amount: the transfer
// glyph, "+" for income, "-" for expense.
func (tt TaggedTransaction) AmountPrefix() string {
	if tt.Tag == TagTransfer {
		return transferGlyph
	}
	if tt.Regular != nil && tt.Regular.Kind == Income {
		return "+"
	}
	return "-"
}
