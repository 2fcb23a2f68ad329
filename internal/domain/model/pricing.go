package model

// Totals holds the money amounts derived from an order's lines.
type Totals struct {
	Subtotal    float64
	TotalAmount float64
	TotalCost   float64
	Profit      float64
	Discount    Discount
	Tax         Tax
}

// ComputeTotals derives order totals from priced lines. The subtotal is the
// sum of line totals; a percentage discount is resolved against the subtotal,
// tax against the discounted amount. Profit is revenue minus cost minus
// discount and is tracked separately from the customer-facing total.
func ComputeTotals(lines []OrderLine, discount Discount, tax Tax) Totals {
	var subtotal, cost float64
	for _, line := range lines {
		subtotal += line.LineTotal
		cost += line.CostPrice * float64(line.Quantity)
	}

	if discount.Percentage > 0 {
		discount.Amount += subtotal * discount.Percentage / 100
	}
	if discount.Amount > subtotal {
		discount.Amount = subtotal
	}

	discounted := subtotal - discount.Amount
	if tax.Percentage > 0 {
		tax.Amount = discounted * tax.Percentage / 100
	}

	return Totals{
		Subtotal:    subtotal,
		TotalAmount: discounted + tax.Amount,
		TotalCost:   cost,
		Profit:      subtotal - cost - discount.Amount,
		Discount:    discount,
		Tax:         tax,
	}
}
