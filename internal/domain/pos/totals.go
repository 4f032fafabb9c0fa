package pos

import "math"

// ComputeTotals fills per-line totals and the sale's subtotal/total from its
// items, the discount, and a tax rate applied after discount. All amounts
// are rounded to cents.
func ComputeTotals(sale *Sale, taxRate float64) {
	subtotal := 0.0
	for i := range sale.Items {
		it := &sale.Items[i]
		it.LineTotalUSD = roundCents(float64(it.Quantity) * it.UnitPriceUSD)
		subtotal += it.LineTotalUSD
	}
	sale.SubtotalUSD = roundCents(subtotal)

	if sale.DiscountUSD > sale.SubtotalUSD {
		sale.DiscountUSD = sale.SubtotalUSD
	}
	taxable := sale.SubtotalUSD - sale.DiscountUSD
	sale.TaxUSD = roundCents(taxable * taxRate)
	sale.TotalUSD = roundCents(taxable + sale.TaxUSD)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
