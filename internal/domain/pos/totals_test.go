package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	sale := Sale{
		Items: []SaleItem{
			{Quantity: 2, UnitPriceUSD: 3.50},
			{Quantity: 1, UnitPriceUSD: 10.00},
		},
		DiscountUSD: 2.00,
	}

	ComputeTotals(&sale, 0.16)

	assert.Equal(t, 7.00, sale.Items[0].LineTotalUSD)
	assert.Equal(t, 10.00, sale.Items[1].LineTotalUSD)
	assert.Equal(t, 17.00, sale.SubtotalUSD)
	assert.Equal(t, 2.40, sale.TaxUSD)  // (17 - 2) * 0.16
	assert.Equal(t, 17.40, sale.TotalUSD)
}

func TestComputeTotalsNoTax(t *testing.T) {
	sale := Sale{
		Items: []SaleItem{{Quantity: 3, UnitPriceUSD: 1.99}},
	}

	ComputeTotals(&sale, 0)

	assert.Equal(t, 5.97, sale.SubtotalUSD)
	assert.Equal(t, 0.0, sale.TaxUSD)
	assert.Equal(t, 5.97, sale.TotalUSD)
}

func TestComputeTotalsClampsDiscount(t *testing.T) {
	sale := Sale{
		Items:       []SaleItem{{Quantity: 1, UnitPriceUSD: 5.00}},
		DiscountUSD: 20.00,
	}

	ComputeTotals(&sale, 0.16)

	assert.Equal(t, 5.00, sale.DiscountUSD)
	assert.Equal(t, 0.0, sale.TaxUSD)
	assert.Equal(t, 0.0, sale.TotalUSD)
}

func TestComputeTotalsRoundsCents(t *testing.T) {
	sale := Sale{
		Items: []SaleItem{{Quantity: 3, UnitPriceUSD: 0.333}},
	}

	ComputeTotals(&sale, 0)

	assert.Equal(t, 1.00, sale.Items[0].LineTotalUSD)
	assert.Equal(t, 1.00, sale.TotalUSD)
}
