package service

import (
	"math"
	"testing"

	"chowline/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTotals_AttributePriceNotScaledByQuantity(t *testing.T) {
	// The variant surcharge applies once per line; only the base product
	// price scales with quantity.
	line := pricedLine{
		quantity:   2,
		attributes: []model.Attribute{{ID: "a1", Price: 5, Cost: 3}},
		product:    model.Product{ID: "p1", Price: 5, Cost: 2},
	}

	price, cost := lineTotals(line)

	assert.Equal(t, 15.0, price) // 5 + 2*5, not 2*(5+5)
	assert.Equal(t, 7.0, cost)   // 3 + 2*2
}

func TestLineTotals_MultipleAttributes(t *testing.T) {
	line := pricedLine{
		quantity: 3,
		attributes: []model.Attribute{
			{ID: "a1", Price: 10, Cost: 4},
			{ID: "a2", Price: 20, Cost: 6},
		},
		product: model.Product{ID: "p1", Price: 100, Cost: 50},
	}

	price, cost := lineTotals(line)

	assert.Equal(t, 330.0, price) // 10+20 + 3*100
	assert.Equal(t, 160.0, cost)  // 4+6 + 3*50
}

func TestLineTotals_NoProduct(t *testing.T) {
	// Lines priced purely from attributes: the zero-value product
	// contributes nothing regardless of quantity.
	line := pricedLine{
		quantity:   4,
		attributes: []model.Attribute{{ID: "a1", Price: 25, Cost: 10}},
	}

	price, cost := lineTotals(line)

	assert.Equal(t, 25.0, price)
	assert.Equal(t, 10.0, cost)
}

func TestOrderTotals_SumsLines(t *testing.T) {
	lines := []pricedLine{
		{quantity: 1, attributes: []model.Attribute{{Price: 5, Cost: 2}}, product: model.Product{Price: 10, Cost: 4}},
		{quantity: 2, attributes: nil, product: model.Product{Price: 7, Cost: 3}},
	}

	price, cost := orderTotals(lines)

	assert.Equal(t, 29.0, price) // (5+10) + (2*7)
	assert.Equal(t, 12.0, cost)  // (2+4) + (2*3)
}

func TestOrderTotals_Empty(t *testing.T) {
	price, cost := orderTotals(nil)

	assert.Equal(t, 0.0, price)
	assert.Equal(t, 0.0, cost)
}

func TestCheckTotals(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		cost    float64
		wantErr bool
	}{
		{name: "valid totals", price: 100, cost: 40, wantErr: false},
		{name: "zero totals", price: 0, cost: 0, wantErr: false},
		{name: "NaN price", price: math.NaN(), cost: 0, wantErr: true},
		{name: "infinite price", price: math.Inf(1), cost: 0, wantErr: true},
		{name: "NaN cost", price: 10, cost: math.NaN(), wantErr: true},
		{name: "negative price", price: -1, cost: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkTotals(tt.price, tt.cost)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, model.ErrCalculation, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
