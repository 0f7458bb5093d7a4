package service

import (
	"math"

	"chowline/internal/model"
)

// pricedLine is one order line with its references resolved, ready for
// totalling.
type pricedLine struct {
	quantity   int
	attributes []model.Attribute
	product    model.Product
}

// lineTotals computes the customer-facing price and internal cost of one
// line. Attribute prices contribute once per line regardless of quantity;
// only the product-level price scales with quantity. Sized products price
// through their attribute, and the product term covers products ordered
// without a size.
func lineTotals(line pricedLine) (price, cost float64) {
	for _, a := range line.attributes {
		price += a.Price
		cost += a.Cost
	}

	qty := float64(line.quantity)
	price += qty * line.product.Price
	cost += qty * line.product.Cost

	return price, cost
}

// orderTotals sums line totals into the order aggregates.
func orderTotals(lines []pricedLine) (totalPrice, totalCost float64) {
	for _, line := range lines {
		p, c := lineTotals(line)
		totalPrice += p
		totalCost += c
	}
	return totalPrice, totalCost
}

// checkTotals guards the aggregates: a non-finite or negative total means
// corrupt catalogue data upstream and must never be persisted.
func checkTotals(totalPrice, totalCost float64) error {
	for _, v := range []float64{totalPrice, totalCost} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return model.ErrCalculation
		}
	}
	return nil
}
