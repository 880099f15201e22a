package services

import (
	"time"

	"github.com/shopspring/decimal"
)

var msPerHour = decimal.NewFromInt(3600000)

// Quote is a priced time window.
type Quote struct {
	Hours decimal.Decimal
	Total decimal.Decimal
}

// PricingCalculator converts a start/end instant pair into billable hours and
// a total price at a fixed hourly rate.
type PricingCalculator struct {
	rate     decimal.Decimal
	currency string
}

func NewPricingCalculator(hourlyRate float64, currency string) *PricingCalculator {
	return &PricingCalculator{
		rate:     decimal.NewFromFloat(hourlyRate),
		currency: currency,
	}
}

func (c *PricingCalculator) Currency() string {
	return c.currency
}

// Price returns the quote for the window. A window whose end does not come
// after its start quotes zero hours and zero total; rejecting that input is
// the caller's job. Both instants must be in the same reference frame, the
// difference is pure wall clock.
func (c *PricingCalculator) Price(start, end time.Time) Quote {
	if !end.After(start) {
		return Quote{Hours: decimal.Zero, Total: decimal.Zero}
	}

	hours := decimal.NewFromInt(end.Sub(start).Milliseconds()).Div(msPerHour)

	return Quote{
		Hours: hours,
		Total: hours.Mul(c.rate),
	}
}
