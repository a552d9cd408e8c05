package booking

import "github.com/wrnass1/hotelbooking/internal/domain"

// PricingCalculator derives a stay total from a room's nightly rate.
type PricingCalculator interface {
	// Quote returns the total price in cents for the given stay.
	Quote(nightlyRateCents int64, stay StayDates) (int64, error)
}

// NightlyPricingCalculator is the standard calculator: total equals the
// nightly rate multiplied by the number of whole nights. All arithmetic is
// fixed point in cents.
type NightlyPricingCalculator struct{}

// NewNightlyPricingCalculator creates a NightlyPricingCalculator.
func NewNightlyPricingCalculator() *NightlyPricingCalculator {
	return &NightlyPricingCalculator{}
}

// Quote computes the stay total. Callers validate date ordering before
// pricing; the calculator re-asserts the invariant rather than trusting it.
func (c *NightlyPricingCalculator) Quote(nightlyRateCents int64, stay StayDates) (int64, error) {
	if nightlyRateCents <= 0 {
		return 0, domain.NewValidationError("nightly rate must be positive")
	}
	nights := stay.Nights()
	if nights <= 0 {
		return 0, domain.NewValidationError("stay must cover at least one night")
	}
	return nightlyRateCents * int64(nights), nil
}
