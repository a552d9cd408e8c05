package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrnass1/hotelbooking/internal/domain"
)

func TestNightlyPricingCalculatorQuote(t *testing.T) {
	calc := NewNightlyPricingCalculator()

	stay := NewStayDates(date(2025, 6, 1), date(2025, 6, 4))
	total, err := calc.Quote(10000, stay)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), total)

	total, err = calc.Quote(7550, NewStayDates(date(2025, 6, 1), date(2025, 6, 2)))
	require.NoError(t, err)
	assert.Equal(t, int64(7550), total)
}

func TestNightlyPricingCalculatorRejectsBadInputs(t *testing.T) {
	calc := NewNightlyPricingCalculator()

	_, err := calc.Quote(0, NewStayDates(date(2025, 6, 1), date(2025, 6, 4)))
	assert.True(t, domain.IsValidation(err))

	_, err = calc.Quote(-100, NewStayDates(date(2025, 6, 1), date(2025, 6, 4)))
	assert.True(t, domain.IsValidation(err))

	_, err = calc.Quote(10000, NewStayDates(date(2025, 6, 4), date(2025, 6, 4)))
	assert.True(t, domain.IsValidation(err))
}
