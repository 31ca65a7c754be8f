package common

import (
	"errors"
	"testing"
	"tms/src/types"

	"github.com/stretchr/testify/assert"
)

func TestComputeQuote(t *testing.T) {
	// R$250.00 per person, 4 travelers: R$1000.00 total, R$100.00 commission,
	// R$900.00 to the host.
	quote, err := ComputeQuote(25000, 4)
	assert.Nil(t, err)
	assert.Equal(t, int64(100000), quote.Total)
	assert.Equal(t, int64(10000), quote.Commission)
	assert.Equal(t, int64(90000), quote.NetToHost)
	assert.Equal(t, int64(0), quote.GatewayFee)
}

func TestComputeQuoteInvalidInput(t *testing.T) {
	_, err := ComputeQuote(-1, 2)
	assert.True(t, errors.Is(err, types.ErrInvalidInput))

	_, err = ComputeQuote(10000, 0)
	assert.True(t, errors.Is(err, types.ErrInvalidInput))
}

func TestComputeQuoteZeroPrice(t *testing.T) {
	quote, err := ComputeQuote(0, 3)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), quote.Total)
	assert.Equal(t, int64(0), quote.Commission)
	assert.Equal(t, int64(0), quote.NetToHost)
}

func TestComputeQuoteExactBreakdown(t *testing.T) {
	// The breakdown must add back up to the total for awkward prices too.
	prices := []int64{1, 99, 333, 12345, 25000, 9999999}
	for _, price := range prices {
		for people := uint(1); people <= 12; people++ {
			quote, err := ComputeQuote(price, people)
			assert.Nil(t, err)
			assert.Equal(t, quote.Total, quote.Commission+quote.NetToHost+quote.GatewayFee,
				"breakdown drift at price=%d people=%d", price, people)
			assert.GreaterOrEqual(t, quote.Commission, int64(0))
			assert.GreaterOrEqual(t, quote.NetToHost, int64(0))
		}
	}
}

func TestComputeQuoteCommissionMonotonic(t *testing.T) {
	var prev int64 = -1
	for people := uint(1); people <= 30; people++ {
		quote, err := ComputeQuote(3333, people)
		assert.Nil(t, err)
		assert.GreaterOrEqual(t, quote.Commission, prev)
		prev = quote.Commission
	}
}

func TestComputeQuoteRounding(t *testing.T) {
	// 10% of 5 centavos is 0.5, rounded half-up to 1.
	quote, err := ComputeQuote(5, 1)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), quote.Commission)
	assert.Equal(t, int64(4), quote.NetToHost)
	assert.Equal(t, quote.Total, quote.Commission+quote.NetToHost)
}
