package common

import (
	"fmt"
	"tms/src/types"
)

// Commission policy: platform keeps 10% of the booking total. Carried in
// basis points so the rounding stays in integer arithmetic.
const (
	COMMISSION_RATE_BPS int64 = 1000
	GATEWAY_FEE         int64 = 0
)

// Quote holds a booking price breakdown in minor currency units (centavos).
type Quote struct {
	Total      int64 `json:"total"`
	Commission int64 `json:"commission"`
	GatewayFee int64 `json:"gateway_fee"`
	NetToHost  int64 `json:"net_to_host"`
}

// ComputeQuote prices a booking of numPeople at pricePerPerson centavos each.
// Total == Commission + NetToHost + GatewayFee holds exactly; commission is
// rounded half-up to the centavo.
func ComputeQuote(pricePerPerson int64, numPeople uint) (*Quote, error) {
	if pricePerPerson < 0 {
		return nil, fmt.Errorf("%w: price per person must not be negative", types.ErrInvalidInput)
	}
	if numPeople < 1 {
		return nil, fmt.Errorf("%w: num_people must be at least 1", types.ErrInvalidInput)
	}
	total := pricePerPerson * int64(numPeople)
	commission := (total*COMMISSION_RATE_BPS + 5000) / 10000
	net := total - commission - GATEWAY_FEE
	return &Quote{
		Total:      total,
		Commission: commission,
		GatewayFee: GATEWAY_FEE,
		NetToHost:  net,
	}, nil
}
