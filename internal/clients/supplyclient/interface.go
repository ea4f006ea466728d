package supplyclient

import (
	"context"

	"github.com/shopspring/decimal"
)

//go:generate mockery --name=SupplyInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_supply_client.go
type SupplyInterface interface {
	// GetAvailableSupply returns the circulating token supply in whole tokens.
	GetAvailableSupply(ctx context.Context) (decimal.Decimal, error)
}
