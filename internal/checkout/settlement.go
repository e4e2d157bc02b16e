package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settler charges the payment method and returns a transaction id.
type Settler interface {
	Settle(ctx context.Context, amount decimal.Decimal) (string, error)
}

// SimulatedSettler waits out a fixed delay and always succeeds. Failure
// paths are exercised through test doubles of the Settler interface.
type SimulatedSettler struct {
	Delay time.Duration
}

func (s SimulatedSettler) Settle(ctx context.Context, _ decimal.Decimal) (string, error) {
	select {
	case <-time.After(s.Delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return fmt.Sprintf("TXN-%s", uuid.NewString()), nil
}
