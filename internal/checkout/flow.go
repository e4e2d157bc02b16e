package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dkrasnov/go_storefront/internal/cart"
	"github.com/google/uuid"
)

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrIllegalTransition = errors.New("illegal checkout step transition")
	ErrProcessing        = errors.New("payment already processing")
	ErrSettlementFailed  = errors.New("payment settlement failed")
)

// Receipt records a completed checkout.
type Receipt struct {
	OrderID       string    `json:"order_id"`
	TransactionID string    `json:"transaction_id"`
	Total         float64   `json:"total"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Flow drives one checkout through summary -> payment -> confirmation.
// The cart is only cleared after settlement succeeds; every failure path
// leaves it untouched. While a submission is processing, resubmission and
// back-navigation are rejected.
type Flow struct {
	store   *cart.Store
	settler Settler

	mu         sync.Mutex
	step       Step
	processing bool
	receipt    *Receipt
}

func NewFlow(store *cart.Store, settler Settler) *Flow {
	return &Flow{
		store:   store,
		settler: settler,
		step:    StepSummary,
	}
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Flow) Processing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processing
}

func (f *Flow) Receipt() *Receipt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.receipt
}

// Reset returns the flow to summary so a new checkout can start, clearing
// any receipt from a completed one. A flow that is mid-settlement cannot
// be reset.
func (f *Flow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing {
		return ErrProcessing
	}

	f.step = StepSummary
	f.receipt = nil
	return nil
}

func (f *Flow) ProceedToPayment() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !CanTransition(f.step, StepPayment) {
		return ErrIllegalTransition
	}
	if f.store.Get().IsEmpty() {
		return ErrEmptyCart
	}

	f.step = StepPayment
	return nil
}

func (f *Flow) BackToSummary() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing {
		return ErrProcessing
	}
	if !CanTransition(f.step, StepSummary) {
		return ErrIllegalTransition
	}

	f.step = StepSummary
	return nil
}

// SubmitPayment validates the form and, when it passes, settles and
// completes the checkout. A non-empty FieldErrors return means the form was
// rejected and nothing changed.
func (f *Flow) SubmitPayment(ctx context.Context, form PaymentForm) (FieldErrors, error) {
	f.mu.Lock()
	if f.step != StepPayment {
		f.mu.Unlock()
		return nil, ErrIllegalTransition
	}
	if f.processing {
		f.mu.Unlock()
		return nil, ErrProcessing
	}

	if fieldErrs := Validate(form); len(fieldErrs) > 0 {
		f.mu.Unlock()
		return fieldErrs, nil
	}

	snapshot := f.store.Get()
	if snapshot.IsEmpty() {
		f.mu.Unlock()
		return nil, ErrEmptyCart
	}
	total := snapshot.TotalPriceDecimal()

	f.processing = true
	f.mu.Unlock()

	// Settlement runs without the lock so the step stays readable while
	// the simulated charge is in flight.
	txnID, err := f.settler.Settle(ctx, total)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.processing = false

	if err != nil {
		log.Printf("settlement failed for total %s: %v", total, err)
		return nil, fmt.Errorf("%w: %v", ErrSettlementFailed, err)
	}

	f.store.Clear(ctx)
	totalF, _ := total.Float64()
	f.receipt = &Receipt{
		OrderID:       uuid.NewString(),
		TransactionID: txnID,
		Total:         totalF,
		CompletedAt:   time.Now(),
	}
	f.step = StepConfirmation

	return nil, nil
}
