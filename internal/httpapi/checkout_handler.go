package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dkrasnov/go_storefront/internal/cart"
	"github.com/dkrasnov/go_storefront/internal/checkout"
)

type CheckoutHandler struct {
	flow    *checkout.Flow
	store   *cart.Store
	timeout time.Duration
}

func NewCheckoutHandler(flow *checkout.Flow, store *cart.Store, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		flow:    flow,
		store:   store,
		timeout: timeout,
	}
}

type CheckoutStateResponse struct {
	Step       string            `json:"step"`
	Processing bool              `json:"processing"`
	Cart       CartResponse      `json:"cart"`
	Receipt    *checkout.Receipt `json:"receipt,omitempty"`
}

type PaymentErrorsResponse struct {
	Errors checkout.FieldErrors `json:"errors"`
}

func (h *CheckoutHandler) state() CheckoutStateResponse {
	return CheckoutStateResponse{
		Step:       h.flow.Step().String(),
		Processing: h.flow.Processing(),
		Cart:       toCartResponse(h.store.Get()),
		Receipt:    h.flow.Receipt(),
	}
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.state())
}

// Proceed moves summary -> payment. An empty cart blocks entry here, in the
// presentation layer, before the flow is touched. A flow left on the
// confirmation of a completed order is reset first, so one purchase never
// blocks the next.
func (h *CheckoutHandler) Proceed(w http.ResponseWriter, r *http.Request) {
	if h.store.Get().IsEmpty() {
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty, add items before checkout")
		return
	}

	if h.flow.Step().IsTerminal() {
		if err := h.flow.Reset(); err != nil {
			handleFlowError(w, err)
			return
		}
	}

	if err := h.flow.ProceedToPayment(); err != nil {
		handleFlowError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.state())
}

func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	if err := h.flow.BackToSummary(); err != nil {
		handleFlowError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.state())
}

func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var form checkout.PaymentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	fieldErrs, err := h.flow.SubmitPayment(ctx, form)
	if err != nil {
		handleFlowError(w, err)
		return
	}
	if len(fieldErrs) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, PaymentErrorsResponse{Errors: fieldErrs})
		return
	}

	respondJSON(w, http.StatusOK, h.state())
}

func handleFlowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty, add items before checkout")
	case errors.Is(err, checkout.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", "checkout step does not allow this action")
	case errors.Is(err, checkout.ErrProcessing):
		respondError(w, http.StatusConflict, "processing", "payment is already processing")
	case errors.Is(err, checkout.ErrSettlementFailed):
		respondError(w, http.StatusBadGateway, "settlement_failed", "payment could not be processed, please try again")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
