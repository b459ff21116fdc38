package services

import (
	"fmt"
	"sync"
)

// CheckoutState is one of the states a checkout attempt moves through while
// the hosted payment form collects the payment.
type CheckoutState string

const (
	StateIdle           CheckoutState = "idle"
	StateFetchingSecret CheckoutState = "fetching_secret"
	StateReady          CheckoutState = "ready"
	StateSubmitting     CheckoutState = "submitting"
	StateSucceededLocal CheckoutState = "succeeded_local"
	StateRequiresAction CheckoutState = "requires_action"
	StateFailed         CheckoutState = "failed"
)

// User-facing messages for provider-reported intent statuses. These match
// the storefront copy shown after confirmation or on redirect return.
const (
	MsgSucceeded             = "Payment succeeded!"
	MsgProcessing            = "Your payment is processing."
	MsgRequiresPaymentMethod = "Your payment was not successful, please try again."
	MsgUnknown               = "Something went wrong."
)

// MapIntentStatus translates a provider intent status (as reported on a
// redirect return) into the user-facing message.
func MapIntentStatus(status string) string {
	switch status {
	case "succeeded":
		return MsgSucceeded
	case "processing":
		return MsgProcessing
	case "requires_payment_method":
		return MsgRequiresPaymentMethod
	default:
		return MsgUnknown
	}
}

// CheckoutFlow tracks one checkout attempt through the payment widget's
// lifecycle. The finalize callback fires exactly once, on the first
// synchronous success; a failed confirmation returns the flow to ready so the
// customer can retry. The callback is UX-side finalization only; the order
// is marked paid solely by the verified provider webhook.
type CheckoutFlow struct {
	mu        sync.Mutex
	state     CheckoutState
	finalized bool
	onSuccess func()
}

func NewCheckoutFlow(onSuccess func()) *CheckoutFlow {
	return &CheckoutFlow{state: StateIdle, onSuccess: onSuccess}
}

func (f *CheckoutFlow) State() CheckoutState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Start begins fetching a client secret. Only valid from idle, and only for
// a positive amount.
func (f *CheckoutFlow) Start(amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle {
		return f.invalid("start")
	}
	if MinorUnits(amount) <= 0 {
		return fmt.Errorf("checkout requires a positive amount")
	}
	f.state = StateFetchingSecret
	return nil
}

// SecretReceived renders the payment form bound to the received secret.
func (f *CheckoutFlow) SecretReceived() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateFetchingSecret {
		return f.invalid("secret received")
	}
	f.state = StateReady
	return nil
}

// Submit hands confirmation to the provider's client library.
func (f *CheckoutFlow) Submit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateReady {
		return f.invalid("submit")
	}
	f.state = StateSubmitting
	return nil
}

// ConfirmationResult applies the provider's confirmation outcome and returns
// the user-facing message.
func (f *CheckoutFlow) ConfirmationResult(status, providerMessage string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSubmitting {
		return "", f.invalid("confirmation result")
	}

	switch status {
	case "succeeded":
		f.state = StateSucceededLocal
		if !f.finalized && f.onSuccess != nil {
			f.finalized = true
			f.onSuccess()
		}
		return MsgSucceeded, nil
	case "requires_action":
		// Out-of-band step (e.g. bank authentication); the flow resumes from
		// the redirect-return query parameters on next load.
		f.state = StateRequiresAction
		return MsgProcessing, nil
	default:
		// Card or validation error: surface the provider message verbatim
		// and allow a retry.
		f.state = StateReady
		if providerMessage == "" {
			providerMessage = MsgUnknown
		}
		return providerMessage, nil
	}
}

func (f *CheckoutFlow) invalid(event string) error {
	return fmt.Errorf("invalid checkout transition: %s in state %s", event, f.state)
}
