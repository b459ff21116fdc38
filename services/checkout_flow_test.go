package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutFlow_SuccessFinalizesOnce(t *testing.T) {
	finalized := 0
	flow := NewCheckoutFlow(func() { finalized++ })

	require.NoError(t, flow.Start(25.50))
	require.NoError(t, flow.SecretReceived())
	require.NoError(t, flow.Submit())

	msg, err := flow.ConfirmationResult("succeeded", "")
	require.NoError(t, err)
	assert.Equal(t, MsgSucceeded, msg)
	assert.Equal(t, StateSucceededLocal, flow.State())
	assert.Equal(t, 1, finalized, "finalization callback fires exactly once")

	// A replayed confirmation is an invalid transition and must not
	// finalize again.
	_, err = flow.ConfirmationResult("succeeded", "")
	assert.Error(t, err)
	assert.Equal(t, 1, finalized)
}

func TestCheckoutFlow_FailureReturnsToReadyForRetry(t *testing.T) {
	finalized := 0
	flow := NewCheckoutFlow(func() { finalized++ })

	require.NoError(t, flow.Start(10))
	require.NoError(t, flow.SecretReceived())
	require.NoError(t, flow.Submit())

	msg, err := flow.ConfirmationResult("card_error", "Your card has insufficient funds.")
	require.NoError(t, err)
	assert.Equal(t, "Your card has insufficient funds.", msg, "provider message surfaced verbatim")
	assert.Equal(t, StateReady, flow.State())
	assert.Zero(t, finalized, "no finalization on failure")

	// Retry succeeds this time.
	require.NoError(t, flow.Submit())
	_, err = flow.ConfirmationResult("succeeded", "")
	require.NoError(t, err)
	assert.Equal(t, 1, finalized)
}

func TestCheckoutFlow_RequiresAction(t *testing.T) {
	finalized := 0
	flow := NewCheckoutFlow(func() { finalized++ })

	require.NoError(t, flow.Start(10))
	require.NoError(t, flow.SecretReceived())
	require.NoError(t, flow.Submit())

	_, err := flow.ConfirmationResult("requires_action", "")
	require.NoError(t, err)
	assert.Equal(t, StateRequiresAction, flow.State())
	assert.Zero(t, finalized)
}

func TestCheckoutFlow_RejectsNonPositiveAmount(t *testing.T) {
	flow := NewCheckoutFlow(nil)
	assert.Error(t, flow.Start(0))
	assert.Error(t, flow.Start(-12.50))
	assert.Equal(t, StateIdle, flow.State())
}

func TestCheckoutFlow_InvalidTransitions(t *testing.T) {
	flow := NewCheckoutFlow(nil)

	assert.Error(t, flow.Submit(), "submit before start")
	assert.Error(t, flow.SecretReceived(), "secret before start")

	require.NoError(t, flow.Start(10))
	assert.Error(t, flow.Start(10), "double start")
	_, err := flow.ConfirmationResult("succeeded", "")
	assert.Error(t, err, "confirmation before submit")
}

func TestMapIntentStatus(t *testing.T) {
	cases := map[string]string{
		"succeeded":               MsgSucceeded,
		"processing":              MsgProcessing,
		"requires_payment_method": MsgRequiresPaymentMethod,
		"canceled":                MsgUnknown,
		"":                        MsgUnknown,
	}
	for status, want := range cases {
		assert.Equal(t, want, MapIntentStatus(status), "status %q", status)
	}
}
