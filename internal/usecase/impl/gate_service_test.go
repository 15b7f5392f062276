package impl

import (
	"context"
	"testing"
	"time"

	"folio/config"
	domainerrors "folio/internal/domain/errors"
	"folio/internal/infra/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T, verifier *fakeChallengeVerifier) (*gateService, *session.Store) {
	t.Helper()

	store := session.NewStore(time.Hour, testLogger())
	srv := newGateService(store, verifier, config.GateConfig{
		RescueInterval: 5 * time.Millisecond,
		RescueAttempts: 10,
	}, testLogger())
	t.Cleanup(func() { close(srv.done) })

	return srv, store
}

func TestGateService_SuccessUnlocks(t *testing.T) {
	srv, store := newTestGate(t, &fakeChallengeVerifier{accept: map[string]bool{"tok": true}})
	sess := store.Create()

	require.NoError(t, srv.Success(context.Background(), sess.ID, "tok"))

	status := srv.Status(context.Background(), sess.ID)
	assert.True(t, status.Verified)
	assert.Empty(t, status.Message)
}

func TestGateService_RejectedTokenStaysLocked(t *testing.T) {
	srv, store := newTestGate(t, &fakeChallengeVerifier{})
	sess := store.Create()

	err := srv.Success(context.Background(), sess.ID, "bad")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CHALLENGE_REJECTED", appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "invalid-input-response")

	assert.False(t, srv.Status(context.Background(), sess.ID).Verified)
}

func TestGateService_ExpiredRelocksWithMessage(t *testing.T) {
	srv, store := newTestGate(t, &fakeChallengeVerifier{accept: map[string]bool{"tok": true}})
	sess := store.Create()

	require.NoError(t, srv.Success(context.Background(), sess.ID, "tok"))
	srv.Expired(sess.ID)

	status := srv.Status(context.Background(), sess.ID)
	assert.False(t, status.Verified)
	assert.Equal(t, msgExpired, status.Message)
}

func TestGateService_RescueUnlocksFromCapturedToken(t *testing.T) {
	verifier := &fakeChallengeVerifier{accept: map[string]bool{"hidden": true}}
	srv, store := newTestGate(t, verifier)
	sess := store.Create()

	// First status sighting arms the rescue poll.
	assert.False(t, srv.Status(context.Background(), sess.ID).Verified)

	// The widget wrote its token into the hidden input but the success
	// callback never fired.
	srv.CaptureToken(sess.ID, "hidden")

	require.Eventually(t, func() bool {
		got, ok := store.Get(sess.ID)

		return ok && got.Verified
	}, time.Second, 2*time.Millisecond)

	// Unlock happened exactly once: the poll stops after it.
	calls := verifier.verifyCalls()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, verifier.verifyCalls())
}

func TestGateService_RescueBudgetExhausts(t *testing.T) {
	verifier := &fakeChallengeVerifier{}
	srv, store := newTestGate(t, verifier)
	sess := store.Create()

	srv.Status(context.Background(), sess.ID)

	// No token ever appears; the poll must terminate on its own.
	require.Eventually(t, func() bool {
		srv.mu.Lock()
		defer srv.mu.Unlock()

		_, running := srv.polling[sess.ID]

		return !running
	}, time.Second, 5*time.Millisecond)

	assert.Zero(t, verifier.verifyCalls())
	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.False(t, got.Verified)
}

func TestGateService_CaptureDuringRescueIsSafe(t *testing.T) {
	verifier := &fakeChallengeVerifier{accept: map[string]bool{"final": true}}
	store := session.NewStore(time.Hour, testLogger())
	srv := newGateService(store, verifier, config.GateConfig{
		RescueInterval: 2 * time.Millisecond,
		RescueAttempts: 500,
	}, testLogger())
	t.Cleanup(func() { close(srv.done) })
	sess := store.Create()

	// The page posts captured tokens while the rescue poll is reading
	// them; session state moves only through the store, so the two sides
	// never touch shared memory.
	srv.Status(context.Background(), sess.ID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			srv.CaptureToken(sess.ID, "stale")
			time.Sleep(time.Millisecond)
		}
		srv.CaptureToken(sess.ID, "final")
	}()

	<-done
	require.Eventually(t, func() bool {
		got, ok := store.Get(sess.ID)

		return ok && got.Verified
	}, time.Second, 2*time.Millisecond)
}

func TestGateService_RescueArmsOnlyOnce(t *testing.T) {
	srv, store := newTestGate(t, &fakeChallengeVerifier{})
	sess := store.Create()

	srv.Status(context.Background(), sess.ID)
	srv.Status(context.Background(), sess.ID)

	srv.mu.Lock()
	assert.Len(t, srv.polling, 1)
	srv.mu.Unlock()
}
