package callstate_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arijiittt/kalp-airdrop/internal/callstate"
)

func TestTracker(t *testing.T) {
	t.Run("starts idle with no error", func(t *testing.T) {
		tracker := callstate.NewTracker()

		snapshot := tracker.Snapshot()
		assert.Equal(t, callstate.StateIdle, snapshot.State)
		assert.False(t, snapshot.Loading())
		assert.NoError(t, tracker.Err())
	})

	t.Run("is pending with a cleared error while the call runs", func(t *testing.T) {
		tracker := callstate.NewTracker()
		tracker.Finish(errors.New("stale error from a previous call"))

		_, err := callstate.Track(tracker, func() (string, error) {
			assert.True(t, tracker.Loading())
			assert.NoError(t, tracker.Err())
			return "ok", nil
		})
		require.NoError(t, err)

		snapshot := tracker.Snapshot()
		assert.Equal(t, callstate.StateSucceeded, snapshot.State)
		assert.False(t, snapshot.Loading())
	})

	t.Run("records the failure and returns the error unchanged", func(t *testing.T) {
		tracker := callstate.NewTracker()
		opErr := errors.New("account not found")

		_, err := callstate.Track(tracker, func() (string, error) {
			return "", opErr
		})
		require.ErrorIs(t, err, opErr)

		snapshot := tracker.Snapshot()
		assert.Equal(t, callstate.StateFailed, snapshot.State)
		assert.False(t, snapshot.Loading())
		assert.ErrorIs(t, tracker.Err(), opErr)
	})

	t.Run("next call resets the error", func(t *testing.T) {
		tracker := callstate.NewTracker()

		_, _ = callstate.Track(tracker, func() (string, error) {
			return "", errors.New("first call failed")
		})
		require.Error(t, tracker.Err())

		_, err := callstate.Track(tracker, func() (string, error) {
			return "ok", nil
		})
		require.NoError(t, err)
		assert.NoError(t, tracker.Err())
	})
}

func TestSubscribe(t *testing.T) {
	t.Run("observers see the pending and terminal transitions", func(t *testing.T) {
		tracker := callstate.NewTracker()
		updates, unsubscribe := tracker.Subscribe()
		defer unsubscribe()

		opErr := errors.New("gateway unreachable")
		_, _ = callstate.Track(tracker, func() (string, error) {
			return "", opErr
		})

		first := <-updates
		assert.Equal(t, callstate.StatePending, first.State)
		assert.NoError(t, first.Err)

		second := <-updates
		assert.Equal(t, callstate.StateFailed, second.State)
		assert.ErrorIs(t, second.Err, opErr)
	})

	t.Run("no updates are delivered after unsubscribe", func(t *testing.T) {
		tracker := callstate.NewTracker()
		updates, unsubscribe := tracker.Subscribe()

		unsubscribe()
		_, _ = callstate.Track(tracker, func() (string, error) {
			return "ok", nil
		})

		snapshot, open := <-updates
		assert.False(t, open)
		assert.Equal(t, callstate.StateIdle, snapshot.State)
	})

	t.Run("unsubscribing twice is a no-op", func(t *testing.T) {
		tracker := callstate.NewTracker()
		_, unsubscribe := tracker.Subscribe()

		unsubscribe()
		assert.NotPanics(t, unsubscribe)
	})

	t.Run("a slow observer never blocks the call", func(t *testing.T) {
		tracker := callstate.NewTracker()
		_, unsubscribe := tracker.Subscribe()
		defer unsubscribe()

		done := make(chan struct{})
		go func() {
			// Nobody drains the channel; transitions beyond its buffer are dropped
			for i := 0; i < 32; i++ {
				_, _ = callstate.Track(tracker, func() (string, error) {
					return "ok", nil
				})
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("tracked calls blocked on an undrained subscriber")
		}
	})
}
