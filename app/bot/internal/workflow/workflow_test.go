package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_RunsStepsInOrder(t *testing.T) {
	var order []string
	w := New("login", nil).
		AddStep("connect", func(context.Context) error { order = append(order, "connect"); return nil }).
		AddStep("handshake", func(context.Context) error { order = append(order, "handshake"); return nil })

	require.NoError(t, w.Run(context.Background()))
	assert.Equal(t, []string{"connect", "handshake"}, order)
	assert.Equal(t, StatusSuccess, w.Status())
	assert.Equal(t, 2, w.Current())
}

func TestWorkflow_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	w := New("retry", nil).AddStep("flaky", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	}, WithRetries(3, time.Millisecond))

	require.NoError(t, w.Run(context.Background()))
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, w.Steps()[0].Attempts())
}

func TestWorkflow_RetriesExhausted(t *testing.T) {
	boom := errors.New("connection refused")
	w := New("retry", nil).AddStep("dial", func(context.Context) error { return boom }, WithRetries(2, time.Millisecond))

	err := w.Run(context.Background())
	assert.True(t, errors.Is(err, ErrStepFailed))
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, 3, w.Steps()[0].Attempts())
	assert.Equal(t, StatusFailure, w.Steps()[0].Status())
	assert.Equal(t, StatusFailure, w.Status())
}

func TestWorkflow_PermanentSkipsRetries(t *testing.T) {
	calls := 0
	w := New("auth", nil).AddStep("handshake", func(context.Context) error {
		calls++
		return Permanent(errors.New("server requires authentication"))
	}, WithRetries(5, time.Millisecond))

	err := w.Run(context.Background())
	assert.True(t, errors.Is(err, ErrPermanent))
	assert.Equal(t, 1, calls)
}

func TestWorkflow_StepTimeout(t *testing.T) {
	w := New("slow", nil).AddStep("wait", func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		return nil
	}, WithTimeout(10*time.Millisecond))

	err := w.Run(context.Background())
	assert.True(t, errors.Is(err, ErrStepTimeout))
}

func TestWorkflow_Reset(t *testing.T) {
	w := New("reset", nil).AddStep("noop", func(context.Context) error { return nil })
	require.NoError(t, w.Run(context.Background()))

	w.Reset()
	assert.Equal(t, StatusPending, w.Status())
	assert.Equal(t, 0, w.Current())
	assert.Equal(t, 0, w.Steps()[0].Attempts())
	assert.Equal(t, "Pending", w.Steps()[0].Status().String())
}
