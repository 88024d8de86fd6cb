package cotask

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func silenceLogger(t *testing.T) {
	t.Helper()
	SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { SetLogger(nil) })
}

func TestThenReceivesValue(t *testing.T) {
	var got int
	FromValue(5).Then(func(v int) { got = v })
	require.Equal(t, 5, got)
}

func TestThenSkippedOnError(t *testing.T) {
	invoked := false
	FromError[int](errors.New("boom")).Then(func(int) { invoked = true })
	require.False(t, invoked)
}

func TestCatchingReceivesError(t *testing.T) {
	boom := errors.New("boom")
	var got error
	FromError[int](boom).Catching(func(err error) { got = err })
	require.ErrorIs(t, got, boom)
}

func TestCatchingSkippedOnSuccess(t *testing.T) {
	invoked := false
	FromValue(1).Catching(func(error) { invoked = true })
	require.False(t, invoked)
}

func TestFinallyFiresOnBothLegs(t *testing.T) {
	calls := 0
	FromValue(1).Finally(func() { calls++ })
	FromError[int](errors.New("boom")).Finally(func() { calls++ })
	require.Equal(t, 2, calls)
}

func TestSubscribersRunOnceEach(t *testing.T) {
	c, tk := NewCompleter[int]()

	thenCalls, finallyCalls := 0, 0
	tk.Then(func(int) { thenCalls++ }).Finally(func() { finallyCalls++ })
	c.Resolve(1)

	require.Equal(t, 1, thenCalls)
	require.Equal(t, 1, finallyCalls)
}

func TestPanickingThenDoesNotBreakSiblings(t *testing.T) {
	silenceLogger(t)

	c, tk := NewCompleter[int]()

	var order []string
	tk.Then(func(int) {
		order = append(order, "bad")
		panic("subscriber bug")
	})
	tk.Then(func(v int) { order = append(order, "good") })
	tk.Finally(func() { order = append(order, "finally") })

	// Must not panic out of Resolve: the subscriber's failure is contained.
	require.NotPanics(t, func() { c.Resolve(1) })
	require.Equal(t, []string{"bad", "good", "finally"}, order)
}

func TestPanickingCatchingIsContained(t *testing.T) {
	silenceLogger(t)

	c, tk := NewCompleter[int]()
	sibling := false
	tk.Catching(func(error) { panic("handler bug") })
	tk.Finally(func() { sibling = true })

	require.NotPanics(t, func() { c.Reject(errors.New("boom")) })
	require.True(t, sibling)
}

func TestSubscriberChainingReturnsReceiver(t *testing.T) {
	tk := FromValue(1)
	require.Same(t, tk, tk.Then(func(int) {}).Catching(func(error) {}).Finally(func() {}))
}

func TestErrorObservedByAllChannels(t *testing.T) {
	boom := errors.New("boom")
	tk := Run(func() (int, error) {
		return 0, boom
	})

	_, err := tk.GetResult()
	require.ErrorIs(t, err, boom)

	var caught error
	thenRan := false
	tk.Then(func(int) { thenRan = true }).Catching(func(err error) { caught = err })

	require.False(t, thenRan)
	require.ErrorIs(t, caught, boom)
}
