package events

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-vista/vista/pkg/errors"
)

func TestOnEmitOff(t *testing.T) {
	e := NewEmitter()
	owner := &struct{}{}

	var got []any
	fn := func(data any) { got = append(got, data) }

	require.NoError(t, e.On("ping", owner, fn))
	e.Emit("ping", 1)
	e.Emit("ping", 2)
	require.Equal(t, []any{1, 2}, got)

	e.Off("ping", owner, fn)
	e.Emit("ping", 3)
	require.Equal(t, []any{1, 2}, got)
}

func TestOnReplacesDuplicateRegistration(t *testing.T) {
	e := NewEmitter()
	owner := &struct{}{}

	calls := 0
	fn := func(any) { calls++ }

	require.NoError(t, e.On("ping", owner, fn))
	require.NoError(t, e.On("ping", owner, fn))
	require.Equal(t, 1, e.ListenerCount("ping"))

	e.Emit("ping", nil)
	require.Equal(t, 1, calls)
}

func TestOnKeepsDistinctClosuresWithOneBody(t *testing.T) {
	e := NewEmitter()
	owner := &struct{}{}

	var hits []string
	for _, label := range []string{"first", "second"} {
		require.NoError(t, e.On("ping", owner, func(any) {
			hits = append(hits, label)
		}))
	}
	require.Equal(t, 2, e.ListenerCount("ping"))

	e.Emit("ping", nil)
	require.Equal(t, []string{"first", "second"}, hits)
}

func TestSameHandlerDifferentOwners(t *testing.T) {
	e := NewEmitter()
	a, b := &struct{}{}, &struct{}{}

	calls := 0
	fn := func(any) { calls++ }

	require.NoError(t, e.On("ping", a, fn))
	require.NoError(t, e.On("ping", b, fn))
	require.Equal(t, 2, e.ListenerCount("ping"))

	e.OffOwner(a)
	require.Equal(t, 1, e.ListenerCount("ping"))
	e.Emit("ping", nil)
	require.Equal(t, 1, calls)
}

func TestOffUnknownHandlerIsNoop(t *testing.T) {
	e := NewEmitter()
	e.Off("ping", &struct{}{}, func(any) {})
	require.Equal(t, 0, e.ListenerCount("ping"))
}

func TestDestroyFiresDestroyEventOnce(t *testing.T) {
	e := NewEmitter()
	owner := &struct{}{}

	fires := 0
	require.NoError(t, e.On(EventDestroy, owner, func(data any) {
		fires++
		require.Same(t, e, data)
	}))

	e.Destroy()
	e.Destroy()
	require.Equal(t, 1, fires)
	require.True(t, e.Destroyed())
}

func TestOnAfterDestroyFails(t *testing.T) {
	e := NewEmitter()
	e.Destroy()

	err := e.On("ping", &struct{}{}, func(any) {})
	require.ErrorIs(t, err, errors.ErrEmitterDestroyed)

	// Off and Emit against a destroyed emitter stay silent so that bulk
	// teardown of sibling bindings can proceed.
	e.Off("ping", &struct{}{}, func(any) {})
	e.Emit("ping", nil)
}

func TestHandlerMayRemoveItselfDuringEmit(t *testing.T) {
	e := NewEmitter()
	owner := &struct{}{}

	calls := 0
	var fn Handler
	fn = func(any) {
		calls++
		e.Off("ping", owner, fn)
	}
	require.NoError(t, e.On("ping", owner, fn))

	e.Emit("ping", nil)
	e.Emit("ping", nil)
	require.Equal(t, 1, calls)
}

func TestEmbeddedEmitterZeroValue(t *testing.T) {
	type job struct {
		EventEmitter
		name string
	}
	j := &job{name: "build"}

	seen := ""
	require.NoError(t, j.On("done", t, func(data any) { seen = data.(string) }))
	j.Emit("done", j.name)
	require.Equal(t, "build", seen)
}
