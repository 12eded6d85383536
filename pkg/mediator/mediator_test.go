package mediator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribers(t *testing.T) {
	m := New()
	owner := &struct{}{}

	var got []any
	m.Subscribe("login", owner, func(data any) { got = append(got, data) })

	m.Publish("login", "user-1")
	m.Publish("logout", "user-1")
	require.Equal(t, []any{"user-1"}, got)
}

func TestSubscribeIsIdempotentPerOwnerAndHandler(t *testing.T) {
	m := New()
	owner := &struct{}{}

	calls := 0
	fn := func(any) { calls++ }
	m.Subscribe("tick", owner, fn)
	m.Subscribe("tick", owner, fn)
	require.Equal(t, 1, m.SubscriberCount("tick"))

	m.Publish("tick", nil)
	require.Equal(t, 1, calls)
}

func TestSubscribeKeepsDistinctClosuresWithOneBody(t *testing.T) {
	m := New()
	owner := &struct{}{}

	var hits []string
	for _, label := range []string{"first", "second"} {
		m.Subscribe("tick", owner, func(any) { hits = append(hits, label) })
	}
	require.Equal(t, 2, m.SubscriberCount("tick"))

	m.Publish("tick", nil)
	require.Equal(t, []string{"first", "second"}, hits)
}

func TestUnsubscribeAllDropsEveryTopic(t *testing.T) {
	m := New()
	a, b := &struct{}{}, &struct{}{}

	fn := func(any) {}
	m.Subscribe("tick", a, fn)
	m.Subscribe("tock", a, fn)
	m.Subscribe("tick", b, fn)

	m.UnsubscribeAll(a)
	require.Equal(t, 1, m.SubscriberCount("tick"))
	require.Equal(t, 0, m.SubscriberCount("tock"))
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	m := New()
	owner := &struct{}{}

	calls := 0
	var fn Handler
	fn = func(any) {
		calls++
		m.Unsubscribe("tick", owner, fn)
	}
	m.Subscribe("tick", owner, fn)

	m.Publish("tick", nil)
	m.Publish("tick", nil)
	require.Equal(t, 1, calls)
}

func TestDefaultIsProcessWideAndResettable(t *testing.T) {
	ResetDefault()
	t.Cleanup(ResetDefault)

	first := Default()
	require.Same(t, first, Default())

	ResetDefault()
	require.NotSame(t, first, Default())
}
