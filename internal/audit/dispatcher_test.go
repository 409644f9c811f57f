package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memWriter struct {
	mu     sync.Mutex
	events []Event
	block  chan struct{}
	err    error
}

func (w *memWriter) Write(_ context.Context, ev Event) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
	return w.err
}

func (w *memWriter) actions() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.events))
	for _, ev := range w.events {
		out = append(out, ev.Action)
	}
	return out
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	w := &memWriter{}
	d := NewDispatcher(w, zap.NewNop())

	d.Dispatch(Event{Action: "appointment_created"})
	d.Dispatch(Event{Action: "appointment_canceled"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.Equal(t, []string{"appointment_created", "appointment_canceled"}, w.actions())
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	w := &memWriter{block: make(chan struct{})}
	d := NewDispatcherSize(w, zap.NewNop(), 1)

	for i := 0; i < 10; i++ {
		d.Dispatch(Event{Action: "x"})
	}
	close(w.block)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	got := len(w.actions())
	assert.GreaterOrEqual(t, got, 1)
	assert.LessOrEqual(t, got, 2)
}

func TestDispatcherSurvivesWriterErrors(t *testing.T) {
	w := &memWriter{err: errors.New("db down")}
	d := NewDispatcher(w, nil)

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
	assert.Len(t, w.actions(), 2)
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	w := &memWriter{}
	d := NewDispatcher(w, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
	require.NoError(t, d.Close(ctx), "close twice")

	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "late"}) })
	assert.Empty(t, w.actions())
}

func TestDispatchRacingClose(t *testing.T) {
	d := NewDispatcher(&memWriter{}, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				d.Dispatch(Event{Action: "x"})
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, d.Close(ctx))
	wg.Wait()
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "a"}) })
}
