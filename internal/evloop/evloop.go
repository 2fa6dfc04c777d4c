// Package evloop receives webhook events from a channel and runs a handler
// for each of them in a separate go-routine.
package evloop

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/simplesurance/tidegate/internal/eventfilter"
	"github.com/simplesurance/tidegate/internal/logfields"
	github_prov "github.com/simplesurance/tidegate/internal/provider/github"
)

const DefEventChannelBufferSize = 512

const loggerName = "event-loop"

// Handler processes an event.
type Handler interface {
	Handle(context.Context, *github_prov.Event) error
}

// EvLoop receives events and runs the Handler for them.
// Handlers are executed asynchronously in go-routines, failed handlers are
// not retried.
type EvLoop struct {
	ch      chan *github_prov.Event
	logger  *zap.Logger
	handler Handler
	filter  *eventfilter.Filter
	// done is closed when Start() returns.
	done chan struct{}

	actionWg      sync.WaitGroup
	actionDeferFn func()
}

// WithActionRoutineDeferFunc sets a function to be run when a go-routine that
// runs the handler returns.
// It can be used to set a panic handler.
func WithActionRoutineDeferFunc(fn func()) func(*EvLoop) {
	return func(e *EvLoop) {
		e.actionDeferFn = fn
	}
}

// WithFilter sets a filter that is evaluated for every event, events for
// that it does not evaluate to true are skipped.
func WithFilter(f *eventfilter.Filter) func(*EvLoop) {
	return func(e *EvLoop) {
		e.filter = f
	}
}

// WithChannelBufferSize sets the number of events that can be queued.
func WithChannelBufferSize(size int) func(*EvLoop) {
	return func(e *EvLoop) {
		e.ch = make(chan *github_prov.Event, size)
	}
}

func New(handler Handler, opts ...func(*EvLoop)) *EvLoop {
	evl := EvLoop{
		ch:      make(chan *github_prov.Event, DefEventChannelBufferSize),
		handler: handler,
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(&evl)
	}

	if evl.logger == nil {
		evl.logger = zap.L().Named(loggerName)
	}

	return &evl
}

// C returns the event channel.
// Events sent to this channel will be processed.
// The channel is closed when Stop() is called.
func (e *EvLoop) C() chan<- *github_prov.Event {
	return e.ch
}

// Start processes events until the event channel is closed.
// It must only be called once.
func (e *EvLoop) Start() {
	defer close(e.done)

	ctx := context.Background()
	e.logger.Info("ready to process events", logfields.Event("eventloop_started"))

	for ev := range e.ch {
		logger := e.logger.With(ev.LogFields...)

		logger.Debug("event received", logfields.Event("event_received"))

		if e.filter != nil {
			match, err := e.filter.Match(ctx, ev.JSON)
			if err != nil {
				logger.Error(
					"evaluating event filter failed, event is skipped",
					logfields.Event("event_filter_failed"),
					zap.Stringer("event_filter", e.filter),
					zap.Error(err),
				)
				continue
			}

			if !match {
				logger.Debug(
					"event does not match filter, event is skipped",
					logfields.Event("event_filter_mismatch"),
				)
				continue
			}
		}

		e.scheduleAction(ctx, logger, ev)
	}

	e.logger.Info(
		"event loop terminated, event channel was closed",
		logfields.Event("eventloop_terminated"),
	)
}

func logFieldActionResult(val string) zap.Field {
	return zap.String("action_result", val)
}

func (e *EvLoop) scheduleAction(ctx context.Context, logger *zap.Logger, event *github_prov.Event) {
	e.actionWg.Add(1)

	go func() {
		if e.actionDeferFn != nil {
			defer e.actionDeferFn()
		}

		defer e.actionWg.Done()

		if err := e.handler.Handle(ctx, event); err != nil {
			logger.Error(
				"handling event failed",
				logfields.Event("event_handling_failed"),
				logFieldActionResult("failure"),
				zap.Error(err),
			)
			return
		}

		logger.Debug(
			"event handled",
			logfields.Event("event_handled"),
			logFieldActionResult("success"),
		)
	}()
}

// Stop stops the event loop, waits until Start() processed all queued events
// and returned, and then waits until all scheduled go-routines terminated.
// The event channel (Evloop.C()) will be closed.
// Start() must have been called before, otherwise Stop blocks forever.
func (e *EvLoop) Stop() {
	e.logger.Debug("event loop terminating", logfields.Event("eventloop_terminating"))
	close(e.ch)

	e.logger.Debug(
		"waiting for queued events to be scheduled",
		logfields.Event("eventloop_terminating"),
	)
	<-e.done

	e.logger.Debug(
		"waiting for scheduled handlers to terminate",
		logfields.Event("eventloop_terminating"),
	)
	e.actionWg.Wait()

	e.logger.Info("event loop terminated", logfields.Event("eventloop_terminated"))
}
