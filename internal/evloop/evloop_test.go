package evloop

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/tidegate/internal/eventfilter"
	github_prov "github.com/simplesurance/tidegate/internal/provider/github"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingHandler struct {
	lock   sync.Mutex
	events []string
	err    error
}

func (h *recordingHandler) Handle(_ context.Context, ev *github_prov.Event) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.events = append(h.events, ev.DeliveryID)

	return h.err
}

func (h *recordingHandler) handled() []string {
	h.lock.Lock()
	defer h.lock.Unlock()

	return append([]string(nil), h.events...)
}

func newEvent(deliveryID, json string) *github_prov.Event {
	return &github_prov.Event{
		DeliveryID: deliveryID,
		Type:       "pull_request",
		JSON:       []byte(json),
	}
}

func runEvLoop(t *testing.T, evl *EvLoop, events ...*github_prov.Event) {
	t.Helper()

	go evl.Start()

	for _, ev := range events {
		evl.C() <- ev
	}

	evl.Stop()
}

func TestAllEventsAreHandled(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	handler := recordingHandler{}
	evl := New(&handler)

	runEvLoop(t, evl,
		newEvent("1", `{}`),
		newEvent("2", `{}`),
		newEvent("3", `{}`),
	)

	assert.ElementsMatch(t, []string{"1", "2", "3"}, handler.handled())
}

func TestHandlerErrorsDoNotStopProcessing(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	handler := recordingHandler{err: errors.New("mocked error")}
	evl := New(&handler, WithChannelBufferSize(1))

	runEvLoop(t, evl, newEvent("1", `{}`), newEvent("2", `{}`))

	assert.ElementsMatch(t, []string{"1", "2"}, handler.handled())
}

func TestFilterSkipsEvents(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	filter, err := eventfilter.New(`.repository.name == "repo"`)
	require.NoError(t, err)

	handler := recordingHandler{}
	evl := New(&handler, WithFilter(filter))

	runEvLoop(t, evl,
		newEvent("1", `{"repository": {"name": "repo"}}`),
		newEvent("2", `{"repository": {"name": "other"}}`),
		newEvent("3", `invalid json`),
	)

	assert.Equal(t, []string{"1"}, handler.handled())
}

type slowHandler struct {
	recordingHandler
}

func (h *slowHandler) Handle(ctx context.Context, ev *github_prov.Event) error {
	time.Sleep(10 * time.Millisecond)
	return h.recordingHandler.Handle(ctx, ev)
}

func TestStopWaitsForQueuedEvents(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	handler := slowHandler{}
	evl := New(&handler, WithChannelBufferSize(10))

	var expected []string
	for i := 0; i < 10; i++ {
		id := strconv.Itoa(i)
		expected = append(expected, id)
		evl.C() <- newEvent(id, `{}`)
	}

	go evl.Start()
	evl.Stop()

	assert.ElementsMatch(t, expected, handler.handled())
}

type panicHandler struct{}

func (panicHandler) Handle(context.Context, *github_prov.Event) error {
	panic("handler panicked")
}

func TestActionRoutineDeferFuncRecoversPanics(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	var recovered sync.WaitGroup
	recovered.Add(1)

	evl := New(panicHandler{}, WithActionRoutineDeferFunc(func() {
		if r := recover(); r != nil {
			recovered.Done()
		}
	}))

	runEvLoop(t, evl, newEvent("1", `{}`))

	recovered.Wait()
}
