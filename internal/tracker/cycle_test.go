package tracker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"mexctracker/internal/statestore"
	"mexctracker/pkg/exchange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFetcher struct {
	name    string
	symbols []string
	err     error
	block   chan struct{} // when set, FetchSymbols waits until closed
}

func (f *stubFetcher) Name() string { return f.name }

func (f *stubFetcher) FetchSymbols(ctx context.Context) ([]string, error) {
	if f.block != nil {
		<-f.block
	}
	return f.symbols, f.err
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Send(_ context.Context, text string, silent bool) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return true
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

func newTestChecker(t *testing.T, primary *stubFetcher, refs ...*stubFetcher) (*Checker, *statestore.Store, *recordingNotifier) {
	t.Helper()

	store := statestore.New(filepath.Join(t.TempDir(), "state.json"), zap.NewNop())
	require.NoError(t, store.Init())

	notifier := &recordingNotifier{}

	fetchers := make([]exchange.Fetcher, 0, len(refs))
	for _, r := range refs {
		fetchers = append(fetchers, r)
	}

	checker := NewChecker(primary, fetchers, store, notifier, nil, time.Second, zap.NewNop())
	return checker, store, notifier
}

func TestCycleDetectsAddition(t *testing.T) {
	primary := &stubFetcher{name: "mexc", symbols: []string{"FOO_USDT", "BAR_USDT", "ABC_USDT"}}
	ref := &stubFetcher{name: "binance", symbols: []string{"ABCUSDT"}}
	checker, store, notifier := newTestChecker(t, primary, ref)

	// Pre-existing unique set with FOO only
	state := store.Load()
	state.UniqueFutures = []string{"FOO_USDT"}
	require.NoError(t, store.Save(state))

	checker.RunCycle(context.Background())

	state = store.Load()
	assert.Equal(t, []string{"BAR_USDT", "FOO_USDT"}, state.UniqueFutures)
	require.Len(t, state.TrackingHistory, 1)
	assert.Equal(t, "BAR_USDT", state.TrackingHistory[0].Symbol)
	assert.Equal(t, statestore.EventAdded, state.TrackingHistory[0].Event)
	assert.Equal(t, 1, state.Statistics.TotalUniqueFound)
	assert.Equal(t, 1, state.Statistics.TotalNotificationsSent)
	assert.NotEmpty(t, state.LastUpdate)

	msgs := notifier.all()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "BAR_USDT")
	assert.Contains(t, msgs[0], "Total unique: 2")
}

func TestCycleIdempotentNoOp(t *testing.T) {
	primary := &stubFetcher{name: "mexc", symbols: []string{"FOO_USDT"}}
	ref := &stubFetcher{name: "binance", symbols: []string{"BTCUSDT"}}
	checker, store, notifier := newTestChecker(t, primary, ref)

	checker.RunCycle(context.Background())
	afterFirst := store.Load()
	firstMsgs := len(notifier.all())

	checker.RunCycle(context.Background())
	afterSecond := store.Load()

	assert.Equal(t, afterFirst.UniqueFutures, afterSecond.UniqueFutures)
	assert.Len(t, afterSecond.TrackingHistory, len(afterFirst.TrackingHistory))
	assert.Equal(t, firstMsgs, len(notifier.all()), "no-op cycle must not notify")
	assert.Equal(t, afterFirst.Statistics.TotalNotificationsSent, afterSecond.Statistics.TotalNotificationsSent)
}

func TestCyclePrimaryOutageReportsRemovals(t *testing.T) {
	primary := &stubFetcher{name: "mexc", err: errors.New("connection refused")}
	ref := &stubFetcher{name: "binance", symbols: []string{"BTCUSDT"}}
	checker, store, notifier := newTestChecker(t, primary, ref)

	state := store.Load()
	state.UniqueFutures = []string{"FOO_USDT"}
	require.NoError(t, store.Save(state))

	checker.RunCycle(context.Background())

	state = store.Load()
	assert.Empty(t, state.UniqueFutures)
	require.Len(t, state.TrackingHistory, 1)
	assert.Equal(t, statestore.EventRemoved, state.TrackingHistory[0].Event)
	assert.Equal(t, "FOO_USDT", state.TrackingHistory[0].Symbol)

	msgs := notifier.all()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "FOO_USDT")
	assert.Contains(t, msgs[0], "Remaining unique: 0")
}

func TestCycleReferenceFailureDegradesUnion(t *testing.T) {
	primary := &stubFetcher{name: "mexc", symbols: []string{"ABC_USDT", "XYZ_USDT"}}
	healthy := &stubFetcher{name: "binance", symbols: []string{"ABCUSDT"}}
	broken := &stubFetcher{name: "bybit", err: errors.New("timeout")}
	checker, store, _ := newTestChecker(t, primary, healthy, broken)

	checker.RunCycle(context.Background())

	state := store.Load()
	assert.Equal(t, []string{"XYZ_USDT"}, state.UniqueFutures)
}

func TestCycleAddedAndRemovedSeparateMessages(t *testing.T) {
	primary := &stubFetcher{name: "mexc", symbols: []string{"NEW_USDT"}}
	checker, store, notifier := newTestChecker(t, primary)

	state := store.Load()
	state.UniqueFutures = []string{"OLD_USDT"}
	require.NoError(t, store.Save(state))

	checker.RunCycle(context.Background())

	msgs := notifier.all()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "NEW_USDT")
	assert.Contains(t, msgs[1], "OLD_USDT")

	state = store.Load()
	assert.Equal(t, 2, state.Statistics.TotalNotificationsSent)
	assert.Len(t, state.TrackingHistory, 2)
}

func TestCycleSkipsWhenInFlight(t *testing.T) {
	gate := make(chan struct{})
	primary := &stubFetcher{name: "mexc", symbols: []string{"FOO_USDT"}, block: gate}
	checker, _, notifier := newTestChecker(t, primary)

	done := make(chan struct{})
	go func() {
		checker.RunCycle(context.Background())
		close(done)
	}()

	// Wait until the first cycle is holding the in-flight flag.
	require.Eventually(t, func() bool {
		return checker.inFlight.Load()
	}, time.Second, 5*time.Millisecond)

	// The overlapping tick must return immediately without doing anything.
	checker.RunCycle(context.Background())
	assert.Empty(t, notifier.all())

	close(gate)
	<-done
	require.Len(t, notifier.all(), 1)
}

func TestCyclePersistFailureNotifiesError(t *testing.T) {
	primary := &stubFetcher{name: "mexc", symbols: []string{"FOO_USDT"}}

	// Parent of the state path is a regular file, so saving must fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	store := statestore.New(filepath.Join(blocker, "state.json"), zap.NewNop())

	notifier := &recordingNotifier{}
	checker := NewChecker(primary, nil, store, notifier, nil, time.Second, zap.NewNop())

	checker.RunCycle(context.Background())

	msgs := notifier.all()
	require.Len(t, msgs, 1)
	assert.True(t, strings.Contains(msgs[0], "Check failed"), "got: %s", msgs[0])
}
