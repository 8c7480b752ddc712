package tabs

import (
	"sync"
	"sync/atomic"

	"github.com/perrymcmanis144/tabstray/internal/logging"
	"github.com/perrymcmanis144/tabstray/internal/monitoring"
	"github.com/perrymcmanis144/tabstray/internal/shared/types"
	"go.uber.org/zap"
)

// Subscriber receives each committed snapshot, in commit order. Callbacks
// run on the dispatching goroutine and must not block; anything slow
// (network writes, disk) belongs behind the subscriber's own queue.
type Subscriber func(*types.State)

// Store owns the tabs tray state. All transitions go through Dispatch,
// which serializes actions and commits one immutable snapshot per applied
// action. There is no process-wide instance; construct one and pass it to
// whoever needs it.
type Store struct {
	mu      sync.Mutex // Serializes dispatch; applied order == dispatch order
	state   atomic.Pointer[types.State]
	subs    map[int]Subscriber // Protected by mu
	nextSub int

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewStore creates a store showing an empty normal page.
func NewStore() *Store {
	s := &Store{
		subs:   make(map[int]Subscriber),
		logger: logging.Nop(),
	}
	s.state.Store(&types.State{
		Page:      types.PageNormalTabs,
		Selection: types.Selection{Mode: types.ModeNormal},
	})
	return s
}

// WithLogger attaches a logger to the store.
func (s *Store) WithLogger(logger *logging.Logger) *Store {
	s.logger = logger
	return s
}

// WithMetrics adds metrics tracking to the store.
func (s *Store) WithMetrics(metrics *monitoring.Metrics) *Store {
	s.metrics = metrics
	return s
}

// Dispatch applies an action and returns the snapshot current after it.
// Actions the reducer treats as no-ops (unknown ids, invalid pages,
// already-satisfied transitions) return the existing snapshot without
// committing or notifying.
func (s *Store) Dispatch(action Action) *types.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Load()
	next := reduce(prev, action)

	if s.metrics != nil {
		s.metrics.RecordDispatch(action.Kind(), next != prev)
	}
	if next == prev {
		return prev
	}

	s.state.Store(next)
	if s.metrics != nil {
		s.metrics.SetTrayStats(next.Stats())
	}
	s.logger.Debug("action committed",
		zap.String("action", action.Kind()),
		zap.String("page", string(next.Page)),
		zap.Int("normal_tabs", len(next.Normal)),
		zap.Int("private_tabs", len(next.Private)),
	)

	// Notify under the dispatch lock so subscribers observe commits in
	// order. Subscribers are contractually non-blocking.
	for _, fn := range s.subs {
		fn(next)
	}
	return next
}

// Snapshot returns the current committed state without blocking dispatch.
func (s *Store) Snapshot() *types.State {
	return s.state.Load()
}

// Subscribe registers a callback invoked once per committed state change.
// The callback does not fire for the snapshot current at subscribe time;
// read Snapshot first if the initial state matters. The returned function
// cancels the subscription and is safe to call more than once.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.nextSub
	s.nextSub++
	s.subs[key] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, key)
	}
}

// Stats summarizes the current snapshot.
func (s *Store) Stats() types.Stats {
	return s.Snapshot().Stats()
}
