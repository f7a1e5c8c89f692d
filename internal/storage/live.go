// ABOUTME: Change notification and live queries over storage tables.
// ABOUTME: A live query re-runs its fetch whenever a watched table is written.
package storage

import (
	"context"
	"sync"
)

// Notifier fans table-change signals out to subscribers.
type Notifier struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[*Subscription]struct{})}
}

// Subscription receives a signal on C after writes to its tables.
// Signals are coalesced: a subscriber that has not drained C sees one
// pending signal no matter how many writes happened.
type Subscription struct {
	C <-chan struct{}

	c        chan struct{}
	tables   map[Table]bool
	notifier *Notifier
	once     sync.Once
}

// Subscribe registers interest in the given tables. No tables means all.
func (n *Notifier) Subscribe(tables ...Table) *Subscription {
	c := make(chan struct{}, 1)
	s := &Subscription{C: c, c: c, tables: make(map[Table]bool), notifier: n}
	for _, t := range tables {
		s.tables[t] = true
	}

	n.mu.Lock()
	n.subs[s] = struct{}{}
	n.mu.Unlock()
	return s
}

// Notify signals every subscriber watching table. It never blocks.
func (n *Notifier) Notify(table Table) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for s := range n.subs {
		if len(s.tables) > 0 && !s.tables[table] {
			continue
		}
		select {
		case s.c <- struct{}{}:
		default:
		}
	}
}

// Close unregisters the subscription and closes C.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.notifier.mu.Lock()
		delete(s.notifier.subs, s)
		s.notifier.mu.Unlock()
		close(s.c)
	})
}

func (n *Notifier) closeAll() {
	n.mu.Lock()
	subs := make([]*Subscription, 0, len(n.subs))
	for s := range n.subs {
		subs = append(subs, s)
	}
	n.mu.Unlock()

	for _, s := range subs {
		s.Close()
	}
}

// Subscriber is the part of Repository a live query needs.
type Subscriber interface {
	Subscribe(tables ...Table) *Subscription
}

// LiveQuery is a running Watch. Stop ends it.
type LiveQuery struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop cancels the live query and waits until fn will not be called again.
func (lq *LiveQuery) Stop() {
	lq.cancel()
	<-lq.done
}

// Done is closed once the live query has stopped.
func (lq *LiveQuery) Done() <-chan struct{} {
	return lq.done
}

// Watch runs fetch once, hands the result to fn, and repeats after every
// write to any of tables until ctx is cancelled or Stop is called.
// The first fn call happens before Watch returns. The subscription is
// taken before the first fetch, so no write can slip between them.
func Watch[T any](ctx context.Context, sub Subscriber, fetch func(context.Context) (T, error), fn func(T, error), tables ...Table) *LiveQuery {
	ctx, cancel := context.WithCancel(ctx)
	s := sub.Subscribe(tables...)
	lq := &LiveQuery{cancel: cancel, done: make(chan struct{})}

	fn(fetch(ctx))

	go func() {
		defer close(lq.done)
		defer s.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-s.C:
				if !ok {
					return
				}
				if ctx.Err() != nil {
					return
				}
				fn(fetch(ctx))
			}
		}
	}()

	return lq
}
