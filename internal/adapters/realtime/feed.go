package realtime

import (
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/roastline/beanbot/pkg/logger/types"
)

const (
	channelPrefix        = "rt_"
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
)

// Subscription binds one table and event kind, with an optional
// equality filter ("column=eq.value"), to a handler.
type Subscription struct {
	Table  string
	Kind   EventKind
	Filter string
}

type Handler func(ev Event)

// Feed opens row-level change subscriptions against the database.
// Every subscription gets its own listener connection; there is no
// shared multiplexing between concerns. Reconnection is handled by the
// underlying pq listener, events during a connection gap are lost.
type Feed struct {
	dsn    string
	logger *types.Logger
}

func NewFeed(dsn string, logger *types.Logger) *Feed {
	return &Feed{
		dsn:    dsn,
		logger: logger,
	}
}

// Subscribe opens the change feed for the subscription and invokes the
// handler for every matching event until the handle is closed.
func (f *Feed) Subscribe(sub Subscription, handler Handler) (*Handle, error) {
	column, value, err := parseFilter(sub.Filter)
	if err != nil {
		return nil, err
	}

	listener := pq.NewListener(f.dsn, minReconnectInterval, maxReconnectInterval, func(event pq.ListenerEventType, err error) {
		if err != nil {
			f.logger.Errorf("listener on %s: %v", sub.Table, err)
		}
		if event == pq.ListenerEventReconnected {
			f.logger.Infof("listener on %s reconnected", sub.Table)
		}
	})
	if err = listener.Listen(channelPrefix + sub.Table); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", sub.Table, err)
	}

	h := &Handle{
		listener: listener,
		done:     make(chan struct{}),
	}
	go h.run(sub, column, value, handler, f.logger)

	return h, nil
}

// Handle is one live subscription. Close releases the listener
// connection; no events are delivered afterwards.
type Handle struct {
	listener  *pq.Listener
	done      chan struct{}
	closeOnce sync.Once
}

func (h *Handle) Close() {
	h.closeOnce.Do(func() {
		if h.done != nil {
			close(h.done)
		}
		if h.listener != nil {
			_ = h.listener.Close()
		}
	})
}

func (h *Handle) run(sub Subscription, column, value string, handler Handler, log *types.Logger) {
	for {
		select {
		case <-h.done:
			return
		case n, ok := <-h.listener.Notify:
			if !ok {
				return
			}
			// A nil notification signals a reconnect, nothing to deliver.
			if n == nil {
				continue
			}

			ev, err := decodeEvent(n.Extra)
			if err != nil {
				log.Errorf("dropping malformed payload on %s: %v", sub.Table, err)
				continue
			}
			if sub.Kind != KindAll && ev.Kind != sub.Kind {
				continue
			}
			if !matchesFilter(ev, column, value) {
				continue
			}

			select {
			case <-h.done:
				return
			default:
			}
			handler(ev)
		}
	}
}
