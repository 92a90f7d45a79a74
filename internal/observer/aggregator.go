package observer

import (
	"context"
	"sync"

	"github.com/roastline/beanbot/pkg/logger/types"
)

// Aggregator owns every registered observer. Mount calls are reference
// counted: the first one activates all subscriptions, later ones share
// them, and releasing the last reference tears everything down. After
// the final Release no observer produces notifications.
type Aggregator struct {
	logger *types.Logger

	mu      sync.Mutex
	entries map[string]Observer
	order   []string
	refs    int
	cancel  context.CancelFunc
}

func NewAggregator(logger *types.Logger) *Aggregator {
	return &Aggregator{
		logger:  logger,
		entries: make(map[string]Observer),
	}
}

// Register adds an observer under its concern name. A second observer
// with the same name is rejected so a remount can never duplicate a
// subscription.
func (a *Aggregator) Register(obs Observer) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.entries[obs.Name()]; exists {
		a.logger.Warnf("observer %s already registered, ignoring", obs.Name())
		return
	}
	a.entries[obs.Name()] = obs
	a.order = append(a.order, obs.Name())
}

func (a *Aggregator) Mount() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.refs++
	if a.refs > 1 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	for _, name := range a.order {
		if err := a.entries[name].Mount(ctx); err != nil {
			// One broken concern must not keep the others from mounting.
			a.logger.Errorf("failed to mount observer %s: %v", name, err)
			continue
		}
		a.logger.Infof("observer %s mounted", name)
	}
}

func (a *Aggregator) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.refs == 0 {
		return
	}
	a.refs--
	if a.refs > 0 {
		return
	}

	a.cancel()
	for _, name := range a.order {
		a.entries[name].Close()
		a.logger.Infof("observer %s released", name)
	}
}
