package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry keeps mounted views between requests, keyed by a random view id.
// Views unused for longer than the idle limit are dropped.
type Registry struct {
	mu    sync.Mutex
	idle  time.Duration
	now   func() time.Time
	views map[string]*entry
}

type entry struct {
	view     *View
	lastSeen time.Time
}

func NewRegistry(idle time.Duration) *Registry {
	return &Registry{idle: idle, now: time.Now, views: make(map[string]*entry)}
}

func (r *Registry) Put(v *View) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	id := uuid.NewString()
	r.views[id] = &entry{view: v, lastSeen: r.now()}
	return id
}

func (r *Registry) Get(id string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.views[id]
	if !ok {
		return nil, false
	}
	if r.idle > 0 && r.now().Sub(e.lastSeen) > r.idle {
		delete(r.views, id)
		return nil, false
	}
	e.lastSeen = r.now()
	return e.view, true
}

func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func (r *Registry) sweep() {
	if r.idle <= 0 {
		return
	}
	now := r.now()
	for id, e := range r.views {
		if now.Sub(e.lastSeen) > r.idle {
			delete(r.views, id)
		}
	}
}
