package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_PutGetDrop(t *testing.T) {
	r := NewRegistry(time.Hour)
	v := &View{}

	id := r.Put(v)
	got, ok := r.Get(id)
	require.True(t, ok)
	assert.Same(t, v, got)

	r.Drop(id)
	_, ok = r.Get(id)
	assert.False(t, ok)
}

func TestRegistry_ExpiresIdleViews(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(time.Minute)
	r.now = func() time.Time { return now }

	old := r.Put(&View{})
	now = now.Add(2 * time.Minute)
	_, ok := r.Get(old)
	assert.False(t, ok)

	stale := r.Put(&View{})
	now = now.Add(2 * time.Minute)
	r.Put(&View{})
	assert.Equal(t, 1, r.Len())
	_, ok = r.Get(stale)
	assert.False(t, ok)
}
