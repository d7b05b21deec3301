package signin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory_console/internal/gateway"
	"github.com/Skotchmaster/inventory_console/internal/gateway/gatewaytest"
	"github.com/Skotchmaster/inventory_console/internal/models"
	"github.com/Skotchmaster/inventory_console/internal/session"
)

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) Navigate(path string) { n.paths = append(n.paths, path) }

func newFlow(gw gateway.Gateway) (*Flow, *session.Store, *recordingNavigator) {
	store := session.New(session.NewMemorySlot(), session.DefaultKey, []byte("test-secret"))
	nav := &recordingNavigator{}
	return New(gw, store, nav), store, nav
}

func aliceGateway() *gatewaytest.Fake {
	gw := gatewaytest.New()
	gw.Members = []gatewaytest.Member{
		{ID: "u1", Email: "a@b.com", Password: "secret", Username: "alice", Role: "admin"},
	}
	return gw
}

func TestSubmit_EmptyFieldsMakeNoCalls(t *testing.T) {
	cases := []struct {
		name, email, password string
	}{
		{"both empty", "", ""},
		{"no password", "a@b.com", ""},
		{"no email", "", "secret"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := aliceGateway()
			f, store, nav := newFlow(gw)

			err := f.Submit(context.Background(), tc.email, tc.password)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, MsgFieldsRequired, f.Message())
			assert.Equal(t, Idle, f.State())
			assert.Zero(t, gw.TotalCalls())
			assert.Empty(t, nav.paths)
			_, ok := store.Load()
			assert.False(t, ok)
		})
	}
}

func TestSubmit_AuthenticateFailureSavesNothing(t *testing.T) {
	gw := aliceGateway()
	gw.AuthErr = errors.New("dial tcp: connection refused")
	f, store, nav := newFlow(gw)

	err := f.Submit(context.Background(), "a@b.com", "secret")
	require.ErrorIs(t, err, ErrAuth)
	assert.Equal(t, Failed, f.State())
	assert.Equal(t, MsgBadCredentials, f.Message())
	assert.NotContains(t, f.Message(), "connection refused")
	assert.Zero(t, gw.CallCount("fetch_profile"))
	assert.Empty(t, nav.paths)
	_, ok := store.Load()
	assert.False(t, ok)
}

func TestSubmit_WrongPassword(t *testing.T) {
	f, store, _ := newFlow(aliceGateway())

	err := f.Submit(context.Background(), "a@b.com", "nope")
	require.ErrorIs(t, err, gateway.ErrInvalidCredentials)
	assert.Equal(t, MsgBadCredentials, f.Message())
	_, ok := store.Load()
	assert.False(t, ok)
}

type nilProfileGateway struct {
	*gatewaytest.Fake
}

func (nilProfileGateway) FetchProfile(context.Context, string) (*gateway.Profile, error) {
	return nil, nil
}

func TestSubmit_ProfileFailureSavesNothing(t *testing.T) {
	cases := []struct {
		name string
		gw   func() gateway.Gateway
	}{
		{"transport error", func() gateway.Gateway {
			g := aliceGateway()
			g.ProfileErr = gateway.ErrTransport
			return g
		}},
		{"no row", func() gateway.Gateway {
			g := aliceGateway()
			g.ProfileErr = gateway.ErrNotFound
			return g
		}},
		{"nil profile", func() gateway.Gateway { return nilProfileGateway{aliceGateway()} }},
		{"unknown role", func() gateway.Gateway {
			g := aliceGateway()
			g.Members[0].Role = "superuser"
			return g
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, store, nav := newFlow(tc.gw())

			err := f.Submit(context.Background(), "a@b.com", "secret")
			require.ErrorIs(t, err, ErrAuth)
			assert.Equal(t, Failed, f.State())
			assert.Equal(t, MsgNoProfile, f.Message())
			assert.Empty(t, nav.paths)
			_, ok := store.Load()
			assert.False(t, ok)
		})
	}
}

func TestSubmit_SuccessPersistsAndNavigatesOnce(t *testing.T) {
	gw := aliceGateway()
	f, store, nav := newFlow(gw)

	require.NoError(t, f.Submit(context.Background(), "a@b.com", "secret"))
	assert.Equal(t, Authenticated, f.State())
	assert.Empty(t, f.Message())

	got, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, models.Identity{ID: "u1", Username: "alice", Role: models.RoleAdmin}, got)
	assert.Equal(t, []string{DashboardPath}, nav.paths)
	assert.Equal(t, 1, gw.CallCount("authenticate"))
	assert.Equal(t, 1, gw.CallCount("fetch_profile"))
}

func TestSubmit_RetryAfterFailure(t *testing.T) {
	gw := aliceGateway()
	f, store, nav := newFlow(gw)

	require.Error(t, f.Submit(context.Background(), "a@b.com", "wrong"))
	require.Equal(t, Failed, f.State())

	require.NoError(t, f.Submit(context.Background(), "a@b.com", "secret"))
	assert.Equal(t, Authenticated, f.State())
	assert.Len(t, nav.paths, 1)
	_, ok := store.Load()
	assert.True(t, ok)
}
