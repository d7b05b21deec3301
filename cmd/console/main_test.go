package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory_console/internal/config"
	"github.com/Skotchmaster/inventory_console/internal/gateway/rest"
)

func TestOpenGateway_LocalBootstrapsAdmin(t *testing.T) {
	cfg := &config.Config{
		GatewayMode:            config.GatewayModeLocal,
		DatabaseURL:            "sqlite://:memory:",
		BootstrapAdminEmail:    "root@shop.test",
		BootstrapAdminPassword: "changeme",
	}
	gw, database, err := openGateway(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, database)

	res, err := gw.Authenticate(context.Background(), "root@shop.test", "changeme")
	require.NoError(t, err)
	prof, err := gw.FetchProfile(context.Background(), res.IdentityID)
	require.NoError(t, err)
	assert.Equal(t, "root", prof.Username)
	assert.Equal(t, "admin", prof.Role)
}

func TestOpenGateway_REST(t *testing.T) {
	cfg := &config.Config{GatewayMode: config.GatewayModeREST, GatewayURL: "http://backend.test"}
	gw, database, err := openGateway(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, database)
	assert.IsType(t, &rest.Client{}, gw)
}
