package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_console/internal/models"
	"github.com/Skotchmaster/inventory_console/internal/session"
)

const identityKey = "identity"

// Sessions builds a session.Store bound to the cookies of one request.
type Sessions struct {
	Key    string
	Secret []byte
	Cookie session.CookieOptions
}

func (s *Sessions) StoreFor(c echo.Context) *session.Store {
	return session.New(session.NewCookieSlot(c, s.Cookie), s.Key, s.Secret)
}

// IdentityFrom returns the identity RequireLogin placed on the context.
func IdentityFrom(c echo.Context) (models.Identity, bool) {
	id, ok := c.Get(identityKey).(models.Identity)
	return id, ok
}

func setIdentity(c echo.Context, id models.Identity) {
	c.Set(identityKey, id)
}
