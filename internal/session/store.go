// Package session persists the signed-in Identity in a browser-scoped slot.
//
// The slot value is an HS256 token so a client cannot forge its own role.
// Nothing here talks to the network.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Skotchmaster/inventory_console/internal/models"
)

const DefaultKey = "user"

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type Store struct {
	slot   Slot
	key    string
	secret []byte
	now    func() time.Time
}

// New returns a Store over slot. A nil slot means no persistent context is
// available: Save and Clear skip, Load reports absent.
func New(slot Slot, key string, secret []byte) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{slot: slot, key: key, secret: secret, now: time.Now}
}

func (s *Store) Save(id models.Identity) error {
	if s.slot == nil {
		return nil
	}
	token, err := s.encode(id)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	s.slot.Set(s.key, token)
	return nil
}

// Load returns the stored Identity. Any unreadable value counts as absent.
func (s *Store) Load() (models.Identity, bool) {
	if s.slot == nil {
		return models.Identity{}, false
	}
	raw, ok := s.slot.Get(s.key)
	if !ok || raw == "" {
		return models.Identity{}, false
	}
	id, err := s.decode(raw)
	if err != nil {
		return models.Identity{}, false
	}
	return id, true
}

func (s *Store) Clear() {
	if s.slot == nil {
		return
	}
	s.slot.Remove(s.key)
}

func (s *Store) encode(id models.Identity) (string, error) {
	claims := Claims{
		Username: id.Username,
		Role:     string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  id.ID,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Store) decode(raw string) (models.Identity, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.secret, nil
	})
	if err != nil {
		return models.Identity{}, err
	}
	if !tkn.Valid {
		return models.Identity{}, errors.New("invalid session token")
	}
	if claims.Subject == "" {
		return models.Identity{}, errors.New("session has no subject")
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return models.Identity{}, err
	}
	return models.Identity{ID: claims.Subject, Username: claims.Username, Role: role}, nil
}
