package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// Slot is the browser-scoped key-value storage a Store persists into.
type Slot interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

type CookieOptions struct {
	Path     string
	Secure   bool
	SameSite http.SameSite
}

// CookieSlot keeps values in cookies on the current echo request/response.
// Writes are visible to later reads on the same request.
type CookieSlot struct {
	c       echo.Context
	opts    CookieOptions
	written map[string]*string
}

func NewCookieSlot(c echo.Context, opts CookieOptions) *CookieSlot {
	if opts.Path == "" {
		opts.Path = "/"
	}
	if opts.SameSite == 0 {
		opts.SameSite = http.SameSiteLaxMode
	}
	return &CookieSlot{c: c, opts: opts, written: map[string]*string{}}
}

func (s *CookieSlot) Get(key string) (string, bool) {
	if v, ok := s.written[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	ck, err := s.c.Cookie(key)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

func (s *CookieSlot) Set(key, value string) {
	s.written[key] = &value
	s.c.SetCookie(&http.Cookie{
		Name:     key,
		Value:    value,
		Path:     s.opts.Path,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})
}

func (s *CookieSlot) Remove(key string) {
	s.written[key] = nil
	s.c.SetCookie(&http.Cookie{
		Name:     key,
		Value:    "",
		Path:     s.opts.Path,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})
}

type MemorySlot struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: map[string]string{}}
}

func (s *MemorySlot) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemorySlot) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemorySlot) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
