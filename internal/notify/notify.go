// Package notify holds user-facing notices until the page renders them.
package notify

import "sync"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notice struct {
	Kind Kind
	Text string
}

type Notifier interface {
	Success(text string)
	Error(text string)
}

// Board is a toast queue. The page drains it once per render.
type Board struct {
	mu      sync.Mutex
	notices []Notice
}

func (b *Board) Success(text string) { b.push(Notice{Kind: KindSuccess, Text: text}) }

func (b *Board) Error(text string) { b.push(Notice{Kind: KindError, Text: text}) }

func (b *Board) push(n Notice) {
	b.mu.Lock()
	b.notices = append(b.notices, n)
	b.mu.Unlock()
}

// Drain returns pending notices oldest first and empties the board.
func (b *Board) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.notices
	b.notices = nil
	return out
}

// Last returns the most recent notice without removing it.
func (b *Board) Last() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.notices) == 0 {
		return Notice{}, false
	}
	return b.notices[len(b.notices)-1], true
}
