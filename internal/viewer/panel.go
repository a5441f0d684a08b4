package viewer

import (
	"sync"
	"time"

	"github.com/fyrsmithlabs/showyourwork/internal/bundle"
)

// Panel is the single display slot. Showing a bundle replaces whatever was
// shown before; there is never more than one.
type Panel struct {
	mu       sync.RWMutex
	bundle   *bundle.Bundle
	page     string
	openedAt time.Time
}

// Show puts b and its rendered page on display. It reports whether an
// existing slot was reused.
func (p *Panel) Show(b *bundle.Bundle, page string) (reused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	reused = p.bundle != nil
	p.bundle = b
	p.page = page
	if !reused {
		p.openedAt = time.Now()
	}
	return reused
}

// Current returns the bundle and page on display.
func (p *Panel) Current() (*bundle.Bundle, string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.bundle, p.page, p.bundle != nil
}

// OpenedAt returns when the slot was first filled, or the zero time.
func (p *Panel) OpenedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.openedAt
}

// Close empties the slot.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bundle = nil
	p.page = ""
	p.openedAt = time.Time{}
}
