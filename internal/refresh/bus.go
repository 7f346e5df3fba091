// Package refresh is the process-wide data-changed broadcast channel.
// Mutating flows publish after a successful write; any number of
// independently wired consumers re-fetch on notification.
package refresh

import (
	"sync"

	"github.com/Hirosolo/train-diary-cli/internal/logx"
)

type subscriber struct {
	id int
	fn func()
}

type Bus struct {
	mu   sync.Mutex
	next int
	subs []subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns its unsubscribe function. Calling the
// returned function more than once is a no-op.
func (b *Bus) Subscribe(fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish invokes every subscriber registered at the moment of the call, in
// registration order. Subscribers added during the fan-out are not invoked in
// this pass. A panicking subscriber never prevents the rest from running.
func (b *Bus) Publish() {
	b.mu.Lock()
	snapshot := make([]subscriber, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, s := range snapshot {
		invoke(s.fn)
	}
}

func invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("refresh subscriber panicked: %v", r)
		}
	}()
	fn()
}
