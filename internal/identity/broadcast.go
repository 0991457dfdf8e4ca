package identity

import "sync"

type subscriber struct {
	onChange func(user *User)
	onError  func(err error)
}

// Broadcaster fans auth-state changes out to subscribers. Providers embed it
// to implement Subscribe.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]subscriber
}

// Subscribe registers callbacks and returns a release function. Releasing
// twice is safe.
func (b *Broadcaster) Subscribe(onChange func(user *User), onError func(err error)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = map[int]subscriber{}
	}
	id := b.next
	b.next++
	b.subs[id] = subscriber{onChange: onChange, onError: onError}

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// EmitChange delivers a new auth state to all subscribers.
func (b *Broadcaster) EmitChange(user *User) {
	for _, sub := range b.snapshot() {
		if sub.onChange != nil {
			sub.onChange(user)
		}
	}
}

// EmitError delivers a provider error to all subscribers.
func (b *Broadcaster) EmitError(err error) {
	for _, sub := range b.snapshot() {
		if sub.onError != nil {
			sub.onError(err)
		}
	}
}

func (b *Broadcaster) snapshot() []subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := make([]subscriber, 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	return subs
}
