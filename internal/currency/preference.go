package currency

import "sync"

// Preference holds the user's primary display currency and notifies
// subscribers whenever it is set.
type Preference struct {
	mu      sync.Mutex
	primary Code
	nextID  int
	subs    map[int]func(Code)
}

func NewPreference(primary Code) *Preference {
	return &Preference{
		primary: primary,
		subs:    make(map[int]func(Code)),
	}
}

func (p *Preference) Primary() Code {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.primary
}

// Secondary is the currency shown for reference next to the primary one.
func (p *Preference) Secondary() Code {
	return p.Primary().Other()
}

// SetPrimary stores code without checking it against the supported set;
// callers are expected to pass a Code obtained from ParseCode or a constant.
func (p *Preference) SetPrimary(code Code) {
	p.mu.Lock()
	p.primary = code
	subs := p.snapshot()
	p.mu.Unlock()

	for _, fn := range subs {
		fn(code)
	}
}

// Toggle flips between the two supported currencies and returns the new primary.
func (p *Preference) Toggle() Code {
	next := p.Primary().Other()
	p.SetPrimary(next)

	return next
}

// Subscribe registers fn to be called after every SetPrimary. The returned
// func removes the subscription.
func (p *Preference) Subscribe(fn func(Code)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.subs[id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		delete(p.subs, id)
	}
}

func (p *Preference) snapshot() []func(Code) {
	subs := make([]func(Code), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}

	return subs
}
