package concurrency

const (
	// DefaultMax default max
	DefaultMax = 256
)

// GoLimit go limit
type GoLimit struct {
	ch chan struct{}
}

// NewGoLimit new go limit
func NewGoLimit(max int) *GoLimit {
	if max <= 0 {
		max = DefaultMax
	}

	return &GoLimit{
		ch: make(chan struct{}, max),
	}
}

// Add take a slot, blocks while all slots are taken
func (g *GoLimit) Add() {
	g.ch <- struct{}{}
}

// Done release a slot
func (g *GoLimit) Done() {
	<-g.ch
}
