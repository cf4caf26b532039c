package state

// IDAllocator hands out stroke ids. Ids start at 1 and are never reused.
type IDAllocator struct {
	last StrokeID
}

func (a *IDAllocator) Next() StrokeID {
	a.last++
	return a.last
}

// Clock is a Lamport clock stamping replicated ops.
type Clock struct {
	counter uint64
}

// Tick increments the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	c.counter++
	return c.counter
}

// Update moves the clock forward to a received timestamp.
func (c *Clock) Update(ts uint64) {
	if ts > c.counter {
		c.counter = ts
	}
}

// Stamp orders replicated ops: by Lamport time, then by site.
type Stamp struct {
	Lamport uint64
	Site    string
}

func (s Stamp) Less(o Stamp) bool {
	if s.Lamport != o.Lamport {
		return s.Lamport < o.Lamport
	}
	return s.Site < o.Site
}
