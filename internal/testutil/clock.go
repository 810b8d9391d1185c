package testutil

import (
	"sync"
	"time"
)

// FakeClock is a clock whose After fires immediately after advancing the
// current time by the requested duration, so polling loops run instantly
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	onSleep func(n int)
	Sleeps  []time.Duration
}

func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.Sleeps = append(c.Sleeps, d)
	now, n, hook := c.now, len(c.Sleeps), c.onSleep
	c.mu.Unlock()

	if hook != nil {
		hook(n)
	}

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

// OnSleep registers a hook run on every After call with the running count
// of sleeps, so tests can change the world while a wait is in progress
func (c *FakeClock) OnSleep(hook func(n int)) *FakeClock {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onSleep = hook
	return c
}

// Advance moves the clock forward without recording a sleep
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// SleepCount returns how many times After was called
func (c *FakeClock) SleepCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.Sleeps)
}

// Slept returns the total duration passed to After
func (c *FakeClock) Slept() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total time.Duration
	for _, d := range c.Sleeps {
		total += d
	}

	return total
}
