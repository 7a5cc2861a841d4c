package watcher

import (
	"sync"
	"time"
)

// ChangeKind classifies a coalesced filesystem change.
type ChangeKind int

const (
	ChangeCreate ChangeKind = iota
	ChangeModify
	ChangeDelete
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreate:
		return "create"
	case ChangeModify:
		return "modify"
	case ChangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is a settled change to one path.
type Change struct {
	Path      string
	Kind      ChangeKind
	Timestamp time.Time
}

// Coalescer folds bursts of changes to the same path into one Change,
// emitted once the path has been quiet for the debounce window. Deletes
// wait for a longer grace period so that an editor's remove-then-create
// save surfaces as a single modify.
type Coalescer struct {
	debounceWindow    time.Duration
	deleteGracePeriod time.Duration

	mu      sync.Mutex
	pending map[string]*pendingChange
	changes chan Change
	stopCh  chan struct{}
	stopped bool
	wg      sync.WaitGroup
}

type pendingChange struct {
	change Change
	timer  *time.Timer
	// gen is bumped on every Add; a timer only emits its own generation.
	gen uint64
}

// NewCoalescer creates a Coalescer.
func NewCoalescer(debounceWindow, deleteGracePeriod time.Duration) *Coalescer {
	return &Coalescer{
		debounceWindow:    debounceWindow,
		deleteGracePeriod: deleteGracePeriod,
		pending:           make(map[string]*pendingChange),
		changes:           make(chan Change, 64),
		stopCh:            make(chan struct{}),
	}
}

// Add records a raw change.
func (c *Coalescer) Add(change Change) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	path := change.Path
	pc, exists := c.pending[path]
	if !exists {
		pc = &pendingChange{change: change}
		c.pending[path] = pc
	} else {
		pc.timer.Stop()

		// Created and removed inside one window: nothing happened.
		if pc.change.Kind == ChangeCreate && change.Kind == ChangeDelete {
			delete(c.pending, path)
			return
		}
		pc.change = Change{Path: path, Kind: merge(pc.change.Kind, change.Kind), Timestamp: change.Timestamp}
	}

	pc.gen++
	gen := pc.gen
	pc.timer = time.AfterFunc(c.delay(pc.change.Kind), func() {
		c.emit(path, gen)
	})
}

// Changes returns the channel of coalesced changes. It is closed by Stop.
func (c *Coalescer) Changes() <-chan Change {
	return c.changes
}

// Stop discards pending changes and closes the Changes channel.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	for path, pc := range c.pending {
		pc.timer.Stop()
		delete(c.pending, path)
	}
	c.mu.Unlock()

	close(c.stopCh)
	c.wg.Wait()
	close(c.changes)
}

// Pending returns the number of paths waiting to settle.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Coalescer) emit(path string, gen uint64) {
	c.mu.Lock()
	pc, exists := c.pending[path]
	if !exists || c.stopped || pc.gen != gen {
		c.mu.Unlock()
		return
	}
	change := pc.change
	delete(c.pending, path)
	c.wg.Add(1)
	c.mu.Unlock()

	defer c.wg.Done()
	select {
	case c.changes <- change:
	case <-c.stopCh:
	}
}

func (c *Coalescer) delay(kind ChangeKind) time.Duration {
	if kind == ChangeDelete {
		return c.deleteGracePeriod
	}
	return c.debounceWindow
}

// merge returns the kind that summarizes prev followed by next.
func merge(prev, next ChangeKind) ChangeKind {
	switch {
	case prev == ChangeCreate && next == ChangeModify:
		return ChangeCreate
	case prev == ChangeDelete && next == ChangeCreate:
		// Replaced in place.
		return ChangeModify
	case prev == ChangeDelete && next == ChangeModify:
		return ChangeModify
	default:
		return next
	}
}
