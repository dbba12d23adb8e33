package crawler

import "sync"

// Frontier is the shared work queue and visited set for one crawl run. A
// single mutex guards both the membership map and the pending queue, so
// the membership test and the Unvisited-to-InFlight transition of a claim
// are one atomic operation rather than a check-then-act pair. Entries are
// never removed or reset within a run.
type Frontier struct {
	mu   sync.Mutex
	cond *sync.Cond

	states   map[string]PageState
	queue    []string
	claimed  int
	inFlight int
	finished int
	maxPages int
}

// NewFrontier builds an empty frontier that will issue at most maxPages
// claims.
func NewFrontier(maxPages int) *Frontier {
	f := &Frontier{
		states:   make(map[string]PageState),
		maxPages: maxPages,
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Discover submits a canonical URL for future claiming. It returns false
// when the URL is already known; newly discovered links are appended after
// everything already queued, giving the breadth-first-ish visit order.
func (f *Frontier) Discover(canonical string) bool {
	if canonical == "" {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, seen := f.states[canonical]; seen {
		return false
	}
	f.states[canonical] = StateUnvisited
	f.queue = append(f.queue, canonical)
	f.cond.Signal()
	return true
}

// TryClaim atomically transitions canonical from Unvisited to InFlight and
// returns true. It returns false when the URL is already InFlight, Visited,
// or Failed, or when the claim budget is exhausted, so no two callers ever
// claim the same canonical URL and no claim is issued past the page budget.
func (f *Frontier) TryClaim(canonical string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tryClaimLocked(canonical)
}

func (f *Frontier) tryClaimLocked(canonical string) bool {
	if state, seen := f.states[canonical]; seen && state != StateUnvisited {
		return false
	}
	if f.claimed >= f.maxPages {
		return false
	}
	f.states[canonical] = StateInFlight
	f.claimed++
	f.inFlight++
	return true
}

// Next blocks until a queued URL can be claimed and returns it. It returns
// false once the crawl is finished: the queue is drained (or no longer
// claimable under the budget) and no claims are outstanding.
func (f *Frontier) Next() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for {
		if f.claimed >= f.maxPages {
			// Budget exhausted: nothing queued can ever be claimed.
			f.queue = nil
		}
		for len(f.queue) > 0 {
			canonical := f.queue[0]
			f.queue = f.queue[1:]
			if f.tryClaimLocked(canonical) {
				return canonical, true
			}
		}
		if f.inFlight == 0 {
			f.cond.Broadcast()
			return "", false
		}
		f.cond.Wait()
	}
}

// MarkVisited transitions an in-flight URL to Visited. Visited is terminal.
func (f *Frontier) MarkVisited(canonical string) {
	f.finish(canonical, StateVisited)
}

// MarkFailed transitions an in-flight URL to Failed. Failed is terminal.
func (f *Frontier) MarkFailed(canonical string) {
	f.finish(canonical, StateFailed)
}

func (f *Frontier) finish(canonical string, terminal PageState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.states[canonical] != StateInFlight {
		return
	}
	f.states[canonical] = terminal
	f.finished++
	f.inFlight--
	f.cond.Broadcast()
}

// RemainingBudget returns the page budget minus pages already Visited or
// Failed.
func (f *Frontier) RemainingBudget() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxPages - f.finished
}

// State returns the recorded state for a canonical URL, false if the URL
// was never discovered.
func (f *Frontier) State(canonical string) (PageState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.states[canonical]
	return s, ok
}

// InFlight returns the number of currently claimed, unfinished URLs.
func (f *Frontier) InFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}
