package crawler

import "sync"

// PageStore accumulates immutable PageRecords for one crawl run. Writers
// are the coordinator's workers; readers only appear after the run reaches
// its terminal state.
type PageStore struct {
	mu      sync.Mutex
	records []PageRecord
}

// NewPageStore returns an empty store.
func NewPageStore() *PageStore {
	return &PageStore{}
}

// Add appends a record. Records are never updated or removed.
func (s *PageStore) Add(record PageRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

// Records returns a copy of the stored records.
func (s *PageStore) Records() []PageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PageRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of stored records.
func (s *PageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// LinkGraph accumulates directed edges between canonical URLs for internal
// links only. It is an append-only multigraph: one edge per link
// occurrence, duplicates permitted.
type LinkGraph struct {
	mu    sync.Mutex
	edges []Edge
}

// NewLinkGraph returns an empty graph.
func NewLinkGraph() *LinkGraph {
	return &LinkGraph{}
}

// AddEdge appends a directed edge.
func (g *LinkGraph) AddEdge(from, to string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edges = append(g.edges, Edge{From: from, To: to})
}

// Edges returns a copy of the edge list.
func (g *LinkGraph) Edges() []Edge {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// EdgeCount returns the number of edges.
func (g *LinkGraph) EdgeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.edges)
}
