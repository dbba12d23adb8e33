package crawler

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageStore_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	store := NewPageStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Add(PageRecord{URL: fmt.Sprintf("http://example.com/p%d", i)})
		}(i)
	}
	wg.Wait()

	require.Equal(t, 50, store.Len())

	records := store.Records()
	records[0] = PageRecord{URL: "mutated"}
	require.NotEqual(t, "mutated", store.Records()[0].URL, "Records must return a copy")
}

func TestLinkGraph_ConcurrentAppendsAllowDuplicates(t *testing.T) {
	t.Parallel()

	graph := NewLinkGraph()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			graph.AddEdge("http://example.com/", "http://example.com/about")
		}()
	}
	wg.Wait()

	// Multigraph: one edge per link occurrence.
	require.Equal(t, 10, graph.EdgeCount())
	for _, edge := range graph.Edges() {
		require.Equal(t, Edge{From: "http://example.com/", To: "http://example.com/about"}, edge)
	}
}
