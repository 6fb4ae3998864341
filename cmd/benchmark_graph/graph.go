package main

import (
	"math"
	"math/rand"

	"github.com/delaneyj/storeparty/store"
)

type benchmarkGraph struct {
	d       *store.Dispatcher
	sources []*store.Store[int]
	layers  [][]store.Readable[int]
}

// makeGraph builds one writable per column followed by layers-1 rows of
// derived stores, each summing nSources neighbours from the row above.
func makeGraph(cfg scenario, counter *int64) (*benchmarkGraph, error) {
	d := store.NewDispatcher()
	sources := make([]*store.Store[int], cfg.Width)
	prevRow := make([]store.Subscribable[int], cfg.Width)
	for i := range sources {
		sources[i] = store.NewWritable(d, i, nil)
		prevRow[i] = sources[i]
	}
	graph := &benchmarkGraph{d: d, sources: sources}

	random := rand.New(rand.NewSource(0))
	for l := 1; l < cfg.Layers; l++ {
		row, err := makeRow(d, prevRow, cfg, counter, random)
		if err != nil {
			return nil, err
		}
		graph.layers = append(graph.layers, row)
		prevRow = make([]store.Subscribable[int], len(row))
		for i, node := range row {
			prevRow[i] = node
		}
	}
	return graph, nil
}

func makeRow(d *store.Dispatcher, above []store.Subscribable[int], cfg scenario, counter *int64, random *rand.Rand) ([]store.Readable[int], error) {
	row := make([]store.Readable[int], len(above))
	for myDex := range above {
		mySources := make([]store.Subscribable[int], 0, cfg.Sources)
		for sourceDex := 0; sourceDex < cfg.Sources; sourceDex++ {
			mySources = append(mySources, above[(myDex+sourceDex)%len(above)])
		}

		compute := func(values []int) (int, error) {
			*counter++
			sum := 0
			for _, v := range values {
				sum += v
			}
			return sum, nil
		}
		if random.Float64() >= cfg.StaticFraction && len(mySources) > 1 {
			// skip one tail value picked by the parity of the head
			compute = func(values []int) (int, error) {
				*counter++
				sum := values[0]
				tail := values[1:]
				shouldDrop := sum&0x1 > 0
				dropDex := sum % len(tail)
				for i, v := range tail {
					if shouldDrop && i == dropDex {
						continue
					}
					sum += v
				}
				return sum, nil
			}
		}

		node, err := store.DeriveAll(d, mySources, compute, 0)
		if err != nil {
			return nil, err
		}
		row[myDex] = node
	}
	return row, nil
}

// runGraph subscribes a fraction of the leaves, writes one source per
// iteration and returns the sum of the subscribed leaves.
func runGraph(graph *benchmarkGraph, cfg scenario) int {
	random := rand.New(rand.NewSource(0))
	leaves := graph.layers[len(graph.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - cfg.ReadFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	unsubs := make([]store.Unsubscriber, len(readLeaves))
	for i, leaf := range readLeaves {
		unsubs[i] = leaf.Subscribe(func(int) {}, nil)
	}
	defer func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}()

	for i := 0; i < int(cfg.Iterations); i++ {
		sourceDex := i % len(graph.sources)
		graph.sources[sourceDex].Set(i + sourceDex)
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.Value()
	}
	return sum
}

func removeElems[T any](src []T, rmCount int, rand *rand.Rand) []T {
	copyWithRemovals := make([]T, len(src))
	copy(copyWithRemovals, src)
	for i := 0; i < rmCount; i++ {
		rmDex := rand.Intn(len(copyWithRemovals))
		copyWithRemovals[rmDex] = copyWithRemovals[len(copyWithRemovals)-1]
		copyWithRemovals = copyWithRemovals[:len(copyWithRemovals)-1]
	}
	return copyWithRemovals
}
