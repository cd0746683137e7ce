package extract

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	registry = make(map[string]Extractor)
	mu       sync.RWMutex
)

func Register(e Extractor) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[e.ID()]; exists {
		panic(fmt.Sprintf("extractor %s already registered", e.ID()))
	}
	registry[e.ID()] = e
}

// List returns every registered extractor sorted by stage, then ID.
func List() []Extractor {
	mu.RLock()
	defer mu.RUnlock()
	return listLocked()
}

func listLocked() []Extractor {
	out := make([]Extractor, 0, len(registry))
	for _, e := range registry {
		out = append(out, e)
	}
	SortByStage(out)
	return out
}

// SortByStage orders extractors in place by Stage, breaking ties by ID.
func SortByStage(es []Extractor) {
	sort.SliceStable(es, func(i, j int) bool {
		if es[i].Stage() != es[j].Stage() {
			return es[i].Stage() < es[j].Stage()
		}
		return es[i].ID() < es[j].ID()
	})
}

// Resolve selects extractors by a comma-separated list of IDs. An empty
// selector selects all of them.
func Resolve(selector string) ([]Extractor, error) {
	mu.RLock()
	defer mu.RUnlock()

	if strings.TrimSpace(selector) == "" {
		return listLocked(), nil
	}

	seen := make(map[string]struct{})
	var selected []Extractor
	for _, id := range strings.Split(selector, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		e, ok := registry[id]
		if !ok {
			return nil, fmt.Errorf("extractor not found: %s", id)
		}
		seen[id] = struct{}{}
		selected = append(selected, e)
	}
	SortByStage(selected)
	return selected, nil
}
