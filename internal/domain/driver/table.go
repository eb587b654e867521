package driver

import (
	"strconv"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Table is an immutable bidirectional lookup between driver ids and names.
type Table struct {
	byID    map[string]Driver
	byAlias map[string]string
	aliases []string
}

var (
	defaultTableOnce sync.Once
	defaultTable     *Table
)

func Default() *Table {
	defaultTableOnce.Do(func() {
		defaultTable = NewTable(DefaultGrid())
	})
	return defaultTable
}

func NewTable(drivers []Driver) *Table {
	t := &Table{
		byID:    make(map[string]Driver, len(drivers)),
		byAlias: make(map[string]string, len(drivers)*5),
	}
	for _, item := range drivers {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		item.ID = id
		t.byID[id] = item

		candidates := []string{id, item.Code, item.Name, item.FullName}
		if item.Number > 0 {
			candidates = append(candidates, strconv.Itoa(item.Number))
		}
		for _, alias := range candidates {
			key := strings.ToLower(strings.TrimSpace(alias))
			if key == "" {
				continue
			}
			if _, exists := t.byAlias[key]; exists {
				continue
			}
			t.byAlias[key] = id
			t.aliases = append(t.aliases, key)
		}
	}
	return t
}

func (t *Table) Lookup(id string) (Driver, bool) {
	item, ok := t.byID[id]
	return item, ok
}

// Name returns the display name for a driver id, or the id itself when the
// driver is not on the grid.
func (t *Table) Name(id string) string {
	if item, ok := t.Lookup(id); ok && item.Name != "" {
		return item.Name
	}
	return id
}

// ResolveID maps free text (id, code, number, short or full name) to a driver
// id. Unknown text falls back to fuzzy ranking and only resolves when exactly
// one driver is the best match.
func (t *Table) ResolveID(text string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return "", false
	}
	if id, ok := t.byAlias[key]; ok {
		return id, true
	}

	ranks := fuzzy.RankFindFold(key, t.aliases)
	if len(ranks) == 0 {
		return "", false
	}

	best := ranks[0].Distance
	for _, rank := range ranks[1:] {
		if rank.Distance < best {
			best = rank.Distance
		}
	}
	resolved := ""
	for _, rank := range ranks {
		if rank.Distance != best {
			continue
		}
		id := t.byAlias[rank.Target]
		if resolved != "" && resolved != id {
			return "", false
		}
		resolved = id
	}
	return resolved, resolved != ""
}

func (t *Table) Len() int {
	return len(t.byID)
}
