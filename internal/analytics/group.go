package analytics

import "sort"

const (
	NoZoneLabel   = "Sin zona"
	NoStatusLabel = "Sin estado"
)

// GroupCount is one bucket of a group-by rollup.
type GroupCount struct {
	Label string
	Count int
}

// GroupCounter tallies labels. Nil labels fall into the missing bucket.
type GroupCounter struct {
	missing string
	order   []string
	counts  map[string]int
}

func NewGroupCounter(missingLabel string) *GroupCounter {
	return &GroupCounter{missing: missingLabel, counts: make(map[string]int)}
}

func (g *GroupCounter) Add(label *string) {
	key := g.missing
	if label != nil {
		key = *label
	}
	g.AddN(key, 1)
}

func (g *GroupCounter) AddN(label string, n int) {
	if _, seen := g.counts[label]; !seen {
		g.order = append(g.order, label)
	}
	g.counts[label] += n
}

// Result returns the buckets by descending count. Equal counts keep the
// order in which their label was first seen.
func (g *GroupCounter) Result() []GroupCount {
	out := make([]GroupCount, len(g.order))
	for i, label := range g.order {
		out[i] = GroupCount{Label: label, Count: g.counts[label]}
	}
	SortByCountDesc(out)
	return out
}

func SortByCountDesc(groups []GroupCount) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
}

// CountLabels is a one-shot GroupCounter.
func CountLabels(labels []*string, missingLabel string) []GroupCount {
	g := NewGroupCounter(missingLabel)
	for _, l := range labels {
		g.Add(l)
	}
	return g.Result()
}
