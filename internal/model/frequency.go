package model

// FrequencyTable maps exact line text to an occurrence count. Keys keep
// the order in which they were first inserted.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Inc adds one to line's count, creating the entry at 1.
func (t *FrequencyTable) Inc(line string) {
	if _, ok := t.counts[line]; !ok {
		t.order = append(t.order, line)
	}
	t.counts[line]++
}

// Count returns line's count and whether it is present.
func (t *FrequencyTable) Count(line string) (int, bool) {
	n, ok := t.counts[line]
	return n, ok
}

func (t *FrequencyTable) Len() int {
	return len(t.order)
}

// Each calls fn for every entry in insertion order.
func (t *FrequencyTable) Each(fn func(line string, count int)) {
	for _, line := range t.order {
		fn(line, t.counts[line])
	}
}

// Map returns a copy of the counts.
func (t *FrequencyTable) Map() map[string]int {
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// DuplicateTracker is the set of lines already seen at least once.
type DuplicateTracker map[string]struct{}

// Seen records line and reports whether it had been seen before.
func (d DuplicateTracker) Seen(line string) bool {
	if _, ok := d[line]; ok {
		return true
	}
	d[line] = struct{}{}
	return false
}
