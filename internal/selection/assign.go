package selection

import "sort"

// Entry pairs a display ordinal with the queue it stands for in one round.
type Entry struct {
	Ordinal int
	Queue   string
}

// Mapping is one round's ordinal assignment. Entries are in ascending ordinal
// order, which is also the order the broker listed the queues.
type Mapping []Entry

// Ordinals lists the mapping's keys in order.
func (m Mapping) Ordinals() []int {
	out := make([]int, len(m))
	for i, entry := range m {
		out[i] = entry.Ordinal
	}
	return out
}

// Queues lists the mapping's queue names in order.
func (m Mapping) Queues() []string {
	out := make([]string, len(m))
	for i, entry := range m {
		out[i] = entry.Queue
	}
	return out
}

// Retired is the set of ordinals that must not be handed out again during
// the current run.
type Retired map[int]struct{}

// Has reports whether n has been retired.
func (r Retired) Has(n int) bool {
	_, ok := r[n]
	return ok
}

// Add retires every ordinal in ns.
func (r Retired) Add(ns ...int) {
	for _, n := range ns {
		r[n] = struct{}{}
	}
}

// Sorted returns the retired ordinals in ascending order.
func (r Retired) Sorted() []int {
	out := make([]int, 0, len(r))
	for n := range r {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Assign numbers the live queue names for a round. The candidate range is
// widened by the number of retired ordinals and the retired ones are skipped,
// so surviving queues drift towards smaller free numbers while retired
// numbers never come back. Actions that keep queues only retire ordinals of
// queues that turned out to be missing, so with nothing retired the queues
// are simply numbered 1..N. An empty name list yields ErrNoQueuesLeft.
func Assign(liveNames []string, retired Retired) (Mapping, error) {
	if len(liveNames) == 0 {
		return nil, ErrNoQueuesLeft
	}

	mapping := make(Mapping, 0, len(liveNames))
	upper := len(liveNames) + len(retired)
	next := 0
	for n := 1; n <= upper && next < len(liveNames); n++ {
		if retired.Has(n) {
			continue
		}
		mapping = append(mapping, Entry{Ordinal: n, Queue: liveNames[next]})
		next++
	}
	return mapping, nil
}
