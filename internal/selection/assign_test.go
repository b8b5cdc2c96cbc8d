package selection

import (
	"errors"
	"reflect"
	"testing"
)

func TestAssignFirstRound(t *testing.T) {
	mapping, err := Assign([]string{"queue1", "queue2", "queue3"}, Retired{})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if got := mapping.Ordinals(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("ordinals = %v, want [1 2 3]", got)
	}
	if got := mapping.Queues(); !reflect.DeepEqual(got, []string{"queue1", "queue2", "queue3"}) {
		t.Fatalf("queues = %v", got)
	}
}

func TestAssignSkipsRetired(t *testing.T) {
	retired := Retired{}
	retired.Add(2, 4)

	mapping, err := Assign([]string{"queue1", "queue2", "queue3"}, retired)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	want := Mapping{{1, "queue1"}, {3, "queue2"}, {5, "queue3"}}
	if !reflect.DeepEqual(mapping, want) {
		t.Fatalf("mapping = %v, want %v", mapping, want)
	}
}

func TestAssignNoQueuesLeft(t *testing.T) {
	if _, err := Assign(nil, Retired{}); !errors.Is(err, ErrNoQueuesLeft) {
		t.Fatalf("expected ErrNoQueuesLeft, got %v", err)
	}
}

func TestAssignProperties(t *testing.T) {
	retiredSets := [][]int{
		nil,
		{1},
		{2, 3},
		{1, 2, 3, 4, 5},
		{7, 100},
		{1, 3, 5, 7, 9, 11},
	}
	for n := 1; n <= 8; n++ {
		names := make([]string, n)
		for i := range names {
			names[i] = string(rune('a' + i))
		}
		for _, set := range retiredSets {
			retired := Retired{}
			retired.Add(set...)

			mapping, err := Assign(names, retired)
			if err != nil {
				t.Fatalf("Assign: %v", err)
			}
			if len(mapping) != n {
				t.Fatalf("n=%d retired=%v: got %d entries", n, set, len(mapping))
			}
			if len(set) == 0 {
				for i, entry := range mapping {
					if entry.Ordinal != i+1 {
						t.Fatalf("n=%d: entry %d = %+v, want ordinal %d", n, i, entry, i+1)
					}
				}
			}
			seen := map[int]bool{}
			for i, entry := range mapping {
				if retired.Has(entry.Ordinal) {
					t.Fatalf("n=%d retired=%v: ordinal %d was retired", n, set, entry.Ordinal)
				}
				if entry.Ordinal > n+len(set) {
					t.Fatalf("n=%d retired=%v: ordinal %d out of range", n, set, entry.Ordinal)
				}
				if seen[entry.Ordinal] {
					t.Fatalf("n=%d retired=%v: ordinal %d repeated", n, set, entry.Ordinal)
				}
				seen[entry.Ordinal] = true
				if i > 0 && entry.Ordinal <= mapping[i-1].Ordinal {
					t.Fatalf("n=%d retired=%v: ordinals not ascending: %v", n, set, mapping.Ordinals())
				}
				if entry.Queue != names[i] {
					t.Fatalf("n=%d: queue order changed: %v", n, mapping.Queues())
				}
			}
		}
	}
}
