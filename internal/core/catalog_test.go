package core

import (
	"sort"
	"testing"
)

func TestIconFor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Groceries", "grocery_store"},
		{"groceries", "grocery_store"},
		{"GROCERIES", "grocery_store"},
		{"Rent", "home"},
		{"Quantum Snacks", GenericIcon},
		{"", GenericIcon},
	}
	for i, tc := range cases {
		if got := IconFor(tc.in); got != tc.want {
			t.Fatalf("case %d: IconFor(%q) = %q, want %q", i, tc.in, got, tc.want)
		}
	}
}

func TestAllCategoriesSortedDeduped(t *testing.T) {
	cats := AllCategories()
	if len(cats) == 0 {
		t.Fatalf("catalog is empty")
	}
	if !sort.StringsAreSorted(cats) {
		t.Fatalf("categories not sorted: %v", cats)
	}
	seen := make(map[string]bool, len(cats))
	for _, c := range cats {
		if seen[c] {
			t.Fatalf("duplicate category %q", c)
		}
		seen[c] = true
	}
}
