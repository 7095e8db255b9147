package picker

import (
	"reflect"
	"testing"
)

var cats = []string{"GROCERIES", "PETROL", "COFFEE", "ONLINE", "UNCATEGORISED"}

func TestSearchEmptyQueryListsAll(t *testing.T) {
	res := Search(cats, "", 1)
	want := []string{"COFFEE", "GROCERIES", "ONLINE", "PETROL", "UNCATEGORISED"}
	if !reflect.DeepEqual(res.Names, want) {
		t.Fatalf("got %v, want %v", res.Names, want)
	}
	if res.CanCreate {
		t.Fatalf("empty query must not offer create")
	}
}

func TestSearchRanking(t *testing.T) {
	res := Search(cats, "pet", 1)
	if len(res.Names) == 0 || res.Names[0] != "PETROL" {
		t.Fatalf("prefix match should rank first, got %v", res.Names)
	}
}

func TestSearchFuzzy(t *testing.T) {
	// One transposition away from COFFEE.
	res := Search(cats, "COFEFE", 1)
	found := false
	for _, n := range res.Names {
		if n == "COFFEE" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected fuzzy match for COFFEE, got %v", res.Names)
	}
}

func TestSearchCreateIntent(t *testing.T) {
	res := Search(cats, "subscriptions", 1)
	if !res.CanCreate || res.CreateLabel != "SUBSCRIPTIONS" {
		t.Fatalf("expected create intent, got %+v", res)
	}
	exact := Search(cats, "petrol", 1)
	if exact.CanCreate {
		t.Fatalf("exact match must not offer create")
	}
}

func TestSearchPaginates(t *testing.T) {
	many := make([]string, 0, 23)
	for i := 0; i < 23; i++ {
		many = append(many, string(rune('A'+i%26))+"CAT")
	}
	res := Search(many, "", 3)
	if res.TotalPages != 3 || res.Page != 3 {
		t.Fatalf("got page %d of %d, want 3 of 3", res.Page, res.TotalPages)
	}
	if len(res.Names) != 3 {
		t.Fatalf("last page should hold 3 names, got %d", len(res.Names))
	}
	if !res.HasPrev || res.HasNext {
		t.Fatalf("nav flags wrong: %+v", res)
	}
}
