package store

import (
	"regexp"
	"testing"

	"github.com/creachadair/hel/entry"
	"github.com/creachadair/hel/skey"
)

func mustDate(y, m, d int) entry.Date { return entry.Date{Year: y, Month: m, Day: d} }

func TestInsertIdempotent(t *testing.T) {
	s := New()
	e := entry.Entry{Name: "t1", Mode: skey.Regular, Seq: 99, Date: mustDate(2022, 1, 1)}
	if err := s.Insert(e); err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(e); err != nil {
		t.Fatalf("re-insert of identical entry should be a no-op: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestInsertConflict(t *testing.T) {
	s := New()
	e := entry.Entry{Name: "t1", Mode: skey.Regular, Seq: 99, Date: mustDate(2022, 1, 1)}
	if err := s.Insert(e); err != nil {
		t.Fatal(err)
	}
	e2 := e
	e2.Seq = 1
	if err := s.Insert(e2); err == nil {
		t.Fatal("expected error inserting conflicting entry with the same name")
	}
	got, _ := s.Lookup("t1")
	if got.Seq != 99 {
		t.Fatalf("conflicting insert must not mutate the store, got seq=%d", got.Seq)
	}
}

func TestFixHierarchyStripsParentToken(t *testing.T) {
	s := New()
	must(t, s.Insert(entry.Entry{Name: "t1", Mode: skey.Regular, Seq: 99, Date: mustDate(2022, 1, 1)}))
	must(t, s.Insert(entry.Entry{Name: "t2", Mode: skey.Regular, Seq: 99, Date: mustDate(2022, 1, 1), Comment: "link ^t1 trailing"}))

	t2, _ := s.Lookup("t2")
	if t2.Parent != "t1" {
		t.Errorf("Parent = %q, want t1", t2.Parent)
	}
	if t2.Comment != "link trailing" {
		t.Errorf("Comment = %q, want %q", t2.Comment, "link trailing")
	}
}

// TestFixCycleClearsMeetingNode replicates the reference implementation's
// own five-node fixture: a tail p5->p4->p3 feeding into a 3-cycle
// p3->p2->p1->p3. Starting the tortoise-and-hare walk from the tail node
// p5 (not from inside the cycle) is what makes the meeting point, and so
// the cleared edge, land on p3 specifically rather than some other node
// in the cycle.
func TestFixCycleClearsMeetingNode(t *testing.T) {
	s := New()
	for _, name := range []string{"p1", "p2", "p3", "p4", "p5"} {
		must(t, s.Insert(entry.Entry{Name: name, Mode: skey.Regular, Seq: 99, Date: mustDate(2022, 12, 3)}))
	}
	// Link the chain directly, bypassing SetParent, so no fixCycle pass
	// runs until the whole fixture (including the cycle) is in place.
	link := func(child, parent string) {
		e, _ := s.Lookup(child)
		e.Parent = parent
	}
	link("p2", "p1")
	link("p3", "p2")
	link("p4", "p3")
	link("p5", "p4")
	link("p1", "p3") // closes the cycle p1 -> p3 -> p2 -> p1

	p5, _ := s.Lookup("p5")
	s.fixCycle(p5)

	p3, _ := s.Lookup("p3")
	if p3.Parent != "" {
		t.Fatalf("p3.Parent = %q, want cleared", p3.Parent)
	}
	// Every other edge in the fixture must be untouched.
	p1, _ := s.Lookup("p1")
	if p1.Parent != "p3" {
		t.Errorf("p1.Parent = %q, want p3", p1.Parent)
	}
	p2, _ := s.Lookup("p2")
	if p2.Parent != "p1" {
		t.Errorf("p2.Parent = %q, want p1", p2.Parent)
	}
	p4, _ := s.Lookup("p4")
	if p4.Parent != "p3" {
		t.Errorf("p4.Parent = %q, want p3", p4.Parent)
	}
	if p5.Parent != "p4" {
		t.Errorf("p5.Parent = %q, want p4", p5.Parent)
	}

	// Walking from any node still terminates.
	for _, name := range []string{"p1", "p2", "p3", "p4", "p5"} {
		steps := 0
		e, _ := s.Lookup(name)
		for e.Parent != "" {
			e, _ = s.Lookup(e.Parent)
			steps++
			if steps > 5 {
				t.Fatalf("parent walk from %q did not terminate", name)
			}
		}
	}
}

func TestRemoveByListingKey(t *testing.T) {
	s := New()
	must(t, s.Insert(entry.Entry{Name: "t1", Mode: skey.Regular, Seq: 99, Date: mustDate(2022, 1, 1)}))
	s.RebuildListing(regexp.MustCompile("."), SortByName)
	if _, ok := s.Remove("1"); !ok {
		t.Fatal("expected to remove by listing key \"1\"")
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
}

func TestRebuildListingFilterAndSort(t *testing.T) {
	s := New()
	must(t, s.Insert(entry.Entry{Name: "bbb", Mode: skey.Regular, Seq: 99, Date: mustDate(2022, 1, 2)}))
	must(t, s.Insert(entry.Entry{Name: "aaa", Mode: skey.Regular, Seq: 99, Date: mustDate(2022, 1, 1), Comment: "keepme"}))
	must(t, s.Insert(entry.Entry{Name: "zzz", Mode: skey.Regular, Seq: 99, Date: mustDate(2022, 1, 3)}))

	matched := s.RebuildListing(regexp.MustCompile("keepme|bbb"), SortByName)
	if len(matched) != 2 {
		t.Fatalf("matched %d entries, want 2: %+v", len(matched), matched)
	}
	if matched[0].Name != "aaa" || matched[1].Name != "bbb" {
		t.Fatalf("expected sort by name, got %q then %q", matched[0].Name, matched[1].Name)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
