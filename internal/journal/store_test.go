package journal

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/perthho/dailyReco/internal/filler"
)

func testEntry(id int64) Entry {
	return Entry{
		ID:        id,
		Date:      "2026-08-29",
		Duration:  "3 Minutes",
		Video:     fmt.Sprintf("media:%d", id),
		Timestamp: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
	}
}

func openTestStore(t *testing.T) (*Store, *MemoryPersister) {
	t.Helper()
	p := NewMemoryPersister()
	s, err := Open(p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, p
}

func TestInsertPrependsNewestFirst(t *testing.T) {
	s, _ := openTestStore(t)

	for i := int64(1); i <= 3; i++ {
		if _, err := s.Insert(testEntry(i)); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if list[0].ID != 3 || list[2].ID != 1 {
		t.Errorf("order = [%d %d %d], want [3 2 1]", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestInsertEvictsPastCap(t *testing.T) {
	s, _ := openTestStore(t)

	var allEvicted []Entry
	for i := int64(1); i <= int64(MaxEntries)+1; i++ {
		evicted, err := s.Insert(testEntry(i))
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
		allEvicted = append(allEvicted, evicted...)
	}

	if s.Len() != MaxEntries {
		t.Fatalf("len = %d, want %d", s.Len(), MaxEntries)
	}
	if _, ok := s.FindByID(51); !ok {
		t.Error("newest entry 51 should be present")
	}
	if _, ok := s.FindByID(1); ok {
		t.Error("oldest entry 1 should have been evicted")
	}
	if len(allEvicted) != 1 || allEvicted[0].ID != 1 {
		t.Errorf("evicted = %+v, want exactly entry 1", allEvicted)
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	s, _ := openTestStore(t)
	s.Insert(testEntry(1))
	s.Insert(testEntry(2))

	rating := 4
	notes := "felt confident today"
	if err := s.Update(1, Patch{Rating: &rating, Notes: &notes}); err != nil {
		t.Fatalf("update: %v", err)
	}

	e, ok := s.FindByID(1)
	if !ok {
		t.Fatal("entry 1 missing")
	}
	if e.Rating != 4 {
		t.Errorf("rating = %d, want 4", e.Rating)
	}
	if e.Notes != notes {
		t.Errorf("notes = %q", e.Notes)
	}
	if e.Date != "2026-08-29" || e.ID != 1 {
		t.Error("update must not touch identity fields")
	}

	// Position unchanged: entry 2 still first.
	if list := s.List(); list[0].ID != 2 || list[1].ID != 1 {
		t.Errorf("order changed: [%d %d]", list[0].ID, list[1].ID)
	}
}

func TestUpdateUnknownIDLeavesStoreUnchanged(t *testing.T) {
	s, _ := openTestStore(t)
	s.Insert(testEntry(1))
	before := s.List()

	rating := 5
	err := s.Update(99, Patch{Rating: &rating})
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !reflect.DeepEqual(before, s.List()) {
		t.Error("collection changed after update of unknown id")
	}
}

func TestUpdateRejectsOutOfRangeRating(t *testing.T) {
	s, _ := openTestStore(t)
	s.Insert(testEntry(1))

	for _, r := range []int{-1, 6} {
		rating := r
		if err := s.Update(1, Patch{Rating: &rating}); err == nil {
			t.Errorf("rating %d accepted, want error", r)
		}
	}
	if e, _ := s.FindByID(1); e.Rating != 0 {
		t.Errorf("rating = %d, want 0 after rejected updates", e.Rating)
	}
}

func TestUpdateRejectsNegativeBookmark(t *testing.T) {
	s, _ := openTestStore(t)
	s.Insert(testEntry(1))

	offset := -2.5
	if err := s.Update(1, Patch{Bookmark: &offset}); err == nil {
		t.Error("negative bookmark accepted, want error")
	}

	good := 12.5
	if err := s.Update(1, Patch{Bookmark: &good}); err != nil {
		t.Fatalf("bookmark update: %v", err)
	}
	e, _ := s.FindByID(1)
	if e.Bookmark == nil || *e.Bookmark != 12.5 {
		t.Errorf("bookmark = %v, want 12.5", e.Bookmark)
	}
}

func TestUpdateRejectedPatchAppliesNothing(t *testing.T) {
	s, p := openTestStore(t)
	s.Insert(testEntry(1))
	saves := p.SaveCalls()

	// Valid rating riding along with an invalid bookmark: the whole patch
	// is rejected, not just the bad field.
	rating := 4
	bad := -1.0
	if err := s.Update(1, Patch{Rating: &rating, Bookmark: &bad}); err == nil {
		t.Fatal("mixed patch accepted, want error")
	}
	e, _ := s.FindByID(1)
	if e.Rating != 0 {
		t.Errorf("rating = %d after rejected update, want 0", e.Rating)
	}
	if e.Bookmark != nil {
		t.Errorf("bookmark = %v after rejected update, want nil", e.Bookmark)
	}

	// Same with notes preceding an out-of-range rating.
	notes := "should not stick"
	tooHigh := 7
	if err := s.Update(1, Patch{Notes: &notes, Rating: &tooHigh}); err == nil {
		t.Fatal("mixed patch accepted, want error")
	}
	e, _ = s.FindByID(1)
	if e.Notes != "" {
		t.Errorf("notes = %q after rejected update, want empty", e.Notes)
	}

	if p.SaveCalls() != saves {
		t.Errorf("saveCalls = %d, want %d (rejected updates must not persist)", p.SaveCalls(), saves)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s, _ := openTestStore(t)
	for i := int64(1); i <= 4; i++ {
		s.Insert(testEntry(i))
	}

	if err := s.Delete(3); err != nil {
		t.Fatalf("delete: %v", err)
	}

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	want := []int64{4, 2, 1}
	for i, e := range list {
		if e.ID != want[i] {
			t.Errorf("list[%d].ID = %d, want %d", i, e.ID, want[i])
		}
	}
}

func TestDeleteUnknownID(t *testing.T) {
	s, _ := openTestStore(t)
	s.Insert(testEntry(1))

	if err := s.Delete(99); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestMutationsPersist(t *testing.T) {
	s, p := openTestStore(t)

	e := testEntry(1)
	e.FillerAnalysis = &filler.Report{
		CountsByWord:     map[string]int{"um": 2},
		TotalFillerCount: 2,
		TotalWordCount:   10,
	}
	s.Insert(e)

	// A fresh store over the same persister observes the write.
	reopened, err := Open(p)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok := reopened.FindByID(1)
	if !ok {
		t.Fatal("entry missing after reopen")
	}
	if got.FillerAnalysis == nil || got.FillerAnalysis.TotalFillerCount != 2 {
		t.Errorf("fillerAnalysis = %+v", got.FillerAnalysis)
	}
}

func TestListReturnsSnapshot(t *testing.T) {
	s, _ := openTestStore(t)
	s.Insert(testEntry(1))

	list := s.List()
	list[0].Notes = "mutated copy"

	if e, _ := s.FindByID(1); e.Notes != "" {
		t.Error("mutating the List snapshot changed the store")
	}
}
