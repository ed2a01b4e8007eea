package state

import (
	"testing"

	. "github.com/redexp/kaiserhof/types"
)

func TestLayoutTransitions(t *testing.T) {
	l := CreateLayout()
	updates := 0
	resets := 0

	l.OnUpdate(func() { updates++ })
	l.On(LayoutOnReset, func() { resets++ })

	l.Init(YearRange{Start: 1750, End: 1700})

	if l.Bounds != (YearRange{Start: 1700, End: 1750}) || l.TimeRange != l.Bounds {
		t.Errorf("init - got bounds %v range %v", l.Bounds, l.TimeRange)
	}

	l.Drill("lord1")

	if id, ok := l.Person(); l.Mode != ModePersons || !ok || id != "lord1" {
		t.Errorf("drill - got %s %v", l.Mode, l.CurrentPersonId)
	}

	l.Select("p2")

	if id, _ := l.Person(); l.Mode != ModePersons || id != "p2" {
		t.Errorf("select - got %s %s", l.Mode, id)
	}

	if l.Household == nil || *l.Household != "lord1" {
		t.Errorf("select - got household %v; expect lord1", l.Household)
	}

	l.Reset()

	if _, ok := l.Person(); l.Mode != ModeCount || ok || l.Household != nil {
		t.Errorf("reset - got %s %v %v", l.Mode, l.CurrentPersonId, l.Household)
	}

	if updates != 4 || resets != 1 {
		t.Errorf("got %d updates %d resets; expect 4 and 1", updates, resets)
	}
}

func TestLayoutRestore(t *testing.T) {
	l := CreateLayout()
	l.Init(YearRange{Start: 1700, End: 1750})

	prev := l.Snapshot()

	l.Drill("lord1")
	l.SetRange(YearRange{Start: 1710, End: 1720})
	token := l.Next()
	l.Restore(prev)

	if l.Mode != ModeCount || l.CurrentPersonId != nil || l.Household != nil {
		t.Errorf("got %s %v %v; expect count mode without persons", l.Mode, l.CurrentPersonId, l.Household)
	}

	if l.TimeRange != (YearRange{Start: 1710, End: 1720}) || l.Generation != token {
		t.Errorf("got range %v generation %d; expect 1710-1720 and %d", l.TimeRange, l.Generation, token)
	}
}

func TestLayoutSetRange(t *testing.T) {
	list := []struct {
		Bounds YearRange
		Range  YearRange
		Expect YearRange
	}{
		{YearRange{Start: 1700, End: 1750}, YearRange{Start: 1710, End: 1720}, YearRange{Start: 1710, End: 1720}},
		{YearRange{Start: 1700, End: 1750}, YearRange{Start: 1720, End: 1710}, YearRange{Start: 1710, End: 1720}},
		{YearRange{Start: 1700, End: 1750}, YearRange{Start: 1600, End: 1800}, YearRange{Start: 1700, End: 1750}},
		{YearRange{Start: 1700, End: 1750}, YearRange{Start: 1800, End: 1900}, YearRange{Start: 1750, End: 1750}},
		{YearRange{}, YearRange{Start: 1900, End: 1800}, YearRange{Start: 1800, End: 1900}},
	}

	for _, item := range list {
		l := CreateLayout()
		l.Bounds = item.Bounds

		if r := l.SetRange(item.Range); r != item.Expect || l.TimeRange != item.Expect {
			t.Errorf("%v in %v - got: %v; expect: %v", item.Range, item.Bounds, r, item.Expect)
		}
	}
}

func TestLayoutGeneration(t *testing.T) {
	l := CreateLayout()

	first := l.Next()
	second := l.Next()

	if l.Stale(first) || l.Stale(second) {
		t.Error("nothing committed yet, nothing is stale")
	}

	l.Commit(second)

	if !l.Stale(first) || l.Stale(second) {
		t.Errorf("got stale(first)=%v stale(second)=%v", l.Stale(first), l.Stale(second))
	}

	l.Commit(first)

	if l.Committed != second {
		t.Errorf("commit went back to %d", l.Committed)
	}
}

func TestSnapshotCopies(t *testing.T) {
	l := CreateLayout()
	l.Drill("lord1")

	s := l.Snapshot()
	l.Select("p1")

	if *s.CurrentPersonId != "lord1" {
		t.Errorf("snapshot changed with layout: %s", *s.CurrentPersonId)
	}

	if s.String() != "persons lord1 0-0" {
		t.Errorf("got %q", s.String())
	}
}
