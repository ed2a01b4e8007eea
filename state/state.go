package state

import (
	"fmt"
	"sync"

	. "github.com/redexp/kaiserhof/types"
)

// Layout is the visualization state shared by the bubble chart and the
// family tree. Only the controller writes it.
type Layout struct {
	Mode            Mode
	CurrentPersonId *PersonId
	Household       *PersonId
	TimeRange       YearRange
	Bounds          YearRange
	Generation      uint64
	Committed       uint64
	Listeners       Listeners

	UpdateLock sync.Mutex
}

// Snapshot is a copy of the layout taken under lock.
type Snapshot struct {
	Mode            Mode      `json:"mode"`
	CurrentPersonId *PersonId `json:"currentPersonId"`
	Household       *PersonId `json:"household"`
	TimeRange       YearRange `json:"range"`
	Bounds          YearRange `json:"bounds"`
	Generation      uint64    `json:"-"`
}

func CreateLayout() *Layout {
	return &Layout{
		Mode:      ModeCount,
		Listeners: make(Listeners),
	}
}

// Init sets the bounds of the records and selects the whole span.
func (l *Layout) Init(bounds YearRange) {
	if bounds.Start > bounds.End {
		bounds.Start, bounds.End = bounds.End, bounds.Start
	}

	l.Bounds = bounds
	l.TimeRange = bounds
	l.Mode = ModeCount
	l.CurrentPersonId = nil
	l.Household = nil

	l.Trigger(LayoutOnUpdate)
}

func (l *Layout) Reset() {
	l.Mode = ModeCount
	l.CurrentPersonId = nil
	l.Household = nil

	l.Trigger(LayoutOnReset)
	l.Trigger(LayoutOnUpdate)
}

// SetRange stores r limited to the bounds and returns what was stored.
func (l *Layout) SetRange(r YearRange) YearRange {
	if l.Bounds != (YearRange{}) {
		r = r.Clamp(l.Bounds)
	} else if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}

	l.TimeRange = r
	l.Trigger(LayoutOnUpdate)

	return r
}

// Drill switches to the members of the household represented by id.
func (l *Layout) Drill(id PersonId) {
	household := id

	l.Mode = ModePersons
	l.CurrentPersonId = &id
	l.Household = &household

	l.Trigger(LayoutOnUpdate)
}

// Restore puts back the mode and persons of s. Range and render
// generations are kept.
func (l *Layout) Restore(s Snapshot) {
	l.Mode = s.Mode
	l.CurrentPersonId = copyId(s.CurrentPersonId)
	l.Household = copyId(s.Household)

	l.Trigger(LayoutOnUpdate)
}

// Select changes the current person only, the drilled household stays.
func (l *Layout) Select(id PersonId) {
	l.CurrentPersonId = &id

	l.Trigger(LayoutOnUpdate)
}

func (l *Layout) Person() (id PersonId, ok bool) {
	if l.CurrentPersonId == nil {
		return
	}

	return *l.CurrentPersonId, true
}

// Next starts a new render and returns its generation token.
func (l *Layout) Next() uint64 {
	l.Generation++

	return l.Generation
}

// Stale reports whether a render started later than token was already committed.
func (l *Layout) Stale(token uint64) bool {
	return token < l.Committed
}

func (l *Layout) Commit(token uint64) {
	l.Committed = max(l.Committed, token)
}

func (l *Layout) Snapshot() Snapshot {
	return Snapshot{
		Mode:            l.Mode,
		CurrentPersonId: copyId(l.CurrentPersonId),
		Household:       copyId(l.Household),
		TimeRange:       l.TimeRange,
		Bounds:          l.Bounds,
		Generation:      l.Generation,
	}
}

func copyId(id *PersonId) *PersonId {
	if id == nil {
		return nil
	}

	c := *id

	return &c
}

func (s Snapshot) String() string {
	id := "-"

	if s.CurrentPersonId != nil {
		id = *s.CurrentPersonId
	}

	return fmt.Sprintf("%s %s %d-%d", s.Mode, id, s.TimeRange.Start, s.TimeRange.End)
}

func (l *Layout) Trigger(event string) {
	list, exist := l.Listeners[event]

	if !exist {
		return
	}

	for _, cb := range list {
		cb()
	}
}

func (l *Layout) On(event string, cb func()) {
	l.Listeners[event] = append(l.Listeners[event], cb)
}

func (l *Layout) OnUpdate(cb func()) {
	l.On(LayoutOnUpdate, cb)
}
