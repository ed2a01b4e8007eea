package providers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redexp/kaiserhof/scene"
	"github.com/redexp/kaiserhof/store"
	. "github.com/redexp/kaiserhof/types"
	. "github.com/redexp/kaiserhof/utils"
)

var _ Source = (*store.Store)(nil)

type court struct {
	lock    sync.Mutex
	bounds  YearRange
	counts  map[int]RowSet // by range start, 0 for any
	members map[PersonId]RowSet
	persons map[PersonId]Row
	parents map[PersonId][]PersonId
	wives   map[PersonId][]PersonId
	images  map[PersonId]string
	fail    map[string]error
	calls   map[string]int
	ranges  []YearRange
	onCount func(r YearRange)
}

func createCourt() *court {
	person := func(id, gender, label string) Row {
		return Row{"F41": id, "F24": gender, "ZLabel": label}
	}

	return &court{
		bounds: YearRange{Start: 1700, End: 1750},
		counts: map[int]RowSet{
			0: {
				{"Bezeichnung": "Kitchen", "Anzahl": int64(3), "F41": "lord1"},
				{"Bezeichnung": "Stable", "Anzahl": int64(1), "F41": "lord2"},
			},
			1710: {
				{"Bezeichnung": "Kitchen", "Anzahl": int64(3), "F41": "lord1"},
			},
			1720: {
				{"Bezeichnung": "Stable", "Anzahl": int64(1), "F41": "lord2"},
			},
		},
		members: map[PersonId]RowSet{
			"lord1": {
				person("p1", "m", "Anton"),
				person("p2", "w", "Berta"),
				person("p3", "m", "Carl"),
			},
		},
		persons: map[PersonId]Row{
			"lord1": person("lord1", "m", "Obersthofmeister"),
			"p1":    person("p1", "m", "Anton"),
			"p2":    person("p2", "w", "Berta"),
			"p3":    person("p3", "m", "Carl"),
		},
		parents: map[PersonId][]PersonId{
			"p3": {"p1", "p2"},
		},
		wives: map[PersonId][]PersonId{
			"p1": {"p2"},
		},
		images: make(map[PersonId]string),
		fail:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (c *court) call(name string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.calls[name]++

	return c.fail[name]
}

func (c *court) count(name string) int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.calls[name]
}

func (c *court) setFail(name string, err error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.fail[name] = err
}

func (c *court) rows(ids []PersonId) RowSet {
	list := RowSet{}

	for _, id := range ids {
		list = append(list, c.persons[id])
	}

	return list
}

func (c *court) Bounds(_ context.Context) (YearRange, error) {
	return c.bounds, c.call("bounds")
}

func (c *court) CountMembersByGroupInRange(_ context.Context, r YearRange) (RowSet, error) {
	if c.onCount != nil {
		c.onCount(r)
	}

	if err := c.call("count"); err != nil {
		return nil, err
	}

	c.lock.Lock()
	c.ranges = append(c.ranges, r)
	c.lock.Unlock()

	if rows, ok := c.counts[r.Start]; ok {
		return rows, nil
	}

	return c.counts[0], nil
}

func (c *court) MembersOfGroupInRange(_ context.Context, id PersonId, _ YearRange) (RowSet, error) {
	if err := c.call("members"); err != nil {
		return nil, err
	}

	rows, ok := c.members[id]

	if !ok {
		return RowSet{}, nil
	}

	return rows, nil
}

func (c *court) Person(_ context.Context, id PersonId) (RowSet, error) {
	if err := c.call("person"); err != nil {
		return nil, err
	}

	row, ok := c.persons[id]

	if !ok {
		return RowSet{}, nil
	}

	if src, ok := c.images[id]; ok {
		row["Source"] = src
	}

	return RowSet{row}, nil
}

func (c *court) Parents(_ context.Context, id PersonId) (RowSet, error) {
	if err := c.call("parents"); err != nil {
		return nil, err
	}

	return c.rows(c.parents[id]), nil
}

func (c *court) Wives(_ context.Context, id PersonId) (RowSet, error) {
	if err := c.call("wives"); err != nil {
		return nil, err
	}

	return c.rows(c.wives[id]), nil
}

func (c *court) Husbands(_ context.Context, id PersonId) (RowSet, error) {
	if err := c.call("husbands"); err != nil {
		return nil, err
	}

	var ids []PersonId

	for husband, wives := range c.wives {
		for _, wife := range wives {
			if wife == id {
				ids = append(ids, husband)
			}
		}
	}

	return c.rows(ids), nil
}

func (c *court) ChildrenOfSpouse(_ context.Context, id PersonId, spouseId PersonId) (RowSet, error) {
	if err := c.call("children"); err != nil {
		return nil, err
	}

	var ids []PersonId

	for child, parents := range c.parents {
		if len(parents) == 2 && (parents[0] == id && parents[1] == spouseId || parents[0] == spouseId && parents[1] == id) {
			ids = append(ids, child)
		}
	}

	return c.rows(ids), nil
}

func (c *court) SetImageSource(_ context.Context, id PersonId, source string) error {
	if err := c.call("image"); err != nil {
		return err
	}

	c.images[id] = source

	return nil
}

func keys(list []scene.Instruction) []string {
	res := make([]string, len(list))

	for i, ins := range list {
		res[i] = ins.Key
	}

	return res
}

func equalKeys(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)

	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}

		time.Sleep(5 * time.Millisecond)
	}
}

func initController(t *testing.T, src *court) *Controller {
	t.Helper()

	c := NewController(src)

	if _, err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	return c
}

func TestInit(t *testing.T) {
	c := NewController(createCourt())

	res, err := c.Init(context.Background())

	if err != nil {
		t.Fatal(err)
	}

	if res.Bounds != (YearRange{Start: 1700, End: 1750}) || res.Range != res.Bounds || res.Mode != ModeCount {
		t.Errorf("got %+v", res)
	}

	if !equalKeys(keys(res.Diff.Enter), "lord1", "lord2") {
		t.Errorf("enter - got %v", keys(res.Diff.Enter))
	}

	kitchen := res.Diff.Enter[0].To
	stable := res.Diff.Enter[1].To

	if kitchen.R <= stable.R {
		t.Errorf("Kitchen (3) must be larger than Stable (1): %v <= %v", kitchen.R, stable.R)
	}

	if kitchen.Title != "Kitchen\n3" {
		t.Errorf("got title %q", kitchen.Title)
	}
}

func TestInitEmptyDatabase(t *testing.T) {
	src := createCourt()
	src.counts = map[int]RowSet{0: {}}

	c := NewController(src)
	res, err := c.Init(context.Background())

	if err != nil {
		t.Fatal(err)
	}

	if len(res.Diff.Enter) != 0 {
		t.Errorf("got %v; expect no bubbles", keys(res.Diff.Enter))
	}
}

func TestBubbleClick(t *testing.T) {
	src := createCourt()
	c := initController(t, src)

	res, err := c.BubbleClick(context.Background(), "lord1")

	if err != nil {
		t.Fatal(err)
	}

	if res.Mode != ModePersons || res.Diff == nil {
		t.Fatalf("drill - got %+v", res)
	}

	if !equalKeys(keys(res.Diff.Enter), "p1", "p2", "p3") || !equalKeys(keys(res.Diff.Exit), "lord1", "lord2") {
		t.Errorf("drill - enter %v exit %v", keys(res.Diff.Enter), keys(res.Diff.Exit))
	}

	if res.Tree == nil || res.Tree.Id != "lord1" {
		t.Errorf("drill - got tree %+v", res.Tree)
	}

	if snap := c.Snapshot(); snap.CurrentPersonId == nil || *snap.CurrentPersonId != "lord1" {
		t.Errorf("drill - got %s", snap)
	}

	res, err = c.BubbleClick(context.Background(), "p3")

	if err != nil {
		t.Fatal(err)
	}

	if res.Mode != ModePersons || res.Diff != nil || !equalKeys(keys(res.Select), "p3") {
		t.Errorf("select - got mode %s diff %v select %v", res.Mode, res.Diff, keys(res.Select))
	}

	// p3 has two parents, the first becomes the root
	if res.Tree == nil || res.Tree.Id != "p1" || res.Tree.Marriages[0].Children[0].Id != "p3" {
		t.Errorf("select - got tree %+v", res.Tree)
	}

	if src.count("members") != 1 {
		t.Errorf("selection must not refetch members, got %d", src.count("members"))
	}

	if _, err = c.BubbleClick(context.Background(), "missing"); !errors.Is(err, ErrUnknownBubble) {
		t.Errorf("got %v; expect ErrUnknownBubble", err)
	}
}

func TestBubbleClickNotFound(t *testing.T) {
	c := initController(t, createCourt())

	res, err := c.BubbleClick(context.Background(), "lord2")

	if err != nil {
		t.Fatal(err)
	}

	if res.Tree != nil || c.Tree() != nil {
		t.Errorf("tree must be suppressed, got %+v", res.Tree)
	}

	if res.Mode != ModePersons || res.Diff == nil {
		t.Errorf("bubbles must still render, got %+v", res)
	}
}

func TestBubbleClickFetchErrorKeepsMode(t *testing.T) {
	src := createCourt()
	c := initController(t, src)

	src.setFail("members", errors.New("connection lost"))

	res, err := c.BubbleClick(context.Background(), "lord1")

	if err == nil {
		t.Fatal("expect error")
	}

	if snap := c.Snapshot(); snap.Mode != ModeCount || snap.CurrentPersonId != nil || snap.Household != nil {
		t.Errorf("got %s; expect count mode", snap)
	}

	if c.graph.Len() != 2 {
		t.Errorf("got %d bubbles; expect last 2", c.graph.Len())
	}

	if res == nil || res.Mode != ModeCount || res.Diff != nil {
		t.Errorf("got %+v; expect count mode without diff", res)
	}

	if res != nil && (res.Tree == nil || res.Tree.Id != "lord1") {
		t.Errorf("tree must still resolve, got %+v", res.Tree)
	}

	src.setFail("members", nil)

	res, err = c.BubbleClick(context.Background(), "lord1")

	if err != nil {
		t.Fatal(err)
	}

	if res.Mode != ModePersons || res.Diff == nil || !equalKeys(keys(res.Diff.Enter), "p1", "p2", "p3") {
		t.Errorf("retry must drill, got %+v", res)
	}

	if src.count("members") != 2 {
		t.Errorf("got %d members fetches; expect 2", src.count("members"))
	}
}

func TestRangeAfterSelectionKeepsHousehold(t *testing.T) {
	src := createCourt()
	c := initController(t, src)

	if _, err := c.BubbleClick(context.Background(), "lord1"); err != nil {
		t.Fatal(err)
	}

	if _, err := c.BubbleClick(context.Background(), "p3"); err != nil {
		t.Fatal(err)
	}

	res, err := c.RangeRelease(context.Background(), YearRange{Start: 1710, End: 1750})

	if err != nil || res == nil {
		t.Fatalf("got %+v %v", res, err)
	}

	if len(res.Diff.Exit) != 0 || len(res.Diff.Enter) != 0 || c.graph.Len() != 3 {
		t.Errorf("members must stay, got enter %v exit %v", keys(res.Diff.Enter), keys(res.Diff.Exit))
	}

	snap := c.Snapshot()

	if *snap.CurrentPersonId != "p3" || *snap.Household != "lord1" {
		t.Errorf("got %s household %s; expect p3 of lord1", snap, *snap.Household)
	}
}

func TestRangeClamped(t *testing.T) {
	list := []struct {
		Range  YearRange
		Expect YearRange
	}{
		{YearRange{Start: 1600, End: 1800}, YearRange{Start: 1700, End: 1750}},
		{YearRange{Start: 1720, End: 1710}, YearRange{Start: 1710, End: 1720}},
	}

	for _, item := range list {
		c := initController(t, createCourt())

		res, err := c.RangeRelease(context.Background(), item.Range)

		if err != nil || res == nil {
			t.Fatalf("%v - got %+v %v", item.Range, res, err)
		}

		if res.Range != item.Expect || c.Snapshot().TimeRange != item.Expect {
			t.Errorf("%v - got: %v; expect: %v", item.Range, res.Range, item.Expect)
		}
	}
}

func TestTreeFetchErrorKeepsLastTree(t *testing.T) {
	src := createCourt()
	c := initController(t, src)

	tree, err := c.TreeClick(context.Background(), "p1")

	if err != nil || tree == nil || tree.Id != "p1" {
		t.Fatalf("got %+v %v", tree, err)
	}

	src.setFail("parents", errors.New("connection lost"))

	last, err := c.TreeClick(context.Background(), "p3")

	if err == nil {
		t.Error("expect error")
	}

	if last != tree || c.Tree() != tree {
		t.Errorf("got %+v; expect last good tree", last)
	}
}

func TestRenderErrorKeepsScene(t *testing.T) {
	src := createCourt()
	c := initController(t, src)

	src.setFail("count", errors.New("connection lost"))

	res, err := c.RangeRelease(context.Background(), YearRange{Start: 1720, End: 1750})

	if err == nil || res != nil {
		t.Errorf("got %+v %v; expect error", res, err)
	}

	if c.graph.Len() != 2 {
		t.Errorf("got %d bubbles; expect last 2", c.graph.Len())
	}
}

func TestRangeDebounce(t *testing.T) {
	src := createCourt()
	c := initController(t, src)

	if err := c.Configure(ClientConfiguration{RangeDebounceMs: 20}); err != nil {
		t.Fatal(err)
	}

	var lock sync.Mutex
	pushed := 0

	c.bind(&Ctx{
		Notify: func(method string, params any) {
			if method != BubblesRenderNotification {
				return
			}

			lock.Lock()
			pushed++
			lock.Unlock()
		},
	})

	for end := 1741; end <= 1745; end++ {
		c.RangeChange(YearRange{Start: 1705, End: end})
	}

	eventually(t, func() bool { return src.count("count") == 2 })

	time.Sleep(60 * time.Millisecond)

	if n := src.count("count"); n != 2 {
		t.Errorf("got %d fetches; expect one for the burst", n-1)
	}

	if last := src.ranges[len(src.ranges)-1]; last != (YearRange{Start: 1705, End: 1745}) {
		t.Errorf("got range %v; expect final 1705-1745", last)
	}

	if _, err := c.RangeRelease(context.Background(), YearRange{Start: 1705, End: 1745}); err != nil {
		t.Fatal(err)
	}

	if n := src.count("count"); n != 3 {
		t.Errorf("got %d fetches; expect one more on release", n-1)
	}

	lock.Lock()
	defer lock.Unlock()

	if pushed != 1 {
		t.Errorf("got %d pushed renders; expect 1", pushed)
	}
}

func TestRangeReleaseSupersedesPending(t *testing.T) {
	src := createCourt()
	c := initController(t, src)

	if err := c.Configure(ClientConfiguration{RangeDebounceMs: 20}); err != nil {
		t.Fatal(err)
	}

	c.RangeChange(YearRange{Start: 1710, End: 1730})

	if _, err := c.RangeRelease(context.Background(), YearRange{Start: 1711, End: 1730}); err != nil {
		t.Fatal(err)
	}

	time.Sleep(80 * time.Millisecond)

	if n := src.count("count"); n != 2 {
		t.Errorf("got %d fetches after init; expect only the release", n-1)
	}

	if snap := c.Snapshot(); snap.TimeRange != (YearRange{Start: 1711, End: 1730}) {
		t.Errorf("got range %v", snap.TimeRange)
	}
}

func TestStaleRender(t *testing.T) {
	list := []struct {
		DiscardStale bool
		Keys         []string
	}{
		{true, []string{"lord2"}},
		{false, []string{"lord1"}},
	}

	for _, item := range list {
		src := createCourt()
		c := initController(t, src)

		if err := c.Configure(ClientConfiguration{DiscardStale: P(item.DiscardStale)}); err != nil {
			t.Fatal(err)
		}

		entered := make(chan struct{})
		gate := make(chan struct{})

		src.onCount = func(r YearRange) {
			if r.Start == 1710 {
				close(entered)
				<-gate
			}
		}

		done := make(chan *Render)

		go func() {
			res, _ := c.RangeRelease(context.Background(), YearRange{Start: 1710, End: 1750})
			done <- res
		}()

		<-entered

		if res, err := c.RangeRelease(context.Background(), YearRange{Start: 1720, End: 1750}); err != nil || res == nil {
			t.Fatalf("later render - got %+v %v", res, err)
		}

		close(gate)
		early := <-done

		if item.DiscardStale != (early == nil) {
			t.Errorf("discard %v - got early render %+v", item.DiscardStale, early)
		}

		got := []string{}

		for _, el := range c.graph.Elements() {
			got = append(got, el.Key)
		}

		if !equalKeys(got, item.Keys...) {
			t.Errorf("discard %v - got %v; expect %v", item.DiscardStale, got, item.Keys)
		}
	}
}

func TestHover(t *testing.T) {
	c := initController(t, createCourt())

	over := c.Hover("lord1")

	if len(over) != 1 || over[0].Op != scene.OpHover || over[0].To.R <= over[0].From.R {
		t.Errorf("hover - got %+v", over)
	}

	leave := c.Leave("lord1")

	if len(leave) != 1 || leave[0].To.R != over[0].From.R {
		t.Errorf("leave - got %+v", leave)
	}

	if list := c.Hover("missing"); len(list) != 0 {
		t.Errorf("got %v; expect nothing", list)
	}
}

func TestReset(t *testing.T) {
	c := initController(t, createCourt())

	if _, err := c.BubbleClick(context.Background(), "lord1"); err != nil {
		t.Fatal(err)
	}

	res, err := c.Reset(context.Background())

	if err != nil {
		t.Fatal(err)
	}

	if res.Mode != ModeCount || res.Tree != nil || c.Tree() != nil {
		t.Errorf("got %+v", res)
	}

	if !equalKeys(keys(res.Diff.Enter), "lord1", "lord2") || len(res.Diff.Exit) != 3 {
		t.Errorf("enter %v exit %v", keys(res.Diff.Enter), keys(res.Diff.Exit))
	}

	if snap := c.Snapshot(); snap.CurrentPersonId != nil {
		t.Errorf("got %s", snap)
	}
}

func TestSetImage(t *testing.T) {
	src := createCourt()
	c := initController(t, src)

	if _, err := c.TreeClick(context.Background(), "p1"); err != nil {
		t.Fatal(err)
	}

	tree, err := c.SetImage(context.Background(), "p1", "http://example.org/p1.jpg")

	if err != nil {
		t.Fatal(err)
	}

	if tree == nil || tree.Extra == nil || tree.Extra.ImageUrl == nil || *tree.Extra.ImageUrl != "http://example.org/p1.jpg" {
		t.Errorf("got %+v", tree)
	}
}
