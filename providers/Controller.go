package providers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/redexp/kaiserhof/genealogy"
	"github.com/redexp/kaiserhof/i18n"
	"github.com/redexp/kaiserhof/layout"
	"github.com/redexp/kaiserhof/records"
	"github.com/redexp/kaiserhof/scene"
	"github.com/redexp/kaiserhof/state"
	"github.com/redexp/kaiserhof/store"
	. "github.com/redexp/kaiserhof/types"
	"github.com/tliron/commonlog"
	"go.uber.org/multierr"
)

var (
	ErrUnknownBubble = errors.New("unknown bubble")
	ErrNoPerson      = errors.New("bubble has no person")
)

// Source is what the controller reads from the data access adapter.
type Source interface {
	genealogy.Source

	Bounds(ctx context.Context) (YearRange, error)
	CountMembersByGroupInRange(ctx context.Context, r YearRange) (RowSet, error)
	MembersOfGroupInRange(ctx context.Context, groupId PersonId, r YearRange) (RowSet, error)
	SetImageSource(ctx context.Context, id PersonId, source string) error
}

// Controller owns the layout state and both scenes. Every mutation holds
// lock; data is fetched without it, so renders of distinct events may
// complete out of order.
type Controller struct {
	source   Source
	resolver *genealogy.Resolver
	layout   *state.Layout
	graph    *scene.Graph
	tree     *records.PersonNode
	config   ClientConfiguration
	log      commonlog.Logger

	debounced func(func())
	pending   *YearRange
	notify    func(method string, params any)

	lock sync.Mutex
}

func NewController(source Source) *Controller {
	c := &Controller{
		source:   source,
		resolver: genealogy.NewResolver(source),
		layout:   state.CreateLayout(),
		graph:    scene.NewGraph("bubbles"),
		config:   DefaultConfiguration(),
		log:      commonlog.GetLogger("kaiserhof.controller"),
	}

	c.debounced = debounce.New(c.debounceDuration())

	c.layout.OnUpdate(func() {
		c.log.Debugf("layout %s", c.layout.Snapshot())
	})

	return c
}

func (c *Controller) debounceDuration() time.Duration {
	return time.Duration(c.config.RangeDebounceMs) * time.Millisecond
}

// bind remembers the connection of the last request, debounced renders are
// pushed through it.
func (c *Controller) bind(ctx *Ctx) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	c.lock.Lock()
	c.notify = ctx.Notify
	c.lock.Unlock()
}

func (c *Controller) push(method string, params any) {
	c.lock.Lock()
	notify := c.notify
	c.lock.Unlock()

	if notify != nil {
		notify(method, params)
	}
}

func (c *Controller) Configure(config ClientConfiguration) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	next := config.Merge(c.config)

	if next.Locale != i18n.Locale {
		if err := i18n.SetLocale(next.Locale); err != nil {
			return err
		}
	}

	if next.RangeDebounceMs != c.config.RangeDebounceMs {
		c.config = next
		c.debounced = debounce.New(c.debounceDuration())
		c.pending = nil
	}

	c.config = next

	return nil
}

func (c *Controller) Config() ClientConfiguration {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.config
}

func (c *Controller) Snapshot() state.Snapshot {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.layout.Snapshot()
}

type Render struct {
	Mode  Mode       `json:"mode"`
	Range YearRange  `json:"range"`
	Diff  scene.Diff `json:"diff"`
}

type InitResult struct {
	Bounds YearRange  `json:"bounds"`
	Range  YearRange  `json:"range"`
	Mode   Mode       `json:"mode"`
	Diff   scene.Diff `json:"diff"`
}

type ClickResult struct {
	Mode   Mode                `json:"mode"`
	Diff   *scene.Diff         `json:"diff"`
	Select []scene.Instruction `json:"select,omitempty"`
	Tree   *records.PersonNode `json:"tree"`
}

// Init reads the record bounds, selects the whole span and renders the
// households.
func (c *Controller) Init(ctx context.Context) (*InitResult, error) {
	bounds, err := c.source.Bounds(ctx)

	if err != nil && !errors.Is(err, store.ErrNoYear) {
		return nil, fmt.Errorf("%s: %w", i18n.L("fetch_failed", "bounds"), err)
	}

	if err != nil {
		c.log.Warning(i18n.L("no_records"))
	}

	c.lock.Lock()
	c.layout.Init(bounds)
	c.graph.Unselect()
	c.tree = nil
	c.lock.Unlock()

	r, err := c.renderBubbles(ctx)

	if err != nil {
		return nil, err
	}

	res := &InitResult{
		Bounds: bounds,
		Range:  bounds,
		Mode:   ModeCount,
	}

	if r != nil {
		res.Range = r.Range
		res.Mode = r.Mode
		res.Diff = r.Diff
	}

	return res, nil
}

func (c *Controller) Reset(ctx context.Context) (*ClickResult, error) {
	c.lock.Lock()
	c.layout.Reset()
	c.graph.Unselect()
	c.tree = nil
	c.lock.Unlock()

	r, err := c.renderBubbles(ctx)

	if err != nil {
		return nil, err
	}

	res := &ClickResult{Mode: ModeCount}

	if r != nil {
		res.Diff = &r.Diff
	}

	return res, nil
}

// RangeChange is called while the range is being dragged. Only the last
// range of a burst is rendered, after the debounce interval.
func (c *Controller) RangeChange(r YearRange) {
	c.lock.Lock()
	c.pending = &r
	debounced := c.debounced
	c.lock.Unlock()

	debounced(c.flushRange)
}

func (c *Controller) flushRange() {
	c.lock.Lock()
	r := c.pending
	c.pending = nil
	c.lock.Unlock()

	if r == nil {
		return
	}

	res, err := c.applyRange(context.Background(), *r)

	if err != nil {
		c.log.Errorf("range %d-%d: %s", r.Start, r.End, err)
		return
	}

	if res != nil {
		c.push(BubblesRenderNotification, res)
	}
}

// RangeRelease renders r at once and drops a pending debounced change.
func (c *Controller) RangeRelease(ctx context.Context, r YearRange) (*Render, error) {
	c.lock.Lock()
	c.pending = nil
	c.lock.Unlock()

	return c.applyRange(ctx, r)
}

func (c *Controller) applyRange(ctx context.Context, r YearRange) (*Render, error) {
	c.lock.Lock()
	stored := c.layout.SetRange(r)
	c.lock.Unlock()

	if r.Start > r.End {
		c.log.Warning(i18n.L("invalid_range"))
	} else if stored != r {
		c.log.Warning(i18n.L("range_out_of_bounds", r.Start, r.End))
	}

	return c.renderBubbles(ctx)
}

// BubbleClick drills into a household in count mode, or selects the person
// in persons mode. Both resolve the family tree of the bubble person.
func (c *Controller) BubbleClick(ctx context.Context, key string) (*ClickResult, error) {
	c.lock.Lock()

	el, exist := c.graph.Get(key)

	if !exist {
		c.lock.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownBubble, key)
	}

	if el.Node.Node.PersonId == nil {
		c.lock.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNoPerson, key)
	}

	id := *el.Node.Node.PersonId
	res := &ClickResult{Mode: c.layout.Mode}

	var renderErr error

	if res.Mode == ModeCount {
		prev := c.layout.Snapshot()
		selected := c.graph.Selected()

		c.layout.Drill(id)
		c.graph.Unselect()
		c.lock.Unlock()

		r, err := c.renderBubbles(ctx)

		if err != nil {
			// the scene still shows the households
			c.lock.Lock()
			c.layout.Restore(prev)
			c.graph.Style.Selected = selected
			c.lock.Unlock()

			renderErr = err
		} else {
			res.Mode = ModePersons

			if r != nil {
				res.Diff = &r.Diff
			}
		}
	} else {
		c.layout.Select(id)
		res.Select = c.graph.Select(key)
		c.lock.Unlock()
	}

	tree, err := c.resolveTree(ctx, id)
	res.Tree = tree

	return res, multierr.Append(renderErr, err)
}

// TreeClick moves the family tree to another person, the bubbles stay.
func (c *Controller) TreeClick(ctx context.Context, id PersonId) (*records.PersonNode, error) {
	return c.resolveTree(ctx, id)
}

func (c *Controller) Hover(key string) []scene.Instruction {
	return c.hover(key, true)
}

func (c *Controller) Leave(key string) []scene.Instruction {
	return c.hover(key, false)
}

func (c *Controller) hover(key string, over bool) []scene.Instruction {
	c.lock.Lock()
	defer c.lock.Unlock()

	ins, ok := c.graph.Hover(key, over)

	if !ok {
		return []scene.Instruction{}
	}

	return []scene.Instruction{ins}
}

// SetImage stores the portrait url of a person and refreshes the tree
// when it shows the current person.
func (c *Controller) SetImage(ctx context.Context, id PersonId, source string) (*records.PersonNode, error) {
	if err := c.source.SetImageSource(ctx, id, source); err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.L("fetch_failed", "image"), err)
	}

	c.lock.Lock()
	tree := c.tree
	c.lock.Unlock()

	if tree == nil {
		return nil, nil
	}

	focal := tree

	tree.Walk(func(node *records.PersonNode) {
		if node.Selected() {
			focal = node
		}
	})

	return c.resolveTree(ctx, focal.Id)
}

func (c *Controller) Tree() *records.PersonNode {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.tree
}

// renderBubbles fetches the bubbles of the current layout and joins them
// into the scene. A nil render means a later render was committed first.
func (c *Controller) renderBubbles(ctx context.Context) (*Render, error) {
	c.lock.Lock()
	token := c.layout.Next()
	snap := c.layout.Snapshot()
	config := c.config
	c.lock.Unlock()

	rows, err := c.fetch(ctx, snap)

	if err != nil {
		c.log.Errorf("render %s: %s", snap, err)
		return nil, err
	}

	nodes := records.MapToBubbles(rows, snap.Mode)
	packed := layout.Pack(nodes, config.Viewport())
	scale := layout.NewColorScale(snap.Mode, nodes, config.Colors)

	c.lock.Lock()
	defer c.lock.Unlock()

	if *config.DiscardStale && c.layout.Stale(token) {
		c.log.Debugf("discard stale render %d of %s", token, snap)
		return nil, nil
	}

	c.layout.Commit(token)

	return &Render{
		Mode:  snap.Mode,
		Range: snap.TimeRange,
		Diff:  c.graph.Render(packed, scale),
	}, nil
}

func (c *Controller) fetch(ctx context.Context, snap state.Snapshot) (RowSet, error) {
	if snap.Mode == ModePersons && snap.Household != nil {
		rows, err := c.source.MembersOfGroupInRange(ctx, *snap.Household, snap.TimeRange)

		if err != nil {
			return nil, fmt.Errorf("%s: %w", i18n.L("fetch_failed", "members"), err)
		}

		return rows, nil
	}

	rows, err := c.source.CountMembersByGroupInRange(ctx, snap.TimeRange)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.L("fetch_failed", "households"), err)
	}

	return rows, nil
}

// resolveTree keeps the last good tree when a fetch fails and drops it
// when the person does not exist.
func (c *Controller) resolveTree(ctx context.Context, id PersonId) (*records.PersonNode, error) {
	tree, err := c.resolver.ResolveFamilyTree(ctx, id)

	c.lock.Lock()
	defer c.lock.Unlock()

	if errors.Is(err, genealogy.ErrNotFound) {
		c.log.Warning(i18n.L("person_not_found", id))
		c.tree = nil
		return nil, nil
	}

	if err != nil {
		c.log.Errorf("tree of %s: %s", id, err)
		return c.tree, err
	}

	c.tree = tree

	return tree, nil
}
