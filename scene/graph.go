package scene

import (
	"slices"

	"github.com/redexp/kaiserhof/layout"
)

type Op string

const (
	OpEnter  Op = "enter"
	OpUpdate Op = "update"
	OpExit   Op = "exit"
	OpHover  Op = "hover"
	OpLeave  Op = "leave"
	OpSelect Op = "select"
)

type Instruction struct {
	Op         Op         `json:"op"`
	Key        string     `json:"key"`
	Z          int        `json:"z"`
	From       State      `json:"from"`
	To         State      `json:"to"`
	Transition Transition `json:"transition"`
	Changed    bool       `json:"changed"`
	Remove     bool       `json:"remove,omitempty"`
}

type Diff struct {
	Enter  []Instruction `json:"enter"`
	Update []Instruction `json:"update"`
	Exit   []Instruction `json:"exit"`
}

// Changed is false when applying the diff changes nothing visible.
func (d Diff) Changed() bool {
	if len(d.Enter) > 0 || len(d.Exit) > 0 {
		return true
	}

	for _, ins := range d.Update {
		if ins.Changed {
			return true
		}
	}

	return false
}

// Element is one rendered bubble, Z is its paint order among siblings.
type Element struct {
	Key   string
	Z     int
	Node  *layout.PackedNode
	State State
	Hover bool
}

// Graph is the scene graph of one mount point. It is not safe for
// concurrent use.
type Graph struct {
	Name  string
	Style Style

	elements map[string]*Element
	top      int
}

func NewGraph(name string) *Graph {
	return &Graph{
		Name:     name,
		elements: make(map[string]*Element),
	}
}

// Render joins nodes with the rendered elements by key and commits the
// new state. Nodes are expected to have unique keys.
func (g *Graph) Render(nodes []*layout.PackedNode, scale *layout.ColorScale) Diff {
	g.Style.Scale = scale

	diff := Diff{
		Enter:  []Instruction{},
		Update: []Instruction{},
		Exit:   []Instruction{},
	}

	seen := make(map[string]bool, len(nodes))

	for _, node := range nodes {
		key := node.Key()

		if seen[key] {
			continue
		}

		seen[key] = true
		el, exist := g.elements[key]

		if !exist {
			g.top++
			el = &Element{Key: key, Z: g.top, Node: node}
			el.State = g.Style.Bind(node, false)
			g.elements[key] = el

			diff.Enter = append(diff.Enter, Instruction{
				Op:         OpEnter,
				Key:        key,
				Z:          el.Z,
				From:       el.State.Collapsed(),
				To:         el.State,
				Transition: Layout,
				Changed:    true,
			})

			continue
		}

		from := el.State
		el.Node = node
		el.Hover = false
		el.State = g.Style.Bind(node, false)

		diff.Update = append(diff.Update, Instruction{
			Op:         OpUpdate,
			Key:        key,
			Z:          el.Z,
			From:       from,
			To:         el.State,
			Transition: Layout,
			Changed:    !from.Equal(el.State),
		})
	}

	for _, el := range g.sorted() {
		if seen[el.Key] {
			continue
		}

		delete(g.elements, el.Key)

		diff.Exit = append(diff.Exit, Instruction{
			Op:         OpExit,
			Key:        el.Key,
			Z:          el.Z,
			From:       el.State,
			To:         el.State.Collapsed(),
			Transition: Layout,
			Changed:    true,
			Remove:     true,
		})
	}

	return diff
}

// Hover raises the element above its siblings and enlarges it, or
// reverses that when over is false.
func (g *Graph) Hover(key string, over bool) (Instruction, bool) {
	el, exist := g.elements[key]

	if !exist {
		return Instruction{}, false
	}

	op := OpLeave

	if over {
		op = OpHover
		g.top++
		el.Z = g.top
	}

	from := el.State
	el.Hover = over
	el.State = g.Style.Bind(el.Node, over)

	return Instruction{
		Op:         op,
		Key:        key,
		Z:          el.Z,
		From:       from,
		To:         el.State,
		Transition: Bounce,
		Changed:    !from.Equal(el.State),
	}, true
}

// Select highlights the element with key and restores the fill of every
// other element. Only changed elements are returned.
func (g *Graph) Select(key string) []Instruction {
	g.Style.Selected = key
	list := []Instruction{}

	for _, el := range g.sorted() {
		from := el.State
		el.State = g.Style.Bind(el.Node, el.Hover)

		if from.Equal(el.State) {
			continue
		}

		list = append(list, Instruction{
			Op:         OpSelect,
			Key:        el.Key,
			Z:          el.Z,
			From:       from,
			To:         el.State,
			Transition: Instant,
			Changed:    true,
		})
	}

	return list
}

// Unselect drops the selection without repainting, the next Render applies it.
func (g *Graph) Unselect() {
	g.Style.Selected = ""
}

func (g *Graph) Selected() string {
	return g.Style.Selected
}

func (g *Graph) Get(key string) (*Element, bool) {
	el, exist := g.elements[key]

	return el, exist
}

func (g *Graph) Len() int {
	return len(g.elements)
}

// Elements in paint order, bottom first.
func (g *Graph) Elements() []*Element {
	return g.sorted()
}

func (g *Graph) sorted() []*Element {
	list := make([]*Element, 0, len(g.elements))

	for _, el := range g.elements {
		list = append(list, el)
	}

	slices.SortFunc(list, func(a, b *Element) int {
		return a.Z - b.Z
	})

	return list
}
