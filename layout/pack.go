package layout

import (
	"math"

	"github.com/redexp/kaiserhof/records"
)

type PackedNode struct {
	Circle

	Value float64             `json:"value"`
	Node  *records.BubbleNode `json:"node"`
}

func (p *PackedNode) Key() string {
	return p.Node.Id
}

// Pack places every node as a leaf of one synthetic root, circle area
// proportional to its value, inside the viewport. The same input in the
// same order gives the same placement.
func Pack(nodes []*records.BubbleNode, view Viewport) []*PackedNode {
	list := make([]*PackedNode, len(nodes))
	circles := make([]*Circle, len(nodes))

	for i, node := range nodes {
		value := math.Max(0, node.Value)

		if math.IsNaN(value) {
			value = 0
		}

		list[i] = &PackedNode{
			Circle: Circle{R: math.Sqrt(value)},
			Value:  value,
			Node:   node,
		}

		circles[i] = &list[i].Circle
	}

	if len(list) == 0 {
		return list
	}

	size := view.Min() - ss.Border*2

	if size <= 0 {
		for _, c := range circles {
			c.Pos = view.Center()
			c.R = 0
		}

		return list
	}
	random := lcg()

	rootR := packSiblings(circles, random)

	if pad := ss.Padding * rootR / size; pad > 0 {
		for _, c := range circles {
			c.R += pad
		}

		rootR = packSiblings(circles, random)

		for _, c := range circles {
			c.R -= pad
		}

		rootR += pad
	}

	center := view.Center()

	if rootR <= 0 {
		for _, c := range circles {
			c.Pos = center
			c.R = 0
		}

		return list
	}

	k := size / (2 * rootR)

	for _, c := range circles {
		c.X = center.X + c.X*k
		c.Y = center.Y + c.Y*k
		c.R *= k
	}

	return list
}

type front struct {
	c    *Circle
	next *front
	prev *front
}

// packSiblings puts circles around the origin without overlap, keeping a
// front chain of the outer circles, and returns the enclosing radius.
func packSiblings(circles []*Circle, random func() float64) float64 {
	n := len(circles)

	if n == 0 {
		return 0
	}

	a := circles[0]
	a.X = 0
	a.Y = 0

	if n == 1 {
		return a.R
	}

	b := circles[1]
	a.X = -b.R
	b.X = a.R
	b.Y = 0

	if n == 2 {
		return a.R + b.R
	}

	place(b, a, circles[2])

	fa := &front{c: a}
	fb := &front{c: b}
	fc := &front{c: circles[2]}

	fa.next, fc.prev = fb, fb
	fb.next, fa.prev = fc, fc
	fc.next, fb.prev = fa, fa

pack:
	for i := 3; i < n; i++ {
		place(fa.c, fb.c, circles[i])
		fc = &front{c: circles[i]}

		j := fb.next
		k := fa.prev
		sj := fb.c.R
		sk := fa.c.R

		for {
			if sj <= sk {
				if j.c.Intersects(*fc.c) {
					fb = j
					fa.next = fb
					fb.prev = fa
					i--
					continue pack
				}

				sj += j.c.R
				j = j.next
			} else {
				if k.c.Intersects(*fc.c) {
					fa = k
					fa.next = fb
					fb.prev = fa
					i--
					continue pack
				}

				sk += k.c.R
				k = k.prev
			}

			if j == k.next {
				break
			}
		}

		fc.prev = fa
		fc.next = fb
		fa.next = fc
		fb.prev = fc
		fb = fc

		best := score(fa)

		for fc = fc.next; fc != fb; fc = fc.next {
			if s := score(fc); s < best {
				fa = fc
				best = s
			}
		}

		fb = fa.next
	}

	chain := []*Circle{fb.c}

	for fc = fb.next; fc != fb; fc = fc.next {
		chain = append(chain, fc.c)
	}

	e := enclose(chain, random)

	for _, c := range circles {
		c.X -= e.X
		c.Y -= e.Y
	}

	return e.R
}

// place puts c tangent to both a and b.
func place(b, a, c *Circle) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	d2 := dx*dx + dy*dy

	if d2 == 0 {
		c.X = a.X + c.R
		c.Y = a.Y
		return
	}

	a2 := (a.R + c.R) * (a.R + c.R)
	b2 := (b.R + c.R) * (b.R + c.R)

	if a2 > b2 {
		x := (d2 + b2 - a2) / (2 * d2)
		y := math.Sqrt(math.Max(0, b2/d2-x*x))
		c.X = b.X - x*dx - y*dy
		c.Y = b.Y - x*dy + y*dx
	} else {
		x := (d2 + a2 - b2) / (2 * d2)
		y := math.Sqrt(math.Max(0, a2/d2-x*x))
		c.X = a.X + x*dx - y*dy
		c.Y = a.Y + x*dy + y*dx
	}
}

// squared distance to the origin of the weighted midpoint of a node and its next
func score(node *front) float64 {
	a := node.c
	b := node.next.c
	ab := a.R + b.R

	if ab == 0 {
		return a.X*a.X + a.Y*a.Y
	}

	dx := (a.X*b.R + b.X*a.R) / ab
	dy := (a.Y*b.R + b.Y*a.R) / ab

	return dx*dx + dy*dy
}

// lcg is a fixed seed linear congruential generator in [0, 1).
func lcg() func() float64 {
	const (
		a = 1664525
		c = 1013904223
		m = 1 << 32
	)

	s := uint64(1)

	return func() float64 {
		s = (a*s + c) % m
		return float64(s) / m
	}
}
