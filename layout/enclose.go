package layout

import "math"

// enclose returns the smallest circle enclosing all circles, extending a
// basis of at most three circles (Welzl). Input order is shuffled with random.
func enclose(circles []*Circle, random func() float64) Circle {
	list := shuffle(append([]*Circle(nil), circles...), random)

	var basis []Circle
	var e *Circle

	for i := 0; i < len(list); {
		p := *list[i]

		if e != nil && enclosesWeak(*e, p) {
			i++
			continue
		}

		basis = extendBasis(basis, p)
		c := encloseBasis(basis)
		e = &c
		i = 0
	}

	if e == nil {
		return Circle{}
	}

	return *e
}

func shuffle(list []*Circle, random func() float64) []*Circle {
	m := len(list)

	for m > 0 {
		i := int(random() * float64(m))
		m--
		list[m], list[i] = list[i], list[m]
	}

	return list
}

func extendBasis(basis []Circle, p Circle) []Circle {
	if enclosesWeakAll(p, basis) {
		return []Circle{p}
	}

	for _, b := range basis {
		if enclosesNot(p, b) && enclosesWeakAll(encloseBasis2(b, p), basis) {
			return []Circle{b, p}
		}
	}

	for i := 0; i < len(basis)-1; i++ {
		for j := i + 1; j < len(basis); j++ {
			bi := basis[i]
			bj := basis[j]

			if enclosesNot(encloseBasis2(bi, bj), p) &&
				enclosesNot(encloseBasis2(bi, p), bj) &&
				enclosesNot(encloseBasis2(bj, p), bi) &&
				enclosesWeakAll(encloseBasis3(bi, bj, p), basis) {
				return []Circle{bi, bj, p}
			}
		}
	}

	// rounding left no valid basis, keep the circle itself
	return []Circle{p}
}

func enclosesNot(a, b Circle) bool {
	dr := a.R - b.R
	dx := b.X - a.X
	dy := b.Y - a.Y

	return dr < 0 || dr*dr < dx*dx+dy*dy
}

func enclosesWeak(a, b Circle) bool {
	dr := a.R - b.R + math.Max(math.Max(a.R, b.R), 1)*1e-9
	dx := b.X - a.X
	dy := b.Y - a.Y

	return dr > 0 && dr*dr > dx*dx+dy*dy
}

func enclosesWeakAll(a Circle, basis []Circle) bool {
	for _, b := range basis {
		if !enclosesWeak(a, b) {
			return false
		}
	}

	return true
}

func encloseBasis(basis []Circle) Circle {
	switch len(basis) {
	case 1:
		return basis[0]
	case 2:
		return encloseBasis2(basis[0], basis[1])
	case 3:
		return encloseBasis3(basis[0], basis[1], basis[2])
	}

	return Circle{}
}

func encloseBasis2(a, b Circle) Circle {
	x21 := b.X - a.X
	y21 := b.Y - a.Y
	r21 := b.R - a.R
	l := math.Sqrt(x21*x21 + y21*y21)

	if l == 0 {
		return Circle{Pos: a.Pos, R: math.Max(a.R, b.R)}
	}

	return Circle{
		Pos: Pos{
			X: (a.X + b.X + x21/l*r21) / 2,
			Y: (a.Y + b.Y + y21/l*r21) / 2,
		},
		R: (l + a.R + b.R) / 2,
	}
}

func encloseBasis3(a, b, c Circle) Circle {
	x1, y1, r1 := a.X, a.Y, a.R
	x2, y2, r2 := b.X, b.Y, b.R
	x3, y3, r3 := c.X, c.Y, c.R

	a2 := x1 - x2
	a3 := x1 - x3
	b2 := y1 - y2
	b3 := y1 - y3
	c2 := r2 - r1
	c3 := r3 - r1
	d1 := x1*x1 + y1*y1 - r1*r1
	d2 := d1 - x2*x2 - y2*y2 + r2*r2
	d3 := d1 - x3*x3 - y3*y3 + r3*r3
	ab := a3*b2 - a2*b3
	xa := (b2*d3-b3*d2)/(ab*2) - x1
	xb := (b3*c2 - b2*c3) / ab
	ya := (a3*d2-a2*d3)/(ab*2) - y1
	yb := (a2*c3 - a3*c2) / ab
	A := xb*xb + yb*yb - 1
	B := 2 * (r1 + xa*xb + ya*yb)
	C := xa*xa + ya*ya - r1*r1

	var r float64

	if math.Abs(A) > 1e-6 {
		r = -(B + math.Sqrt(B*B-4*A*C)) / (2 * A)
	} else {
		r = -(C / B)
	}

	return Circle{
		Pos: Pos{
			X: x1 + xa + xb*r,
			Y: y1 + ya + yb*r,
		},
		R: r,
	}
}
