package render

import (
	"math"
)

// Terminal cells are roughly twice as tall as they are wide.
const aspect = 2.0

// spiral places a pulse at progress along its inward flight. It makes two
// turns and reaches the centre at progress 1.
func spiral(progress, radius float64) (x, y float64) {
	angle := progress * math.Pi * 4
	d := (1 - progress) * radius
	return math.Cos(angle) * d, math.Sin(angle) * d
}

// cell maps a point around the centre to a terminal cell.
func cell(centreRow, centreCol int, x, y float64) (row, col int) {
	return centreRow + int(math.Round(y/aspect)), centreCol + int(math.Round(x))
}

// ring lists the cells on a circle of radius r around the centre.
func ring(centreRow, centreCol int, r float64) [][2]int {
	if r < 0.5 {
		return [][2]int{{centreRow, centreCol}}
	}
	steps := int(math.Max(8, math.Ceil(2*math.Pi*r)))
	seen := make(map[[2]int]bool, steps)
	out := make([][2]int, 0, steps)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		row, col := cell(centreRow, centreCol, math.Cos(a)*r, math.Sin(a)*r)
		p := [2]int{row, col}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// line lists the cells between two points, excluding both ends.
func line(r0, c0, r1, c1 int) [][2]int {
	dr, dc := r1-r0, c1-c0
	n := int(math.Max(math.Abs(float64(dr)), math.Abs(float64(dc))))
	out := [][2]int{}
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		out = append(out, [2]int{
			r0 + int(math.Round(float64(dr)*t)),
			c0 + int(math.Round(float64(dc)*t)),
		})
	}
	return out
}

// Cymatic pattern sizes: more nodes with sync, twice the rings in flow.
const (
	patternRings     = 6
	patternFlowRings = 12
	patternNodes     = 6
	patternNodeGain  = 12
)

func patternShape(syncRate float64, flow bool) (rings, nodes int) {
	rings = patternRings
	if flow {
		rings = patternFlowRings
	}
	return rings, patternNodes + int(math.Floor(syncRate*patternNodeGain))
}

// patternRing lists the cells of one modulated ring of the background
// pattern at time t. Ring runs from 1 to rings.
func patternRing(centreRow, centreCol int, radius, syncRate float64, ring, rings, nodes int, t float64) [][2]int {
	base := radius / float64(rings) * float64(ring)
	steps := nodes * 4
	seen := make(map[[2]int]bool, steps)
	out := make([][2]int, 0, steps)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		mod := math.Sin(float64(ring)*2+t)*0.2 + math.Cos(a*float64(nodes)+t*2)*0.3
		r := base * (1 + mod*syncRate)
		p := [2]int{}
		p[0], p[1] = cell(centreRow, centreCol, math.Cos(a)*r, math.Sin(a)*r)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// patternNodesAt places the rotating nodes at 0.7 of radius.
func patternNodesAt(centreRow, centreCol int, radius float64, nodes int, t float64) [][2]int {
	out := make([][2]int, nodes)
	for i := range out {
		a := 2*math.Pi*float64(i)/float64(nodes) + t
		out[i][0], out[i][1] = cell(centreRow, centreCol, math.Cos(a)*radius*0.7, math.Sin(a)*radius*0.7)
	}
	return out
}
