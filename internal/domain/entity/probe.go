package entity

// ProbeQuad holds four 1x1 probes at the corners of an actor's footprint.
// Collision checks are made against the probes, never the full rectangle.
type ProbeQuad struct {
	TopLeft     AABB
	TopRight    AABB
	BottomLeft  AABB
	BottomRight AABB
}

// NewProbeQuad builds probes for a footprint whose bottom-centre foot point
// is (x, y).
func NewProbeQuad(x, y, halfWidth, height float64) ProbeQuad {
	top := y - height + 1
	return ProbeQuad{
		TopLeft:     NewAABB(x-halfWidth, top, 1, 1),
		TopRight:    NewAABB(x+halfWidth-1, top, 1, 1),
		BottomLeft:  NewAABB(x-halfWidth, y, 1, 1),
		BottomRight: NewAABB(x+halfWidth-1, y, 1, 1),
	}
}

// Translate moves all four probes
func (q *ProbeQuad) Translate(dx, dy float64) {
	q.TopLeft = q.TopLeft.Translate(dx, dy)
	q.TopRight = q.TopRight.Translate(dx, dy)
	q.BottomLeft = q.BottomLeft.Translate(dx, dy)
	q.BottomRight = q.BottomRight.Translate(dx, dy)
}

// deform pulls the side probes in by dx each and the top probes down by dy,
// keeping the bottom-centre fixed. Negative values push outward/upward.
func (q *ProbeQuad) deform(dx, dy float64) {
	q.TopLeft = q.TopLeft.Translate(dx, dy)
	q.TopRight = q.TopRight.Translate(-dx, dy)
	q.BottomLeft = q.BottomLeft.Translate(dx, 0)
	q.BottomRight = q.BottomRight.Translate(-dx, 0)
}

// Bounds returns the bounding box of the four probes
func (q ProbeQuad) Bounds() AABB {
	return q.TopLeft.Union(q.BottomRight)
}

// FindOverlap returns the first candidate touched by any probe
func (q ProbeQuad) FindOverlap(candidates []Collidable) Collidable {
	return findOverlap(candidates, q.TopLeft, q.TopRight, q.BottomLeft, q.BottomRight)
}

// FindOverlapBottom returns the first candidate touched by a bottom probe
func (q ProbeQuad) FindOverlapBottom(candidates []Collidable) Collidable {
	return findOverlap(candidates, q.BottomLeft, q.BottomRight)
}

// FindOverlapTop returns the first candidate touched by a top probe
func (q ProbeQuad) FindOverlapTop(candidates []Collidable) Collidable {
	return findOverlap(candidates, q.TopLeft, q.TopRight)
}

func findOverlap(candidates []Collidable, probes ...AABB) Collidable {
	for _, c := range candidates {
		b := c.Bounds()
		for _, p := range probes {
			if p.Intersects(b) {
				return c
			}
		}
	}
	return nil
}
