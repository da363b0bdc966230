package ecs

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/younwookim/squish/internal/domain/entity"
)

const tagSolid = "solid"

// indexEntry links a resolv object back to its solid
type indexEntry struct {
	order int
	solid entity.Collidable
}

// SpatialIndex is a broadphase grid over static solids.
// Queries return candidates in registration order.
type SpatialIndex struct {
	space            *resolv.Space
	originX, originY float64
}

// NewSpatialIndex builds an index over solids, which never move afterwards
func NewSpatialIndex(solids []entity.Collidable, cellSize int) *SpatialIndex {
	if len(solids) == 0 {
		return &SpatialIndex{}
	}
	area := solids[0].Bounds()
	for _, s := range solids[1:] {
		area = area.Union(s.Bounds())
	}
	// one spare cell on each side so queries at the edges still land in the grid
	ox := math.Floor(area.X) - float64(cellSize)
	oy := math.Floor(area.Y) - float64(cellSize)
	w := int(math.Ceil(area.Right()-ox)) + cellSize
	h := int(math.Ceil(area.Bottom()-oy)) + cellSize

	space := resolv.NewSpace(w, h, cellSize, cellSize)
	for i, s := range solids {
		b := s.Bounds()
		obj := resolv.NewObject(b.X-ox, b.Y-oy, b.Width, b.Height, tagSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, b.Width, b.Height))
		obj.Data = indexEntry{order: i, solid: s}
		space.Add(obj)
	}
	return &SpatialIndex{space: space, originX: ox, originY: oy}
}

// Query returns the solids whose grid cells overlap region.
// This is a broadphase: callers still test exact intersection.
func (ix *SpatialIndex) Query(region entity.AABB) []entity.Collidable {
	if ix == nil || ix.space == nil {
		return nil
	}
	// resolv maps the far edge with a one unit inset
	region = region.Expand(1)
	q := resolv.NewObject(region.X-ix.originX, region.Y-ix.originY, region.Width, region.Height)
	ix.space.Add(q)
	defer ix.space.Remove(q)

	check := q.Check(0, 0, tagSolid)
	if check == nil {
		return nil
	}
	entries := make([]indexEntry, 0, len(check.Objects))
	for _, obj := range check.Objects {
		if e, ok := obj.Data.(indexEntry); ok {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].order < entries[j].order })

	out := make([]entity.Collidable, len(entries))
	for i, e := range entries {
		out[i] = e.solid
	}
	return out
}
