package entity

// Waypoint is a point on a moving solid's path
type Waypoint struct {
	X, Y float64
}

// Collidable is anything that occupies a collision rectangle
type Collidable interface {
	Bounds() AABB
}

// Positioned is anything with a world position
type Positioned interface {
	Pos() (x, y float64)
}

// Solid is a fully blocking rectangle
type Solid struct {
	bounds AABB
}

// NewSolid creates a solid occupying the given rectangle
func NewSolid(bounds AABB) *Solid {
	return &Solid{bounds: bounds}
}

// Bounds returns the solid's rectangle
func (s *Solid) Bounds() AABB { return s.bounds }

// Pos returns the top-left corner
func (s *Solid) Pos() (float64, float64) { return s.bounds.X, s.bounds.Y }

// Platform is a one-way platform that only blocks from above
type Platform struct {
	bounds AABB
}

// NewPlatform creates a one-way platform
func NewPlatform(bounds AABB) *Platform {
	return &Platform{bounds: bounds}
}

// Bounds returns the platform's rectangle
func (p *Platform) Bounds() AABB { return p.bounds }

// Pos returns the top-left corner
func (p *Platform) Pos() (float64, float64) { return p.bounds.X, p.bounds.Y }
