package entity

// Anim is the player's animation state
type Anim int

const (
	AnimStand Anim = iota
	AnimWalk
	AnimJump
	AnimLand
	AnimExplode
)

// String returns the animation name
func (a Anim) String() string {
	switch a {
	case AnimStand:
		return "Stand"
	case AnimWalk:
		return "Walk"
	case AnimJump:
		return "Jump"
	case AnimLand:
		return "Land"
	case AnimExplode:
		return "Explode"
	default:
		return "Unknown"
	}
}
