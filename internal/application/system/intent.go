package system

// Intent is a registry change requested during a tick and applied after it
type Intent interface {
	isIntent()
}

// RemoveIntent removes the entity holding Ref
type RemoveIntent struct {
	Ref any
}

func (RemoveIntent) isIntent() {}

// RespawnIntent replaces the player with a fresh one at its spawn point
type RespawnIntent struct{}

func (RespawnIntent) isIntent() {}

// CompleteIntent marks the level as finished
type CompleteIntent struct{}

func (CompleteIntent) isIntent() {}
