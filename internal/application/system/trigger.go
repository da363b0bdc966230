package system

// exitReachOffset lifts the foot point toward the body centre for exit checks
const exitReachOffset = 4

// dialogDelay is how long an orb message stays up before Action dismisses it
const dialogDelay = 120

// Dialog is an open orb message
type Dialog struct {
	Text  string
	Delay int // ticks until Action can dismiss it
}

// TriggerSystem handles buttons, hazards, signs, orbs, keys, gates and exits
type TriggerSystem struct {
	audio  Audio
	dialog *Dialog
}

// NewTriggerSystem creates a new trigger system
func NewTriggerSystem(audio Audio) *TriggerSystem {
	if audio == nil {
		audio = NopAudio{}
	}
	return &TriggerSystem{audio: audio}
}

// UpdateButtons latches buttons a falling player overlaps
func (s *TriggerSystem) UpdateButtons(f *Frame) {
	p := f.Player
	if p.Exploding || !p.IsFalling() {
		return
	}
	b := p.Bounds()
	for _, btn := range f.Snap.Buttons() {
		if btn.IsPressed() || !b.Intersects(btn.Bounds()) {
			continue
		}
		if btn.Press() {
			s.audio.Play(CueButton)
		}
	}
}

// Dialog returns the open orb message, or nil
func (s *TriggerSystem) Dialog() *Dialog { return s.dialog }

// Update checks signs, saws, orbs, keys, gates and exits against the player
func (s *TriggerSystem) Update(f *Frame) {
	p := f.Player
	b := p.Bounds()

	for _, sign := range f.Snap.Signs() {
		sign.Fade(b.Intersects(sign.Bounds()))
	}

	// dismissing the orb message ends the level
	if d := s.dialog; d != nil {
		d.Delay--
		if d.Delay <= 0 && f.Input.IsControl(ControlAction, StatePress) {
			f.Emit(CompleteIntent{})
			s.audio.Play(CueExit)
			return
		}
	}

	if p.Exploding {
		return
	}

	for _, saw := range f.Snap.Saws() {
		if saw.Touches(b) {
			p.Explode()
			s.audio.Play(CueCrush)
			return
		}
	}

	if s.dialog == nil {
		for _, orb := range f.Snap.Orbs() {
			if orb.Touches(b) {
				s.dialog = &Dialog{Text: orb.Text, Delay: dialogDelay}
				s.audio.Play(CueKey)
				break
			}
		}
	}

	for _, key := range f.Snap.Keys() {
		if b.Intersects(key.Bounds()) {
			f.Emit(RemoveIntent{Ref: key})
			s.audio.Play(CueKey)
		}
	}

	for _, gate := range f.Snap.Gates() {
		if f.Snap.KeysRemaining(gate.Keys) == 0 {
			f.Emit(RemoveIntent{Ref: gate})
			s.audio.Play(CueGate)
		}
	}

	for _, exit := range f.Snap.Exits() {
		if exit.Reached(p.X, p.Y-exitReachOffset) {
			f.Emit(CompleteIntent{})
			s.audio.Play(CueExit)
			return
		}
	}
}
