package system

// FixedSystem runs on the constant-rate simulation tick.
type FixedSystem interface {
	FixedUpdate(dt float64)
}

// FrameSystem runs on the variable-rate render tick.
type FrameSystem interface {
	Update(dt float64)
}

// Scheduler runs systems in registration order. The host owns the loop and
// calls FixedUpdate and Update; nothing here blocks.
type Scheduler struct {
	fixed []FixedSystem
	frame []FrameSystem
}

func NewScheduler(systems ...FixedSystem) *Scheduler {
	copied := append([]FixedSystem(nil), systems...)
	return &Scheduler{fixed: copied}
}

func (s *Scheduler) AddFixed(system FixedSystem) {
	if system == nil {
		return
	}
	s.fixed = append(s.fixed, system)
}

func (s *Scheduler) AddFrame(system FrameSystem) {
	if system == nil {
		return
	}
	s.frame = append(s.frame, system)
}

func (s *Scheduler) FixedUpdate(dt float64) {
	for _, system := range s.fixed {
		system.FixedUpdate(dt)
	}
}

func (s *Scheduler) Update(dt float64) {
	for _, system := range s.frame {
		system.Update(dt)
	}
}

func (s *Scheduler) Systems() []FixedSystem {
	systems := make([]FixedSystem, 0, len(s.fixed))
	return append(systems, s.fixed...)
}
