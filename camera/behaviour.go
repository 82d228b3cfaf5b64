package camera

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrUnknownBehaviour is returned when selecting a behaviour that was never
// registered.
var ErrUnknownBehaviour = errors.New("camera: unknown behaviour")

// Behaviour is one camera control scheme. The rig drives the active one
// every render tick.
type Behaviour interface {
	Activate()
	Deactivate()
	UpdateCamera(dt float64)
	// UpdateRotation stores the yaw and pitch deltas for the next update.
	UpdateRotation(yaw, pitch float64)
	SetFacingDirection(dir mgl64.Vec3)
	// ControlRotation is the pitch, yaw and roll in degrees that player
	// movement is measured against.
	ControlRotation() mgl64.Vec3
	UsesStandardControlRotation() bool
}

// Registry holds named behaviours and tracks the active one.
type Registry struct {
	behaviours  map[string]Behaviour
	current     Behaviour
	currentName string
}

func NewRegistry() *Registry {
	return &Registry{behaviours: make(map[string]Behaviour)}
}

// Register adds or replaces a behaviour. Replacing the active behaviour
// does not activate the new one until it is selected again.
func (r *Registry) Register(name string, b Behaviour) {
	if b == nil {
		return
	}
	r.behaviours[name] = b
}

// Set makes the named behaviour active. The previous one is deactivated.
// Selecting the active behaviour again is a no-op.
func (r *Registry) Set(name string) error {
	b, ok := r.behaviours[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBehaviour, name)
	}
	if b == r.current {
		return nil
	}
	if r.current != nil {
		r.current.Deactivate()
	}
	r.current = b
	r.currentName = name
	b.Activate()
	return nil
}

func (r *Registry) Current() Behaviour { return r.current }

func (r *Registry) CurrentName() string { return r.currentName }

// Names returns the registered behaviour names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.behaviours))
	for name := range r.behaviours {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
