package system

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Jiggle produces a cosmetic random offset at a fixed frequency. It runs
// on the render tick only and never touches locomotion state.
type Jiggle struct {
	rng      *rand.Rand
	timeLeft float64
}

// NewJiggle returns a jiggle drawing from rng. A nil rng uses a fixed seed.
func NewJiggle(rng *rand.Rand) *Jiggle {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Jiggle{rng: rng}
}

// Reset makes the next Update fire immediately.
func (j *Jiggle) Reset() {
	if j != nil {
		j.timeLeft = 0
	}
}

// Update returns the offset to add this frame, zero when nothing fires.
// frequency <= 0 disables jiggling.
func (j *Jiggle) Update(dt, frequency, maxOffset float64) mgl64.Vec3 {
	if j == nil || frequency <= 0 {
		return mgl64.Vec3{}
	}

	j.timeLeft -= dt
	if j.timeLeft > 0 {
		return mgl64.Vec3{}
	}
	j.timeLeft = 1 / frequency

	// mean of four uniforms approximates a normal distribution
	amount := 0.0
	for i := 0; i < 4; i++ {
		amount += j.rng.Float64()*2 - 1
	}
	amount = amount / 4 * maxOffset

	offset := j.onUnitSphere().Mul(amount)
	offset[1] = math.Abs(offset.Y())
	return offset
}

func (j *Jiggle) onUnitSphere() mgl64.Vec3 {
	for {
		v := mgl64.Vec3{j.rng.NormFloat64(), j.rng.NormFloat64(), j.rng.NormFloat64()}
		if l := v.Len(); l > 1e-9 {
			return v.Mul(1 / l)
		}
	}
}
