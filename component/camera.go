package component

import "github.com/go-gl/mathgl/mgl64"

// FollowCamera configures the trailing orbit camera.
type FollowCamera struct {
	HorizPosEaseSpeed float64 `yaml:"horiz_pos_ease_speed"`
	VertPosEaseSpeed  float64 `yaml:"vert_pos_ease_speed"`
	LookPosEaseSpeed  float64 `yaml:"look_pos_ease_speed"`

	// PivotOffset is the orbit pivot in the target's local space.
	PivotOffset mgl64.Vec3 `yaml:"pivot_offset"`

	YawRotateSpeed   float64 `yaml:"yaw_rotate_speed"`
	PitchRotateSpeed float64 `yaml:"pitch_rotate_speed"`
	MaxVerticalAngle float64 `yaml:"max_vertical_angle"`

	MaxDistFromTarget      float64 `yaml:"max_dist_from_target"`
	MinHorizDistFromTarget float64 `yaml:"min_horiz_dist_from_target"`
	AutoRotateDelayTime    float64 `yaml:"auto_rotate_delay_time"`
}

func DefaultFollowCamera() FollowCamera {
	return FollowCamera{
		HorizPosEaseSpeed: 5,
		VertPosEaseSpeed:  4,
		LookPosEaseSpeed:  5,

		YawRotateSpeed:   1,
		PitchRotateSpeed: 1,
		MaxVerticalAngle: 70,

		MaxDistFromTarget:      6,
		MinHorizDistFromTarget: 5,
		AutoRotateDelayTime:    1,
	}
}
