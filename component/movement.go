package component

// Movement holds the tunables of a ground-relative character controller.
// Every field is read by exactly one formula in the locomotion system.
type Movement struct {
	InAirMoveAccel     float64 `yaml:"in_air_move_accel"`
	InAirMaxHorizSpeed float64 `yaml:"in_air_max_horiz_speed"`
	InAirMaxVertSpeed  float64 `yaml:"in_air_max_vert_speed"`

	OnGroundMoveAccel     float64 `yaml:"on_ground_move_accel"`
	OnGroundMaxSpeed      float64 `yaml:"on_ground_max_speed"`
	OnGroundStopEaseSpeed float64 `yaml:"on_ground_stop_ease_speed"`

	InstantStepUp          bool    `yaml:"instant_step_up"`
	StepUpEaseSpeed        float64 `yaml:"step_up_ease_speed"`
	MinAllowedSurfaceAngle float64 `yaml:"min_allowed_surface_angle"`

	GravityAccel    float64 `yaml:"gravity_accel"`
	JumpSpeed       float64 `yaml:"jump_speed"`
	MaxJumpHoldTime float64 `yaml:"max_jump_hold_time"`

	GroundCheckStartOffsetY float64 `yaml:"ground_check_start_offset_y"`
	CheckForGroundRadius    float64 `yaml:"check_for_ground_radius"`
	GroundResolutionOverlap float64 `yaml:"ground_resolution_overlap"`

	MaxMidAirJumpTime         float64 `yaml:"max_mid_air_jump_time"`
	JumpPushOutOfGroundAmount float64 `yaml:"jump_push_out_of_ground_amount"`

	// FootOffset is the distance from the body center down to the feet,
	// i.e. half of the capsule height.
	FootOffset float64 `yaml:"foot_offset"`

	VectorVisualizeScale float64 `yaml:"vector_visualize_scale"`

	JiggleFrequency float64 `yaml:"jiggle_frequency"`
	MaxJiggleOffset float64 `yaml:"max_jiggle_offset"`
}

// DefaultMovement returns the stock tuning used when a prefab omits a value.
func DefaultMovement() Movement {
	return Movement{
		InAirMoveAccel:     30,
		InAirMaxHorizSpeed: 20,
		InAirMaxVertSpeed:  50,

		OnGroundMoveAccel:     10,
		OnGroundMaxSpeed:      10,
		OnGroundStopEaseSpeed: 10,

		InstantStepUp:          false,
		StepUpEaseSpeed:        10,
		MinAllowedSurfaceAngle: 15,

		GravityAccel:    -10,
		JumpSpeed:       10,
		MaxJumpHoldTime: 0.5,

		GroundCheckStartOffsetY: 0.5,
		CheckForGroundRadius:    0.5,
		GroundResolutionOverlap: 0.05,

		MaxMidAirJumpTime:         0.3,
		JumpPushOutOfGroundAmount: 0.5,

		FootOffset: 1,

		VectorVisualizeScale: 2,

		JiggleFrequency: 0,
		MaxJiggleOffset: 3,
	}
}
