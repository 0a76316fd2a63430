package race

// Tuning holds the fixed gameplay constants for a race instance. Speeds are in
// km/h, durations in seconds, distances in world units.
type Tuning struct {
	TotalLaps        int
	AICount          int
	CountdownSeconds int

	MaxSpeed            float64
	Acceleration        float64
	SteeringSensitivity float64
	BrakeForce          float64
	HoldBrake           float64
	NitroBoost          float64
	NitroDuration       float64
	MaxNitro            float64

	CheckpointRadius float64

	WaypointRadius        float64
	AISteerGain           float64
	AISteerScale          float64
	AITurnSpeedFactor     float64
	AIStraightSpeedFactor float64
	AIThrottleFactor      float64
	AIBrakeForce          float64
}

// DefaultTuning returns the stock arcade tuning.
func DefaultTuning() Tuning {
	return Tuning{
		TotalLaps:        3,
		AICount:          3,
		CountdownSeconds: 3,

		MaxSpeed:            250,
		Acceleration:        80,
		SteeringSensitivity: 0.2,
		BrakeForce:          150,
		HoldBrake:           10,
		NitroBoost:          1.4,
		NitroDuration:       5,
		MaxNitro:            100,

		CheckpointRadius: 20,

		WaypointRadius:        25,
		AISteerGain:           0.5,
		AISteerScale:          0.6,
		AITurnSpeedFactor:     0.7,
		AIStraightSpeedFactor: 0.9,
		AIThrottleFactor:      0.9,
		AIBrakeForce:          1.5,
	}
}

// kmhToMS converts a speed in km/h to world units per second.
func kmhToMS(kmh float64) float64 { return kmh / 3.6 }

// msToKMH converts world units per second to km/h.
func msToKMH(ms float64) float64 { return ms * 3.6 }
