package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhishek9871/3D-Racing-Game/internal/race"
)

// EnvPrefix prefixes every environment override, e.g. RACER_RACE_TOTALLAPS.
const EnvPrefix = "RACER"

// Config is the process configuration.
type Config struct {
	Addr          string
	StaticDir     string
	LogLevel      string
	SimHz         int
	ReplicationHz int

	TotalLaps int
	AICount   int
	Countdown int

	MaxSpeed            float64
	Acceleration        float64
	SteeringSensitivity float64
	BrakeForce          float64
	HoldBrake           float64
	NitroBoost          float64
	NitroDuration       float64
	MaxNitro            float64

	WaypointRadius        float64
	AISteerGain           float64
	AISteerScale          float64
	AITurnSpeedFactor     float64
	AIStraightSpeedFactor float64
	AIThrottleFactor      float64
	AIBrakeForce          float64

	CheckpointRadius float64
}

func setDefaults(v *viper.Viper) {
	t := race.DefaultTuning()

	v.SetDefault("server.addr", ":9003")
	v.SetDefault("server.staticDir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("sim.hz", 60)
	v.SetDefault("replication.hz", 30)

	v.SetDefault("race.totalLaps", t.TotalLaps)
	v.SetDefault("race.aiCount", t.AICount)
	v.SetDefault("race.countdown", t.CountdownSeconds)

	v.SetDefault("vehicle.maxSpeed", t.MaxSpeed)
	v.SetDefault("vehicle.acceleration", t.Acceleration)
	v.SetDefault("vehicle.steeringSensitivity", t.SteeringSensitivity)
	v.SetDefault("vehicle.brakeForce", t.BrakeForce)
	v.SetDefault("vehicle.holdBrake", t.HoldBrake)
	v.SetDefault("vehicle.nitroBoost", t.NitroBoost)
	v.SetDefault("vehicle.nitroDuration", t.NitroDuration)
	v.SetDefault("vehicle.maxNitro", t.MaxNitro)

	v.SetDefault("ai.waypointRadius", t.WaypointRadius)
	v.SetDefault("ai.steerGain", t.AISteerGain)
	v.SetDefault("ai.steerScale", t.AISteerScale)
	v.SetDefault("ai.turnSpeedFactor", t.AITurnSpeedFactor)
	v.SetDefault("ai.straightSpeedFactor", t.AIStraightSpeedFactor)
	v.SetDefault("ai.throttleFactor", t.AIThrottleFactor)
	v.SetDefault("ai.brakeForce", t.AIBrakeForce)

	v.SetDefault("track.checkpointRadius", t.CheckpointRadius)
}

// Load reads defaults, then the optional JSON file at path, then RACER_*
// environment overrides.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Addr:          v.GetString("server.addr"),
		StaticDir:     v.GetString("server.staticDir"),
		LogLevel:      v.GetString("log.level"),
		SimHz:         v.GetInt("sim.hz"),
		ReplicationHz: v.GetInt("replication.hz"),

		TotalLaps: v.GetInt("race.totalLaps"),
		AICount:   v.GetInt("race.aiCount"),
		Countdown: v.GetInt("race.countdown"),

		MaxSpeed:            v.GetFloat64("vehicle.maxSpeed"),
		Acceleration:        v.GetFloat64("vehicle.acceleration"),
		SteeringSensitivity: v.GetFloat64("vehicle.steeringSensitivity"),
		BrakeForce:          v.GetFloat64("vehicle.brakeForce"),
		HoldBrake:           v.GetFloat64("vehicle.holdBrake"),
		NitroBoost:          v.GetFloat64("vehicle.nitroBoost"),
		NitroDuration:       v.GetFloat64("vehicle.nitroDuration"),
		MaxNitro:            v.GetFloat64("vehicle.maxNitro"),

		WaypointRadius:        v.GetFloat64("ai.waypointRadius"),
		AISteerGain:           v.GetFloat64("ai.steerGain"),
		AISteerScale:          v.GetFloat64("ai.steerScale"),
		AITurnSpeedFactor:     v.GetFloat64("ai.turnSpeedFactor"),
		AIStraightSpeedFactor: v.GetFloat64("ai.straightSpeedFactor"),
		AIThrottleFactor:      v.GetFloat64("ai.throttleFactor"),
		AIBrakeForce:          v.GetFloat64("ai.brakeForce"),

		CheckpointRadius: v.GetFloat64("track.checkpointRadius"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.SimHz <= 0 {
		errs = append(errs, fmt.Errorf("sim.hz must be positive, got %d", c.SimHz))
	}
	if c.ReplicationHz <= 0 {
		errs = append(errs, fmt.Errorf("replication.hz must be positive, got %d", c.ReplicationHz))
	}
	if c.TotalLaps < 1 {
		errs = append(errs, fmt.Errorf("race.totalLaps must be at least 1, got %d", c.TotalLaps))
	}
	if c.AICount < 0 || c.AICount > 8 {
		errs = append(errs, fmt.Errorf("race.aiCount must be within [0, 8], got %d", c.AICount))
	}
	if c.Countdown < 0 {
		errs = append(errs, fmt.Errorf("race.countdown must not be negative, got %d", c.Countdown))
	}
	if c.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("vehicle.maxSpeed must be positive, got %v", c.MaxSpeed))
	}
	if c.NitroDuration <= 0 {
		errs = append(errs, fmt.Errorf("vehicle.nitroDuration must be positive, got %v", c.NitroDuration))
	}
	if c.CheckpointRadius <= 0 {
		errs = append(errs, fmt.Errorf("track.checkpointRadius must be positive, got %v", c.CheckpointRadius))
	}
	return errors.Join(errs...)
}

// Tuning returns the race tuning this config describes.
func (c Config) Tuning() race.Tuning {
	return race.Tuning{
		TotalLaps:        c.TotalLaps,
		AICount:          c.AICount,
		CountdownSeconds: c.Countdown,

		MaxSpeed:            c.MaxSpeed,
		Acceleration:        c.Acceleration,
		SteeringSensitivity: c.SteeringSensitivity,
		BrakeForce:          c.BrakeForce,
		HoldBrake:           c.HoldBrake,
		NitroBoost:          c.NitroBoost,
		NitroDuration:       c.NitroDuration,
		MaxNitro:            c.MaxNitro,

		CheckpointRadius: c.CheckpointRadius,

		WaypointRadius:        c.WaypointRadius,
		AISteerGain:           c.AISteerGain,
		AISteerScale:          c.AISteerScale,
		AITurnSpeedFactor:     c.AITurnSpeedFactor,
		AIStraightSpeedFactor: c.AIStraightSpeedFactor,
		AIThrottleFactor:      c.AIThrottleFactor,
		AIBrakeForce:          c.AIBrakeForce,
	}
}
