package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no -config flag is given.
const EnvPath = "NEXUS_CONFIG"

var ErrInvalid = errors.New("invalid config")

// Config holds the tuning values of one run. The zero value is not usable; start from Default.
type Config struct {
	Playfield Playfield `yaml:"playfield"`
	Player    Player    `yaml:"player"`
	Spawn     Spawn     `yaml:"spawn"`
	Boss      Boss      `yaml:"boss"`
	PowerUp   PowerUp   `yaml:"powerup"`
	Progress  Progress  `yaml:"progress"`
}

type Playfield struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Player struct {
	Health       int           `yaml:"health"`
	FireCooldown time.Duration `yaml:"fire_cooldown"`
	StartOffset  float64       `yaml:"start_offset"` // distance from the bottom edge
}

type Spawn struct {
	BaseInterval    time.Duration `yaml:"base_interval"`
	MinInterval     time.Duration `yaml:"min_interval"`
	PowerUpInterval time.Duration `yaml:"powerup_interval"`
	DifficultyRamp  time.Duration `yaml:"difficulty_ramp"` // time for difficulty to grow by 1.0
	MaxDifficulty   float64       `yaml:"max_difficulty"`
	Margin          float64       `yaml:"margin"`
}

type Boss struct {
	Every        int           `yaml:"every"`
	HealthFactor int           `yaml:"health_factor"`
	Telegraph    time.Duration `yaml:"telegraph"`
	Entry        time.Duration `yaml:"entry"`
	EntryY       float64       `yaml:"entry_y"`
	PatrolLeg    time.Duration `yaml:"patrol_leg"`
	PatrolInset  float64       `yaml:"patrol_inset"`
}

type PowerUp struct {
	RapidCooldown  time.Duration `yaml:"rapid_cooldown"`
	RapidWindow    time.Duration `yaml:"rapid_window"`
	ShieldCap      int           `yaml:"shield_cap"`
	ShieldOverflow int           `yaml:"shield_overflow"`
	MultiShot      int           `yaml:"multishot"`
	Spread         float64       `yaml:"spread"`
}

type Progress struct {
	KillsNeeded int `yaml:"kills_needed"`
	KillsStep   int `yaml:"kills_step"`
}

func Default() Config {
	return Config{
		Playfield: Playfield{Width: 390, Height: 844},
		Player: Player{
			Health:       3,
			FireCooldown: 300 * time.Millisecond,
			StartOffset:  100,
		},
		Spawn: Spawn{
			BaseInterval:    1500 * time.Millisecond,
			MinInterval:     200 * time.Millisecond,
			PowerUpInterval: 10 * time.Second,
			DifficultyRamp:  30 * time.Second,
			MaxDifficulty:   3.0,
			Margin:          30,
		},
		Boss: Boss{
			Every:        3,
			HealthFactor: 10,
			Telegraph:    1200 * time.Millisecond,
			Entry:        2 * time.Second,
			EntryY:       150,
			PatrolLeg:    2 * time.Second,
			PatrolInset:  100,
		},
		PowerUp: PowerUp{
			RapidCooldown:  100 * time.Millisecond,
			RapidWindow:    5 * time.Second,
			ShieldCap:      5,
			ShieldOverflow: 50,
			MultiShot:      10,
			Spread:         15,
		},
		Progress: Progress{KillsNeeded: 10, KillsStep: 5},
	}
}

// Load overlays the YAML file at path on top of Default. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// PathFromEnv returns flagValue when set, otherwise the value of NEXUS_CONFIG.
func PathFromEnv(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return strings.TrimSpace(os.Getenv(EnvPath))
}

func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(c.Playfield.Width > 0 && c.Playfield.Height > 0, "playfield must have a positive size")
	check(c.Player.Health > 0, "player.health must be positive")
	check(c.Player.FireCooldown >= 0, "player.fire_cooldown must not be negative")
	check(c.Spawn.BaseInterval > 0, "spawn.base_interval must be positive")
	check(c.Spawn.MinInterval > 0, "spawn.min_interval must be positive")
	check(c.Spawn.PowerUpInterval > 0, "spawn.powerup_interval must be positive")
	check(c.Spawn.DifficultyRamp > 0, "spawn.difficulty_ramp must be positive")
	check(c.Spawn.MaxDifficulty >= 1, "spawn.max_difficulty must be at least 1")
	check(c.Spawn.Margin >= 0, "spawn.margin must not be negative")
	check(c.Boss.Every > 0, "boss.every must be positive")
	check(c.Boss.HealthFactor > 0, "boss.health_factor must be positive")
	check(c.Boss.Entry > 0 && c.Boss.PatrolLeg > 0, "boss movement durations must be positive")
	check(c.Boss.Telegraph >= 0, "boss.telegraph must not be negative")
	check(c.PowerUp.RapidCooldown >= 0, "powerup.rapid_cooldown must not be negative")
	check(c.PowerUp.RapidWindow >= 0, "powerup.rapid_window must not be negative")
	check(c.PowerUp.ShieldCap >= 0, "powerup.shield_cap must not be negative")
	check(c.PowerUp.ShieldOverflow >= 0, "powerup.shield_overflow must not be negative")
	check(c.PowerUp.MultiShot >= 0, "powerup.multishot must not be negative")
	check(c.PowerUp.Spread >= 0, "powerup.spread must not be negative")
	check(c.Progress.KillsNeeded > 0, "progress.kills_needed must be positive")
	check(c.Progress.KillsStep >= 0, "progress.kills_step must not be negative")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
