package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all engine configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Movement MovementConfig `yaml:"movement"`
	Camera   CameraConfig   `yaml:"camera"`
	Maps     MapsConfig     `yaml:"maps"`
	Graphics GraphicsConfig `yaml:"graphics"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

type MovementConfig struct {
	MoveSpeed       float64 `yaml:"move_speed"`       // map units / second
	RotationSpeed   float64 `yaml:"rotation_speed"`   // radians / second
	CollisionMargin float64 `yaml:"collision_margin"` // wall buffer, also the end-trigger radius
}

type CameraConfig struct {
	FOVDegrees float64 `yaml:"fov_degrees"`
}

type MapsConfig struct {
	TilesFile   string `yaml:"tiles_file"`
	InfoFile    string `yaml:"info_file"`
	SpritesFile string `yaml:"sprites_file"` // optional, empty = no sprite plane
}

type GraphicsConfig struct {
	WallAtlas   string       `yaml:"wall_atlas"`
	SpriteAtlas string       `yaml:"sprite_atlas"`
	Colors      ColorsConfig `yaml:"colors"`
}

type ColorsConfig struct {
	Ceiling [3]int `yaml:"ceiling"`
	Floor   [3]int `yaml:"floor"`
}

// LoadConfig loads the configuration from a yaml file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Default returns the built-in engine defaults. Tests use this directly
// instead of reading config.yaml from disk.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  800,
			ScreenHeight: 600,
			WindowTitle:  "ironmaze",
		},
		Movement: MovementConfig{
			MoveSpeed:       3.0,
			RotationSpeed:   2.5,
			CollisionMargin: 0.15,
		},
		Camera: CameraConfig{
			FOVDegrees: 60,
		},
		Maps: MapsConfig{
			TilesFile:   "assets/map_tiles.txt",
			InfoFile:    "assets/map_info.txt",
			SpritesFile: "assets/map_sprites.txt",
		},
		Graphics: GraphicsConfig{
			WallAtlas:   "assets/texture_tiles.png",
			SpriteAtlas: "assets/texture_sprites.png",
			Colors: ColorsConfig{
				Ceiling: [3]int{170, 170, 170},
				Floor:   [3]int{102, 102, 102},
			},
		},
	}
}

// Helper functions for commonly used values

func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

func (c *Config) GetCollisionMargin() float64 {
	return c.Movement.CollisionMargin
}

// GetCameraFOV returns the horizontal field of view in radians.
func (c *Config) GetCameraFOV() float64 {
	return c.Camera.FOVDegrees * math.Pi / 180
}
