package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/ttpr0/heat-transit/geo"
	"github.com/ttpr0/heat-transit/routing"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

type Config struct {
	Data        DataOptions          `yaml:"data"`
	Projection  geo.Projection       `yaml:"projection"`
	Search      routing.SearchConfig `yaml:"search"`
	Destination LocationOptions      `yaml:"destination"`
	Render      RenderOptions        `yaml:"render"`
	Server      ServerOptions        `yaml:"server"`
	LogLevel    string               `yaml:"log-level" validate:"oneof=debug info warn error"`
}

type DataOptions struct {
	// directory containing stops.txt and stop_times.txt
	GTFS  string `yaml:"gtfs" validate:"required"`
	Cache string `yaml:"cache" validate:"required"`
}

type LocationOptions struct {
	Lat float64 `yaml:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `yaml:"lon" validate:"gte=-180,lte=180"`
}

type RenderOptions struct {
	Output string `yaml:"output" validate:"required"`
	Width  int    `yaml:"width" validate:"gt=0"`
	Height int    `yaml:"height" validate:"gt=0"`
	// half side length of the rendered square in km
	Size float64 `yaml:"size" validate:"gt=0"`
	// center of the image, the projection origin if unset
	Center  *LocationOptions `yaml:"center"`
	Mode    RenderMode       `yaml:"mode"`
	Workers int              `yaml:"workers" validate:"gte=0"`
}

type ServerOptions struct {
	Address        string   `yaml:"address" validate:"required"`
	AllowedOrigins []string `yaml:"allowed-origins"`
}

func DefaultConfig() Config {
	return Config{
		Data: DataOptions{
			GTFS:  "./data",
			Cache: "./cache",
		},
		Projection: geo.NewProjection(47.6, -122.33),
		Search:     routing.DefaultSearchConfig(),
		// Ballard
		Destination: LocationOptions{Lat: 47.668809, Lon: -122.382799},
		Render: RenderOptions{
			Output: "./out/out.png",
			Width:  1000,
			Height: 1000,
			Size:   15,
			Mode:   SCALAR,
		},
		Server: ServerOptions{
			Address: ":5002",
		},
		LogLevel: "info",
	}
}

// Reads the config file on top of the defaults, applies environment overrides
// and validates the result.
func ReadConfig(file string) (Config, error) {
	slog.Info("Reading config file " + file)
	config := DefaultConfig()
	data, err := os.ReadFile(file)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := ApplyEnv(&config); err != nil {
		return config, err
	}
	if err := ValidateConfig(config); err != nil {
		return config, err
	}
	return config, nil
}

// Config file used when -config is not given, HEAT_CONFIG if set.
func DefaultConfigPath() string {
	_ = godotenv.Load()

	if v := os.Getenv("HEAT_CONFIG"); v != "" {
		return v
	}
	return "./config.yaml"
}

// Loads .env if present and overrides config values from HEAT_* variables.
func ApplyEnv(config *Config) error {
	_ = godotenv.Load()

	if v := os.Getenv("HEAT_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("HEAT_GTFS_DIR"); v != "" {
		config.Data.GTFS = v
	}
	if v := os.Getenv("HEAT_CACHE_DIR"); v != "" {
		config.Data.Cache = v
	}
	if v := os.Getenv("HEAT_OUTPUT"); v != "" {
		config.Render.Output = v
	}
	if v := os.Getenv("HEAT_ADDRESS"); v != "" {
		config.Server.Address = v
	}
	if v := os.Getenv("HEAT_WORKERS"); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HEAT_WORKERS %q: %w", v, err)
		}
		config.Render.Workers = workers
	}
	return nil
}

func ValidateConfig(config Config) error {
	v := validator.New()
	if err := v.Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

//**********************************************************
// enums
//**********************************************************

type RenderMode byte

const (
	// total travel time as grayscale
	SCALAR RenderMode = 0
	// walk, bus and wait time as color channels
	VECTOR RenderMode = 1
)

func (self RenderMode) String() string {
	switch self {
	case SCALAR:
		return "scalar"
	case VECTOR:
		return "vector"
	default:
		panic("unknown render mode")
	}
}
func (self RenderMode) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *RenderMode) UnmarshalYAML(value *yaml.Node) error {
	mode, err := RenderModeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = mode
	return nil
}

func RenderModeFromString(s string) (RenderMode, error) {
	switch s {
	case "scalar":
		return SCALAR, nil
	case "vector":
		return VECTOR, nil
	default:
		return SCALAR, fmt.Errorf("unknown render mode %q", s)
	}
}
