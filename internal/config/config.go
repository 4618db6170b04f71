// Package config holds the settings of a render run and the shading
// parameters read from the asset directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ShadingFilename is looked up inside the asset directory.
const ShadingFilename = "mesh.yml"

// maxConfigSize bounds the YAML files this package is willing to read.
const maxConfigSize = 1024 * 1024

var ErrInvalid = errors.New("invalid configuration")

// Config describes one render of one mesh.
type Config struct {
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	Assets      string     `yaml:"assets"`
	Mesh        string     `yaml:"mesh"`
	Output      string     `yaml:"output"`
	Show        bool       `yaml:"show"`
	FOV         float64    `yaml:"fov"`
	Near        float64    `yaml:"near"`
	Far         float64    `yaml:"far"`
	Supersample int        `yaml:"supersample"`
	Simplify    float64    `yaml:"simplify"`
	Fit         bool       `yaml:"fit"`
	Wireframe   bool       `yaml:"wireframe"`
	ClearColor  [4]float64 `yaml:"clear_color"`
	// Light is the world-space light position; nil places it at the camera.
	Light *[3]float64 `yaml:"light"`
}

func Default() Config {
	return Config{
		Width:       1024,
		Height:      1024,
		Output:      "frame.png",
		FOV:         60,
		Near:        0.1,
		Far:         100,
		Supersample: 1,
		ClearColor:  [4]float64{0.7, 0.88, 0.9, 1},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := readYAML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: fov %g", ErrInvalid, c.FOV)
	case c.Near <= 0 || c.Far <= c.Near:
		return fmt.Errorf("%w: clip planes near=%g far=%g", ErrInvalid, c.Near, c.Far)
	case c.Supersample < 1 || c.Supersample > 8:
		return fmt.Errorf("%w: supersample %d", ErrInvalid, c.Supersample)
	case c.Simplify < 0 || c.Simplify > 1:
		return fmt.Errorf("%w: simplify %g", ErrInvalid, c.Simplify)
	case c.Mesh == "":
		return fmt.Errorf("%w: no mesh given", ErrInvalid)
	}
	return nil
}

// ToonStep is one lighting band of the toon model.
type ToonStep struct {
	Threshold float64 `yaml:"threshold"`
	Color     string  `yaml:"color"`
}

// Shading selects the lighting model and its parameters. Colors are hex strings.
type Shading struct {
	Model         string     `yaml:"model"` // "phong" or "toon"
	Ambient       string     `yaml:"ambient"`
	Diffuse       string     `yaml:"diffuse"`
	Specular      string     `yaml:"specular"`
	SpecularPower float64    `yaml:"specular_power"`
	Outline       bool       `yaml:"outline"`
	OutlineColor  string     `yaml:"outline_color"`
	OutlineFactor float64    `yaml:"outline_factor"`
	Toon          []ToonStep `yaml:"toon"`
	Wireframe     string     `yaml:"wireframe_color"`
}

func DefaultShading() Shading {
	return Shading{
		Model:         "phong",
		Ambient:       "333333",
		Diffuse:       "cccccc",
		Specular:      "ffffff",
		SpecularPower: 32,
		OutlineColor:  "000000",
		OutlineFactor: 0.05,
		Wireframe:     "202020",
	}
}

// LoadShading reads ShadingFilename from dir on top of the defaults. A missing
// file is not an error.
func LoadShading(dir string) (Shading, error) {
	shading := DefaultShading()
	path := filepath.Join(dir, ShadingFilename)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return shading, nil
	}
	if err := readYAML(path, &shading); err != nil {
		return Shading{}, err
	}
	switch shading.Model {
	case "phong", "toon":
	default:
		return Shading{}, fmt.Errorf("%w: %s: shading model %q", ErrInvalid, path, shading.Model)
	}
	return shading, nil
}

func readYAML(path string, out any) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxConfigSize {
		return fmt.Errorf("%w: %s is %d bytes", ErrInvalid, path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
