// Package config loads the editor's YAML settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/plus3/leveled/editor"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// File mirrors the settings file:
//
//	editor:
//	  spawn_distance: 10
//	flycam:
//	  speed: 7
//	  look_sensitivity: 0.5
//	  scroll_sensitivity: 0.5
//	window:
//	  width: 1280
//	  height: 720
//	  title: leveled
type File struct {
	Editor Editor `yaml:"editor"`
	Flycam Flycam `yaml:"flycam"`
	Window Window `yaml:"window"`
}

type Editor struct {
	SpawnDistance float32 `yaml:"spawn_distance"`
}

type Flycam struct {
	Speed             float32 `yaml:"speed"`
	LookSensitivity   float32 `yaml:"look_sensitivity"`
	ScrollSensitivity float32 `yaml:"scroll_sensitivity"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Default returns the settings used when no file exists.
func Default() File {
	editorDefaults := editor.DefaultConfig()
	return File{
		Editor: Editor{SpawnDistance: editorDefaults.SpawnDistance},
		Flycam: Flycam{
			Speed:             editorDefaults.Flycam.Speed,
			LookSensitivity:   editorDefaults.Flycam.LookSensitivity,
			ScrollSensitivity: editorDefaults.Flycam.ScrollSensitivity,
		},
		Window: Window{Width: 1280, Height: 720, Title: "leveled"},
	}
}

// Load reads path. A missing file yields Default with no error; keys
// absent from the file keep their default values.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return File{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over Default and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (File, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

// Validate checks that every numeric setting is positive.
func (f File) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"editor.spawn_distance", f.Editor.SpawnDistance > 0},
		{"flycam.speed", f.Flycam.Speed > 0},
		{"flycam.look_sensitivity", f.Flycam.LookSensitivity > 0},
		{"flycam.scroll_sensitivity", f.Flycam.ScrollSensitivity > 0},
		{"window.width", f.Window.Width > 0},
		{"window.height", f.Window.Height > 0},
	}

	var errs []error
	for _, c := range checks {
		if !c.ok {
			errs = append(errs, fmt.Errorf("%w: %s must be positive", ErrInvalid, c.name))
		}
	}
	return errors.Join(errs...)
}

// EditorConfig converts the settings into the editor plugin config.
func (f File) EditorConfig() editor.Config {
	cfg := editor.DefaultConfig()
	cfg.SpawnDistance = f.Editor.SpawnDistance
	cfg.Flycam.Speed = f.Flycam.Speed
	cfg.Flycam.LookSensitivity = f.Flycam.LookSensitivity
	cfg.Flycam.ScrollSensitivity = f.Flycam.ScrollSensitivity
	return cfg
}

// Marshal encodes f as YAML.
func (f File) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
