package config

import (
	"encoding/json"
	"os"
	"runtime"

	"github.com/pkg/errors"
)

// Config holds output locations and split/render settings.
type Config struct {
	// Output
	OutputDir string `json:"output_dir"`
	Preview   string `json:"preview"` // image path; extension picks the format

	// Render settings
	PreviewSize int    `json:"preview_size"`
	Supersample int    `json:"supersample"`
	View        string `json:"view"` // "iso" or "top"

	// Split settings
	Workers   int    `json:"workers"`
	Kernel    string `json:"kernel"` // "poly" or "sdfx"
	Strict    bool   `json:"strict"`
	MeshCells int    `json:"mesh_cells"` // sdfx marching-cubes resolution
}

// Kernel and view names accepted by Validate.
const (
	KernelPoly = "poly"
	KernelSdfx = "sdfx"

	ViewIso = "iso"
	ViewTop = "top"
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: parse %s", path)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Preview != "" {
		c.Preview = flags.Preview
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}
	if flags.View != "" {
		c.View = flags.View
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Kernel != "" {
		c.Kernel = flags.Kernel
	}
	if flags.Strict {
		c.Strict = true
	}

	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.View == "" {
		c.View = ViewIso
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Kernel == "" {
		c.Kernel = KernelPoly
	}
	if c.MeshCells <= 0 {
		c.MeshCells = 200
	}
}

// Validate reports settings Resolve cannot repair.
func (c *Config) Validate() error {
	switch c.Kernel {
	case KernelPoly, KernelSdfx:
	default:
		return errors.Errorf("config: unknown kernel %q (want %s or %s)", c.Kernel, KernelPoly, KernelSdfx)
	}
	switch c.View {
	case ViewIso, ViewTop:
	default:
		return errors.Errorf("config: unknown view %q (want %s or %s)", c.View, ViewIso, ViewTop)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir   string
	Preview     string
	PreviewSize int
	View        string
	Workers     int
	Kernel      string
	Strict      bool
}
