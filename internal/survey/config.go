// Package survey runs Euler deconvolution over a surveyed grid as
// described by a YAML file and writes the tables, figures and database
// records of every structural index.
package survey

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-euler/field/grid"
	"github.com/cwbudde/algo-euler/inversion/euler"
	"github.com/cwbudde/algo-euler/stats/region"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("survey: invalid config")

// Config describes one survey run.
type Config struct {
	Name    string        `yaml:"name"`
	Grid    GridConfig    `yaml:"grid"`
	Euler   EulerConfig   `yaml:"euler"`
	Regions RegionsConfig `yaml:"regions"`
	Output  OutputConfig  `yaml:"output"`
}

// GridConfig locates the input grid and its geometry.
type GridConfig struct {
	Path string    `yaml:"path"`
	Rows int       `yaml:"rows"`
	Cols int       `yaml:"cols"`
	Area []float64 `yaml:"area"` // south, north, west, east
}

// EulerConfig holds the deconvolution parameters shared by every index.
type EulerConfig struct {
	StructuralIndices []float64 `yaml:"structural_indices"`
	WindowSize        int       `yaml:"window_size"`
	Filter            float64   `yaml:"filter"`
	Ranking           string    `yaml:"ranking"`
	Workers           int       `yaml:"workers"`
	MaxCondition      float64   `yaml:"max_condition"`
}

// RegionsConfig lists the statistics boxes of each estimate set.
type RegionsConfig struct {
	Classic []Region `yaml:"classic,omitempty"`
	Plateau []Region `yaml:"plateau,omitempty"`
}

// Region is a named statistics box.
type Region struct {
	Name string    `yaml:"name"`
	Box  []float64 `yaml:"box"` // south, north, west, east
}

// OutputConfig selects what is written.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	Database   string `yaml:"database,omitempty"`
	Plots      bool   `yaml:"plots"`
	HTML       bool   `yaml:"html,omitempty"` // interactive depth maps
	PlotFormat string `yaml:"plot_format"`
	Colormap   string `yaml:"colormap,omitempty"` // optional RGB lookup table
}

// DefaultConfig returns the parameters of the published synthetic tests.
func DefaultConfig() *Config {
	return &Config{
		Name: "survey",
		Euler: EulerConfig{
			StructuralIndices: []float64{0.001, 1, 2, 3},
			WindowSize:        9,
			Filter:            0.08,
			Ranking:           euler.RankLowDispersion.String(),
			MaxCondition:      euler.DefaultOptions().MaxCondition,
		},
		Output: OutputConfig{
			Dir:        "results",
			PlotFormat: "png",
		},
	}
}

// Load reads a YAML config over the defaults. Relative paths are resolved
// against the directory of the config file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("survey: read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("survey: parse config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, p := range []*string{&cfg.Grid.Path, &cfg.Output.Dir, &cfg.Output.Database, &cfg.Output.Colormap} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}

	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("survey: marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("survey: write config: %w", err)
	}

	return nil
}

// Shape returns the grid shape.
func (c *Config) Shape() grid.Shape {
	return grid.Shape{Rows: c.Grid.Rows, Cols: c.Grid.Cols}
}

// Area returns the grid area.
func (c *Config) Area() (grid.Area, error) {
	return grid.AreaFromSlice(c.Grid.Area)
}

// Params returns the deconvolution parameters for one structural index.
func (c *Config) Params(si float64) euler.Params {
	return euler.Params{
		StructuralIndex: si,
		WindowSize:      c.Euler.WindowSize,
		Filter:          c.Euler.Filter,
	}
}

// Options returns the deconvolution options.
func (c *Config) Options() ([]euler.Option, error) {
	rank, err := euler.ParseRanking(c.Euler.Ranking)
	if err != nil {
		return nil, err
	}

	return []euler.Option{
		euler.WithWorkers(c.Euler.Workers),
		euler.WithRanking(rank),
		euler.WithMaxCondition(c.Euler.MaxCondition),
	}, nil
}

// Validate checks the config without touching the file system.
func (c *Config) Validate() error {
	var problems []string

	if c.Grid.Path == "" {
		problems = append(problems, "grid.path is empty")
	}

	area, err := c.Area()
	if err == nil {
		err = area.Validate()
	}
	if err != nil {
		problems = append(problems, err.Error())
	}

	shape := c.Shape()
	if shape.Rows < 2 || shape.Cols < 2 {
		problems = append(problems, fmt.Sprintf("grid shape %v is too small", shape))
	}

	if len(c.Euler.StructuralIndices) == 0 {
		problems = append(problems, "euler.structural_indices is empty")
	}

	if shape.Rows >= 2 && shape.Cols >= 2 {
		for _, si := range c.Euler.StructuralIndices {
			if err := c.Params(si).Validate(shape); err != nil {
				problems = append(problems, err.Error())
			}
		}
	}

	if _, err := euler.ParseRanking(c.Euler.Ranking); err != nil {
		problems = append(problems, err.Error())
	}

	seen := map[string]bool{}
	for _, set := range [][]Region{c.Regions.Classic, c.Regions.Plateau} {
		for _, r := range set {
			if r.Name == "" || strings.ContainsAny(r.Name, `/\`) {
				problems = append(problems, fmt.Sprintf("region name %q is not a file name", r.Name))
			}
			if seen[r.Name] {
				problems = append(problems, fmt.Sprintf("region name %q is used twice", r.Name))
			}
			seen[r.Name] = true

			if _, err := region.BoxFromSlice(r.Box); err != nil {
				problems = append(problems, fmt.Sprintf("region %q: %v", r.Name, err))
			}
		}
	}

	if c.Output.Dir == "" {
		problems = append(problems, "output.dir is empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}
