package clusters

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Dedup strategy names
const (
	DedupSerial   = "serial"
	DedupParallel = "parallel"
	DedupBucketed = "bucketed"
)

// Output formats of the text result sink
const (
	FormatPairs  = "pairs"
	FormatGraph6 = "graph6"
)

// Config is the run configuration, typically read from a YAML file and then overridden by flags.
type Config struct {
	DegreeBound int    `yaml:"degree_bound"` // a vertex is open iff its degree < DegreeBound
	MaxVertices int    `yaml:"max_vertices"` // last generation (vertex count) to grow
	Seed        string `yaml:"seed"`         // seed graph edge expression, e.g. "0-1"
	Workers     int    `yaml:"workers"`      // 0 or -1 denotes runtime.NumCPU()
	Dedup       string `yaml:"dedup"`        // serial, parallel, or bucketed
	Output      string `yaml:"output"`       // append-only text file; "" disables
	Format      string `yaml:"format"`       // pairs or graph6
	CatalogPath string `yaml:"catalog"`      // badger catalog directory; "" disables
	MetricsFile string `yaml:"metrics_file"` // prometheus textfile written when the run ends; "" disables
	Table       bool   `yaml:"table"`        // print a per-generation table when the run ends
}

// DefaultConfig returns the configuration used when no file or flag says otherwise.
func DefaultConfig() Config {
	return Config{
		DegreeBound: 4,
		MaxVertices: 8,
		Seed:        "0-1",
		Dedup:       DedupParallel,
		Output:      "nonisomorphic.txt",
		Format:      FormatPairs,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig().
func LoadConfig(pathname string) (Config, error) {
	cfg := DefaultConfig()
	buf, err := os.ReadFile(pathname)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %q", pathname)
	}
	if err = yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, errors.Wrapf(ErrBadConfig, "parsing %q: %v", pathname, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks field ranges and names.
func (cfg *Config) Validate() error {
	if cfg.DegreeBound < 1 {
		return errors.Wrapf(ErrBadConfig, "degree_bound must be >= 1 (got %d)", cfg.DegreeBound)
	}
	if cfg.MaxVertices < 1 {
		return errors.Wrapf(ErrBadConfig, "max_vertices must be >= 1 (got %d)", cfg.MaxVertices)
	}
	if cfg.Workers < -1 {
		return errors.Wrapf(ErrBadConfig, "workers must be >= -1 (got %d)", cfg.Workers)
	}
	switch cfg.Dedup {
	case DedupSerial, DedupParallel, DedupBucketed:
	default:
		return errors.Wrapf(ErrBadConfig, "unknown dedup strategy %q", cfg.Dedup)
	}
	switch cfg.Format {
	case FormatPairs, FormatGraph6:
	default:
		return errors.Wrapf(ErrBadConfig, "unknown output format %q", cfg.Format)
	}
	return nil
}

// NumWorkers resolves the Workers setting to a concrete goroutine count.
func (cfg *Config) NumWorkers() int {
	if cfg.Workers <= 0 {
		return runtime.NumCPU()
	}
	return cfg.Workers
}
