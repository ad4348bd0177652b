package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config models a sortle.yaml project file: the settings a run can pick up
// without the caller spelling everything out on the command line, mirroring
// the shape (and yaml.v3 round-trip style) of the teacher interpreter's
// Lockfile.
type Config struct {
	Path string

	// StepLimit bounds how many rewrite steps `sortle run` takes before
	// giving up, 0 meaning unbounded. CLI --max-steps overrides this. The
	// bound is not applied when a trace is being written.
	StepLimit int

	// Trace, when true, makes `sortle run` write a step-by-step trace to
	// TracePath (or stdout if TracePath is empty). CLI --trace overrides this.
	Trace bool

	// TracePath is where the trace file is written when Trace is enabled.
	TracePath string

	// Sources maps a short name to a remote source the fetch subcommand can
	// resolve, so program authors can write "sortle fetch stdlib" instead of
	// repeating a full git URL.
	Sources map[string]SourceSpec
}

// SourceSpec names a fetchable git dependency: a repository plus one of
// rev/tag/branch and the path within the checkout to resolve.
type SourceSpec struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
	Path   string
}

type configDisk struct {
	MaxSteps int                   `yaml:"max_steps"`
	Trace    bool                  `yaml:"trace"`
	TraceOut string                `yaml:"trace_out"`
	Sources  map[string]sourceDisk `yaml:"sources"`
}

type sourceDisk struct {
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
	Path   string `yaml:"path"`
}

// LoadConfig reads sortle.yaml at path. A missing file is not an error: it
// returns the zero-value Config (no step limit, no trace, no sources), since
// the CLI is fully usable without a project file.
func LoadConfig(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if os.IsNotExist(err) {
		return &Config{Path: abs}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", abs, err)
	}

	var raw configDisk
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}

	cfg := &Config{
		Path:      abs,
		StepLimit: raw.MaxSteps,
		Trace:     raw.Trace,
		TracePath: strings.TrimSpace(raw.TraceOut),
		Sources:   make(map[string]SourceSpec, len(raw.Sources)),
	}
	for name, s := range raw.Sources {
		cfg.Sources[name] = SourceSpec{
			Git:    strings.TrimSpace(s.Git),
			Rev:    strings.TrimSpace(s.Rev),
			Tag:    strings.TrimSpace(s.Tag),
			Branch: strings.TrimSpace(s.Branch),
			Path:   strings.TrimSpace(s.Path),
		}
	}
	return cfg, nil
}

// WriteConfig serializes cfg back to its Path (or to path if given).
func WriteConfig(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}
	if path == "" {
		path = cfg.Path
	}
	if path == "" {
		return fmt.Errorf("config: missing path")
	}

	raw := configDisk{
		MaxSteps: cfg.StepLimit,
		Trace:    cfg.Trace,
		TraceOut: cfg.TracePath,
		Sources:  make(map[string]sourceDisk, len(cfg.Sources)),
	}
	for name, s := range cfg.Sources {
		raw.Sources[name] = sourceDisk{
			Git: s.Git, Rev: s.Rev, Tag: s.Tag, Branch: s.Branch, Path: s.Path,
		}
	}

	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("config: marshal %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("config: encoder close: %w", err)
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
