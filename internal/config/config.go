package config

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/weave/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "weave.yaml"

	// DefaultRoot is the root component mounted when none is configured.
	DefaultRoot = "Home"

	// DefaultMaxChainedPasses matches engine.DefaultMaxChainedPasses.
	DefaultMaxChainedPasses = 100

	// DefaultFetchTimeout matches engine.DefaultFetchTimeout.
	DefaultFetchTimeout = "30s"

	// DefaultDevtoolsAddr is the default inspector listen address.
	DefaultDevtoolsAddr = "localhost:7070"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "weave"

	// DefaultSnapshotDir is the default directory for HTML snapshots.
	DefaultSnapshotDir = "snapshots"
)

// Config represents the weave.yaml configuration.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Engine   EngineConfig   `yaml:"engine"`
	Log      LogConfig      `yaml:"log"`
	Devtools DevtoolsConfig `yaml:"devtools"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Snapshot SnapshotConfig `yaml:"snapshot"`

	// configPath stores the path where the config was loaded from.
	configPath string

	// doc is the parsed document, kept to locate keys in Validate errors.
	doc *yaml.Node
}

// AppConfig names the application and its root component.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	Root string `yaml:"root,omitempty"`
}

// EngineConfig contains run loop settings.
type EngineConfig struct {
	// MaxChainedPasses bounds consecutive passes without an external task.
	// Zero disables the check.
	MaxChainedPasses int `yaml:"maxChainedPasses"`

	// FetchTimeout is a Go duration string such as "30s".
	FetchTimeout string `yaml:"fetchTimeout,omitempty"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`

	// Format is text or json.
	Format string `yaml:"format,omitempty"`
}

// DevtoolsConfig contains inspector server settings.
type DevtoolsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Namespace string `yaml:"namespace,omitempty"`
}

// SnapshotConfig says where snapshots are written.
type SnapshotConfig struct {
	Dir string   `yaml:"dir,omitempty"`
	S3  S3Config `yaml:"s3,omitempty"`
}

// S3Config selects an S3 bucket for snapshots. An empty Bucket disables S3.
type S3Config struct {
	Bucket    string `yaml:"bucket,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`
	Region    string `yaml:"region,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	PathStyle bool   `yaml:"pathStyle,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		App: AppConfig{
			Name: "weave",
			Root: DefaultRoot,
		},
		Engine: EngineConfig{
			MaxChainedPasses: DefaultMaxChainedPasses,
			FetchTimeout:     DefaultFetchTimeout,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Devtools: DevtoolsConfig{
			Addr: DefaultDevtoolsAddr,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Snapshot: SnapshotConfig{
			Dir: DefaultSnapshotDir,
		},
	}
}

// Load reads weave.yaml from the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOptional reads weave.yaml from dir if present and returns defaults
// otherwise.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if err != nil {
		var we *errors.WeaveError
		if stderrors.As(err, &we) && we.Code == "W302" {
			return New(), nil
		}
		return nil, err
	}
	return cfg, nil
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.New("W302").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				Wrap(err)
		}
		return nil, errors.New("W301").WithDetail(err.Error()).Wrap(err)
	}

	cfg := New()
	var doc yaml.Node
	err = yaml.Unmarshal(data, &doc)
	if err == nil && len(doc.Content) > 0 {
		err = doc.Decode(cfg)
	}
	if err != nil {
		we := errors.New("W301").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			Wrap(err)
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			line, _ := strconv.Atoi(m[1])
			we.WithLocation(path, line, 0)
		}
		return nil, we
	}

	cfg.configPath = path
	cfg.doc = &doc
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("W301").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("W301").WithDetail(err.Error()).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()
	if strings.TrimSpace(c.App.Name) == "" {
		c.App.Name = d.App.Name
	}
	if strings.TrimSpace(c.App.Root) == "" {
		c.App.Root = d.App.Root
	}
	if c.Engine.FetchTimeout == "" {
		c.Engine.FetchTimeout = d.Engine.FetchTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Devtools.Addr == "" {
		c.Devtools.Addr = d.Devtools.Addr
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = d.Snapshot.Dir
	}
}

// Validate checks if the configuration is valid. Errors point at the
// offending key when the config was loaded from a file.
func (c *Config) Validate() error {
	if c.Engine.MaxChainedPasses < 0 {
		return c.invalid("engine.maxChainedPasses", "must not be negative")
	}
	if d, err := time.ParseDuration(c.Engine.FetchTimeout); err != nil || d <= 0 {
		return c.invalid("engine.fetchTimeout", fmt.Sprintf("%q is not a positive duration", c.Engine.FetchTimeout)).
			WithSuggestion("Use a Go duration such as 30s.")
	}
	if _, err := c.LogLevel(); err != nil {
		return c.invalid("log.level", fmt.Sprintf("%q is not one of debug, info, warn, error", c.Log.Level))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return c.invalid("log.format", fmt.Sprintf("%q is not one of text, json", c.Log.Format))
	}
	if c.Devtools.Enabled && c.Devtools.Addr == "" {
		return c.invalid("devtools.addr", "required when devtools are enabled")
	}
	if c.Snapshot.S3.Bucket != "" && c.Snapshot.S3.Region == "" {
		return c.invalid("snapshot.s3.region", "required when a bucket is set")
	}
	return nil
}

func (c *Config) invalid(key, detail string) *errors.WeaveError {
	we := errors.New("W303").WithDetail(key + ": " + detail)
	if line, col := c.locate(key); line > 0 {
		we.WithLocation(c.configPath, line, col)
	}
	return we
}

// locate returns the position of the value for a dotted key, or the
// deepest ancestor present in the document.
func (c *Config) locate(key string) (line, col int) {
	if c.doc == nil || len(c.doc.Content) == 0 {
		return 0, 0
	}
	n := c.doc.Content[0]
	for _, part := range strings.Split(key, ".") {
		if n.Kind != yaml.MappingNode {
			break
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == part {
				next = n.Content[i+1]
				line, col = next.Line, next.Column
				break
			}
		}
		if next == nil {
			break
		}
		n = next
	}
	return line, col
}

// FetchTimeout returns the parsed engine fetch timeout, or the default
// when it does not parse.
func (c *Config) FetchTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Engine.FetchTimeout); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultFetchTimeout)
	return d
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.Log.Level))
	return l, err
}

// SnapshotDir returns the snapshot directory, relative to the config file.
func (c *Config) SnapshotDir() string {
	if filepath.IsAbs(c.Snapshot.Dir) {
		return c.Snapshot.Dir
	}
	return filepath.Join(c.Dir(), c.Snapshot.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing weave.yaml, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("W302").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest weave.yaml above the working
// directory, or defaults when there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return New(), nil
	}

	return Load(root)
}
