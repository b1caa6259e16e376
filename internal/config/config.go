package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FileName = "directus-typegen.yaml"

	SourceApi      = "api"
	SourceSnapshot = "snapshot"
	SourceSql      = "sql"
	SourceDatabase = "database"

	FormatTypeScript = "ts"
	FormatGo         = "go"

	// OutputStdout as the output writes the artifact to standard output.
	OutputStdout = "-"

	DefaultOutput = "directus-schema.ts"
	DefaultURL    = "http://localhost:8055"
	DefaultToken  = "admin"
)

type Config struct {
	// Output is the file the generated types are written to. Empty means
	// the types are generated but not written anywhere.
	Output string `yaml:"output"`

	URL   string `yaml:"url" validate:"omitempty,url"`
	Token string `yaml:"token"`

	Source      string      `yaml:"source" validate:"oneof=api snapshot sql database"`
	Snapshot    Snapshot    `yaml:"snapshot"`
	Migrations  []Migration `yaml:"migrations" validate:"dive"`
	DatabaseURL string      `yaml:"databaseUrl"`

	Format                string  `yaml:"format" validate:"oneof=ts go"`
	Package               Package `yaml:"package"`
	SchemaName            string  `yaml:"schemaName" validate:"required"`
	SingularizeSingletons bool    `yaml:"singularizeSingletons"`
	IncludeSystem         bool    `yaml:"includeSystem"`

	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
	LogLevel  string        `yaml:"logLevel" validate:"oneof=debug info warn error"`
	LogFormat string        `yaml:"logFormat" validate:"oneof=text json"`

	// Watch is only settable from the command line.
	Watch bool `yaml:"-"`
}

type Snapshot struct {
	Path string `yaml:"path"`
}

type Migration struct {
	Path string `yaml:"path" validate:"required"`
}

type Package struct {
	Name string `yaml:"name" validate:"omitempty,go_package"`
}

func Default() Config {
	return Config{
		Output:     DefaultOutput,
		URL:        DefaultURL,
		Token:      DefaultToken,
		Source:     SourceApi,
		Format:     FormatTypeScript,
		Package:    Package{Name: "schema"},
		SchemaName: "Schema",
		Timeout:    30 * time.Second,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Read reads the config file at configPath on top of the defaults.
func Read(configPath string) (*Config, error) {
	fileData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf(`failed to read config file "%s": %w`, configPath, err)
	}

	config := Default()
	if err := yaml.Unmarshal(fileData, &config); err != nil {
		return nil, fmt.Errorf(`failed to unmarshal config file "%s": %w`, configPath, err)
	}

	return &config, nil
}

// readOptional is like Read but returns the defaults if the file doesn't
// exist.
func readOptional(configPath string) (*Config, error) {
	config, err := Read(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		c := Default()
		return &c, nil
	}

	return config, err
}

// Load builds the configuration of a run: defaults, then the config file,
// then environment variables and finally command line flags.
func Load(workingDir string, args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	f, err := parseFlags(args)
	if err != nil {
		return nil, err
	}

	var config *Config
	if f.configPath != "" {
		config, err = Read(resolvePath(workingDir, f.configPath))
	} else {
		config, err = readOptional(filepath.Join(workingDir, FileName))
	}

	if err != nil {
		return nil, err
	}

	if err := applyEnv(config, lookupEnv); err != nil {
		return nil, err
	}

	f.apply(config)

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

func resolvePath(workingDir string, p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(workingDir, p)
}
