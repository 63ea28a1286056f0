// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultTextResults is the bundled text task results document.
	DefaultTextResults = "data/rome/text_accuracy_new.json"
	// DefaultVisualResults is the bundled visual task results table.
	DefaultVisualResults = "data/rome/accuracy_table.csv"
	// GitHubPagesTarget is the deploy target that serves the site under a sub-path.
	GitHubPagesTarget = "GH_PAGES"
	// GitHubPagesBasePath is the sub-path used on GitHub Pages.
	GitHubPagesBasePath = "/LRM-Eval"
	// DeployTargetEnv names the environment variable consulted when the config
	// does not set deployTarget.
	DeployTargetEnv = "DEPLOY_TARGET"

	defaultOutputDir    = "out"
	defaultPublicDir    = "public"
	defaultLogFile      = "lrmeval.log"
	defaultPort         = 3000
	defaultFetchTimeout = 10 * time.Second
)

// Config represents the top-level application configuration.
type Config struct {
	Debug          bool   `json:"debug" mapstructure:"debug"`
	LogFile        string `json:"logFile,omitempty" mapstructure:"logFile"`
	TextResults    string `json:"textResults,omitempty" mapstructure:"textResults"`
	VisualResults  string `json:"visualResults,omitempty" mapstructure:"visualResults"`
	ModelsFile     string `json:"modelsFile,omitempty" mapstructure:"modelsFile"`
	OutputDir      string `json:"outputDir,omitempty" mapstructure:"outputDir"`
	PublicDir      string `json:"publicDir,omitempty" mapstructure:"publicDir"`
	BasePath       string `json:"basePath,omitempty" mapstructure:"basePath"`
	DeployTarget   string `json:"deployTarget,omitempty" mapstructure:"deployTarget"`
	Precompress    bool   `json:"precompress" mapstructure:"precompress"`
	Port           int    `json:"port,omitempty" mapstructure:"port"`
	TimeoutSeconds int    `json:"timeout,omitempty" mapstructure:"timeout"`
	ConfigPath     string `json:"-" mapstructure:"-"`
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if p := strings.TrimSpace(c.LogFile); p != "" {
		return p
	}
	return defaultLogFile
}

// TextResultsSource returns the text results file path or URL.
func (c Config) TextResultsSource() string {
	if s := strings.TrimSpace(c.TextResults); s != "" {
		return s
	}
	return DefaultTextResults
}

// VisualResultsSource returns the visual results file path or URL.
func (c Config) VisualResultsSource() string {
	if s := strings.TrimSpace(c.VisualResults); s != "" {
		return s
	}
	return DefaultVisualResults
}

// OutputPath returns the directory the static site is written to.
func (c Config) OutputPath() string {
	if p := strings.TrimSpace(c.OutputDir); p != "" {
		return p
	}
	return defaultOutputDir
}

// PublicPath returns the directory of static assets (logos, figures) copied
// verbatim into the export.
func (c Config) PublicPath() string {
	if p := strings.TrimSpace(c.PublicDir); p != "" {
		return p
	}
	return defaultPublicDir
}

// ListenPort returns the preview server port.
func (c Config) ListenPort() int {
	if c.Port <= 0 {
		return defaultPort
	}
	return c.Port
}

// FetchTimeout bounds a single remote fetch of a result source.
func (c Config) FetchTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultFetchTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Target returns the deploy target, falling back to the DEPLOY_TARGET
// environment variable.
func (c Config) Target() string {
	if t := strings.TrimSpace(c.DeployTarget); t != "" {
		return t
	}
	return strings.TrimSpace(os.Getenv(DeployTargetEnv))
}

// SiteBasePath returns the URL prefix every page and asset is served under.
// An explicit basePath wins; otherwise GitHub Pages deployments use
// /LRM-Eval and everything else is served from the root. The result never
// ends in a slash.
func (c Config) SiteBasePath() string {
	base := strings.TrimSpace(c.BasePath)
	if base == "" && strings.EqualFold(c.Target(), GitHubPagesTarget) {
		base = GitHubPagesBasePath
	}
	return NormalizeBasePath(base)
}

// NormalizeBasePath turns "", "/", "x", "/x/" into "", "", "/x", "/x".
func NormalizeBasePath(base string) string {
	base = strings.Trim(strings.TrimSpace(base), "/")
	if base == "" {
		return ""
	}
	return "/" + base
}

// WithPrefix joins the site base path and an asset path.
func (c Config) WithPrefix(asset string) string {
	return JoinBase(c.SiteBasePath(), asset)
}

// JoinBase joins a normalized base path and a site-relative asset path.
// Absolute URLs and fragments are returned unchanged.
func JoinBase(base, asset string) string {
	if strings.Contains(asset, "://") || strings.HasPrefix(asset, "#") || strings.HasPrefix(asset, "mailto:") {
		return asset
	}
	trailing := strings.HasSuffix(asset, "/")
	joined := path.Join("/", base, asset)
	if trailing && joined != "/" {
		joined += "/"
	}
	return joined
}

// Load reads the application configuration from the specified path.
func Load(p string) (Config, error) {
	if p == "" {
		p = DefaultConfigPath
	}

	config, err := loadFromPath(p)
	if err == nil {
		config.ConfigPath = p
		return config, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("no configuration file found at %q", p)
	}
	return Config{}, fmt.Errorf("could not read config file %q: %w", p, err)
}

func loadFromPath(p string) (Config, error) {
	file, err := os.Open(p)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		return Config{}, err
	}
	if config.Port < 0 {
		return Config{}, fmt.Errorf("port must not be negative (got %d)", config.Port)
	}
	return config, nil
}
