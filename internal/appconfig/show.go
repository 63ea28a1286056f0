package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &Config{}
	}

	base := cfg.SiteBasePath()
	if base == "" {
		base = "/"
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Text Results:    %s\n", cfg.TextResultsSource())
	fmt.Fprintf(out, "  Visual Results:  %s\n", cfg.VisualResultsSource())
	if cfg.ModelsFile != "" {
		fmt.Fprintf(out, "  Models File:     %s\n", cfg.ModelsFile)
	}
	fmt.Fprintf(out, "  Output Dir:      %s\n", cfg.OutputPath())
	fmt.Fprintf(out, "  Public Dir:      %s\n", cfg.PublicPath())
	fmt.Fprintf(out, "  Deploy Target:   %s\n", orNone(cfg.Target()))
	fmt.Fprintf(out, "  Base Path:       %s\n", base)
	fmt.Fprintf(out, "  Precompress:     %v\n", cfg.Precompress)
	fmt.Fprintf(out, "  Preview Port:    %d\n", cfg.ListenPort())
	fmt.Fprintf(out, "  Fetch Timeout:   %s\n", cfg.FetchTimeout())
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
