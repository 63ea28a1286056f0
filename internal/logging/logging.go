// Package logging routes the standard logger to the application log file and,
// in debug mode, to stderr. Stdout is left for command output.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
	stderr  io.Writer = os.Stderr
)

// Init points the standard logger at logPath (created with parent
// directories) and, when verbose is set, at stderr as well. With neither, log
// output is discarded.
func Init(logPath string, verbose bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	if verbose {
		writers = append(writers, stderr)
	}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	if len(writers) == 0 {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file, if any, and restores stderr logging.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// LogEvent writes a formatted line to the log.
func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogSource records the outcome of reading a result source.
func LogSource(kind, source, outcome string, detail any) {
	log.Println(buildSourceMessage(kind, source, outcome, detail))
}

func buildSourceMessage(kind, source, outcome string, detail any) string {
	k := strings.ToUpper(strings.TrimSpace(kind))
	if k == "" {
		k = "SOURCE"
	}
	src := strings.TrimSpace(source)
	if src == "" {
		src = "unknown"
	}
	status := strings.TrimSpace(outcome)
	if status == "" {
		status = "unknown"
	}
	parts := []string{
		fmt.Sprintf("[%s]", k),
		fmt.Sprintf("source=%s", src),
		fmt.Sprintf("outcome=%s", status),
	}
	if detail != nil {
		parts = append(parts, fmt.Sprintf("detail=%s", formatDetail(detail)))
	}
	return strings.Join(parts, " ")
}

func formatDetail(detail any) string {
	switch v := detail.(type) {
	case nil:
		return "null"
	case error:
		return v.Error()
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
