package advisecheck

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/upskill/pkg/logger"
)

// SetupLogging sends log records to stdout and to logFile. An empty logFile
// gets a timestamped name. The returned closer releases the file.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	if logFile == "" {
		logFile = "advise_check_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(filepath.Clean(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	level := "info"
	if verbose {
		level = "debug"
	}
	if err := logger.InitWithOptions(logger.Options{
		Level:  level,
		Writer: io.MultiWriter(os.Stdout, file),
	}); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return file, nil
}

// ShowHelp prints usage information for the advise check tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Upskill Advise Check
====================

Submits learner profiles to a running advisor and verifies every plan:
recommendation cap, contiguous timeline, score ranges, notes, and identical
answers for repeated submissions.

Usage:
  go run ./cmd/advise-check [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -profiles int
        Number of profiles to generate (default 200)
  -input string
        JSON file of profiles to submit instead of generating
  -workers int
        Number of concurrent submitters (default CPU cores * 2)
  -rps float
        Request rate limit, 0 for unlimited (default 50)
  -timeout duration
        HTTP request timeout (default 10s)
  -output string
        Output file for generated profiles (default: generated_profiles_TIMESTAMP.json)
  -log string
        Log file for check output (default: advise_check_TIMESTAMP.log)
  -verbose
        Log every verified plan
  -help
        Show this help message

Examples:
  # Check a local service with default settings
  go run ./cmd/advise-check

  # Replay a saved profile set against another host
  go run ./cmd/advise-check -url http://staging:8000 -input generated_profiles.json
`)
}
