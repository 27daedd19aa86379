package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/upskill/internal/advisecheck"
	"github.com/okian/upskill/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumProfiles  = 200
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultRPS          = 50
	defaultTimeout      = 10 * time.Second
	defaultCheckTimeout = 10 * time.Minute
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("advise-check", flag.ContinueOnError)
	var (
		baseURL     = fs.String("url", "http://localhost:8000", "Base URL of the service")
		numProfiles = fs.Int("profiles", defaultNumProfiles, "Number of profiles to generate")
		inputFile   = fs.String("input", "", "JSON file of profiles to submit instead of generating")
		workers     = fs.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submitters")
		rps         = fs.Float64("rps", defaultRPS, "Request rate limit, 0 for unlimited")
		timeout     = fs.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile  = fs.String("output", "", "Output file for generated profiles (default: generated_profiles_TIMESTAMP.json)")
		logFile     = fs.String("log", "", "Log file for check output (default: advise_check_TIMESTAMP.log)")
		verbose     = fs.Bool("verbose", false, "Log every verified plan")
		help        = fs.Bool("help", false, "Show help")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *help {
		advisecheck.ShowHelp(os.Stdout)
		return 0
	}

	closer, err := advisecheck.SetupLogging(*logFile, *verbose)
	if err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultCheckTimeout)
	defer cancel()

	config := &advisecheck.Config{
		BaseURL:     *baseURL,
		NumProfiles: *numProfiles,
		Workers:     *workers,
		RPS:         *rps,
		Timeout:     *timeout,
		InputFile:   *inputFile,
		OutputFile:  *outputFile,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	if _, err := advisecheck.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "check failed", logger.Error(err))
		return 1
	}
	return 0
}
