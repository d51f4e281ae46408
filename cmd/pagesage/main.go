// Package main provides the PageSage terminal assistant. It summarizes, or
// extracts the essence of, the page in the active browser tab with a Gemini
// model and shows the result in a small popup.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	appconfig "github.com/entrhq/pagesage/pkg/config"
	"github.com/entrhq/pagesage/pkg/types"
)

const version = "0.1.0"

// Config holds the command line configuration. Empty values fall through to
// the environment and the config file.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	ConfigPath  string
	Static      bool
	URL         string
	CDPEndpoint string
	Headless    bool
	Once        string
	Copy        bool
	Language    string
	LogLevel    string
	ShowVersion bool
	ShowConfig  bool
	SaveConfig  bool
	ResetConfig bool

	// set records the flags given explicitly.
	set map[string]bool
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("PageSage v%s\n", version)
		return
	}

	if err := config.validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if runErr := run(ctx, config); runErr != nil {
		cancel()
		log.Fatalf("Application error: %v", runErr)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.APIKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY env var)")
	flag.StringVar(&config.BaseURL, "base-url", "", "OpenAI-compatible API base URL (or set PAGESAGE_BASE_URL env var)")
	flag.StringVar(&config.Model, "model", "", "Model to use (default gemini-2.5-flash)")
	flag.StringVar(&config.ConfigPath, "config", "", "Path to config file (default ~/.pagesage/config.yaml)")
	flag.BoolVar(&config.Static, "static", false, "Fetch -url over HTTP instead of driving a browser")
	flag.StringVar(&config.URL, "url", "", "Page to open (required with -static)")
	flag.StringVar(&config.CDPEndpoint, "cdp", "", "Attach to a running Chromium at this DevTools endpoint")
	flag.BoolVar(&config.Headless, "headless", false, "Launch the browser without a window")
	flag.StringVar(&config.Once, "once", "", "Run one action (summarize or essence), print the result and exit")
	flag.BoolVar(&config.Copy, "copy", false, "With -once, also copy the result to the clipboard")
	flag.StringVar(&config.Language, "lang", "", "Message language (en or ja)")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")
	flag.BoolVar(&config.ShowConfig, "show-config", false, "Print the effective configuration and exit")
	flag.BoolVar(&config.SaveConfig, "save-config", false, "Write the given flags into the config file and exit")
	flag.BoolVar(&config.ResetConfig, "reset-config", false, "Restore the config file to defaults and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "PageSage - summarize the page in your browser\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pagesage [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  GEMINI_API_KEY      Gemini API key\n")
		fmt.Fprintf(os.Stderr, "  OPENAI_API_KEY      Used when GEMINI_API_KEY is not set\n")
		fmt.Fprintf(os.Stderr, "  PAGESAGE_BASE_URL   API base URL (for compatible APIs)\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pagesage -url https://go.dev/blog\n")
		fmt.Fprintf(os.Stderr, "  pagesage -cdp http://localhost:9222\n")
		fmt.Fprintf(os.Stderr, "  pagesage -static -url https://go.dev/doc/effective_go -once summarize\n")
		fmt.Fprintf(os.Stderr, "  pagesage -model gemini-2.5-pro -lang ja -save-config\n")
	}

	flag.Parse()

	config.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { config.set[f.Name] = true })
	return config
}

// validate checks that the configuration is valid
func (c *Config) validate() error {
	if c.Static && c.URL == "" {
		return fmt.Errorf("static mode requires a page (use -url flag)")
	}
	if c.Static && c.CDPEndpoint != "" {
		return fmt.Errorf("-static and -cdp cannot be combined")
	}
	if c.SaveConfig && c.ResetConfig {
		return fmt.Errorf("-save-config and -reset-config cannot be combined")
	}
	if c.Copy && c.Once == "" {
		return fmt.Errorf("-copy requires -once")
	}
	if c.Language != "" && !supportedLanguage(c.Language) {
		return fmt.Errorf("unsupported language %q (want en or ja)", c.Language)
	}
	if c.Once != "" {
		if _, err := actionKind(c.Once); err != nil {
			return err
		}
	}
	return nil
}

// actionKind maps an action name to its request kind.
func actionKind(name string) (types.RequestKind, error) {
	switch name {
	case "summarize", "summary":
		return types.RequestSummary, nil
	case "essence":
		return types.RequestEssence, nil
	}
	return "", fmt.Errorf("unknown action %q (want summarize or essence)", name)
}

func supportedLanguage(lang string) bool {
	for _, l := range appconfig.SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
