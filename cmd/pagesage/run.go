package main

import (
	"context"
	"fmt"
	"os"

	appconfig "github.com/entrhq/pagesage/pkg/config"
	"github.com/entrhq/pagesage/pkg/executor/cli"
	"github.com/entrhq/pagesage/pkg/executor/tui"
	"github.com/entrhq/pagesage/pkg/host"
	"github.com/entrhq/pagesage/pkg/host/browser"
	"github.com/entrhq/pagesage/pkg/host/static"
	"github.com/entrhq/pagesage/pkg/llm"
	"github.com/entrhq/pagesage/pkg/logging"
	"github.com/entrhq/pagesage/pkg/messaging"
	"github.com/entrhq/pagesage/pkg/orchestrator"
	"github.com/entrhq/pagesage/pkg/popup"
)

// run wires the three contexts together and starts the chosen executor.
func run(ctx context.Context, config *Config) error {
	level, err := logging.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	logging.SetDefaultLevel(level)

	// On error the logger falls back to stderr and has already said so.
	logger, _ := logging.NewLogger("pagesage")
	defer logger.Close()
	logger.Infof("PageSage v%s starting", version)

	if err := appconfig.Initialize(config.ConfigPath); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	if config.configCommand() {
		return runConfigCommand(os.Stdout, appconfig.Global(), config)
	}

	settings := appconfig.ResolveLLM(appconfig.LLMSettings{
		Model:   config.Model,
		BaseURL: config.BaseURL,
		APIKey:  config.APIKey,
	}, appconfig.GetLLM(), nil)
	if settings.APIKey == "" {
		logger.Warnf("no API key configured; set GEMINI_API_KEY, use -api-key, or add one to the config file")
	}

	provider, err := appconfig.BuildProvider(settings)
	if err != nil {
		return err
	}

	lang := appconfig.GetUI().GetLanguage()
	if config.set["lang"] {
		lang = config.Language
	}

	h, shutdown, err := openHost(ctx, config, logger)
	if err != nil {
		return err
	}
	defer shutdown()

	orch, err := buildOrchestrator(h, provider, settings.Model, lang, logger)
	if err != nil {
		return err
	}

	rt := messaging.New()
	rt.OnMessage(orch)
	defer rt.Wait()

	popupOpts := []popup.Option{popup.WithMessages(popup.MessagesFor(lang))}

	if config.Once != "" {
		kind, err := actionKind(config.Once)
		if err != nil {
			return err
		}
		exec := cli.NewExecutor(rt, kind,
			cli.WithController(popup.NewController(rt, popupOpts...)),
			cli.WithCopy(config.Copy),
		)
		return exec.Run(ctx)
	}

	return tui.NewExecutor(rt, popupOpts...).Run(ctx)
}

func buildOrchestrator(h host.Host, generator llm.Generator, model, lang string, logger *logging.Logger) (*orchestrator.Orchestrator, error) {
	section := appconfig.GetOrchestrator()

	guard, err := orchestrator.NewGuard(section.GetRestrictedPatterns())
	if err != nil {
		return nil, err
	}

	return orchestrator.New(h, generator,
		orchestrator.WithModel(model),
		orchestrator.WithGuard(guard),
		orchestrator.WithTimeouts(section.GetTimeouts()),
		orchestrator.WithLanguage(lang),
		orchestrator.WithLogger(logger.Named("orchestrator")),
	)
}

// openHost returns the static host or a browser host, with a function that
// releases it.
func openHost(ctx context.Context, config *Config, logger *logging.Logger) (host.Host, func(), error) {
	if config.Static {
		logger.Infof("static mode: %s", config.URL)
		return static.New(config.URL, static.WithLogger(logger.Named("static"))), func() {}, nil
	}

	opts := browserOptions(config)

	manager := browser.NewManager(logger.Named("browser"))
	if err := manager.Initialize(); err != nil {
		return nil, nil, err
	}
	h, err := manager.Open(ctx, opts)
	if err != nil {
		_ = manager.Shutdown()
		return nil, nil, err
	}

	shutdown := func() {
		if err := manager.Shutdown(); err != nil {
			logger.Warnf("browser shutdown: %v", err)
		}
	}
	return h, shutdown, nil
}

// browserOptions merges browser flags over the config file.
func browserOptions(config *Config) browser.Options {
	file := appconfig.GetBrowser().Snapshot()
	opts := browser.Options{
		Headless:    file.Headless,
		CDPEndpoint: file.CDPEndpoint,
		StartURL:    file.StartURL,
	}
	if config.set["headless"] {
		opts.Headless = config.Headless
	}
	if config.CDPEndpoint != "" {
		opts.CDPEndpoint = config.CDPEndpoint
	}
	if config.URL != "" {
		opts.StartURL = config.URL
	}
	return opts
}
