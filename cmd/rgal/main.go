package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/rgal/internal/app"
	"github.com/kk-code-lab/rgal/internal/config"
	"github.com/kk-code-lab/rgal/internal/logging"
)

func main() {
	// UTF-8 fallback keeps icons and non-ASCII names readable on odd locales.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, config.ErrHelpRequested) {
		fmt.Print(config.Usage)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "rgal: %v\n\n%s", err, config.Usage)
		os.Exit(2)
	}

	if err := logging.Init(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputPath: cfg.LogFile,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logging.Info("starting rgal",
		logging.String("root", cfg.Root),
		logging.String("locale", cfg.Locale.String()),
	)

	app, err := apppkg.NewApplication(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}

	app.Run()

	if err := app.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: shutdown: %v\n", err)
	}
}
