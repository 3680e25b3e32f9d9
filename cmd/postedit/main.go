package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"postedit/internal/app"
	"postedit/internal/config"
)

func main() {
	configPath := flag.String("config", "postedit.toml", "path to the settings file")
	printConfig := flag.Bool("print-config", false, "print the effective settings and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "postedit: %v\n", err)
		os.Exit(2)
	}
	if *printConfig {
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "postedit: %v\n", err)
			os.Exit(1)
		}
		return
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "postedit: logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	application := app.New(cfg, log)
	if path := flag.Arg(0); path != "" {
		if err := application.Open(path); err != nil {
			log.Error("open document", zap.String("path", path), zap.Error(err))
			fmt.Fprintf(os.Stderr, "postedit: %v\n", err)
			os.Exit(1)
		}
	}
	if err := application.Run(); err != nil {
		log.Error("editor stopped", zap.Error(err))
		fmt.Fprintf(os.Stderr, "postedit failed: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(c config.Log) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	return zc.Build()
}
