// Package main is the entry point for the VeinView viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/veinview/internal/config"
	"github.com/Faultbox/veinview/internal/logger"
	"github.com/Faultbox/veinview/internal/session"
	"github.com/Faultbox/veinview/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== VeinView ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	sess, err := session.New(session.OptionsFromConfig(cfg))
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer sess.Close()

	v, err := viewer.New(cfg, sess)
	if err != nil {
		return err
	}
	defer v.Close()

	sess.LoadMesh(cfg.Assets.FaceMesh, session.FaceOptions(cfg))

	return v.Run()
}
