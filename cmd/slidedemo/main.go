package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"sweep3d/internal/config"
	"sweep3d/internal/game"
	"sweep3d/internal/logging"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	app := &cli.App{
		Name:  "slidedemo",
		Usage: "walk a sphere through a scene with collide-and-slide",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "sweep3d.toml"},
			&cli.StringFlag{Name: "scene", Aliases: []string{"s"}, Value: "assets/scenes/courtyard.yaml"},
			&cli.BoolFlag{Name: "debug"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadOrDefault(c.String("config"))
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log.Debug || c.Bool("debug"))
			if err != nil {
				return err
			}
			defer logger.Sync()

			return game.New(c.String("scene"), cfg, logger).Run()
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "slidedemo:", err)
		os.Exit(1)
	}
}
