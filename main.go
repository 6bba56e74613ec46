package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/circuitflow/internal/audio"
	"github.com/iburimskiy/circuitflow/internal/config"
	"github.com/iburimskiy/circuitflow/internal/game"
	"github.com/iburimskiy/circuitflow/internal/layout"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Default()
	flag.IntVar(&cfg.PoolSize, "particles", cfg.PoolSize, "number of charge carriers in the loop")
	flag.Float64Var(&cfg.FlowSpeed, "speed", cfg.FlowSpeed, "carrier speed in layout units per second (negative runs backwards)")
	flag.StringVar(&cfg.Reseed, "restart", cfg.Reseed, "what carriers do when the switch closes again: random or resume")
	flag.StringVar(&cfg.LayoutPath, "layout", cfg.LayoutPath, "JSON wiring layout (default: built-in square bench)")
	flag.StringVar(&cfg.ClickSample, "click", cfg.ClickSample, "wav/mp3/flac file to play when the switch is thrown")
	flag.Float64Var(&cfg.Volume, "volume", cfg.Volume, "sound volume, 0 to 1")
	flag.BoolVar(&cfg.Mute, "mute", cfg.Mute, "do not open the audio device")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(flag.CommandLine.Output(), err)
		flag.Usage()
		os.Exit(2)
	}
	logger, err := cfg.Logger()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger.Desugar())
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatalf("%s", err)
	}
}

func run(cfg config.Config, logger *zap.SugaredLogger) error {

	y := layout.Default()
	if cfg.LayoutPath != "" {
		var err error
		if y, err = layout.Load(cfg.LayoutPath); err != nil {
			return err
		}
	}

	player, err := audio.NewPlayer(audio.Options{
		ClickSample: cfg.ClickSample,
		Volume:      cfg.Volume,
		RingSize:    config.LevelRingSize,
		Mute:        cfg.Mute,
	}, logger)
	if err != nil {
		return err
	}
	defer player.Close()

	g, err := game.New(cfg, y, player, logger)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Circuit - click the switch lever or press Space")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
