package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Mastyx/audio-player/internal/capture"
	"github.com/Mastyx/audio-player/internal/config"
	"github.com/Mastyx/audio-player/internal/library"
	"github.com/Mastyx/audio-player/internal/player"
	"github.com/Mastyx/audio-player/internal/service"
	"github.com/Mastyx/audio-player/internal/ui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:          "audioplayer [dir]",
	Short:        config.AppDescription,
	Long:         config.AppName + " - " + config.AppTagline + ".\n\nBrowses dir (default: the current directory) and plays mp3, flac, wav, ogg and opus files.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.Version = config.AppVersion
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s v{{.Version}}\n%s\n", config.AppName, config.AppDescription))

	if configPath, err := config.GetConfigPath(); err == nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			rootCmd.Long += "\n\nConfig file: " + configPath
		} else {
			rootCmd.Long += "\n\nConfig file will be created on first use."
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	if !debug {
		// Avoid TUI corruption by only logging errors to /dev/null
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		logFile, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0644)
		if err == nil {
			log.Logger = log.Output(logFile)
		}
		return
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logPath, err := config.GetLogPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not get cache dir: %v\n", err)
		logPath = filepath.Join(os.TempDir(), config.LogFileName)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log dir: %v\n", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log file: %v\n", err)
		logFile = os.Stderr
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: logFile, TimeFormat: "15:04:05"})
	fmt.Printf("Debug log: %s\n", logPath)
	log.Info().Msgf("Starting %s v%s (debug mode)", config.AppName, config.AppVersion)

	if configPath, err := config.GetConfigPath(); err == nil {
		log.Debug().Msgf("Config: %s", configPath)
	}
}

func run(cmd *cobra.Command, args []string) error {
	setupLogging(debugFlag)

	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load config, using defaults")
	}
	log.Debug().Msgf("Loaded config: volume %.2f, continuous %v", cfg.Volume, cfg.ContinuousPlay)

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	browser, err := library.NewBrowser(dir)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", dir, err)
	}

	var engine *player.Player
	svc, err := service.NewPlayerService(func(tap *capture.Tap) (service.Engine, error) {
		p, err := player.New(tap)
		if err != nil {
			return nil, err
		}
		engine = p
		return p, nil
	}, browser, service.Options{Volume: cfg.Volume, Continuous: cfg.ContinuousPlay})
	if err != nil {
		log.Error().Err(err).Msg("Audio output unavailable")
		return err
	}
	defer engine.Close()
	defer svc.Close()

	app := ui.NewUI(svc, cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		if _, ok := <-sigChan; ok {
			log.Info().Msg("Received shutdown signal, cleaning up...")
			app.Shutdown()
		}
	}()

	log.Info().Msg("Starting UI...")
	if err := app.Run(); err != nil {
		log.Error().Err(err).Msg("Error running UI")
		return err
	}

	log.Info().Msgf("%s stopped", config.AppName)
	return nil
}
