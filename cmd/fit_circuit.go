package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rivo/tview"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/fit-circuit/fit-circuit-app/internal/audio"
	"github.com/lowaak/fit-circuit/fit-circuit-app/internal/fitness"
)

// channelWriter forwards log lines to the UI log channel. Writes never
// block: when the channel is full the line only reaches the file sink.
type channelWriter struct {
	ch chan<- string
}

func (w *channelWriter) Write(p []byte) (int, error) {
	select {
	case w.ch <- string(p):
	default:
	}
	return len(p), nil
}

func defaultConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".fit-circuit")
}

func loadConfig() error {
	pflag.String("config", "", "path to a config file (default ~/.fit-circuit/config.yaml)")
	pflag.String("log-file", filepath.Join(defaultConfigDir(), "fit-circuit.log"), "path to the log file")
	pflag.String("profile-path", "", "path to the profile store (default ~/.fit-circuit/profile.json)")
	pflag.Bool("mock-audio", false, "disable terminal bell cues")
	pflag.Parse()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	viper.SetEnvPrefix("FIT_CIRCUIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// Profile created on first start when no stored profile exists
	viper.SetDefault("profile.name", "Athlete")
	viper.SetDefault("profile.age", 30)
	viper.SetDefault("profile.weight", 70.0)
	viper.SetDefault("profile.height", 175.0)
	viper.SetDefault("profile.gender", string(fitness.GenderOther))
	viper.SetDefault("profile.level", string(fitness.LevelBeginner))

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", configFile, err)
		}
		return nil
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigDir())
	if err := viper.ReadInConfig(); err != nil {
		// The default config file is optional
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func main() {
	if err := loadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "fit-circuit: %v\n", err)
		os.Exit(1)
	}

	// The curses UI owns the terminal, so logs go to a rotating file and are
	// mirrored into the UI's log pane.
	fileSink := &lumberjack.Logger{
		Filename:   viper.GetString("log-file"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
	}
	defer fileSink.Close()

	uiLogChan := make(chan string, 256)
	logger := log.New(io.MultiWriter(fileSink, &channelWriter{ch: uiLogChan}), "", log.LstdFlags)
	logger.Println("fit-circuit starting")

	// Persistence and progress
	store := fitness.NewJSONProfileStore(viper.GetString("profile-path"), logger)
	ledger := fitness.NewLedger(store, logger)
	unregisterGoal := ledger.ListenToGoal(func(p fitness.UserProfile) {
		logger.Printf("Congratulations %s, you reached your weight goal at %.1f kg!", p.Name, p.Weight)
	})
	defer unregisterGoal()
	ledger.Load()
	if !ledger.HasProfile() {
		ledger.CreateProfile(
			viper.GetString("profile.name"),
			viper.GetInt("profile.age"),
			viper.GetFloat64("profile.weight"),
			viper.GetFloat64("profile.height"),
			fitness.Gender(viper.GetString("profile.gender")),
			fitness.Level(viper.GetString("profile.level")),
		)
	}

	// Model and session machinery
	model := fitness.NewUIModel(ledger, logger, uiLogChan)

	var cues audio.CuePlayer
	if viper.GetBool("mock-audio") {
		cues = audio.NewMockCuePlayer()
	} else {
		cues = audio.NewBellPlayer(os.Stdout, logger)
	}
	session := fitness.NewSessionController(model, cues, logger)

	clock := fitness.SystemClock{}
	controller := fitness.NewUIController(model, ledger, session, clock, logger)

	// View
	app := tview.NewApplication()
	cursesView := fitness.NewCursesUIView(logger, app, model, clock)
	baseView := fitness.NewBaseUIView(fitness.NewBaseUIViewArg{
		UIViewImpl:   cursesView,
		UIModel:      model,
		UIController: controller,
		Logger:       logger,
	})

	runErr := baseView.Run()

	// Ordered shutdown: views first, then controllers, then the model
	baseView.Shutdown()
	controller.Shutdown()
	model.Shutdown()

	if runErr != nil {
		logger.Printf("fit-circuit exited with error: %v", runErr)
		fmt.Fprintf(os.Stderr, "fit-circuit: %v\n", runErr)
		os.Exit(1)
	}
	logger.Println("fit-circuit exited")
}
