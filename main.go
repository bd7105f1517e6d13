package main

import (
	"fmt"
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/kaulkaran/huti/audio"
	"github.com/kaulkaran/huti/catalog"
	appConfig "github.com/kaulkaran/huti/config"
	"github.com/kaulkaran/huti/controller"
	"github.com/kaulkaran/huti/database"
	"github.com/kaulkaran/huti/handlers"
	"github.com/kaulkaran/huti/quiz"
	"github.com/kaulkaran/huti/sentry"
	"github.com/kaulkaran/huti/ui"
	"github.com/kaulkaran/huti/visits"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("Error loading .env file: %v", err)
	}
	appConfig.NewConfig()

	log.SetFormatter(&nested.Formatter{
		HideKeys:    true,
		FieldsOrder: []string{"module"},
	})
	log.SetLevel(appConfig.Config.Logging.Level)

	session := uuid.NewString()
	sentry.Init(session)
	defer sentry.Flush()

	logger := log.WithFields(log.Fields{
		"module":  "main",
		"session": session,
	})

	serve := len(os.Args) > 1 && os.Args[1] == "serve"
	var err error
	if serve {
		err = runServer(logger)
	} else {
		err = runPlaylist(logger)
	}
	if err != nil {
		sentry.ReportError(err)
		sentry.Flush()
		logger.Fatal(err)
	}
}

func setup() (*catalog.Catalog, quiz.Config, database.Store, error) {
	songs, err := catalog.Load(appConfig.Config.Storage.CatalogFile)
	if err != nil {
		return nil, quiz.Config{}, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	quizConfig := quiz.DefaultConfig()
	if err := quizConfig.Validate(); err != nil {
		return nil, quiz.Config{}, nil, fmt.Errorf("invalid quiz: %w", err)
	}

	store, err := database.Open(appConfig.Config.Storage.URL)
	if err != nil {
		return nil, quiz.Config{}, nil, fmt.Errorf("failed to open store: %w", err)
	}
	return songs, quizConfig, store, nil
}

func runServer(logger *log.Entry) error {
	songs, quizConfig, store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	router := handlers.NewRouter(handlers.NewManager(songs, quizConfig, store))
	port := appConfig.Config.Server.Port
	logger.Infof("Starting server on :%s", port)
	return router.Run(":" + port)
}

func runPlaylist(logger *log.Entry) error {
	// the terminal belongs to the UI, so logs go to a file
	logFile, err := os.OpenFile(appConfig.Config.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	songs, quizConfig, store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := visits.NewCounter(store).Load()
	if err != nil {
		sentry.ReportError(err)
	}
	logger.Infof("visit %d, %d songs", count, songs.Len())

	factory := audio.NewBeepFactory(audio.BeepOptions{
		Loader:  audio.NewLoader(nil, appConfig.Config.Audio.LoadTimeout),
		Preload: appConfig.Config.Audio.PreloadMetadata(),
	})

	app := ui.NewApp(ui.Options{
		Catalog:     songs,
		Quiz:        quizConfig,
		Deck:        controller.NewController(factory),
		Visits:      count,
		SplashDelay: appConfig.Config.View.SplashDelay,
	})
	defer app.Shutdown()

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run playlist: %w", err)
	}
	return nil
}
