package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/paper-downloader/internal/catalog"
	"github.com/ytget/paper-downloader/internal/config"
	"github.com/ytget/paper-downloader/internal/download"
	"github.com/ytget/paper-downloader/internal/logging"
	"github.com/ytget/paper-downloader/internal/platform"
	"github.com/ytget/paper-downloader/internal/selection"
	"github.com/ytget/paper-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.paper-downloader"
	AppName = "Question Papers"

	WindowWidth  = 1024
	WindowHeight = 720

	CatalogLoadTimeout = 15 * time.Second
)

func main() {
	// Debug output is switched on through PAPERS_DEBUG.
	logger, err := logging.New(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting", zap.String("app", AppName), zap.String("version", version))

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		logger.Warn("failed to ensure downloads dir", zap.String("dir", downloadsDir), zap.Error(err))
	}

	// The catalog is read once, before anything is drawn
	loader := catalog.NewLoader(settings.GetCatalogSource(), catalog.WithLogger(logger))
	ctx, cancel := context.WithTimeout(context.Background(), CatalogLoadTimeout)
	papers, origin := loader.Load(ctx)
	cancel()

	machine := selection.NewMachine(papers, logger)
	if _, err := machine.Dispatch(selection.ChooseMedium{Medium: settings.GetDefaultMedium()}); err != nil {
		logger.Warn("apply default medium", zap.Error(err))
	}

	fetcher := download.NewFetcher(loader, logger)
	downloadSvc := download.NewService(fetcher, downloadsDir, settings.GetMaxParallelDownloads(), logger)
	defer downloadSvc.Shutdown()

	ui.NewRootUI(myWindow, machine, loader, downloadSvc, settings, origin, logger)

	myWindow.ShowAndRun()
}
