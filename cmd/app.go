package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"mydoc/internal/config"
	"mydoc/internal/handler"
	"mydoc/internal/logger"
	"mydoc/internal/repository"
	"mydoc/internal/service"
	"mydoc/internal/service/s3"
	"mydoc/internal/session"
)

type rootOptions struct {
	configPath string
	apiURL     string
	verbose    bool
}

// app wires configuration, logging and the workflows for one session.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	state  *session.State
	svc    handler.Services
	out    *handler.Renderer
}

func newApp(opts *rootOptions) (*app, error) {
	cfg, err := config.NewConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	locale, err := language.Parse(cfg.Display.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", cfg.Display.Locale, err)
	}

	store := repository.NewDocumentRepository(cfg.API.BaseURL, cfg.API.Timeout, log)
	state := session.New()
	listing := service.NewListingService(store, state, locale, log)
	files := service.NewFileService(store, state, listing,
		s3.NewPresignedUploader(nil, cfg.Storage.UploadTimeout, log),
		s3.NewClient(cfg.Storage, nil, log),
		cfg.Upload.MaxFileSizeBytes, log)

	log.Debug("session configured",
		zap.String(logger.FieldURL, cfg.API.BaseURL),
		zap.Bool("s3Credentials", cfg.Storage.HasCredentials()))

	return &app{
		cfg:    cfg,
		logger: log,
		state:  state,
		svc: handler.Services{
			Listing: listing,
			Trash:   service.NewTrashService(store, listing, log),
			Folders: service.NewFolderService(store, state, listing, log),
			Files:   files,
		},
		out: handler.NewRenderer(os.Stdout),
	}, nil
}

func (a *app) shell() *handler.Shell {
	interactive := handler.IsTerminal(os.Stdin) && handler.IsTerminal(os.Stdout)
	return handler.NewShell(a.svc, a.state, a.out, interactive, a.logger)
}

func (a *app) close() {
	_ = a.logger.Sync()
}
