package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"hunterprice/internal/catalog"
	"hunterprice/internal/config"
	"hunterprice/internal/domain"
	"hunterprice/internal/log"
	"hunterprice/internal/session"
)

// env is what every command needs: configuration, the saved session and an
// API client acting as the session user
type env struct {
	configSvc config.ConfigService
	cfg       *config.Config
	sessions  *session.Store
	user      *domain.CurrentUser
	client    *catalog.Client
	logFile   io.Closer
}

func configService(c *cli.Command) config.ConfigService {
	if path := c.String("config"); path != "" {
		return config.NewConfigServiceForPath(path)
	}
	return config.NewConfigService()
}

// setup loads configuration and session and starts file logging
func setup(c *cli.Command) (*env, error) {
	svc := configService(c)
	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if c.IsSet("lat") {
		cfg.Location.Lat = c.Float("lat")
	}
	if c.IsSet("lng") {
		cfg.Location.Lng = c.Float("lng")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if c.Bool("debug") {
		level = "debug"
	}
	logFile, err := log.Setup(cfg.LogFilePath(), level)
	if err != nil {
		return nil, err
	}

	e := &env{
		configSvc: svc,
		cfg:       cfg,
		sessions:  session.NewStore(filepath.Join(filepath.Dir(svc.Path()), "session.toml")),
		logFile:   logFile,
	}

	logger := log.For("main")
	if e.user, err = e.sessions.Load(); err != nil {
		// A broken session file means browsing anonymously
		logger.Warn().Err(err).Str("path", e.sessions.Path()).Msg("ignoring session")
	}

	e.client = catalog.New(catalog.Options{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.HTTP.Timeout.Duration,
		MaxRetries: cfg.HTTP.MaxRetries,
		RetryDelay: cfg.HTTP.RetryDelay.Duration,
		UserAgent:  cfg.HTTP.UserAgent,
	}).WithUser(e.user)
	if cfg.Location.Set() {
		e.client = e.client.WithLocation(domain.Coordinates{Lat: cfg.Location.Lat, Lng: cfg.Location.Lng})
	}

	logger.Debug().Str("api", cfg.APIBaseURL).Bool("logged_in", e.user != nil).Msg("started")
	return e, nil
}

func (e *env) Close() {
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}
