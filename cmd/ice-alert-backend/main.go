package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Icealert/ice-alert-backend/internal/pkg/application/alerts"
	"github.com/Icealert/ice-alert-backend/internal/pkg/application/devices"
	"github.com/Icealert/ice-alert-backend/internal/pkg/application/notifications"
	"github.com/Icealert/ice-alert-backend/internal/pkg/application/watchdog"
	"github.com/Icealert/ice-alert-backend/internal/pkg/infrastructure/router"
	"github.com/Icealert/ice-alert-backend/internal/pkg/infrastructure/storage"
	"github.com/Icealert/ice-alert-backend/internal/pkg/presentation/api"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
)

const serviceName string = "ice-alert-backend"

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort

	policiesFile
	configurationFile
	devicesFile

	dbHost
	dbUser
	dbPassword
	dbPort
	dbName
	dbSSLMode

	watchdogInterval
)

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",

		policiesFile:      "/opt/icealert/config/authz.rego",
		configurationFile: "/opt/icealert/config/config.yaml",
		devicesFile:       "/opt/icealert/config/devices.csv",

		dbHost:     "",
		dbUser:     "",
		dbPassword: "",
		dbPort:     "5432",
		dbName:     "icealert",
		dbSSLMode:  "disable",

		watchdogInterval: "1m",
	}
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, "json")
	defer cleanup()

	s, err := storage.New(ctx, storage.NewConfig(
		flags[dbHost], flags[dbUser], flags[dbPassword],
		flags[dbPort], flags[dbName], flags[dbSSLMode],
	))
	exitIf(err, logger, "could not connect to database")
	defer s.Close()

	err = s.CreateTables(ctx)
	exitIf(err, logger, "could not create tables")

	messenger, err := messaging.Initialize(ctx, messaging.LoadConfiguration(ctx, serviceName, logger))
	exitIf(err, logger, "failed to init messenger")
	defer messenger.Close()

	notificationCfg, err := loadNotificationConfig(flags[configurationFile], logger)
	exitIf(err, logger, "could not load notification configuration")

	deviceSvc := devices.New(s, messenger)
	alertSvc := alerts.New(s, messenger, notifications.New(notificationCfg))
	wdog := watchdog.New(s, messenger, parseInterval(flags[watchdogInterval], logger))

	if seed, err := os.Open(flags[devicesFile]); err == nil {
		err = devices.SeedDevices(ctx, s, seed)
		exitIf(err, logger, "could not seed devices")
	} else {
		logger.Info("no devices file found, skipping seed", "path", flags[devicesFile])
	}

	messenger.Start()

	err = alertSvc.RegisterTopicMessageHandlers(ctx)
	exitIf(err, logger, "failed to register topic message handlers")

	wdog.Start(ctx)
	defer wdog.Stop(ctx)

	var policies io.Reader

	if f, err := os.Open(flags[policiesFile]); err == nil {
		defer f.Close()
		policies = f
	} else {
		logger.Warn("no policies file found, api authz is disabled", "path", flags[policiesFile])
	}

	r, err := api.RegisterHandlers(ctx, router.New(serviceName), policies, deviceSvc, alertSvc)
	exitIf(err, logger, "failed to register handlers")

	apiAddr := fmt.Sprintf("%s:%s", flags[listenAddress], flags[servicePort])
	webServer := &http.Server{Addr: apiAddr, Handler: r}

	errChan := make(chan error, 1)

	go func() {
		logger.Info("starting to listen for incoming connections", "address", apiAddr)

		if err := webServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		exitIf(err, logger, "web server failed")
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = webServer.Shutdown(shutdownCtx)
	if err != nil {
		logger.Error("graceful shutdown failed", "err", err.Error())
	}
}

func loadNotificationConfig(path string, logger *slog.Logger) (*notifications.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.Info("no configuration file found, notifications are disabled", "path", path)
		return nil, nil
	}
	defer f.Close()

	return notifications.LoadConfiguration(f)
}

func parseInterval(value string, logger *slog.Logger) time.Duration {
	interval, err := time.ParseDuration(value)
	if err != nil || interval <= 0 {
		logger.Warn("invalid watchdog interval, falling back to 1m", "value", value)
		return time.Minute
	}
	return interval
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault

	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])

	flags[policiesFile] = envOrDef(ctx, "POLICIES_FILE", flags[policiesFile])
	flags[configurationFile] = envOrDef(ctx, "CONFIGURATION_FILE", flags[configurationFile])
	flags[devicesFile] = envOrDef(ctx, "DEVICES_FILE", flags[devicesFile])

	flags[dbHost] = envOrDef(ctx, "POSTGRES_HOST", flags[dbHost])
	flags[dbPort] = envOrDef(ctx, "POSTGRES_PORT", flags[dbPort])
	flags[dbName] = envOrDef(ctx, "POSTGRES_DBNAME", flags[dbName])
	flags[dbUser] = envOrDef(ctx, "POSTGRES_USER", flags[dbUser])
	flags[dbPassword] = envOrDef(ctx, "POSTGRES_PASSWORD", flags[dbPassword])
	flags[dbSSLMode] = envOrDef(ctx, "POSTGRES_SSLMODE", flags[dbSSLMode])

	flags[watchdogInterval] = envOrDef(ctx, "WATCHDOG_INTERVAL", flags[watchdogInterval])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("policies", "an authorization policy file", apply(policiesFile))
	flag.Func("config", "a configuration file with notification subscribers", apply(configurationFile))
	flag.Func("devices", "a csv file with devices to seed", apply(devicesFile))
	flag.Parse()

	return ctx, flags
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		os.Exit(1)
	}
}
