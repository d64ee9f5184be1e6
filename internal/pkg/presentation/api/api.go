package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/Icealert/ice-alert-backend/internal/pkg/application/alerts"
	"github.com/Icealert/ice-alert-backend/internal/pkg/application/devices"
	"github.com/Icealert/ice-alert-backend/internal/pkg/presentation/api/auth"
	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("ice-alert-backend/api")

func RegisterHandlers(ctx context.Context, router *chi.Mux, policies io.Reader, svc devices.DeviceManagement, alertSvc alerts.AlertService) (*chi.Mux, error) {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	log := logging.GetFromContext(ctx)

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return nil, fmt.Errorf("failed to create api authenticator: %w", err)
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/devices", func(r chi.Router) {
			r.Get("/", queryDevicesHandler(log, svc))
			r.Get("/{deviceID}", getDeviceDetailsHandler(log, svc))
			r.Get("/{deviceID}/readings", getReadingsHandler(log, svc))
			r.Get("/{deviceID}/readings/stats", getReadingStatsHandler(log, svc))
			r.Get("/{deviceID}/alerts", getAlertSettingsHandler(log, svc))
			r.Get("/{deviceID}/alert-history", getAlertHistoryHandler(log, alertSvc))

			r.Group(func(r chi.Router) {
				r.Use(authenticator.RequireAccess(auth.ScopeWrite))

				r.Post("/settings", createDeviceHandler(log, svc))
				r.Put("/{deviceID}/alerts", updateAlertSettingsHandler(log, svc))
			})
		})

		r.Post("/readings", addReadingHandler(log, svc))
	})

	return router, nil
}

func queryDevicesHandler(log *slog.Logger, svc devices.DeviceManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-devices")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		result, err := svc.Query(ctx, r.URL.Query())
		if err != nil {
			requestLogger.Error("unable to fetch devices", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch devices")
			return
		}

		writeJSON(w, http.StatusOK, result.Data)
	}
}

func getDeviceDetailsHandler(log *slog.Logger, svc devices.DeviceManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-device")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		if deviceID != "" {
			requestLogger = requestLogger.With(slog.String("device_id", deviceID))
		}

		device, err := svc.GetByDeviceID(ctx, deviceID)
		if errors.Is(err, devices.ErrDeviceNotFound) {
			requestLogger.Debug("device not found")
			writeError(w, http.StatusNotFound, "device not found")
			return
		}
		if err != nil {
			requestLogger.Error("could not fetch device", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch device")
			return
		}

		writeJSON(w, http.StatusOK, device)
	}
}

func createDeviceHandler(log *slog.Logger, svc devices.DeviceManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "create-device")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "unable to read body")
			return
		}

		var settings types.DeviceSettings
		err = json.Unmarshal(body, &settings)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "malformed settings payload")
			return
		}

		created, err := svc.Create(ctx, settings)
		if errors.Is(err, devices.ErrDeviceAlreadyExist) {
			writeError(w, http.StatusConflict, "device already exists")
			return
		}
		if errors.Is(err, devices.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			requestLogger.Error("unable to create device", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not create device")
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func addReadingHandler(log *slog.Logger, svc devices.DeviceManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "add-reading")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "unable to read body")
			return
		}

		var incoming types.IncomingReading
		err = json.Unmarshal(body, &incoming)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "malformed reading payload")
			return
		}

		stored, err := svc.AddReading(ctx, incoming)
		if errors.Is(err, devices.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, devices.ErrDeviceNotFound) {
			requestLogger.Debug("reading for unknown device", "device_id", incoming.DeviceID)
			writeError(w, http.StatusNotFound, "device not found")
			return
		}
		if err != nil {
			requestLogger.Error("unable to store reading", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not store reading")
			return
		}

		writeJSON(w, http.StatusCreated, stored)
	}
}

func getReadingsHandler(log *slog.Logger, svc devices.DeviceManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-readings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		hours := intQueryParam(r, "hours", 24)

		until := time.Now().UTC()
		since := until.Add(-time.Duration(hours) * time.Hour)

		window, err := svc.QueryReadings(ctx, deviceID, since, until)
		if err != nil {
			requestLogger.Error("unable to fetch readings", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch readings")
			return
		}

		writeJSON(w, http.StatusOK, window)
	}
}

func getReadingStatsHandler(log *slog.Logger, svc devices.DeviceManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-reading-stats")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		metric := r.URL.Query().Get("metric")
		hours := intQueryParam(r, "hours", 24)

		until := time.Now().UTC()
		since := until.Add(-time.Duration(hours) * time.Hour)

		stats, err := svc.Stats(ctx, deviceID, metric, since, until)
		if errors.Is(err, devices.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			requestLogger.Error("unable to compute statistics", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not compute statistics")
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}

func getAlertSettingsHandler(log *slog.Logger, svc devices.DeviceManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-alert-settings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")

		settings, err := svc.GetAlertSettings(ctx, deviceID)
		if errors.Is(err, devices.ErrDeviceNotFound) {
			writeError(w, http.StatusNotFound, "device not found")
			return
		}
		if err != nil {
			requestLogger.Error("unable to fetch alert settings", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch alert settings")
			return
		}

		writeJSON(w, http.StatusOK, settings)
	}
}

func updateAlertSettingsHandler(log *slog.Logger, svc devices.DeviceManagement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "update-alert-settings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		if deviceID != "" {
			requestLogger = requestLogger.With(slog.String("device_id", deviceID))
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "unable to read body")
			return
		}

		var patch types.AlertSettingsPatch
		err = json.Unmarshal(body, &patch)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "malformed settings payload")
			return
		}

		updated, err := svc.UpdateAlertSettings(ctx, deviceID, patch)
		if errors.Is(err, devices.ErrDeviceNotFound) {
			writeError(w, http.StatusNotFound, "device not found")
			return
		}
		if errors.Is(err, devices.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			requestLogger.Error("unable to update alert settings", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not update alert settings")
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

func getAlertHistoryHandler(log *slog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-alert-history")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		days := intQueryParam(r, "days", 7)
		offset := intQueryParam(r, "offset", 0)
		limit := intQueryParam(r, "limit", 100)

		since := time.Now().UTC().AddDate(0, 0, -days)

		result, err := svc.History(ctx, deviceID, since, offset, limit)
		if err != nil {
			requestLogger.Error("unable to fetch alert history", "device_id", deviceID, "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch alert history")
			return
		}

		writeJSON(w, http.StatusOK, result.Data)
	}
}

func intQueryParam(r *http.Request, name string, defaultValue int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return defaultValue
	}

	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
