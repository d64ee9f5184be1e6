package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Icealert/ice-alert-backend/internal/pkg/infrastructure/storage"
	"github.com/Icealert/ice-alert-backend/pkg/types"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

var ErrAlertNotFound = fmt.Errorf("alert not found")

//go:generate moq -rm -out alertservice_mock.go . AlertService
type AlertService interface {
	Evaluate(ctx context.Context, reading types.Reading) error
	Add(ctx context.Context, event types.AlertEvent) error
	History(ctx context.Context, deviceID string, since time.Time, offset, limit int) (types.Collection[types.AlertEvent], error)
	RegisterTopicMessageHandlers(ctx context.Context) error
}

//go:generate moq -rm -out alertstorage_mock.go . AlertStorage
type AlertStorage interface {
	GetSettings(ctx context.Context, deviceID string) (types.DeviceSettings, error)
	AddAlertEvent(ctx context.Context, event types.AlertEvent) error
	QueryAlertEvents(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.AlertEvent], error)
}

// Notifier pushes a persisted alert event to the configured subscribers.
// Delivery is best effort and must never influence persistence.
//
//go:generate moq -rm -out notifier_mock.go . Notifier
type Notifier interface {
	Send(ctx context.Context, event types.AlertEvent, recipients []string) error
}

type alertSvc struct {
	storage   AlertStorage
	messenger messaging.MsgContext
	notifier  Notifier
}

func New(s AlertStorage, m messaging.MsgContext, n Notifier) AlertService {
	return &alertSvc{
		storage:   s,
		messenger: m,
		notifier:  n,
	}
}

func (svc *alertSvc) RegisterTopicMessageHandlers(ctx context.Context) error {
	err := svc.messenger.RegisterTopicMessageHandler("reading.stored", NewReadingStoredHandler(svc))
	if err != nil {
		return err
	}

	return svc.messenger.RegisterTopicMessageHandler("watchdog.noFlowObserved", NewNoFlowObservedHandler(svc))
}

// Evaluate checks one reading against the owning device's configured ranges
// and records an alert event per breached metric. A failed settings lookup is
// logged and swallowed so that a torn down device never blocks the consumer.
func (svc *alertSvc) Evaluate(ctx context.Context, reading types.Reading) error {
	log := logging.GetFromContext(ctx)

	settings, err := svc.storage.GetSettings(ctx, reading.DeviceID)
	if err != nil {
		log.Warn("could not fetch settings for reading", "device_id", reading.DeviceID, "err", err.Error())
		return nil
	}

	var errs []error

	for _, event := range evaluate(reading, settings) {
		err := svc.Add(ctx, event)
		if err != nil {
			log.Error("could not record alert event", "device_id", event.DeviceID, "metric", event.Metric, "err", err.Error())
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// evaluate is the pure rule core. The global kill switch gates everything,
// each metric must be individually enabled, and absent metrics are skipped.
func evaluate(reading types.Reading, settings types.DeviceSettings) []types.AlertEvent {
	if !settings.EmailAlertsEnabled {
		return nil
	}

	enabled := map[string]bool{
		types.MetricTemperature: settings.TemperatureAlertEnabled,
		types.MetricHumidity:    settings.HumidityAlertEnabled,
		types.MetricFlowRate:    settings.FlowRateAlertEnabled,
	}

	ranges := settings.NormalRanges()
	events := make([]types.AlertEvent, 0)

	for _, metric := range []string{types.MetricTemperature, types.MetricHumidity, types.MetricFlowRate} {
		if !enabled[metric] {
			continue
		}

		value := reading.Metric(metric)
		r, _ := ranges.ByMetric(metric)

		if r.Contains(value) {
			continue
		}

		events = append(events, types.AlertEvent{
			DeviceID:    reading.DeviceID,
			Metric:      metric,
			Value:       *value,
			Threshold:   r.String(),
			Description: fmt.Sprintf("%s %g outside normal range %s", metric, *value, r.String()),
			Severity:    types.AlertSeverityMedium,
			ObservedAt:  reading.CreatedOn,
		})
	}

	return events
}

func (svc *alertSvc) Add(ctx context.Context, event types.AlertEvent) error {
	log := logging.GetFromContext(ctx)

	if event.DeviceID == "" {
		return fmt.Errorf("no device id is set on alert event")
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.ObservedAt.IsZero() {
		event.ObservedAt = time.Now().UTC()
	}

	err := svc.storage.AddAlertEvent(ctx, event)
	if err != nil {
		return err
	}

	recipients := svc.recipients(ctx, event.DeviceID)

	if svc.notifier != nil {
		err := svc.notifier.Send(ctx, event, recipients)
		if err != nil {
			log.Error("alert notification failed", "alert_id", event.ID, "err", err.Error())
		}
	}

	return svc.messenger.PublishOnTopic(ctx, &AlertTriggered{
		Alert:      event,
		Recipients: recipients,
		Timestamp:  event.ObservedAt,
	})
}

func (svc *alertSvc) recipients(ctx context.Context, deviceID string) []string {
	settings, err := svc.storage.GetSettings(ctx, deviceID)
	if err != nil {
		return nil
	}
	return settings.Recipients
}

func (svc *alertSvc) History(ctx context.Context, deviceID string, since time.Time, offset, limit int) (types.Collection[types.AlertEvent], error) {
	events, err := svc.storage.QueryAlertEvents(ctx,
		storage.WithDeviceID(deviceID),
		storage.WithSince(since),
		storage.WithOffset(offset),
		storage.WithLimit(limit),
	)
	if err != nil {
		return types.Collection[types.AlertEvent]{}, err
	}

	return events, nil
}
