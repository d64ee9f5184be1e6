package alerts

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

func TestReadingStoredHandler(t *testing.T) {
	is := is.New(t)
	log := slog.Default()
	ctx := context.Background()

	svc := &AlertServiceMock{
		EvaluateFunc: func(ctx context.Context, reading types.Reading) error {
			return nil
		},
	}

	temp := 30.0
	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			b, _ := json.Marshal(readingStored{
				Reading: types.Reading{
					DeviceID:    "IA-2024-0001",
					Temperature: &temp,
					CreatedOn:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				},
				Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			})
			return b
		},
		TopicNameFunc: func() string {
			return "reading.stored"
		},
	}

	handler := NewReadingStoredHandler(svc)
	handler(ctx, msg, log)

	is.Equal(1, len(svc.EvaluateCalls()))
	is.Equal("IA-2024-0001", svc.EvaluateCalls()[0].Reading.DeviceID)
	is.Equal(30.0, *svc.EvaluateCalls()[0].Reading.Temperature)
}

func TestReadingStoredHandlerWithMalformedBody(t *testing.T) {
	is := is.New(t)
	log := slog.Default()
	ctx := context.Background()

	svc := &AlertServiceMock{}

	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			return []byte("not json")
		},
		TopicNameFunc: func() string {
			return "reading.stored"
		},
	}

	handler := NewReadingStoredHandler(svc)
	handler(ctx, msg, log)

	is.Equal(0, len(svc.EvaluateCalls()))
}

func TestNoFlowObservedHandler(t *testing.T) {
	is := is.New(t)
	log := slog.Default()
	ctx := context.Background()

	svc := &AlertServiceMock{
		AddFunc: func(ctx context.Context, event types.AlertEvent) error {
			return nil
		},
	}

	observedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			b, _ := json.Marshal(noFlowObserved{
				DeviceID:           "IA-2024-0001",
				Severity:           types.AlertSeverityHigh,
				MinutesWithoutFlow: 250,
				ObservedAt:         observedAt,
			})
			return b
		},
		TopicNameFunc: func() string {
			return "watchdog.noFlowObserved"
		},
	}

	handler := NewNoFlowObservedHandler(svc)
	handler(ctx, msg, log)

	is.Equal(1, len(svc.AddCalls()))
	is.Equal(types.MetricFlowRate, svc.AddCalls()[0].Event.Metric)
	is.Equal(types.AlertSeverityHigh, svc.AddCalls()[0].Event.Severity)
	is.Equal(observedAt, svc.AddCalls()[0].Event.ObservedAt)
}
