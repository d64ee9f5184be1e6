package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("ice-alert-backend/alerts")

type readingStored struct {
	Reading   types.Reading `json:"reading"`
	Timestamp time.Time     `json:"timestamp"`
}

type noFlowObserved struct {
	DeviceID           string     `json:"deviceID"`
	Severity           int        `json:"severity"`
	MinutesWithoutFlow int        `json:"minutesWithoutFlow"`
	LastFlowAt         *time.Time `json:"lastFlowAt"`
	ObservedAt         time.Time  `json:"observedAt"`
}

func NewReadingStoredHandler(svc AlertService) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, l *slog.Logger) {
		var err error

		ctx, span := tracer.Start(ctx, "reading-stored")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, l, ctx)

		msg := readingStored{}

		err = json.Unmarshal(itm.Body(), &msg)
		if err != nil {
			log.Error("failed to unmarshal message", "err", err.Error())
			return
		}

		err = svc.Evaluate(ctx, msg.Reading)
		if err != nil {
			log.Error("could not evaluate reading", "device_id", msg.Reading.DeviceID, "err", err.Error())
		}
	}
}

func NewNoFlowObservedHandler(svc AlertService) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, l *slog.Logger) {
		var err error

		ctx, span := tracer.Start(ctx, "no-flow-observed")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, l, ctx)

		msg := noFlowObserved{}

		err = json.Unmarshal(itm.Body(), &msg)
		if err != nil {
			log.Error("failed to unmarshal message", "err", err.Error())
			return
		}

		err = svc.Add(ctx, types.AlertEvent{
			DeviceID:    msg.DeviceID,
			Metric:      types.MetricFlowRate,
			Value:       0,
			Threshold:   "no-flow",
			Description: fmt.Sprintf("no flow observed for %d minutes", msg.MinutesWithoutFlow),
			Severity:    msg.Severity,
			ObservedAt:  msg.ObservedAt,
		})
		if err != nil {
			log.Error("could not record no flow alert", "device_id", msg.DeviceID, "err", err.Error())
		}
	}
}
