package notifications

import (
	"context"
	"fmt"
	"io"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	yaml "gopkg.in/yaml.v2"
)

const alertTriggeredType = "ice-alert.alertTriggered"

// EventSender pushes alert events to the subscriber endpoints declared in the
// notification configuration, an email gateway being the typical consumer.
type EventSender interface {
	Send(ctx context.Context, event types.AlertEvent, recipients []string) error
}

type eventSender struct {
	subscribers map[string][]SubscriberConfig
}

func New(cfg *Config) EventSender {
	e := &eventSender{
		subscribers: make(map[string][]SubscriberConfig),
	}

	if cfg != nil {
		for _, n := range cfg.Notifications {
			e.subscribers[n.Type] = n.Subscribers
		}
	}

	return e
}

func (e *eventSender) Send(ctx context.Context, alert types.AlertEvent, recipients []string) error {
	if s, ok := e.subscribers[alertTriggeredType]; !ok || len(s) == 0 {
		return nil
	}

	c, err := cloudevents.NewClientHTTP()
	if err != nil {
		return err
	}

	event := cloudevents.NewEvent()
	event.SetID(fmt.Sprintf("%s:%d", alert.DeviceID, alert.ObservedAt.Unix()))
	event.SetTime(alert.ObservedAt)
	event.SetSource("github.com/Icealert/ice-alert-backend")
	event.SetType(alertTriggeredType)

	eventData := struct {
		Alert      types.AlertEvent `json:"alert"`
		Recipients []string         `json:"recipients"`
	}{
		Alert:      alert,
		Recipients: recipients,
	}

	err = event.SetData(cloudevents.ApplicationJSON, eventData)
	if err != nil {
		return err
	}

	log := logging.GetFromContext(ctx)

	for _, s := range e.subscribers[alertTriggeredType] {
		ctxWithTarget := cloudevents.ContextWithTarget(ctx, s.Endpoint)

		result := c.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) {
			log.Error("failed to send event", "endpoint", s.Endpoint, "err", result.Error())
			err = fmt.Errorf("%w", result)
		}
	}

	return err
}

type SubscriberConfig struct {
	Name     string `yaml:"name"`
	Endpoint string `yaml:"endpoint"`
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []Notification `yaml:"notifications"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := yaml.Unmarshal(buf, &cfg); err == nil {
		return &cfg, nil
	} else {
		return nil, err
	}
}
