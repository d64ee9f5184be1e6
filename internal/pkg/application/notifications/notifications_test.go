package notifications

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Icealert/ice-alert-backend/pkg/types"
	"github.com/matryer/is"
)

func TestLoadConfiguration(t *testing.T) {
	is := is.New(t)

	config := strings.NewReader(`
notifications:
  - id: email-gateway
    name: Alert emails
    type: ice-alert.alertTriggered
    subscribers:
    - name: mailer
      endpoint: http://email-gateway:8990
`)
	cfg, err := LoadConfiguration(config)

	is.NoErr(err)
	is.Equal(len(cfg.Notifications), 1)
	is.Equal(cfg.Notifications[0].ID, "email-gateway")
	is.Equal(cfg.Notifications[0].Subscribers[0].Endpoint, "http://email-gateway:8990")
}

func TestSendDeliversToSubscriber(t *testing.T) {
	is := is.New(t)

	received := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received++
		is.Equal(r.Header.Get("Ce-Type"), "ice-alert.alertTriggered")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := New(&Config{
		Notifications: []Notification{
			{
				ID:   "email-gateway",
				Type: "ice-alert.alertTriggered",
				Subscribers: []SubscriberConfig{
					{Name: "mailer", Endpoint: server.URL},
				},
			},
		},
	})

	err := sender.Send(context.Background(), types.AlertEvent{
		ID:         "e2c1b6a0-0000-0000-0000-000000000000",
		DeviceID:   "IA-2024-0001",
		Metric:     types.MetricTemperature,
		Value:      30.0,
		Threshold:  "20-25",
		Severity:   types.AlertSeverityMedium,
		ObservedAt: time.Now().UTC(),
	}, []string{"ops@example.com"})

	is.NoErr(err)
	is.Equal(received, 1)
}

func TestSendWithoutSubscribersIsANoOp(t *testing.T) {
	is := is.New(t)

	sender := New(nil)

	err := sender.Send(context.Background(), types.AlertEvent{DeviceID: "IA-2024-0001"}, nil)
	is.NoErr(err)
}
