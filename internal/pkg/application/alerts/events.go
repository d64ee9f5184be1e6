package alerts

import (
	"encoding/json"
	"time"

	"github.com/Icealert/ice-alert-backend/pkg/types"
)

type AlertTriggered struct {
	Alert      types.AlertEvent `json:"alert"`
	Recipients []string         `json:"recipients"`
	Timestamp  time.Time        `json:"timestamp"`
}

func (a *AlertTriggered) ContentType() string {
	return "application/json"
}

func (a *AlertTriggered) TopicName() string {
	return "alerts.alertTriggered"
}

func (a *AlertTriggered) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}
