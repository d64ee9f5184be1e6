package watchdog

import (
	"encoding/json"
	"time"
)

type NoFlowObserved struct {
	DeviceID           string     `json:"deviceID"`
	Severity           int        `json:"severity"`
	MinutesWithoutFlow int        `json:"minutesWithoutFlow"`
	LastFlowAt         *time.Time `json:"lastFlowAt"`
	ObservedAt         time.Time  `json:"observedAt"`
}

func (n *NoFlowObserved) ContentType() string {
	return "application/json"
}

func (n *NoFlowObserved) TopicName() string {
	return "watchdog.noFlowObserved"
}

func (n *NoFlowObserved) Body() []byte {
	b, _ := json.Marshal(n)
	return b
}
