package devices

import (
	"encoding/json"
	"time"

	"github.com/Icealert/ice-alert-backend/pkg/types"
)

// ReadingStored is published after a reading has been persisted, so that alert
// evaluation happens off the ingestion path.
type ReadingStored struct {
	Reading   types.Reading `json:"reading"`
	Timestamp time.Time     `json:"timestamp"`
}

func (r *ReadingStored) ContentType() string {
	return "application/json"
}

func (r *ReadingStored) TopicName() string {
	return "reading.stored"
}

func (r *ReadingStored) Body() []byte {
	b, _ := json.Marshal(r)
	return b
}
