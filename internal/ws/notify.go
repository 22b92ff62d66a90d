package ws

import (
	"encoding/json"
	"time"
)

const EventAnalysisCompleted = "analysis_completed"

type AnalysisCompletedEvent struct {
	Type         string `json:"type"`
	ReportID     string `json:"report_id"`
	Role         string `json:"role"`
	Match        string `json:"match"`
	GapCount     int    `json:"gap_count"`
	HighPriority int    `json:"high_priority_count"`
	Cached       bool   `json:"cached"`
	Timestamp    string `json:"timestamp"`
}

// Notifier publishes scoring events to every connected client.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) AnalysisCompleted(evt AnalysisCompletedEvent) {
	if n == nil || n.hub == nil {
		return
	}
	evt.Type = EventAnalysisCompleted
	if evt.Timestamp == "" {
		evt.Timestamp = n.now().UTC().Format(time.RFC3339)
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
