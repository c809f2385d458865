package ws

import (
	"encoding/json"
	"time"

	"skill-twin/internal/domain/learning"

	"github.com/google/uuid"
)

type ProgressUpdatedEvent struct {
	Type            string  `json:"type"`
	RoadmapID       string  `json:"roadmap_id"`
	OverallProgress float64 `json:"overall_progress"`
	HoursCompleted  float64 `json:"hours_completed"`
	Completed       bool    `json:"completed"`
	Timestamp       string  `json:"timestamp"`
}

// Notifier adapts the hub to the progress usecase's notifier port.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyProgress(userID uuid.UUID, r learning.Roadmap) {
	if n == nil || n.hub == nil {
		return
	}

	evt := ProgressUpdatedEvent{
		Type:            "progress_updated",
		RoadmapID:       r.ID.String(),
		OverallProgress: r.OverallProgress,
		HoursCompleted:  r.HoursCompleted,
		Completed:       r.Completed,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Publish(userID, b)
}
