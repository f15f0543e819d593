package ws

import (
	"encoding/json"
	"time"
)

const (
	EventTeamMatched = "team_matched"
	EventTeamSaved   = "team_saved"
)

type TeamEvent struct {
	Type      string `json:"type"`
	ProjectID int64  `json:"project_id"`
	Count     int64  `json:"count"`
	Timestamp string `json:"timestamp"`
}

// Notifier turns team changes into broadcast events.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

// TeamMatched announces assignments added by the matching pipeline.
func (n *Notifier) TeamMatched(projectID int64, inserted int64) {
	n.publish(EventTeamMatched, projectID, inserted)
}

// TeamSaved announces a manually saved roster.
func (n *Notifier) TeamSaved(projectID int64, count int64) {
	n.publish(EventTeamSaved, projectID, count)
}

func (n *Notifier) publish(kind string, projectID, count int64) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(TeamEvent{
		Type:      kind,
		ProjectID: projectID,
		Count:     count,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
