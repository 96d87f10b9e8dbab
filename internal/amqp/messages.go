package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BackupRequestMessage asks the worker to run a ledger backup. It carries no
// payload beyond the trigger reason; the worker reads the current state from
// the database when it processes the request.
type BackupRequestMessage struct {
	ID          string    `json:"id"`
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

const (
	ReasonMutation  = "mutation"
	ReasonScheduled = "scheduled"
	ReasonManual    = "manual"
)

func NewBackupRequestMessage(reason string) *BackupRequestMessage {
	return &BackupRequestMessage{
		ID:          uuid.NewString(),
		Reason:      reason,
		RequestedAt: time.Now(),
	}
}

func (m *BackupRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BackupRequestMessageFromJSON(data []byte) (*BackupRequestMessage, error) {
	var msg BackupRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
