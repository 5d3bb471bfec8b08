package amqp

import (
	"encoding/json"
	"time"
)

// StatementIngestMessage tells the worker that a raw statement is waiting to
// be categorized. It only carries the statement ID; the worker fetches the
// text from the store.
type StatementIngestMessage struct {
	StatementID string    `json:"statementId"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewStatementIngestMessage(statementID string) *StatementIngestMessage {
	return &StatementIngestMessage{
		StatementID: statementID,
		Timestamp:   time.Now(),
	}
}

func (m *StatementIngestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func StatementIngestMessageFromJSON(data []byte) (*StatementIngestMessage, error) {
	var msg StatementIngestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
