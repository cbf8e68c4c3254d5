package entity

import "time"

// LogMessage is one persisted log record.
type LogMessage struct {
	Time    time.Time `json:"time" bson:"time"`
	Level   string    `json:"level" bson:"level"`
	Feature string    `json:"feature" bson:"feature"`
	Text    string    `json:"text" bson:"text"`
}

func (l *LogMessage) DataType() string {
	return "log_message"
}
