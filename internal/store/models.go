package store

import "time"

// Entry is one raw key/value row.
type Entry struct {
	Key   string
	Value string
}

// StatusCheck is a record served by the status API. The dashboard uses them
// as tasks: ClientName holds the task text.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
	Completed  bool      `json:"completed"`
}
