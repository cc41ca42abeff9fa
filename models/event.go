package models

import "time"

type Event struct {
	Source string    `json:"source"`
	Kind   string    `json:"kind"`
	Detail string    `json:"detail,omitempty"`
	Time   time.Time `json:"time"`
}
