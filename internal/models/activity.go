package models

import "time"

const (
	ActivityTypeProject = "project"
	ActivityTypeUnit    = "unit"
)

type ActivityEvent struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Action      string    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
	Description *string   `json:"description"`
}
