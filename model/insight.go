package model

import (
	"time"

	"github.com/google/uuid"
)

type InsightReport struct {
	ID        uuid.UUID `json:"id"`
	Dashboard string    `json:"dashboard"`
	Days      int       `json:"days"`
	Channels  []string  `json:"channels"`
	Provider  string    `json:"provider"`
	Text      string    `json:"text"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
}
