package publishers

import (
	"time"

	"github.com/google/uuid"

	"github.com/samvad-hq/petstore-client/internal/domain"
)

// Event represents a pet observation published downstream.
type Event struct {
	ID         string     `json:"id"`
	SourceID   string     `json:"source_id"`
	SourceName string     `json:"source_name"`
	Pet        domain.Pet `json:"pet"`
	ObservedAt time.Time  `json:"observed_at"`
}

// NewEvent constructs an Event for the given source + pet.
func NewEvent(sourceID, sourceName string, pet domain.Pet) Event {
	return Event{
		ID:         uuid.NewString(),
		SourceID:   sourceID,
		SourceName: sourceName,
		Pet:        pet,
		ObservedAt: time.Now().UTC(),
	}
}

// attributes are the routing attributes attached by message-broker publishers.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_id":   e.ID,
		"source_id":  e.SourceID,
		"pet_status": string(e.Pet.Status),
	}
}
