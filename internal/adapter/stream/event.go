package stream

import (
	"time"

	"chainkit/internal/domain/entity"
)

// Event announces a newly installed rate table.
type Event struct {
	Chain     entity.ChainID `json:"chain"`
	Count     int            `json:"count"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NewEvent describes table as an Event.
func NewEvent(table *entity.RateTable) Event {
	return Event{Chain: table.Chain, Count: table.Len(), UpdatedAt: table.UpdatedAt}
}
