package service

import (
	"context"

	"milk-platform-be/internal/pkg/logger"
	"milk-platform-be/pkg/events"
)

// EventAuditor records every event that reaches the integration bus.
type EventAuditor struct {
	logger logger.ILogger
}

func NewEventAuditor(log logger.ILogger) *EventAuditor {
	return &EventAuditor{logger: log}
}

func (a *EventAuditor) Handle(ctx context.Context, event events.Event) error {
	details := map[string]interface{}{
		"event":       event.EventType(),
		"occurred_at": event.Timestamp(),
	}
	if audience, ok := event.Payload()["audience"]; ok {
		details["audience"] = audience
	}
	a.logger.Info("EventAudit", "Event recorded", details)
	return nil
}
