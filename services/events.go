package services

import (
	"log"

	"github.com/Floumy/floumy-sub002/internal/models"
)

// OrgEvents receives domain notifications from the org service. Subscribers
// are wired explicitly in main; there is no process-wide event bus.
type OrgEvents interface {
	OnOrgCreated(org *models.Org)
}

// NopOrgEvents discards all events. Useful in tests.
type NopOrgEvents struct{}

func (NopOrgEvents) OnOrgCreated(*models.Org) {}

// LogOrgEvents writes events to the standard logger.
type LogOrgEvents struct{}

func (LogOrgEvents) OnOrgCreated(org *models.Org) {
	log.Printf("org created: %s (%s)", org.Name, org.ID)
}
