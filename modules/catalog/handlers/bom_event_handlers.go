package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/partlane/partlane/modules/catalog/domain/events"
	"github.com/partlane/partlane/pkg/application"
)

// BomEventHandler writes an audit trail of BOM changes to the log.
type BomEventHandler struct {
	log *logrus.Logger
}

func RegisterBomEventHandler(app application.Application, log *logrus.Logger) *BomEventHandler {
	handler := &BomEventHandler{log: log}
	app.EventPublisher().Subscribe(handler.onBomReplaced)
	app.EventPublisher().Subscribe(handler.onBomValidated)
	return handler
}

func (h *BomEventHandler) onBomReplaced(event *events.BomReplacedV1) {
	h.log.WithFields(logrus.Fields{
		"parentPartId": event.ParentPartID,
		"itemCount":    event.ItemCount,
	}).Info("BOM replaced")
}

func (h *BomEventHandler) onBomValidated(event *events.BomValidatedV1) {
	h.log.WithFields(logrus.Fields{
		"parentPartId": event.ParentPartID,
	}).Info("BOM validated")
}
