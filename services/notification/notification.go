// File: services/notification/notification.go
package notification

import (
	"context"

	"slotify/models"

	"go.uber.org/zap"
)

// Sender delivers an appointment reminder to a contact. Concrete transports
// (email, SMS, push) plug in behind this interface.
type Sender interface {
	SendReminder(ctx context.Context, payload models.ReminderPayload) error
}

// LogSender is the default Sender; it records the reminder instead of
// delivering it.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) SendReminder(ctx context.Context, payload models.ReminderPayload) error {
	s.Logger.Info("Appointment reminder",
		zap.String("appointmentId", payload.AppointmentID),
		zap.String("contactEmail", payload.ContactEmail),
		zap.Time("start", payload.Start),
	)
	return nil
}
