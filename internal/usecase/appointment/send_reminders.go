package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/infra/notify"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
	"github.com/BruksfildServices01/studio-manager/internal/metrics"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

// SendReminders notifies every pending or confirmed appointment happening
// tomorrow in its studio's timezone. reminded_at makes it send once.
type SendReminders struct {
	repo    domain.Repository
	sender  notify.Sender
	metrics *metrics.Metrics
	log     *slog.Logger
}

type ReminderReport struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

func NewSendReminders(
	repo domain.Repository,
	sender notify.Sender,
	m *metrics.Metrics,
	log *slog.Logger,
) *SendReminders {
	return &SendReminders{
		repo:    repo,
		sender:  sender,
		metrics: m,
		log:     logger.Component(log, "reminders"),
	}
}

func (uc *SendReminders) Execute(ctx context.Context, now time.Time) (ReminderReport, error) {
	var report ReminderReport

	// wide enough for every timezone's "tomorrow"
	candidates, err := uc.repo.ListDueReminders(ctx, now.Add(-14*time.Hour), now.Add(62*time.Hour))
	if err != nil {
		return report, err
	}

	studios := map[uint]*models.Studio{}

	for i := range candidates {
		ap := &candidates[i]

		studio, ok := studios[ap.StudioID]
		if !ok {
			studio, err = uc.repo.GetStudioByID(ctx, ap.StudioID)
			if err != nil {
				uc.log.Warn("reminder studio lookup failed", "studio_id", ap.StudioID, "error", err)
				continue
			}
			studios[ap.StudioID] = studio
		}

		loc := timezone.Location(studio.Timezone)
		tomorrow := timezone.StartOfDay(now.In(loc)).AddDate(0, 0, 1)
		start := ap.StartTime.In(loc)
		if start.Before(tomorrow) || !start.Before(tomorrow.AddDate(0, 0, 1)) {
			continue
		}

		body := reminderText(studio, ap, start)
		entry := &models.ReminderLog{
			StudioID:      ap.StudioID,
			AppointmentID: ap.ID,
			Channel:       uc.sender.Channel(),
			To:            ap.Phone,
			Message:       body,
			SentAt:        now,
		}

		if _, err := uc.sender.Send(ctx, ap.Phone, body); err != nil {
			report.Failed++
			uc.metrics.Reminder("failed")
			entry.Status = "failed"
			entry.Error = truncate(err.Error(), 255)
			uc.log.Warn("reminder failed", "appointment_id", ap.ID, "error", err)
		} else {
			report.Sent++
			uc.metrics.Reminder("sent")
			entry.Status = "sent"

			sentAt := now
			ap.RemindedAt = &sentAt
			if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
				return report, err
			}
		}

		if err := uc.repo.CreateReminderLog(ctx, entry); err != nil {
			uc.log.Warn("reminder log write failed", "appointment_id", ap.ID, "error", err)
		}
	}

	uc.log.Info("reminders processed", "sent", report.Sent, "failed", report.Failed)
	return report, nil
}

func reminderText(studio *models.Studio, ap *models.Appointment, start time.Time) string {
	label := kindLabels[domain.Kind(ap.Kind)]
	if label == "" {
		label = "lịch hẹn"
	}
	msg := fmt.Sprintf("%s nhắc %s: %s lúc %s ngày %s",
		studio.Name, ap.CoupleName, label,
		start.Format("15:04"), start.Format("02/01/2006"))
	if ap.Location != "" {
		msg += " tại " + ap.Location
	}
	return msg + "."
}

var kindLabels = map[domain.Kind]string{
	domain.KindConsultation: "buổi tư vấn",
	domain.KindPreWedding:   "buổi chụp pre-wedding",
	domain.KindWeddingDay:   "buổi chụp ngày cưới",
	domain.KindDressFitting: "buổi thử váy",
	domain.KindDelivery:     "buổi nhận album",
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
