package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := Machine.CanTransition(Status(ap.Status), StatusConfirmed); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return httperr.ErrBusiness("missing_reason")
	}
	if err := Machine.CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelReason = reason
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := Machine.CanTransition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func MarkNoShow(ap *models.Appointment, now time.Time) error {
	if err := Machine.CanTransition(Status(ap.Status), StatusNoShow); err != nil {
		return err
	}
	if now.Before(ap.StartTime) {
		return httperr.ErrBusiness("not_started")
	}

	ap.Status = string(StatusNoShow)
	return nil
}
