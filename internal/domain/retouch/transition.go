package retouch

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type TransitionInput struct {
	To               Status
	SelectedImageURL string
	RetouchImageURL  string
	Note             string
	Author           string
}

// Apply moves item to in.To. Image urls given in the input overwrite the
// stored ones before the required-field check.
func Apply(item *models.RetouchItem, in TransitionInput, now time.Time) (*models.RetouchNote, error) {
	from := Status(item.Status)
	if err := Machine.CanTransition(from, in.To); err != nil {
		return nil, err
	}

	selected := firstNonEmpty(in.SelectedImageURL, item.SelectedImageURL)
	retouched := firstNonEmpty(in.RetouchImageURL, item.RetouchImageURL)
	note := strings.TrimSpace(in.Note)

	switch in.To {
	case StatusInProgress:
		if from == StatusAwaitingSelection && selected == "" {
			return nil, httperr.ErrBusiness("missing_selected_image")
		}
	case StatusAwaitingApproval:
		if retouched == "" {
			return nil, httperr.ErrBusiness("missing_retouch_image")
		}
	case StatusRevisionRequested:
		if note == "" {
			return nil, httperr.ErrBusiness("missing_note")
		}
	}

	item.SelectedImageURL = selected
	item.RetouchImageURL = retouched

	switch in.To {
	case StatusInProgress:
		if item.StartedAt == nil {
			item.StartedAt = &now
		}
	case StatusRevisionRequested:
		item.RevisionCount++
	case StatusCompleted:
		item.CompletedAt = &now
	}
	item.Status = string(in.To)

	content := Machine.Display(from).Label + " → " + Machine.Display(in.To).Label
	if note != "" {
		content += ". " + note
	}

	return &models.RetouchNote{
		RetouchItemID: item.ID,
		Author:        in.Author,
		FromStatus:    string(from),
		ToStatus:      string(in.To),
		Content:       content,
	}, nil
}

// IsOverdue is true for an unfinished item past its deadline.
func IsOverdue(item *models.RetouchItem, now time.Time) bool {
	return item.Deadline != nil &&
		Status(item.Status) != StatusCompleted &&
		now.After(*item.Deadline)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
