package retouch

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/studio-manager/internal/audit"
	domain "github.com/BruksfildServices01/studio-manager/internal/domain/retouch"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/infra/imaging"
	"github.com/BruksfildServices01/studio-manager/internal/infra/storage"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

type ImageSlot string

const (
	SlotSelected ImageSlot = "selected"
	SlotRetouch  ImageSlot = "retouch"
)

func ParseSlot(s string) (ImageSlot, error) {
	switch ImageSlot(s) {
	case SlotSelected, SlotRetouch:
		return ImageSlot(s), nil
	}
	return "", httperr.ErrBusiness("invalid_slot")
}

type UploadResult struct {
	Item       *models.RetouchItem `json:"item"`
	URL        string              `json:"url"`
	PreviewURL string              `json:"preview_url"`
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
}

type UploadRetouchImage struct {
	repo    domain.Repository
	storage storage.Storage
	audit   *audit.Dispatcher
}

func NewUploadRetouchImage(
	repo domain.Repository,
	store storage.Storage,
	audit *audit.Dispatcher,
) *UploadRetouchImage {
	return &UploadRetouchImage{repo: repo, storage: store, audit: audit}
}

// Execute stores the original and its webp preview, then points the chosen
// slot of the item at the original.
func (uc *UploadRetouchImage) Execute(
	ctx context.Context,
	studioID uint,
	userID uint,
	itemID uint,
	slot ImageSlot,
	data []byte,
) (*UploadResult, error) {

	item, err := uc.repo.Get(ctx, studioID, itemID)
	if err != nil {
		return nil, err
	}
	if domain.Status(item.Status) == domain.StatusCompleted {
		return nil, httperr.ErrBusiness("retouch_completed")
	}

	img, err := imaging.Process(data)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()
	prefix := fmt.Sprintf("retouch/%d/%d", studioID, item.ID)

	url, err := uc.storage.Put(ctx, storage.ObjectKey(prefix, now, img.Ext), data, img.ContentType)
	if err != nil {
		return nil, err
	}
	previewURL, err := uc.storage.Put(ctx, storage.ObjectKey(prefix+"/preview", now, ".webp"), img.Preview, "image/webp")
	if err != nil {
		return nil, err
	}

	switch slot {
	case SlotSelected:
		item.SelectedImageURL = url
	case SlotRetouch:
		item.RetouchImageURL = url
	}

	if err := uc.repo.Save(ctx, item); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   "retouch_image_uploaded",
		Entity:   "retouch_item",
		EntityID: &item.ID,
		Metadata: map[string]any{"slot": string(slot), "url": url},
	})

	return &UploadResult{
		Item:       item,
		URL:        url,
		PreviewURL: previewURL,
		Width:      img.Width,
		Height:     img.Height,
	}, nil
}
