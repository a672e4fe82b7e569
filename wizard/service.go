package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cityreport/api-go/models"
	"github.com/cityreport/api-go/storage"
	"github.com/cityreport/api-go/utils"
)

// Upload is a photo file as received from the client.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Service drives wizards on behalf of the HTTP layer and owns the photo
// blobs attached to their drafts.
type Service struct {
	store       *Store
	photos      storage.PhotoStore
	submitDelay time.Duration
	logger      *slog.Logger
}

func NewService(store *Store, photos storage.PhotoStore, submitDelay time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:       store,
		photos:      photos,
		submitDelay: submitDelay,
		logger:      logger,
	}
}

// Start opens a new wizard on the photo step.
func (s *Service) Start(ctx context.Context, owner string) View {
	s.sweep(ctx)
	w := s.store.Create(owner)
	return w.View()
}

func (s *Service) View(ctx context.Context, id, owner string) (View, error) {
	w, err := s.store.Get(id, owner)
	if err != nil {
		return View{}, err
	}
	return s.render(ctx, w), nil
}

// AttachPhoto stores the upload and advances to the details step.
func (s *Service) AttachPhoto(ctx context.Context, id, owner string, up Upload) (View, error) {
	if len(up.Data) == 0 {
		return View{}, ErrNoPhoto
	}
	current, err := s.store.Get(id, owner)
	if err != nil {
		return View{}, err
	}
	if current.Submitting {
		return View{}, ErrSubmitting
	}
	if current.Step != StepPhoto {
		return View{}, ErrWrongStep
	}

	key := storage.DraftPhotoKey(id, up.FileName)
	if err := s.photos.Put(ctx, key, up.ContentType, up.Data); err != nil {
		return View{}, fmt.Errorf("store photo: %w", err)
	}

	photo := Photo{
		Key:         key,
		FileName:    up.FileName,
		ContentType: up.ContentType,
		Size:        len(up.Data),
	}
	if coords, ok := photoCoordinates(up.Data); ok {
		photo.Coordinates = &coords
	}

	var replaced *Photo
	w, err := s.store.Update(id, owner, func(w *Wizard) error {
		var err error
		replaced, err = w.AttachPhoto(photo)
		return err
	})
	if err != nil {
		s.dropPhoto(ctx, key)
		return View{}, err
	}
	if replaced != nil {
		s.dropPhoto(ctx, replaced.Key)
	}
	return s.render(ctx, w), nil
}

func (s *Service) UpdateDetails(ctx context.Context, id, owner string, category models.Category, description string) (View, error) {
	w, err := s.store.Update(id, owner, func(w *Wizard) error {
		return w.UpdateDetails(category, description)
	})
	if err != nil {
		return View{}, err
	}
	return s.render(ctx, w), nil
}

func (s *Service) UpdateLocation(ctx context.Context, id, owner, address string) (View, error) {
	w, err := s.store.Update(id, owner, func(w *Wizard) error {
		return w.UpdateLocation(address)
	})
	if err != nil {
		return View{}, err
	}
	return s.render(ctx, w), nil
}

func (s *Service) Next(ctx context.Context, id, owner string) (View, error) {
	w, err := s.store.Update(id, owner, (*Wizard).Next)
	if err != nil {
		return View{}, err
	}
	return s.render(ctx, w), nil
}

func (s *Service) Back(ctx context.Context, id, owner string) (View, error) {
	w, err := s.store.Update(id, owner, (*Wizard).Back)
	if err != nil {
		return View{}, err
	}
	return s.render(ctx, w), nil
}

// Submit simulates sending the report, then discards the draft and its
// photo. Nothing is persisted and no Report is created.
func (s *Service) Submit(ctx context.Context, id, owner string) error {
	w, err := s.store.Update(id, owner, (*Wizard).BeginSubmit)
	if err != nil {
		return err
	}

	if err := utils.Simulate(ctx, s.submitDelay); err != nil {
		_, _ = s.store.Update(id, owner, func(w *Wizard) error {
			w.AbortSubmit()
			return nil
		})
		return err
	}

	if _, err := s.store.Delete(id, owner); err != nil && !errors.Is(err, ErrDraftNotFound) {
		return err
	}
	if w.Draft.Photo != nil {
		s.dropPhoto(ctx, w.Draft.Photo.Key)
	}

	s.logger.Info("report submitted",
		"draft_id", id,
		"category", string(w.Draft.Category),
		"has_photo", w.Draft.Photo != nil,
	)
	return nil
}

// Discard throws the draft away, as when the user leaves the wizard.
func (s *Service) Discard(ctx context.Context, id, owner string) error {
	w, err := s.store.Get(id, owner)
	if err != nil {
		return err
	}
	if w.Submitting {
		return ErrSubmitting
	}
	w, err = s.store.Delete(id, owner)
	if err != nil {
		return err
	}
	if w.Draft.Photo != nil {
		s.dropPhoto(ctx, w.Draft.Photo.Key)
	}
	return nil
}

func (s *Service) render(ctx context.Context, w Wizard) View {
	v := w.View()
	if w.Draft.Photo != nil {
		if u, err := s.photos.URL(ctx, w.Draft.Photo.Key); err == nil {
			v.PhotoURL = u
		} else {
			s.logger.Warn("photo preview unavailable", "draft_id", w.ID, "error", err)
		}
	}
	return v
}

func (s *Service) sweep(ctx context.Context) {
	for _, w := range s.store.Sweep() {
		if w.Draft.Photo != nil {
			s.dropPhoto(ctx, w.Draft.Photo.Key)
		}
		s.logger.Debug("expired draft discarded", "draft_id", w.ID)
	}
}

func (s *Service) dropPhoto(ctx context.Context, key string) {
	if err := s.photos.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete draft photo", "key", key, "error", err)
	}
}
