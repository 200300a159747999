package profiles

import (
	"context"
	"errors"
	"time"

	"accountd/internal/logging"
	"accountd/internal/server/avatars"
	"accountd/internal/server/users"
	"accountd/internal/shared"
)

// View is the outward shape of a profile. AvatarURL is a short-lived signed
// download link, empty when no avatar was uploaded.
type View struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service serves profile reads and writes for both the owner and the admin
// surface. Deleting a profile deletes the owning account: a user without a
// profile (or the other way around) must never exist.
type Service struct {
	profiles Repository
	users    users.Repository
	store    avatars.Store
	logger   logging.Logger
}

func NewService(profileRepo Repository, userRepo users.Repository, store avatars.Store, logger logging.Logger) *Service {
	return &Service{
		profiles: profileRepo,
		users:    userRepo,
		store:    store,
		logger:   logger,
	}
}

// GetOwn returns the caller's profile.
func (s *Service) GetOwn(ctx context.Context, userID string) (*View, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.translate(ctx, err)
	}
	return s.view(ctx, p), nil
}

// Get returns any profile by id. Admin surface.
func (s *Service) Get(ctx context.Context, profileID string) (*View, error) {
	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, s.translate(ctx, err)
	}
	return s.view(ctx, p), nil
}

// List returns all profiles. Admin surface.
func (s *Service) List(ctx context.Context) ([]*View, error) {
	all, err := s.profiles.List(ctx)
	if err != nil {
		return nil, s.translate(ctx, err)
	}
	views := make([]*View, 0, len(all))
	for _, p := range all {
		views = append(views, s.view(ctx, p))
	}
	return views, nil
}

// RenameOwn updates the display name on the caller's profile.
func (s *Service) RenameOwn(ctx context.Context, userID string, name string) (*View, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.translate(ctx, err)
	}
	return s.rename(ctx, p, name)
}

// Rename updates the display name on any profile. Admin surface.
func (s *Service) Rename(ctx context.Context, profileID string, name string) (*View, error) {
	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, s.translate(ctx, err)
	}
	return s.rename(ctx, p, name)
}

// UploadOwnAvatar stores a new avatar for the caller and points the profile
// at it. Uploads over avatars.MaxSize are rejected before any write.
func (s *Service) UploadOwnAvatar(ctx context.Context, userID string, contentType string, data []byte) (*View, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.translate(ctx, err)
	}
	return s.uploadAvatar(ctx, p, contentType, data)
}

// UploadAvatar stores a new avatar on any profile. Admin surface.
func (s *Service) UploadAvatar(ctx context.Context, profileID string, contentType string, data []byte) (*View, error) {
	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, s.translate(ctx, err)
	}
	return s.uploadAvatar(ctx, p, contentType, data)
}

// DeleteOwn removes the caller's account. The profile and any outstanding
// verification codes go with it.
func (s *Service) DeleteOwn(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return s.translate(ctx, err)
	}
	return nil
}

// Delete removes the account owning the given profile. Admin surface.
func (s *Service) Delete(ctx context.Context, profileID string) error {
	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return s.translate(ctx, err)
	}
	if err := s.users.Delete(ctx, p.UserID); err != nil {
		return s.translate(ctx, err)
	}
	return nil
}

func (s *Service) rename(ctx context.Context, p *Profile, name string) (*View, error) {
	if err := s.profiles.UpdateName(ctx, p.ID, name); err != nil {
		return nil, s.translate(ctx, err)
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return s.view(ctx, p), nil
}

func (s *Service) uploadAvatar(ctx context.Context, p *Profile, contentType string, data []byte) (*View, error) {
	if len(data) > avatars.MaxSize {
		return nil, shared.ErrorAvatarTooLarge
	}

	key := avatars.NewStorageKey(p.UserID)
	if err := s.store.Put(ctx, key, contentType, data); err != nil {
		s.logger.Error(ctx, "avatar upload failed", "error", err)
		return nil, shared.ErrorInternal
	}
	if err := s.profiles.UpdateAvatarKey(ctx, p.ID, key); err != nil {
		return nil, s.translate(ctx, err)
	}
	p.AvatarKey = key
	p.UpdatedAt = time.Now()
	return s.view(ctx, p), nil
}

func (s *Service) view(ctx context.Context, p *Profile) *View {
	v := &View{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.AvatarKey != "" {
		url, err := s.store.PresignGet(ctx, p.AvatarKey)
		if err != nil {
			// the profile itself is still servable
			s.logger.Error(ctx, "avatar presign failed", "key", p.AvatarKey, "error", err)
		} else {
			v.AvatarURL = url
		}
	}
	return v
}

func (s *Service) translate(ctx context.Context, err error) error {
	if errors.Is(err, shared.ErrorNotFound) {
		return shared.ErrorNotFound
	}
	s.logger.Error(ctx, "profile storage error", "error", err)
	return shared.ErrorInternal
}
