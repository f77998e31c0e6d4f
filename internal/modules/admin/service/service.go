package service

import (
	"slices"

	"github.com/reshetovitsme/support-relay-bot/internal/modules/admin/repository"
	sharedErrors "github.com/reshetovitsme/support-relay-bot/internal/shared/errors"
)

// Service handles admin-set business logic. The configured owner is a
// permanent member: it is seeded on first access and can never be
// removed.
type Service struct {
	repo    repository.Repository
	ownerID int64
}

// New creates a new admin service
func New(repo repository.Repository, ownerID int64) *Service {
	return &Service{
		repo:    repo,
		ownerID: ownerID,
	}
}

// OwnerID returns the configured owner identity
func (s *Service) OwnerID() int64 {
	return s.ownerID
}

// LoadAdmins returns the persisted admin set, seeding it with the owner
// if the store is empty or absent.
func (s *Service) LoadAdmins() ([]int64, error) {
	ids, err := s.repo.Load()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		ids = []int64{s.ownerID}
		if err := s.repo.Save(ids); err != nil {
			return nil, err
		}
	}

	return ids, nil
}

// IsAdmin reports whether the user is a member of the admin set
func (s *Service) IsAdmin(userID int64) bool {
	ids, err := s.LoadAdmins()
	if err != nil {
		return false
	}
	return slices.Contains(ids, userID)
}

// IsOwner reports whether the user is the configured owner
func (s *Service) IsOwner(userID int64) bool {
	return userID == s.ownerID
}

// RequireAdmin returns ErrUnauthorized unless the user is a member of
// the admin set.
func (s *Service) RequireAdmin(userID int64) error {
	if !s.IsAdmin(userID) {
		return sharedErrors.ErrUnauthorized
	}
	return nil
}

// RequireOwner returns ErrUnauthorized unless the user is the
// configured owner.
func (s *Service) RequireOwner(userID int64) error {
	if !s.IsOwner(userID) {
		return sharedErrors.ErrUnauthorized
	}
	return nil
}

// AddAdmin inserts the target into the admin set. Returns false without
// error when the target is already a member.
func (s *Service) AddAdmin(targetID int64) (bool, error) {
	ids, err := s.LoadAdmins()
	if err != nil {
		return false, err
	}

	if slices.Contains(ids, targetID) {
		return false, nil
	}

	ids = append(ids, targetID)
	if err := s.repo.Save(ids); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveAdmin removes the target from the admin set. The owner can
// never be removed. Returns false without error when the target is not
// a member.
func (s *Service) RemoveAdmin(targetID int64) (bool, error) {
	if targetID == s.ownerID {
		return false, sharedErrors.ErrOwnerImmutable
	}

	ids, err := s.LoadAdmins()
	if err != nil {
		return false, err
	}

	idx := slices.Index(ids, targetID)
	if idx < 0 {
		return false, nil
	}

	ids = slices.Delete(ids, idx, idx+1)
	if err := s.repo.Save(ids); err != nil {
		return false, err
	}
	return true, nil
}
