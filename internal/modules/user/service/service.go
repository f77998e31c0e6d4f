package service

import (
	"log/slog"

	"github.com/reshetovitsme/support-relay-bot/internal/modules/user/repository"
)

// Service handles known-user business logic
type Service struct {
	repo repository.Repository
}

// New creates a new user service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// RecordUser idempotently adds a user to the known-users set. Persistence
// failures are logged and swallowed: inbound processing must not fail
// because a snapshot write failed.
func (s *Service) RecordUser(userID int64) {
	if err := s.repo.AddUser(userID); err != nil {
		slog.Error("Failed to save user ID", "error", err, "user_id", userID)
	}
}

// ListUsers returns the current persisted snapshot, empty if the store is absent
func (s *Service) ListUsers() ([]int64, error) {
	return s.repo.ListUsers()
}
