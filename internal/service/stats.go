package service

import (
	"context"
	"time"

	"docvault/internal/repository"
)

// Stats aggregates the dashboard counters.
type Stats struct {
	TotalDocuments int `json:"total_documents"`
	TotalUsers     int `json:"total_users"`
	// RecentUploads counts documents created in the trailing 7 days.
	RecentUploads int `json:"recent_uploads"`
}

// StatsService exposes aggregate counts for the admin dashboard.
type StatsService interface {
	Overview(ctx context.Context) (*Stats, error)
}

type statsService struct {
	docs  repository.DocumentRepository
	users repository.UserRepository
}

// NewStatsService constructs a new StatsService.
func NewStatsService(docs repository.DocumentRepository, users repository.UserRepository) StatsService {
	return &statsService{docs: docs, users: users}
}

func (s *statsService) Overview(ctx context.Context) (*Stats, error) {
	totalDocs, err := s.docs.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.docs.CountCreatedSince(ctx, time.Now().UTC().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalDocuments: totalDocs,
		TotalUsers:     totalUsers,
		RecentUploads:  recent,
	}, nil
}
