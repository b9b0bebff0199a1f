package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	repoMocks "docvault/internal/repository/mocks"
)

func TestStatsService_Overview(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mUsers := new(repoMocks.MockUserRepository)

		mDocs.On("Count", ctx).Return(12, nil)
		mUsers.On("Count", ctx).Return(4, nil)
		mDocs.On("CountCreatedSince", ctx, mock.MatchedBy(func(ts time.Time) bool {
			// Trailing 7-day window, allow slack for test execution time.
			d := time.Since(ts)
			return d > 7*24*time.Hour-time.Minute && d < 7*24*time.Hour+time.Minute
		})).Return(3, nil)

		stats, err := NewStatsService(mDocs, mUsers).Overview(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 12, stats.TotalDocuments)
		assert.Equal(t, 4, stats.TotalUsers)
		assert.Equal(t, 3, stats.RecentUploads)
	})

	t.Run("document count error", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mUsers := new(repoMocks.MockUserRepository)
		mDocs.On("Count", ctx).Return(0, errors.New("db fail"))

		_, err := NewStatsService(mDocs, mUsers).Overview(ctx)

		assert.Error(t, err)
	})

	t.Run("user count error", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mUsers := new(repoMocks.MockUserRepository)
		mDocs.On("Count", ctx).Return(12, nil)
		mUsers.On("Count", ctx).Return(0, errors.New("db fail"))

		_, err := NewStatsService(mDocs, mUsers).Overview(ctx)

		assert.Error(t, err)
	})
}
