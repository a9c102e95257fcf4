package repository

import (
	"context"
	"errors"

	"travana-referral-dashboard/internal/domain"
)

var ErrNotFound = errors.New("record not found")

// ShareMessageRepository stores per-user custom share templates. There is at
// most one row per (user, platform).
type ShareMessageRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.ShareMessage, error)
	GetByPlatform(ctx context.Context, userID string, platform domain.Platform) (*domain.ShareMessage, error)
	Upsert(ctx context.Context, msg *domain.ShareMessage) error
	SetActive(ctx context.Context, userID string, platform domain.Platform, active bool) error
	Delete(ctx context.Context, userID string, platform domain.Platform) error
}
