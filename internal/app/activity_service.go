package app

import (
	"context"

	"memeverse/internal/model"
)

const defaultActivityLimit = 50

// ActivityService reads back the like/tag audit trail the worker writes.
type ActivityService struct {
	activity ActivityStore
}

func NewActivityService(activity ActivityStore) *ActivityService {
	return &ActivityService{activity: activity}
}

func (s *ActivityService) RecentByCaller(ctx context.Context, caller *Caller, limit int) ([]model.ActivityEvent, error) {
	if caller == nil {
		return nil, ErrNotLoggedIn
	}
	if limit < 1 || limit > defaultActivityLimit {
		limit = defaultActivityLimit
	}
	return s.activity.ListRecentByUser(ctx, caller.UserID, limit)
}
