package app

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"memeverse/internal/model"
)

type TagInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type LikedMeme struct {
	ID        uint      `json:"id"`
	MediaType string    `json:"media_type"`
	MediaURL  string    `json:"media_url"`
	Tags      []TagInfo `json:"tags"`
}

type LikedMemesPage struct {
	Memes   []LikedMeme `json:"memes"`
	HasMore bool        `json:"hasMore"`
}

type LikeService struct {
	users     UserStore
	memes     MemeStore
	tags      TagStore
	publisher ActivityPublisher
}

// NewLikeService builds the like toggler. publisher may be nil; activity
// events are then simply not recorded.
func NewLikeService(users UserStore, memes MemeStore, tags TagStore, publisher ActivityPublisher) *LikeService {
	return &LikeService{users: users, memes: memes, tags: tags, publisher: publisher}
}

// ToggleLike flips membership of itemID in the caller's liked set:
// present removes, absent appends. The read-modify-write runs under a
// row lock so concurrent toggles by the same user serialize instead of
// losing updates. Returns the action taken, "liked" or "unliked".
func (s *LikeService) ToggleLike(ctx context.Context, caller *Caller, itemID string) (string, error) {
	if caller == nil {
		return "", ErrNotLoggedIn
	}

	var action string
	updated, err := s.users.UpdateLocked(ctx, caller.Username, func(user *model.User) error {
		liked := user.LikedMemes
		if liked.Contains(itemID) {
			next := make(model.StringList, 0, len(liked)-1)
			for _, id := range liked {
				if id != itemID {
					next = append(next, id)
				}
			}
			user.LikedMemes = next
			action = model.ActionUnliked
		} else {
			user.LikedMemes = append(liked, itemID)
			action = model.ActionLiked
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if updated == nil {
		return "", ErrUserNotFound
	}

	s.publish(ctx, caller, action, itemID)
	return action, nil
}

// GetUserLikedMemes pages through a user's liked list newest first.
// An empty target defaults to the caller. Pages are 1-indexed; each
// returned meme carries the tags the target user put on it.
func (s *LikeService) GetUserLikedMemes(ctx context.Context, caller *Caller, targetUsername string, page, perPage int) (*LikedMemesPage, error) {
	if targetUsername == "" {
		if caller == nil {
			return nil, ErrNotAuthenticated
		}
		targetUsername = caller.Username
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 12
	}

	user, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// Stored oldest first; reverse for recency order.
	ids := make([]string, 0, len(user.LikedMemes))
	for i := len(user.LikedMemes) - 1; i >= 0; i-- {
		ids = append(ids, user.LikedMemes[i])
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start >= len(ids) {
		return &LikedMemesPage{Memes: []LikedMeme{}, HasMore: false}, nil
	}
	pageIDs := ids[start:min(end, len(ids))]

	memes := make([]LikedMeme, 0, len(pageIDs))
	for _, rawID := range pageIDs {
		id, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil {
			continue
		}
		meme, err := s.memes.GetByID(ctx, uint(id))
		if err != nil {
			log.Printf("resolve liked meme %s failed: %v", rawID, err)
			continue
		}
		if meme == nil {
			continue
		}
		memes = append(memes, LikedMeme{
			ID:        meme.ID,
			MediaType: meme.MediaType,
			MediaURL:  fmt.Sprintf("/media/%d", meme.ID),
			Tags:      s.memeTags(ctx, user.ID, meme.ID),
		})
	}

	return &LikedMemesPage{Memes: memes, HasMore: end < len(ids)}, nil
}

// LikedSet returns the set of meme IDs username has liked, for cheap
// membership checks when enriching feed responses. Empty on any error.
func (s *LikeService) LikedSet(ctx context.Context, username string) map[string]bool {
	set := map[string]bool{}
	if username == "" {
		return set
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return set
	}
	for _, id := range user.LikedMemes {
		set[id] = true
	}
	return set
}

func (s *LikeService) memeTags(ctx context.Context, userID, memeID uint) []TagInfo {
	tags, err := s.tags.ListForMeme(ctx, userID, memeID)
	if err != nil {
		log.Printf("load tags for meme %d failed: %v", memeID, err)
		return []TagInfo{}
	}
	infos := make([]TagInfo, 0, len(tags))
	for _, t := range tags {
		infos = append(infos, TagInfo{ID: t.ID, Name: t.Name, Color: t.Color})
	}
	return infos
}

func (s *LikeService) publish(ctx context.Context, caller *Caller, action, memeID string) {
	if s.publisher == nil {
		return
	}
	event := model.ActivityEvent{
		UserID:   caller.UserID,
		Username: caller.Username,
		Action:   action,
		MemeID:   memeID,
	}
	if err := s.publisher.PublishActivity(ctx, event); err != nil {
		log.Printf("publish %s event failed: %v", action, err)
	}
}
