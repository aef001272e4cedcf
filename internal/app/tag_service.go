package app

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"strings"

	"memeverse/internal/model"
)

// 3- or 6-digit hex color, e.g. #f90 or #94a3b8.
var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)

// DefaultTagColor is applied when a client creates a tag without one.
const DefaultTagColor = "#94a3b8"

type TagService struct {
	tags      TagStore
	memes     MemeStore
	publisher ActivityPublisher
}

func NewTagService(tags TagStore, memes MemeStore, publisher ActivityPublisher) *TagService {
	return &TagService{tags: tags, memes: memes, publisher: publisher}
}

// CreateTag validates and upserts keyed on (user, lowercased name).
// A case-insensitive name collision updates the stored display casing of
// the existing tag instead of creating a duplicate; its color is kept.
func (s *TagService) CreateTag(ctx context.Context, caller *Caller, name, color string) (*model.Tag, error) {
	if caller == nil {
		return nil, ErrNotLoggedIn
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankTagName
	}
	if !colorPattern.MatchString(color) {
		return nil, ErrInvalidColor
	}

	existing, err := s.tags.GetByUserAndName(ctx, caller.UserID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.tags.UpdateName(ctx, existing.ID, name); err != nil {
			return nil, err
		}
		existing.Name = name
		return existing, nil
	}

	tag := &model.Tag{UserID: caller.UserID, Name: name, Color: color}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag the caller owns; associations cascade in the
// store, not here.
func (s *TagService) DeleteTag(ctx context.Context, caller *Caller, tagID uint) error {
	if caller == nil {
		return ErrNotLoggedIn
	}

	deleted, err := s.tags.DeleteOwned(ctx, tagID, caller.UserID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (s *TagService) GetUserTags(ctx context.Context, caller *Caller) ([]model.Tag, error) {
	if caller == nil {
		return nil, ErrNotLoggedIn
	}
	return s.tags.ListByUser(ctx, caller.UserID)
}

func (s *TagService) GetMemeTags(ctx context.Context, caller *Caller, memeID uint) ([]TagInfo, error) {
	if caller == nil {
		return nil, ErrNotLoggedIn
	}

	tags, err := s.tags.ListForMeme(ctx, caller.UserID, memeID)
	if err != nil {
		return nil, err
	}
	infos := make([]TagInfo, 0, len(tags))
	for _, t := range tags {
		infos = append(infos, TagInfo{ID: t.ID, Name: t.Name, Color: t.Color})
	}
	return infos, nil
}

// AddTagsToMeme associates each tag with the meme idempotently and
// touches last_used. A failure on one tag is logged and skipped; the
// remaining tags still go through.
func (s *TagService) AddTagsToMeme(ctx context.Context, caller *Caller, memeID uint, tagIDs []uint) error {
	if caller == nil {
		return ErrNotLoggedIn
	}

	exists, err := s.memes.Exists(ctx, memeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrMemeNotFound
	}

	for _, tagID := range tagIDs {
		if err := s.tags.AddToMeme(ctx, caller.UserID, memeID, tagID); err != nil {
			log.Printf("add tag %d to meme %d failed: %v", tagID, memeID, err)
			continue
		}
		if err := s.tags.TouchLastUsed(ctx, tagID); err != nil {
			log.Printf("touch tag %d failed: %v", tagID, err)
		}
	}

	s.publish(ctx, caller, model.ActionTagged, memeID)
	return nil
}

func (s *TagService) RemoveTagFromMeme(ctx context.Context, caller *Caller, memeID, tagID uint) error {
	if caller == nil {
		return ErrNotLoggedIn
	}

	removed, err := s.tags.RemoveFromMeme(ctx, caller.UserID, memeID, tagID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrTagNotOnMeme
	}

	s.publish(ctx, caller, model.ActionUntagged, memeID)
	return nil
}

func (s *TagService) publish(ctx context.Context, caller *Caller, action string, memeID uint) {
	if s.publisher == nil {
		return
	}
	event := model.ActivityEvent{
		UserID:   caller.UserID,
		Username: caller.Username,
		Action:   action,
		MemeID:   strconv.Itoa(int(memeID)),
	}
	if err := s.publisher.PublishActivity(ctx, event); err != nil {
		log.Printf("publish %s event failed: %v", action, err)
	}
}
