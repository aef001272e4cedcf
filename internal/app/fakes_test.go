package app

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"memeverse/internal/model"
)

// In-memory stands-ins for the repository layer. Each fake keeps just
// enough state to observe what the service under test did.

type fakeUserStore struct {
	users  map[string]*model.User
	nextID uint
	err    error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	if _, exists := f.users[user.Username]; exists {
		return gorm.ErrDuplicatedKey
	}
	user.ID = f.nextID
	f.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[username], nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) UpdateBio(_ context.Context, username, bio string) error {
	if f.err != nil {
		return f.err
	}
	user, exists := f.users[username]
	if !exists {
		return errors.New("no such user")
	}
	user.Bio = &bio
	return nil
}

func (f *fakeUserStore) ListAll(_ context.Context) ([]model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	users := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserStore) SearchByUsername(_ context.Context, query string, limit int) ([]model.User, error) {
	users := []model.User{}
	for _, u := range f.users {
		if len(users) >= limit {
			break
		}
		if query != "" && containsFold(u.Username, query) {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (f *fakeUserStore) UpdateLocked(_ context.Context, username string, update func(*model.User) error) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, exists := f.users[username]
	if !exists {
		return nil, nil
	}
	if err := update(user); err != nil {
		return nil, err
	}
	return user, nil
}

type fakeMemeStore struct {
	memes       map[uint]*model.Meme
	randomCalls int
	countCalls  int
	lastExclude []uint
	err         error
}

func newFakeMemeStore() *fakeMemeStore {
	return &fakeMemeStore{memes: map[uint]*model.Meme{}}
}

func (f *fakeMemeStore) add(id uint, mediaType string, data []byte) {
	f.memes[id] = &model.Meme{ID: id, MediaType: mediaType, FileData: data}
}

func (f *fakeMemeStore) GetByID(_ context.Context, id uint) (*model.Meme, error) {
	if f.err != nil {
		return nil, f.err
	}
	meme, exists := f.memes[id]
	if !exists {
		return nil, nil
	}
	copied := *meme
	copied.FileData = nil
	return &copied, nil
}

func (f *fakeMemeStore) GetWithData(_ context.Context, id uint) (*model.Meme, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.memes[id], nil
}

func (f *fakeMemeStore) Exists(_ context.Context, id uint) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, exists := f.memes[id]
	return exists, nil
}

func (f *fakeMemeStore) Random(_ context.Context, limit int, exclude []uint) ([]model.Meme, error) {
	f.randomCalls++
	f.lastExclude = exclude
	if f.err != nil {
		return nil, f.err
	}

	excluded := map[uint]bool{}
	for _, id := range exclude {
		excluded[id] = true
	}

	// Deterministic "random": ascending id order.
	memes := []model.Meme{}
	for id := uint(1); len(memes) < limit && id <= uint(len(f.memes))+100; id++ {
		meme, exists := f.memes[id]
		if !exists || meme.FileData == nil || excluded[id] {
			continue
		}
		memes = append(memes, model.Meme{ID: meme.ID, MediaType: meme.MediaType})
	}
	return memes, nil
}

func (f *fakeMemeStore) CountWithData(_ context.Context) (int64, error) {
	f.countCalls++
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, meme := range f.memes {
		if meme.FileData != nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeMemeStore) SearchByDescription(_ context.Context, query string, limit int) ([]model.Meme, error) {
	memes := []model.Meme{}
	for _, meme := range f.memes {
		if len(memes) >= limit {
			break
		}
		if meme.Description != nil && containsFold(*meme.Description, query) {
			memes = append(memes, model.Meme{ID: meme.ID, MediaType: meme.MediaType})
		}
	}
	return memes, nil
}

type assocKey struct {
	userID, memeID, tagID uint
}

type fakeTagStore struct {
	tags   map[uint]*model.Tag
	assocs map[assocKey]bool
	nextID uint
	err    error
}

func newFakeTagStore() *fakeTagStore {
	return &fakeTagStore{tags: map[uint]*model.Tag{}, assocs: map[assocKey]bool{}, nextID: 1}
}

func (f *fakeTagStore) Create(_ context.Context, tag *model.Tag) error {
	if f.err != nil {
		return f.err
	}
	tag.ID = f.nextID
	f.nextID++
	tag.CreatedAt = time.Now()
	f.tags[tag.ID] = tag
	return nil
}

func (f *fakeTagStore) GetByUserAndName(_ context.Context, userID uint, name string) (*model.Tag, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, tag := range f.tags {
		if tag.UserID == userID && equalFold(tag.Name, name) {
			copied := *tag
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTagStore) UpdateName(_ context.Context, tagID uint, name string) error {
	tag, exists := f.tags[tagID]
	if !exists {
		return errors.New("no such tag")
	}
	tag.Name = name
	return nil
}

func (f *fakeTagStore) DeleteOwned(_ context.Context, tagID, userID uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	tag, exists := f.tags[tagID]
	if !exists || tag.UserID != userID {
		return 0, nil
	}
	delete(f.tags, tagID)
	for key := range f.assocs {
		if key.tagID == tagID {
			delete(f.assocs, key)
		}
	}
	return 1, nil
}

func (f *fakeTagStore) ListByUser(_ context.Context, userID uint) ([]model.Tag, error) {
	if f.err != nil {
		return nil, f.err
	}
	tags := []model.Tag{}
	for _, tag := range f.tags {
		if tag.UserID == userID {
			tags = append(tags, *tag)
		}
	}
	return tags, nil
}

func (f *fakeTagStore) ListForMeme(_ context.Context, userID, memeID uint) ([]model.Tag, error) {
	if f.err != nil {
		return nil, f.err
	}
	tags := []model.Tag{}
	for key := range f.assocs {
		if key.userID == userID && key.memeID == memeID {
			if tag, exists := f.tags[key.tagID]; exists {
				tags = append(tags, *tag)
			}
		}
	}
	return tags, nil
}

func (f *fakeTagStore) AddToMeme(_ context.Context, userID, memeID, tagID uint) error {
	if f.err != nil {
		return f.err
	}
	f.assocs[assocKey{userID, memeID, tagID}] = true
	return nil
}

func (f *fakeTagStore) RemoveFromMeme(_ context.Context, userID, memeID, tagID uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	key := assocKey{userID, memeID, tagID}
	if !f.assocs[key] {
		return 0, nil
	}
	delete(f.assocs, key)
	return 1, nil
}

func (f *fakeTagStore) TouchLastUsed(_ context.Context, tagID uint) error {
	tag, exists := f.tags[tagID]
	if !exists {
		return errors.New("no such tag")
	}
	now := time.Now()
	tag.LastUsed = &now
	return nil
}

type fakeActivityStore struct {
	events []model.ActivityEvent
	err    error
}

func (f *fakeActivityStore) Create(_ context.Context, event *model.ActivityEvent) error {
	if f.err != nil {
		return f.err
	}
	event.ID = uint(len(f.events) + 1)
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeActivityStore) ListRecentByUser(_ context.Context, userID uint, limit int) ([]model.ActivityEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	events := []model.ActivityEvent{}
	for i := len(f.events) - 1; i >= 0 && len(events) < limit; i-- {
		if f.events[i].UserID == userID {
			events = append(events, f.events[i])
		}
	}
	return events, nil
}

type fakePublisher struct {
	events []model.ActivityEvent
	err    error
}

func (f *fakePublisher) PublishActivity(_ context.Context, event model.ActivityEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fakeSeenCache struct {
	seen      map[string][]uint
	markCalls int
	err       error
}

func newFakeSeenCache() *fakeSeenCache {
	return &fakeSeenCache{seen: map[string][]uint{}}
}

func (f *fakeSeenCache) SeenIDs(_ context.Context, viewer string) ([]uint, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.seen[viewer], nil
}

func (f *fakeSeenCache) MarkSeen(_ context.Context, viewer string, ids []uint) error {
	f.markCalls++
	if f.err != nil {
		return f.err
	}
	f.seen[viewer] = append(f.seen[viewer], ids...)
	return nil
}

func containsFold(haystack, needle string) bool {
	return len(needle) <= len(haystack) && indexFold(haystack, needle) >= 0
}

func indexFold(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if equalFold(haystack[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
