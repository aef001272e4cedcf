package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"memeverse/internal/model"
)

func seedUser(t *testing.T, store *fakeUserStore, username, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		LikedMemes:   model.StringList{},
	}
	require.NoError(t, store.Create(context.Background(), user))
	return user
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	svc := NewUserService(users, newFakeMemeStore())

	require.NoError(t, svc.Register(ctx, "alice", "s3cret-pass"))

	err := svc.Register(ctx, "alice", "other-pass")
	assert.ErrorIs(t, err, ErrUsernameExists)

	assert.True(t, svc.Authenticate(ctx, "alice", "s3cret-pass"))
	assert.False(t, svc.Authenticate(ctx, "alice", "wrong"))
	assert.False(t, svc.Authenticate(ctx, "nobody", "s3cret-pass"))
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserStore(), newFakeMemeStore())

	assert.ErrorIs(t, svc.Register(ctx, "", "pass"), ErrInvalidInput)
	assert.ErrorIs(t, svc.Register(ctx, "bob", ""), ErrInvalidInput)
}

func TestResolveCaller(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	alice := seedUser(t, users, "alice", "pw")
	svc := NewUserService(users, newFakeMemeStore())

	caller, err := svc.ResolveCaller(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, caller.UserID)
	assert.Equal(t, "alice", caller.Username)

	_, err = svc.ResolveCaller(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetProfileNewestFirstSkipsDeleted(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	memes := newFakeMemeStore()
	memes.add(1, model.MediaTypeImage, []byte{1})
	memes.add(3, model.MediaTypeVideo, []byte{1})

	alice := seedUser(t, users, "alice", "pw")
	alice.LikedMemes = model.StringList{"1", "2", "3"} // 2 no longer exists

	svc := NewUserService(users, memes)
	profile, err := svc.GetProfile(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, profile)

	require.Len(t, profile.LikedMemes, 2)
	assert.Equal(t, uint(3), profile.LikedMemes[0].ID)
	assert.Equal(t, model.MediaTypeVideo, profile.LikedMemes[0].MediaType)
	assert.Equal(t, uint(1), profile.LikedMemes[1].ID)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), newFakeMemeStore())
	profile, err := svc.GetProfile(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestGetCurrentProfile(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	alice := seedUser(t, users, "alice", "pw")
	alice.CreatedAt = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	alice.UISettings = datatypes.JSON(`{"navbar":{"pc":"top","mobile":"bottom"}}`)

	svc := NewUserService(users, newFakeMemeStore())

	profile, err := svc.GetCurrentProfile(ctx, &Caller{UserID: alice.ID, Username: "alice"})
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "March 2024", profile.MemberSince)
	assert.Equal(t, map[string]string{"pc": "top", "mobile": "bottom"}, profile.NavbarSettings)

	anon, err := svc.GetCurrentProfile(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, anon)
}

func TestNavbarSettingsLegacyFallback(t *testing.T) {
	// Older rows stored the navbar object as the whole ui_settings value.
	legacy := navbarSettings([]byte(`{"PC":"left","Mobile":"bottom"}`))
	assert.Equal(t, map[string]string{"PC": "left", "Mobile": "bottom"}, legacy)

	nested := navbarSettings([]byte(`{"theme":"dark","navbar":{"pc":"top"}}`))
	assert.Equal(t, map[string]string{"pc": "top"}, nested)

	assert.Empty(t, navbarSettings(nil))
	assert.Empty(t, navbarSettings([]byte(`not json`)))
	assert.Empty(t, navbarSettings([]byte(`{"navbar":{"pc":42}}`)))
}

func TestUpdateNavbarSettingsMergePreservesOtherKeys(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	alice := seedUser(t, users, "alice", "pw")
	alice.UISettings = datatypes.JSON(`{"theme":"dark"}`)

	svc := NewUserService(users, newFakeMemeStore())
	caller := &Caller{UserID: alice.ID, Username: "alice"}
	require.NoError(t, svc.UpdateNavbarSettings(ctx, caller, map[string]string{"pc": "top"}))

	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal(alice.UISettings, &stored))
	assert.Equal(t, "dark", stored["theme"])
	assert.Equal(t, map[string]interface{}{"pc": "top"}, stored["navbar"])

	assert.ErrorIs(t, svc.UpdateNavbarSettings(ctx, nil, nil), ErrNotLoggedIn)
	assert.ErrorIs(t, svc.UpdateNavbarSettings(ctx, &Caller{Username: "ghost"}, nil), ErrUserNotFound)
}

func TestUpdateBio(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	alice := seedUser(t, users, "alice", "pw")
	svc := NewUserService(users, newFakeMemeStore())

	assert.True(t, svc.UpdateBio(ctx, &Caller{UserID: alice.ID, Username: "alice"}, "  hello  "))
	require.NotNil(t, alice.Bio)
	assert.Equal(t, "hello", *alice.Bio)

	assert.False(t, svc.UpdateBio(ctx, nil, "hello"))
	assert.False(t, svc.UpdateBio(ctx, &Caller{Username: "ghost"}, "hello"))
}

func TestListAllUsersLikeCount(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	alice := seedUser(t, users, "alice", "pw")
	alice.LikedMemes = model.StringList{"1", "2", "3"}
	seedUser(t, users, "bob", "pw")

	svc := NewUserService(users, newFakeMemeStore())
	summaries := svc.ListAllUsers(ctx)
	require.Len(t, summaries, 2)

	counts := map[string]int{}
	for _, s := range summaries {
		counts[s.Username] = s.LikeCount
	}
	assert.Equal(t, 3, counts["alice"])
	assert.Equal(t, 0, counts["bob"])
}

func TestSearchMixesUsersAndMemes(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	seedUser(t, users, "catlady", "pw")
	memes := newFakeMemeStore()
	desc := "grumpy cat at work"
	memes.memes[7] = &model.Meme{ID: 7, MediaType: model.MediaTypeImage, Description: &desc, FileData: []byte{1}}

	svc := NewUserService(users, memes)

	results, err := svc.Search(ctx, "cat")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "user", results[0].Type)
	assert.Equal(t, "meme", results[1].Type)

	empty, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
