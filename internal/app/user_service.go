package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"memeverse/internal/model"
)

type UserService struct {
	users UserStore
	memes MemeStore
}

// LikedMemeSummary is the id + media type pair shown on profile pages.
type LikedMemeSummary struct {
	ID        uint   `json:"id"`
	MediaType string `json:"media_type"`
}

type Profile struct {
	Username   string             `json:"username"`
	CreatedAt  time.Time          `json:"created_at"`
	Bio        *string            `json:"bio"`
	LikedMemes []LikedMemeSummary `json:"liked_memes"`
}

type CurrentProfile struct {
	Username       string            `json:"username"`
	MemberSince    string            `json:"member_since"`
	Bio            *string           `json:"bio"`
	NavbarSettings map[string]string `json:"navbar_settings"`
}

type UserSummary struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	LikeCount int       `json:"like_count"`
}

type SearchResult struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewUserService(users UserStore, memes MemeStore) *UserService {
	return &UserService{users: users, memes: memes}
}

// Authenticate verifies the presented password against the stored bcrypt
// hash. A single boolean keeps unknown-username and wrong-password
// failures indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) bool {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		log.Printf("authentication error for %q: %v", username, err)
		return false
	}
	if user == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// ResolveCaller turns an authenticated username into the identity the
// transport layer embeds in the session token.
func (s *UserService) ResolveCaller(ctx context.Context, username string) (*Caller, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &Caller{UserID: user.ID, Username: user.Username}, nil
}

func (s *UserService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		LikedMemes:   model.StringList{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameExists
		}
		log.Printf("registration error for %q: %v", username, err)
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}

// GetProfile resolves the user's liked list into meme summaries, newest
// like first. IDs whose meme has since been deleted are skipped.
// Returns (nil, nil) when the user does not exist.
func (s *UserService) GetProfile(ctx context.Context, username string) (*Profile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	liked := make([]LikedMemeSummary, 0, len(user.LikedMemes))
	for i := len(user.LikedMemes) - 1; i >= 0; i-- {
		id, err := strconv.ParseUint(user.LikedMemes[i], 10, 64)
		if err != nil {
			continue
		}
		meme, err := s.memes.GetByID(ctx, uint(id))
		if err != nil {
			log.Printf("resolve liked meme %s failed: %v", user.LikedMemes[i], err)
			continue
		}
		if meme == nil {
			continue
		}
		liked = append(liked, LikedMemeSummary{ID: meme.ID, MediaType: meme.MediaType})
	}

	return &Profile{
		Username:   user.Username,
		CreatedAt:  user.CreatedAt,
		Bio:        user.Bio,
		LikedMemes: liked,
	}, nil
}

// GetCurrentProfile is the session-bound profile. Navbar settings come
// from ui_settings.navbar; older rows stored the navbar object directly
// as ui_settings, so a missing navbar key falls back to the whole
// object. The fallback is deliberate legacy-format support.
func (s *UserService) GetCurrentProfile(ctx context.Context, caller *Caller) (*CurrentProfile, error) {
	if caller == nil {
		return nil, nil
	}

	user, err := s.users.GetByUsername(ctx, caller.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	return &CurrentProfile{
		Username:       user.Username,
		MemberSince:    user.CreatedAt.Format("January 2006"),
		Bio:            user.Bio,
		NavbarSettings: navbarSettings(user.UISettings),
	}, nil
}

// UpdateBio trims and persists. Persistence failures degrade to false.
func (s *UserService) UpdateBio(ctx context.Context, caller *Caller, bio string) bool {
	if caller == nil {
		return false
	}
	if err := s.users.UpdateBio(ctx, caller.Username, strings.TrimSpace(bio)); err != nil {
		log.Printf("update bio for %q failed: %v", caller.Username, err)
		return false
	}
	return true
}

// UpdateNavbarSettings merges the navbar object into ui_settings under a
// row lock so concurrent saves from the same user cannot lose updates.
func (s *UserService) UpdateNavbarSettings(ctx context.Context, caller *Caller, settings map[string]string) error {
	if caller == nil {
		return ErrNotLoggedIn
	}

	updated, err := s.users.UpdateLocked(ctx, caller.Username, func(user *model.User) error {
		current := map[string]interface{}{}
		if len(user.UISettings) > 0 {
			if err := json.Unmarshal(user.UISettings, &current); err != nil {
				current = map[string]interface{}{}
			}
		}
		current["navbar"] = settings

		merged, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("marshal ui settings failed: %w", err)
		}
		user.UISettings = merged
		return nil
	})
	if err != nil {
		return err
	}
	if updated == nil {
		return ErrUserNotFound
	}
	return nil
}

// ListAllUsers derives like_count from the liked_memes array length.
// Store errors degrade to an empty list.
func (s *UserService) ListAllUsers(ctx context.Context) []UserSummary {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		log.Printf("list users failed: %v", err)
		return []UserSummary{}
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{
			Username:  u.Username,
			CreatedAt: u.CreatedAt,
			LikeCount: len(u.LikedMemes),
		})
	}
	return summaries
}

// Search matches usernames by substring and memes by description.
func (s *UserService) Search(ctx context.Context, query string) ([]SearchResult, error) {
	results := []SearchResult{}
	if query == "" {
		return results, nil
	}

	users, err := s.users.SearchByUsername(ctx, query, 10)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		results = append(results, SearchResult{Type: "user", Data: map[string]string{"username": u.Username}})
	}

	memes, err := s.memes.SearchByDescription(ctx, query, 10)
	if err != nil {
		return nil, err
	}
	for _, m := range memes {
		results = append(results, SearchResult{Type: "meme", Data: LikedMemeSummary{ID: m.ID, MediaType: m.MediaType}})
	}
	return results, nil
}

// navbarSettings extracts the navbar object from raw ui_settings JSON.
// Non-string values and malformed JSON are dropped rather than surfaced.
func navbarSettings(raw []byte) map[string]string {
	settings := map[string]string{}
	if len(raw) == 0 {
		return settings
	}

	var uiSettings map[string]interface{}
	if err := json.Unmarshal(raw, &uiSettings); err != nil {
		return settings
	}

	source := uiSettings
	if navbar, ok := uiSettings["navbar"].(map[string]interface{}); ok {
		source = navbar
	}
	for key, value := range source {
		if str, ok := value.(string); ok {
			settings[key] = str
		}
	}
	return settings
}
