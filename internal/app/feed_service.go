package app

import (
	"context"
	"fmt"
	"log"
)

// FeedItem is the wire shape served to the scroller. MediaURL is the
// derived serving path, never the original source URL.
type FeedItem struct {
	ID        string `json:"id"`
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
}

type FeedService struct {
	memes MemeStore
	seen  SeenCache
}

// NewFeedService builds the feed. seen may be nil, in which case the
// feed is plain random sampling with possible repeats across pages.
func NewFeedService(memes MemeStore, seen SeenCache) *FeedService {
	return &FeedService{memes: memes, seen: seen}
}

// GetFeedItems samples up to count memes store-side at random. hasMore
// is true iff the store returned exactly count rows; random sampling
// means this is a heuristic, not a guarantee. count <= 0 short-circuits
// without touching the store.
//
// Authenticated callers get a best-effort bias against repeats: IDs
// recently served to them are excluded from the sample and the new batch
// is recorded. Cache failures fall back to plain random.
func (s *FeedService) GetFeedItems(ctx context.Context, caller *Caller, count int) ([]FeedItem, bool) {
	if count <= 0 {
		return []FeedItem{}, false
	}

	var exclude []uint
	if caller != nil && s.seen != nil {
		ids, err := s.seen.SeenIDs(ctx, caller.Username)
		if err != nil {
			log.Printf("feed seen cache read failed for %q: %v", caller.Username, err)
		} else {
			exclude = ids
		}
	}

	memes, err := s.memes.Random(ctx, count, exclude)
	if err != nil {
		log.Printf("feed query failed: %v", err)
		return []FeedItem{}, false
	}

	items := make([]FeedItem, 0, len(memes))
	served := make([]uint, 0, len(memes))
	for _, m := range memes {
		items = append(items, FeedItem{
			ID:        fmt.Sprintf("%d", m.ID),
			MediaType: m.MediaType,
			MediaURL:  fmt.Sprintf("/media/%d", m.ID),
		})
		served = append(served, m.ID)
	}

	if caller != nil && s.seen != nil && len(served) > 0 {
		if err := s.seen.MarkSeen(ctx, caller.Username, served); err != nil {
			log.Printf("feed seen cache write failed for %q: %v", caller.Username, err)
		}
	}

	return items, len(items) == count
}

// GetTotalItems counts feed-eligible memes; 0 on store error.
func (s *FeedService) GetTotalItems(ctx context.Context) int64 {
	count, err := s.memes.CountWithData(ctx)
	if err != nil {
		log.Printf("count feed items failed: %v", err)
		return 0
	}
	return count
}
