package app

import (
	"context"
	"fmt"

	"memeverse/internal/model"
)

// MediaContent is a full media payload plus serving metadata. Byte-range
// slicing, if any, is the transport layer's business.
type MediaContent struct {
	Data        []byte
	ContentType string
	Filename    string
	MediaType   string
}

type MediaService struct {
	memes MemeStore
}

func NewMediaService(memes MemeStore) *MediaService {
	return &MediaService{memes: memes}
}

// ServeMedia returns the blob for id, or (nil, nil) when the row is
// missing or has no stored payload.
func (s *MediaService) ServeMedia(ctx context.Context, id uint) (*MediaContent, error) {
	meme, err := s.memes.GetWithData(ctx, id)
	if err != nil {
		return nil, err
	}
	if meme == nil || len(meme.FileData) == 0 {
		return nil, nil
	}

	contentType, ext := mediaContentType(meme.MediaType)
	return &MediaContent{
		Data:        meme.FileData,
		ContentType: contentType,
		Filename:    fmt.Sprintf("media_%d.%s", id, ext),
		MediaType:   meme.MediaType,
	}, nil
}

// mediaContentType maps the stored media type onto a MIME type and file
// extension. Unrecognized types are served as generic binary.
func mediaContentType(mediaType string) (contentType, ext string) {
	switch mediaType {
	case model.MediaTypeImage:
		return "image/jpeg", "jpg"
	case model.MediaTypeVideo:
		return "video/mp4", "mp4"
	default:
		return "application/octet-stream", "bin"
	}
}
