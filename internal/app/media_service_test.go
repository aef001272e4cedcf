package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memeverse/internal/model"
)

func TestServeMedia(t *testing.T) {
	ctx := context.Background()
	memes := newFakeMemeStore()
	memes.add(7, model.MediaTypeImage, []byte("jpeg-bytes"))
	memes.add(8, model.MediaTypeVideo, []byte("mp4-bytes"))
	memes.add(9, "weird", []byte("???"))
	svc := NewMediaService(memes)

	image, err := svc.ServeMedia(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, image)
	assert.Equal(t, []byte("jpeg-bytes"), image.Data)
	assert.Equal(t, "image/jpeg", image.ContentType)
	assert.Equal(t, "media_7.jpg", image.Filename)

	video, err := svc.ServeMedia(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", video.ContentType)
	assert.Equal(t, "media_8.mp4", video.Filename)

	blob, err := svc.ServeMedia(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", blob.ContentType)
	assert.Equal(t, "media_9.bin", blob.Filename)
}

func TestServeMediaMissing(t *testing.T) {
	ctx := context.Background()
	memes := newFakeMemeStore()
	memes.add(5, model.MediaTypeImage, nil) // row exists, payload never stored
	svc := NewMediaService(memes)

	content, err := svc.ServeMedia(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, content)

	content, err = svc.ServeMedia(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, content)
}

func TestServeMediaStoreError(t *testing.T) {
	memes := newFakeMemeStore()
	memes.err = errors.New("db down")
	svc := NewMediaService(memes)

	_, err := svc.ServeMedia(context.Background(), 1)
	assert.Error(t, err)
}
