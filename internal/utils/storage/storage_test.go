package storage

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicLinkRoundTrip(t *testing.T) {
	s := &awsS3{bucket: "ecosync", region: "ap-southeast-1"}

	link := s.GetPublicLinkKey("pickups/abc.png")
	assert.Equal(t, "https://ecosync.s3.ap-southeast-1.amazonaws.com/pickups/abc.png", link)
	assert.Equal(t, "pickups/abc.png", s.GetObjectKeyFromLink(link))
	assert.Equal(t, "", s.GetObjectKeyFromLink("https://example.com/pickups/abc.png"))
}

func TestDisabledStorage(t *testing.T) {
	s := &awsS3{}
	file := &multipart.FileHeader{
		Filename: "bottles.png",
		Header:   textproto.MIMEHeader{"Content-Type": {"image/png"}},
	}

	assert.False(t, s.Enabled())
	_, err := s.UploadFile("abc", file, "pickups", AllowImage...)
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestBuildObjectKey(t *testing.T) {
	assert.Equal(t, "pickups/abc.jpg", buildObjectKey("pickups", "abc", "Photo.JPG"))
}

func TestIsAllowed(t *testing.T) {
	assert.True(t, isAllowed("image/png", AllowImage))
	assert.False(t, isAllowed("application/pdf", AllowImage))
	assert.True(t, isAllowed("application/pdf", nil))
}
