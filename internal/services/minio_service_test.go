package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileImageObject(t *testing.T) {
	tests := []struct {
		contentType string
		ok          bool
		ext         string
	}{
		{"image/jpeg", true, ".jpg"},
		{"image/png", true, ".png"},
		{" IMAGE/WEBP ", true, ".webp"},
		{"image/gif", false, ""},
		{"application/pdf", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			name, ok := profileImageObject(7, tt.contentType)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Regexp(t, regexp.MustCompile(`^trainers/7/[0-9a-f-]{36}`+regexp.QuoteMeta(tt.ext)+`$`), name)
			}
		})
	}
}

func TestProfileImageObject_Unique(t *testing.T) {
	a, _ := profileImageObject(1, "image/png")
	b, _ := profileImageObject(1, "image/png")
	assert.NotEqual(t, a, b)
}

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/profiles/trainers/1/a.png",
		objectURL("http://localhost:9000/", "profiles", "trainers/1/a.png"))
	assert.Equal(t, "https://cdn.example.com/profiles/x.jpg",
		objectURL("https://cdn.example.com", "profiles", "x.jpg"))
}
