package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "versioned image URL",
			url:  "https://res.cloudinary.com/demo/image/upload/v1712345678/group_uploads/abc123.jpg",
			want: "group_uploads/abc123",
		},
		{
			name: "no version segment",
			url:  "https://res.cloudinary.com/demo/image/upload/blog_uploads/photo.png",
			want: "blog_uploads/photo",
		},
		{
			name: "folder starting with v but not a version",
			url:  "https://res.cloudinary.com/demo/image/upload/videos/clip.mp4",
			want: "videos/clip",
		},
		{
			name: "not a cloudinary delivery URL",
			url:  "https://example.com/some/file.jpg",
			want: "",
		},
		{
			name: "empty",
			url:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicIDFromURL(tt.url))
		})
	}
}
