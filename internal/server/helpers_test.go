package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param string
		want  string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"commentId", "comment ID"},
		{"somethingElse", "somethingElse"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeParam(tt.param), tt.param)
	}
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "/posts/42/", postDetailPath(42))
	assert.Equal(t, "/profile/leo/", profilePath("leo"))
}
