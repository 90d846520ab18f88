package resource

import (
	"testing"

	"github.com/notaryweb/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHref(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://cdn.example.com/a.jpg", true},
		{"http://example.com", true},
		{"/static/uploads/2024-a.png", true},
		{"//evil.example/a.png", false},
		{"javascript:alert(1)", false},
		{"ftp://files.example.com/a.png", false},
		{"uploads/a.png", false},
		{"/with space.png", false},
		{"/\\evil.example/a.png", false},
		{"/static/a\\b.png", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isHref(tt.raw), tt.raw)
	}
}

func TestIsHTTPURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://tjrj.jus.br", true},
		{"http://example.com/path?q=1", true},
		{"javascript:alert(1)", false},
		{"mailto:cartorio@example.com", false},
		{"/static/uploads/a.png", false},
		{"//evil.example", false},
		{"https://", false},
		{"https:\\\\evil.example", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isHTTPURL(tt.raw), tt.raw)
	}
}

func TestValidateRejectsScriptLinkTarget(t *testing.T) {
	link := db.Link{Name: "Tribunal", URL: "javascript:alert(1)"}
	var verr *ValidationError
	require.ErrorAs(t, Validate(&link), &verr)
	assert.Equal(t, "must be an absolute http(s) URL", verr.Fields["url"])

	link.URL = "https://tjrj.jus.br"
	require.NoError(t, Validate(&link))
}

func TestValidateAcceptsUploadedImagePath(t *testing.T) {
	banner := db.Banner{Title: "Bem-vindo", ImageURL: "/static/uploads/banner.webp"}
	require.NoError(t, Validate(&banner))

	banner.LinkURL = "javascript:alert(1)"
	var verr *ValidationError
	require.ErrorAs(t, Validate(&banner), &verr)
	assert.Equal(t, "must be an http(s) URL or a path starting with /", verr.Fields["linkUrl"])
}
