package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTemplates(t *testing.T) {
	tests := []struct {
		name string
		path []string
		want string
	}{
		{
			name: "plain literals",
			path: []string{"docs", "readme"},
			want: "docs://readme",
		},
		{
			name: "group contributes nothing",
			path: []string{"(config)", "app"},
			want: "config://app",
		},
		{
			name: "param directory",
			path: []string{"users", "[userId]", "profile"},
			want: "users://[userId]/profile",
		},
		{
			name: "bracketed filename is a trailing param",
			path: []string{"users", "[userId]"},
			want: "users://[userId]",
		},
		{
			name: "nested groups",
			path: []string{"(internal)", "reports", "(v2)", "[year]", "summary"},
			want: "reports://[year]/summary",
		},
		{
			name: "scheme from first concrete segment after groups",
			path: []string{"(a)", "(b)", "docs", "guide"},
			want: "docs://guide",
		},
		{
			name: "single segment",
			path: []string{"docs"},
			want: "docs://",
		},
		{
			name: "bracketed scheme segment matched literally",
			path: []string{"[tenant]", "settings"},
			want: "tenant://settings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := Derive(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, def.Template)
		})
	}
}

func TestDeriveSegmentKinds(t *testing.T) {
	def, err := Derive([]string{"(users)", "users", "[userId]", "profile"})
	require.NoError(t, err)

	assert.Equal(t, "users", def.Scheme)
	require.Len(t, def.Segments, 2)
	assert.Equal(t, Segment{Kind: SegmentParam, Text: "userId"}, def.Segments[0])
	assert.Equal(t, Segment{Kind: SegmentLiteral, Text: "profile"}, def.Segments[1])
}

func TestDeriveInvalidSegmentName(t *testing.T) {
	tests := []struct {
		name string
		path []string
	}{
		{name: "empty interior", path: []string{"users", "[]"}},
		{name: "space in name", path: []string{"users", "[user id]"}},
		{name: "slash in name", path: []string{"users", "[a/b]"}},
		{name: "dot in name", path: []string{"users", "[a.b]"}},
		{name: "invalid bracketed scheme", path: []string{"[no good]", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(tt.path)
			var invalid *InvalidSegmentNameError
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestDeriveEmptyScheme(t *testing.T) {
	for _, path := range [][]string{
		{},
		{"(only)", "(groups)"},
		{""},
	} {
		_, err := Derive(path)
		assert.True(t, errors.Is(err, ErrEmptyScheme), "path %v should fail with ErrEmptyScheme, got %v", path, err)
	}
}

func TestDeriveIsPure(t *testing.T) {
	path := []string{"docs", "[topic]"}

	first, err := Derive(path)
	require.NoError(t, err)
	second, err := Derive(path)
	require.NoError(t, err)

	assert.Equal(t, first.Template, second.Template)
	assert.Equal(t, first.Segments, second.Segments)
}
