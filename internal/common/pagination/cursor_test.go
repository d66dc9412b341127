package pagination_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relaypager/internal/common/pagination"
)

func TestEncodeCursor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		offset int
		want   string
	}{
		{offset: 0, want: ""},
		{offset: -1, want: ""},
		{offset: -3, want: ""},
		{offset: 1, want: "YXJyYXljb25uZWN0aW9uOjE="},
		{offset: 4, want: "YXJyYXljb25uZWN0aW9uOjQ="},
		{offset: 9, want: "YXJyYXljb25uZWN0aW9uOjk="},
		{offset: 19, want: "YXJyYXljb25uZWN0aW9uOjE5"},
	}

	for _, tt := range tests {
		if got := pagination.EncodeCursor(tt.offset); got != tt.want {
			t.Errorf("EncodeCursor(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func TestDecodeCursor_RoundTrip(t *testing.T) {
	t.Parallel()

	for offset := 0; offset < 500; offset++ {
		got, err := pagination.DecodeCursor(pagination.EncodeCursor(offset))
		require.NoError(t, err, "offset %d", offset)
		assert.Equal(t, offset, got)
	}
}

func TestDecodeCursor_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cursor string
		reason string
	}{
		{name: "not base64", cursor: "!!!not-base64", reason: "not base64"},
		{name: "wrong prefix", cursor: "Ym9ndXM6Mw==", reason: "missing arrayconnection: prefix"},
		{name: "empty offset", cursor: "YXJyYXljb25uZWN0aW9uOg==", reason: "offset is not an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := pagination.DecodeCursor(tt.cursor)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pagination.ErrInvalidCursor))

			var de *pagination.DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.reason, de.Reason)
			assert.Equal(t, tt.cursor, de.Cursor)
		})
	}
}
