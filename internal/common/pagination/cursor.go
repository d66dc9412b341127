package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CursorPrefix is the literal the server's array-connection encoder puts
// before the decimal offset.
const CursorPrefix = "arrayconnection:"

// ErrInvalidCursor indicates a cursor that was not produced by the server encoder.
var ErrInvalidCursor = errors.New("invalid cursor")

// DecodeError describes why a cursor could not be decoded.
// It matches ErrInvalidCursor with errors.Is.
type DecodeError struct {
	Cursor string
	Reason string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode cursor %q: %s", e.Cursor, e.Reason)
}

// Unwrap returns ErrInvalidCursor.
func (e *DecodeError) Unwrap() error {
	return ErrInvalidCursor
}

// EncodeCursor returns the opaque cursor for an offset.
// Offset 0 maps to the empty string, which the protocol reads as "from the
// beginning"; every other offset is base64("arrayconnection:<offset>").
// Negative offsets are clamped to 0 and also encode as "".
func EncodeCursor(offset int) string {
	if offset <= 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(CursorPrefix + strconv.Itoa(offset)))
}

// DecodeCursor returns the offset encoded in cursor.
// The empty cursor decodes to 0.
func DecodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}

	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, &DecodeError{Cursor: cursor, Reason: "not base64"}
	}

	s := string(raw)
	if !strings.HasPrefix(s, CursorPrefix) {
		return 0, &DecodeError{Cursor: cursor, Reason: "missing " + CursorPrefix + " prefix"}
	}

	offset, err := strconv.Atoi(strings.TrimPrefix(s, CursorPrefix))
	if err != nil {
		return 0, &DecodeError{Cursor: cursor, Reason: "offset is not an integer"}
	}
	if offset < 0 {
		return 0, &DecodeError{Cursor: cursor, Reason: "negative offset"}
	}
	return offset, nil
}
