// Package encoding converts between UTF-8 and the EUC-KR fixed-width strings
// used by Ragnarok Online map formats.
package encoding

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// ErrStringTooLong is returned when an encoded string does not fit its field.
var ErrStringTooLong = errors.New("string too long for fixed field")

// DecodeEUCKR converts EUC-KR bytes to UTF-8. Undecodable input is returned
// as-is.
func DecodeEUCKR(data []byte) string {
	result, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// EncodeEUCKR converts UTF-8 to EUC-KR bytes.
func EncodeEUCKR(s string) ([]byte, error) {
	result, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("encoding %q as EUC-KR: %w", s, err)
	}
	return result, nil
}

// FixedString decodes a null-terminated EUC-KR field.
func FixedString(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return DecodeEUCKR(data)
}

// PutFixedString encodes s into a null-padded field of size bytes, keeping
// at least one terminating null.
func PutFixedString(s string, size int) ([]byte, error) {
	encoded, err := EncodeEUCKR(s)
	if err != nil {
		return nil, err
	}
	if len(encoded) >= size {
		return nil, fmt.Errorf("%w: %q needs %d bytes, field has %d", ErrStringTooLong, s, len(encoded)+1, size)
	}
	field := make([]byte, size)
	copy(field, encoded)
	return field, nil
}
