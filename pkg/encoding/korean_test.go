package encoding

import (
	"bytes"
	"errors"
	"testing"
)

func TestFixedStringRoundTrip(t *testing.T) {
	tests := []string{"grass", "water", "", "지형"}

	for _, s := range tests {
		field, err := PutFixedString(s, 40)
		if err != nil {
			t.Fatalf("PutFixedString(%q) failed: %v", s, err)
		}
		if len(field) != 40 {
			t.Errorf("expected 40 bytes, got %d", len(field))
		}
		if got := FixedString(field); got != s {
			t.Errorf("expected %q, got %q", s, got)
		}
	}
}

func TestPutFixedStringKorean(t *testing.T) {
	field, err := PutFixedString("지형", 8)
	if err != nil {
		t.Fatalf("PutFixedString failed: %v", err)
	}
	// Two Hangul syllables take two bytes each in EUC-KR
	if i := bytes.IndexByte(field, 0); i != 4 {
		t.Errorf("expected 4 encoded bytes, got %d", i)
	}
}

func TestPutFixedStringTooLong(t *testing.T) {
	_, err := PutFixedString("lakeshore", 9)
	if !errors.Is(err, ErrStringTooLong) {
		t.Errorf("expected ErrStringTooLong, got %v", err)
	}

	if _, err := PutFixedString("lakeshore", 10); err != nil {
		t.Errorf("expected 9 chars to fit 10 bytes, got %v", err)
	}
}

func TestFixedStringWithoutNull(t *testing.T) {
	if got := FixedString([]byte("rock")); got != "rock" {
		t.Errorf("expected rock, got %q", got)
	}
}
