package util

import (
	"encoding/base64"
	"testing"
)

func TestGenerateBase64Key(t *testing.T) {
	key, err := GenerateBase64Key(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := base64.URLEncoding.DecodeString(key)
	if err != nil {
		t.Fatalf("key is not valid base64: %v", err)
	}
	if len(decoded) != 32 {
		t.Fatalf("expected 32 decoded bytes, got %d", len(decoded))
	}
}

func TestGenerateBase64KeyRejectsOtherSizes(t *testing.T) {
	for _, size := range []int{0, 16, 31, 64} {
		if _, err := GenerateBase64Key(size); err == nil {
			t.Errorf("size %d: expected an error", size)
		}
	}
}

func TestFormatStaffID(t *testing.T) {
	cases := []struct {
		seq  int64
		want string
	}{
		{1, "STF-0001"},
		{42, "STF-0042"},
		{9999, "STF-9999"},
		{10000, "STF-10000"},
	}
	for _, c := range cases {
		if got := FormatStaffID(c.seq); got != c.want {
			t.Errorf("seq %d: expected %q, got %q", c.seq, c.want, got)
		}
	}
}
