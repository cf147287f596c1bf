package filestore

import (
	"bytes"
	"testing"
)

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"empty", nil, false},
		{"text", []byte("hello\tworld\r\n"), false},
		{"utf8", []byte("héllo wörld"), false},
		{"nul", []byte("abc\x00def"), true},
		{"control", bytes.Repeat([]byte{0x01, 'a'}, 10), true},
		{"form feed", []byte("page\fbreak"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBinary(tt.content); got != tt.want {
				t.Errorf("IsBinary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		content string
		want    LineEnding
	}{
		{"", LineEndingLF},
		{"a\nb\n", LineEndingLF},
		{"a\r\nb\r\n", LineEndingCRLF},
		{"a\r\nb\nc\r\n", LineEndingCRLF},
		{"a\nb\nc\r\n", LineEndingLF},
	}
	for _, tt := range tests {
		if got := DetectLineEnding([]byte(tt.content)); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestDecodeEncode(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb")...)
	text, ending, bom := decode(raw)
	if string(text) != "a\nb" {
		t.Errorf("decode text = %q", text)
	}
	if ending != LineEndingCRLF || !bom {
		t.Errorf("decode ending=%v bom=%v", ending, bom)
	}
	if got := encode(string(text), ending, bom); !bytes.Equal(got, raw) {
		t.Errorf("encode = %q, want %q", got, raw)
	}
}
