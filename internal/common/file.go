package common

import (
	"os"
	"unicode/utf8"
)

// ReadTextFile reads an SGF file as text. Files in the wild are sometimes
// in legacy encodings; when the bytes are not valid UTF-8, every byte above
// 0x7F is dropped so the parser still gets clean text. Game moves and
// structure are plain ASCII, so only comment and name content degrades.
func ReadTextFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return DecodeText(raw), nil
}

// DecodeText applies the same fallback to bytes already in memory.
func DecodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	filtered := make([]byte, 0, len(raw))
	for _, b := range raw {
		if b <= 0x7f {
			filtered = append(filtered, b)
		}
	}
	return string(filtered)
}
