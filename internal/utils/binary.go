package utils

import "unicode/utf8"

// SniffLength is the maximum number of bytes inspected when detecting binary content.
const SniffLength = 8000

// IsBinary reports whether the provided byte slice appears to contain binary data.
// A null byte or invalid UTF-8 marks the data as binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return false
}
