// Package classify maps game titles to output buckets and filenames.
package classify

import (
	"strings"
	"unicode/utf8"
)

// FallbackName is used when a title sanitizes down to nothing, so the
// write never fails on an empty path component. The leading underscore
// classifies such entries into the "_" bucket.
const FallbackName = "_untitled"

// maxNameLen bounds the base filename to keep full paths well under
// filesystem limits once the output dir and bucket are prepended.
const maxNameLen = 100

// illegal holds characters that are invalid in filenames on at least
// one supported platform.
const illegal = `/\:*?"<>|`

// Sanitize strips filesystem-illegal characters from a title and
// normalizes whitespace. Returns FallbackName if nothing survives.
func Sanitize(title string) string {
	var sb strings.Builder
	for _, r := range title {
		if strings.ContainsRune(illegal, r) {
			continue
		}
		sb.WriteRune(r)
	}

	name := sb.String()
	// ".." components are path-traversal bait even after the slashes
	// are gone.
	name = strings.ReplaceAll(name, "..", "_")
	// Collapse runs of whitespace to single spaces.
	name = strings.Join(strings.Fields(name), " ")
	// Trailing dots and spaces are rejected on Windows.
	name = strings.Trim(name, ". ")

	if len(name) > maxNameLen {
		// Back the cut off to a rune boundary so a multi-byte
		// character is never split.
		end := maxNameLen
		for end > 0 && !utf8.RuneStart(name[end]) {
			end--
		}
		cut := name[:end]
		if idx := strings.LastIndex(cut, " "); idx > 0 {
			cut = cut[:idx]
		}
		name = strings.Trim(cut, ". ")
	}

	if name == "" {
		return FallbackName
	}
	return name
}

// Filename returns the sanitized title with the .md extension.
func Filename(title string) string {
	return Sanitize(title) + ".md"
}

// Bucket returns the output subfolder for a title: "A".."Z" for
// letters, "0-9" for digits, "_" for everything else. The bucket is
// computed from the sanitized name so that filter, filename and
// subfolder always agree.
func Bucket(title string) string {
	name := Sanitize(title)
	first := name[0]
	switch {
	case first >= '0' && first <= '9':
		return "0-9"
	case first >= 'a' && first <= 'z':
		return string(first - 'a' + 'A')
	case first >= 'A' && first <= 'Z':
		return string(first)
	default:
		return "_"
	}
}
