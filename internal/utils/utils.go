package utils

import (
	"mime"
	"regexp"
	"strings"
)

// truncatedSuffix marks data cut by Truncate.
const truncatedSuffix = "... [truncated]"

// textContentTypePatterns is a slice of regular expressions that match content types
// considered to be text-based. This includes "text/*", "application/json", and
// "application/problem+json".
//
//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
var textContentTypePatterns = []*regexp.Regexp{
	regexp.MustCompile("^text/.+"),
	regexp.MustCompile("^application/json$"),
	regexp.MustCompile(`^application/[a-z0-9.+-]+\+json$`),
}

// IsTextContentType checks if the given content type represents a text-based format.
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

// Truncate returns data as a string cut to maxLength bytes.
// A zero maxLength disables truncation.
func Truncate(data []byte, maxLength uint64) string {
	if maxLength > 0 && uint64(len(data)) > maxLength {
		return string(data[:maxLength]) + truncatedSuffix
	}

	return string(data)
}

// FirstNonEmpty returns the first non-empty value.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
