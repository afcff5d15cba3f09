package crypto

import (
	"errors"
	"strings"
)

// APIKeyPrefix distinguishes platform API keys from other bearer token
// schemes sharing the Authorization header.
const APIKeyPrefix = "sfx_"

// keyDelimiter separates the public identifier from the secret. It is
// excluded from the token alphabet, so a well-formed key always splits into
// exactly two segments.
const keyDelimiter = "."

// ErrMalformedAPIKey indicates a token that does not parse as an API key.
// Callers must not surface the distinction between malformed and invalid
// credentials to the network.
var ErrMalformedAPIKey = errors.New("malformed api key")

// EncodeAPIKey builds the externally presented key string from its public
// identifier and secret.
func EncodeAPIKey(publicID, secret string) string {
	return APIKeyPrefix + publicID + keyDelimiter + secret
}

// DecodeAPIKey splits an external key string into its public identifier and
// secret. It returns ErrMalformedAPIKey if the prefix is missing, the
// structure is wrong, or either segment is empty or carries characters
// outside the token alphabet.
func DecodeAPIKey(token string) (publicID, secret string, err error) {
	body, ok := strings.CutPrefix(token, APIKeyPrefix)
	if !ok {
		return "", "", ErrMalformedAPIKey
	}

	parts := strings.Split(body, keyDelimiter)
	if len(parts) != 2 {
		return "", "", ErrMalformedAPIKey
	}
	if !isTokenSegment(parts[0]) || !isTokenSegment(parts[1]) {
		return "", "", ErrMalformedAPIKey
	}

	return parts[0], parts[1], nil
}

// LooksLikeAPIKey reports whether a bearer token is shaped like one of our
// API keys. It is a cheap pre-filter and implies nothing about validity.
func LooksLikeAPIKey(token string) bool {
	return strings.HasPrefix(token, APIKeyPrefix)
}

func isTokenSegment(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
