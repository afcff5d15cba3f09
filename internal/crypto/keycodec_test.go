package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeAPIKey(t *testing.T) {
	key := EncodeAPIKey("pub123", "secret456")
	assert.Equal(t, "sfx_pub123.secret456", key)
}

func TestDecodeAPIKey_RoundTrip(t *testing.T) {
	key := EncodeAPIKey("AbC123xyz", "ZZtop99")

	publicID, secret, err := DecodeAPIKey(key)
	require.NoError(t, err)
	assert.Equal(t, "AbC123xyz", publicID)
	assert.Equal(t, "ZZtop99", secret)
}

func TestDecodeAPIKey_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"wrong prefix", "pk_abc.def"},
		{"no prefix", "abc.def"},
		{"prefix only", "sfx_"},
		{"no delimiter", "sfx_abcdef"},
		{"too many segments", "sfx_a.b.c"},
		{"empty public id", "sfx_.secret"},
		{"empty secret", "sfx_public."},
		{"disallowed chars in secret", "sfx_public.sec!ret"},
		{"disallowed chars in public id", "sfx_pub lic.secret"},
		{"underscore in segment", "sfx_invalid_key.12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeAPIKey(tt.token)
			assert.ErrorIs(t, err, ErrMalformedAPIKey)
		})
	}
}

func TestLooksLikeAPIKey(t *testing.T) {
	assert.True(t, LooksLikeAPIKey("sfx_anything"))
	assert.True(t, LooksLikeAPIKey("sfx_"))
	assert.False(t, LooksLikeAPIKey("Bearer sfx_x"))
	assert.False(t, LooksLikeAPIKey("not_a_valid_token"))
	assert.False(t, LooksLikeAPIKey(""))
}

// Shape check passing must not imply the token decodes.
func TestLooksLikeAPIKey_DoesNotImplyValid(t *testing.T) {
	token := "sfx_invalid_key_12345"
	assert.True(t, LooksLikeAPIKey(token))
	_, _, err := DecodeAPIKey(token)
	assert.ErrorIs(t, err, ErrMalformedAPIKey)
}
