//go:build unit

package apikey_test

import (
	"regexp"
	"testing"

	"reimburse-api/internal/pkg/apikey"

	"github.com/stretchr/testify/assert"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, apikey.Hash("some-key"), apikey.Hash("some-key"))
	})

	t.Run("64 hex characters", func(t *testing.T) {
		for _, key := range []string{"", "a", "some-longer-api-key-material", "キー"} {
			assert.Regexp(t, hexPattern, apikey.Hash(key))
		}
	})

	t.Run("distinct inputs produce distinct digests", func(t *testing.T) {
		assert.NotEqual(t, apikey.Hash("key-a"), apikey.Hash("key-b"))
		assert.NotEqual(t, apikey.Hash("key"), apikey.Hash("key "))
	})
}

func TestVerify(t *testing.T) {
	hash := apikey.Hash("valid-key")

	assert.True(t, apikey.Verify("valid-key", hash))
	assert.False(t, apikey.Verify("wrong-key", hash))
	assert.False(t, apikey.Verify("valid-key", "not-a-hash"))
}
