package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/carbonshop/pkg/password"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h := password.New(bcrypt.MinCost)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, h.Verify(hash, "s3cret-pass"))
	assert.ErrorIs(t, h.Verify(hash, "wrong"), password.ErrMismatch)
}

func TestHash_EmptyPassword(t *testing.T) {
	t.Parallel()

	h := password.New(0)
	_, err := h.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}

func TestNew_InvalidCostFallsBack(t *testing.T) {
	t.Parallel()

	h := password.New(-1)
	hash, err := h.Hash("pass")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
