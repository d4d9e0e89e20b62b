package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBallotDigest(t *testing.T) {
	nonce := []byte("0123456789abcdef0123456789abcdef")

	d1 := BallotDigest(nonce, "CAND-A", GenesisDigest)
	d2 := BallotDigest(nonce, "CAND-A", GenesisDigest)
	assert.Equal(t, d1, d2)
	assert.True(t, strings.HasPrefix(d1, "sha256:"))

	// Any change to the chained inputs yields a different digest.
	assert.NotEqual(t, d1, BallotDigest(nonce, "CAND-B", GenesisDigest))
	assert.NotEqual(t, d1, BallotDigest(nonce, "CAND-A", d1))
	assert.NotEqual(t, d1, BallotDigest([]byte("different nonce material here!!!"), "CAND-A", GenesisDigest))
}
