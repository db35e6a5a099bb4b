package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum_KnownVector(t *testing.T) {
	// sha256("hello")
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		Sum("hello"))
}

func TestSum_EmptyContent(t *testing.T) {
	// sha256("")
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Sum(""))
}

func TestSum_Deterministic(t *testing.T) {
	c := "# Notes\n\nSome markdown content.\n"
	assert.Equal(t, Sum(c), Sum(c))
}

func TestSum_DistinctContentDistinctDigest(t *testing.T) {
	assert.NotEqual(t, Sum("a"), Sum("b"))
	assert.NotEqual(t, Sum("content"), Sum("content "))
}
