package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LengthAndPool(t *testing.T) {
	for i := 0; i < 200; i++ {
		pw := Generate(DefaultLength)
		require.Len(t, pw, DefaultLength)
		for _, r := range pw {
			assert.True(t, strings.ContainsRune(Pool, r), "unexpected %q in %q", r, pw)
		}
	}
}

func TestGenerate_Empty(t *testing.T) {
	assert.Equal(t, "", Generate(0))
	assert.Equal(t, "", Generate(-3))
	assert.Equal(t, "", GenerateStrong(0))
}

func TestGenerate_Varies(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 20; i++ {
		seen[Generate(DefaultLength)] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestGenerateStrong_AlwaysScoresMax(t *testing.T) {
	for _, n := range []int{8, 9, 12, 16, 64} {
		for i := 0; i < 100; i++ {
			pw := GenerateStrong(n)
			require.Len(t, pw, n)
			res := Check(pw)
			assert.Equal(t, MaxScore, res.Score, "%q", pw)
			assert.Empty(t, res.Feedback)
		}
	}
}

func TestGenerateStrong_ShortCoversClasses(t *testing.T) {
	for i := 0; i < 100; i++ {
		pw := GenerateStrong(4)
		require.Len(t, pw, 4)
		assert.True(t, strings.ContainsAny(pw, Upper), pw)
		assert.True(t, strings.ContainsAny(pw, Lower), pw)
		assert.True(t, strings.ContainsAny(pw, Digits), pw)
		assert.True(t, strings.ContainsAny(pw, Specials), pw)
	}
}

func TestGenerateStrong_BelowFourFallsBack(t *testing.T) {
	pw := GenerateStrong(3)
	require.Len(t, pw, 3)
	for _, r := range pw {
		assert.True(t, strings.ContainsRune(Pool, r))
	}
}
