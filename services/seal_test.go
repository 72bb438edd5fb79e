package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennylimz/anime-character-guessr/models"
)

func TestSealRoundTrip(t *testing.T) {
	sealer, err := NewAnswerSealer("test-secret")
	require.NoError(t, err)

	character := &models.Character{
		ID:     42,
		Name:   "Rem",
		NameCN: "蕾姆",
		Gender: models.GenderFemale,
		Tags:   map[string]int{"女仆": 9},
	}

	sealed, err := sealer.Seal(character)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "Rem", "密文不应泄露角色名")
	assert.NotContains(t, sealed, "蕾姆")

	got, err := sealer.Reveal(sealed)
	require.NoError(t, err)
	assert.Equal(t, character, got)
}

func TestSealNonDeterministic(t *testing.T) {
	sealer, err := NewAnswerSealer("test-secret")
	require.NoError(t, err)

	character := &models.Character{ID: 1, Name: "Rem"}
	a, err := sealer.Seal(character)
	require.NoError(t, err)
	b, err := sealer.Seal(character)
	require.NoError(t, err)

	// 每次密封使用随机nonce
	assert.NotEqual(t, a, b)
}

func TestRevealRejectsTampered(t *testing.T) {
	sealer, err := NewAnswerSealer("test-secret")
	require.NoError(t, err)

	sealed, err := sealer.Seal(&models.Character{ID: 1, Name: "Rem"})
	require.NoError(t, err)

	tampered := []byte(sealed)
	if tampered[0] == 'A' {
		tampered[0] = 'B'
	} else {
		tampered[0] = 'A'
	}
	_, err = sealer.Reveal(string(tampered))
	assert.Error(t, err)

	_, err = sealer.Reveal("短")
	assert.Error(t, err)

	// 不同密钥不能解封
	other, err := NewAnswerSealer("another-secret")
	require.NoError(t, err)
	_, err = other.Reveal(sealed)
	assert.Error(t, err)
}
