package confirmcode

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestGenerate_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := Generate()
		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)
	}
}

func TestGenerate_NoObviousRepeats(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		code, err := Generate()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}

	// 36^8 вариантов: на тысяче генераций коллизии практически исключены
	assert.Greater(t, len(seen), 990)
}

func TestAppendUnbiased_RejectsTailBytes(t *testing.T) {
	// Байты 252-255 отбрасываются: иначе A-D выпадали бы чаще остальных
	assert.Empty(t, appendUnbiased(nil, []byte{252, 253, 254, 255}))

	out := appendUnbiased(nil, []byte{0, 35, 36, 251})
	assert.Equal(t, "A9A9", string(out))
}

func TestAppendUnbiased_UniformPreimages(t *testing.T) {
	// На [0, 252) у каждого символа алфавита ровно 7 прообразов
	counts := make(map[byte]int)
	for b := 0; b < maxUnbiasedByte; b++ {
		out := appendUnbiased(nil, []byte{byte(b)})
		require.Len(t, out, 1)
		counts[out[0]]++
	}

	require.Len(t, counts, len(alphabet))
	for _, c := range []byte(alphabet) {
		assert.Equal(t, 7, counts[c], "символ %c", c)
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("A1B2C3D4", "A1B2C3D4"))

	assert.False(t, Matches("A1B2C3D4", "a1b2c3d4"), "сравнение с учётом регистра")
	assert.False(t, Matches("A1B2C3D4", "A1B2C3D5"))
	assert.False(t, Matches("A1B2C3D4", ""))
	assert.False(t, Matches("", ""), "пустой сохранённый код никогда не совпадает")
}
