package ensname_test

import (
	"testing"

	"github.com/enslabs/clubs-admin-api/internal/ensname"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_CanonicalInputUnchanged(t *testing.T) {
	testCases := []string{
		"vitalik.eth",
		"abc.eth",
		"my_club_name.eth",
		"name-with-hyphen.eth",
		"1234.eth",
	}

	for _, name := range testCases {
		t.Run(name, func(t *testing.T) {
			normalized, err := ensname.Normalize(name)
			require.NoError(t, err)
			assert.Equal(t, name, normalized)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	// Given: inputs that normalize successfully
	inputs := []string{
		"Vitalik.eth",
		"  spaced.eth  ",
		"barelabel",
		"ÖNORM.eth",
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			// When: normalizing once and then normalizing the result
			once, err := ensname.Normalize(raw)
			require.NoError(t, err)

			twice, err := ensname.Normalize(once)
			require.NoError(t, err)

			// Then: the second pass changes nothing
			assert.Equal(t, once, twice)
		})
	}
}

func TestNormalize_CaseFolds(t *testing.T) {
	normalized, err := ensname.Normalize("Vitalik.eth")
	require.NoError(t, err)
	assert.Equal(t, "vitalik.eth", normalized)
}

func TestNormalize_AppendsTLDToBareLabel(t *testing.T) {
	normalized, err := ensname.Normalize("vitalik")
	require.NoError(t, err)
	assert.Equal(t, "vitalik.eth", normalized)
}

func TestNormalize_RejectsEmptyInput(t *testing.T) {
	testCases := []string{"", "   ", "\t\n"}

	for _, raw := range testCases {
		_, err := ensname.Normalize(raw)
		assert.ErrorIs(t, err, ensname.ErrEmptyName)
	}
}

func TestNormalize_RejectsForeignTLD(t *testing.T) {
	testCases := []string{"vitalik.com", "vitalik.xyz", "sub.vitalik.org"}

	for _, raw := range testCases {
		_, err := ensname.Normalize(raw)
		assert.ErrorIs(t, err, ensname.ErrUnsupportedTLD)
	}
}

func TestNormalize_RejectsDisallowedCharacters(t *testing.T) {
	testCases := []string{
		"Not A Name!!",
		"has space.eth",
		"bang!.eth",
		"semi;colon.eth",
		"..eth",
	}

	for _, raw := range testCases {
		t.Run(raw, func(t *testing.T) {
			_, err := ensname.Normalize(raw)
			assert.Error(t, err)
		})
	}
}

func TestSafeNormalize_FallsBackToLowercaseTrim(t *testing.T) {
	// Given: a stored name that no longer normalizes
	raw := "  Broken Name!!  "

	// When: safe-normalizing for display
	got := ensname.SafeNormalize(raw)

	// Then: trim+lowercase fallback, no error surfaced
	assert.Equal(t, "broken name!!", got)
}

func TestSafeNormalize_UsesCanonicalFormWhenPossible(t *testing.T) {
	assert.Equal(t, "vitalik.eth", ensname.SafeNormalize("Vitalik.ETH"))
}

func TestLabelLength(t *testing.T) {
	assert.Equal(t, 2, ensname.LabelLength("ab.eth"))
	assert.Equal(t, 7, ensname.LabelLength("vitalik.eth"))
	// rune count, not byte count
	assert.Equal(t, 2, ensname.LabelLength("öö.eth"))
}
