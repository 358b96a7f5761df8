package theory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale_AllKeysDiatonic(t *testing.T) {
	modes := []Mode{ModeMajor, ModeMinor, ModeHarmonicMinor, ModeMelodicMinor}

	for tonic := 0; tonic < 12; tonic++ {
		for _, mode := range modes {
			key := Key{Tonic: tonic, Mode: mode}
			scale := key.Scale()

			assert.Len(t, scale, 7, "%s: scale must have 7 pitch classes", key)
			assert.Equal(t, tonic, scale[0], "%s: scale must start at the tonic", key)
			assert.True(t, key.Contains(tonic), "%s: scale must contain the tonic", key)

			seen := map[int]bool{}
			for _, pc := range scale {
				assert.GreaterOrEqual(t, pc, 0)
				assert.Less(t, pc, 12)
				assert.False(t, seen[pc], "%s: duplicate pitch class %d", key, pc)
				seen[pc] = true
			}
		}
	}
}

func TestScale_KnownSets(t *testing.T) {
	cMajor := Key{Tonic: 0, Mode: ModeMajor}
	assert.Equal(t, []int{0, 2, 4, 5, 7, 9, 11}, cMajor.Scale())

	aMinor := Key{Tonic: 9, Mode: ModeMinor}
	assert.Equal(t, []int{9, 11, 0, 2, 4, 5, 7}, aMinor.Scale())

	aHarmonic := Key{Tonic: 9, Mode: ModeHarmonicMinor}
	assert.Equal(t, []int{9, 11, 0, 2, 4, 5, 8}, aHarmonic.Scale())
}

func TestParseKey_CombinedAndSeparateAgree(t *testing.T) {
	tests := []struct {
		name     string
		tonic    string
		mode     string
		expected Key
	}{
		{"separate major", "C", "major", Key{Tonic: 0, Mode: ModeMajor}},
		{"separate minor", "A", "minor", Key{Tonic: 9, Mode: ModeMinor}},
		{"combined m", "Am", "", Key{Tonic: 9, Mode: ModeMinor}},
		{"combined min", "C#min", "", Key{Tonic: 1, Mode: ModeMinor}},
		{"combined minor word", "Ebminor", "", Key{Tonic: 3, Mode: ModeMinor}},
		{"combined with redundant mode", "Am", "minor", Key{Tonic: 9, Mode: ModeMinor}},
		{"flat tonic", "Bb", "major", Key{Tonic: 10, Mode: ModeMajor}},
		{"unicode flat", "B♭", "major", Key{Tonic: 10, Mode: ModeMajor}},
		{"lowercase tonic", "g", "minor", Key{Tonic: 7, Mode: ModeMinor}},
		{"harmonic minor", "A", "harmonic minor", Key{Tonic: 9, Mode: ModeHarmonicMinor}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParseKey(tt.tonic, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestParseKey_Invalid(t *testing.T) {
	invalid := []struct {
		tonic string
		mode  string
	}{
		{"H", "major"},
		{"", "major"},
		{"C", "dorian"},
		{"Xm", ""},
	}

	for _, tt := range invalid {
		_, err := ParseKey(tt.tonic, tt.mode)
		require.Error(t, err, "tonic=%q mode=%q", tt.tonic, tt.mode)

		var keyErr *InvalidKeyError
		assert.True(t, errors.As(err, &keyErr), "tonic=%q mode=%q should yield InvalidKeyError", tt.tonic, tt.mode)
	}
}

func TestNoteToPitchClass(t *testing.T) {
	pc, err := NoteToPitchClass("F#")
	require.NoError(t, err)
	assert.Equal(t, 6, pc)

	pc, err = NoteToPitchClass("Gb")
	require.NoError(t, err)
	assert.Equal(t, 6, pc)

	_, err = NoteToPitchClass("Q")
	assert.Error(t, err)
}
