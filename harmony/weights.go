package harmony

// Weights holds the tuning constants for the note-weight model. The
// numbers are empirical; behavioral compatibility matters more than
// theoretic purity, so treat them as fixed defaults rather than values
// to re-derive.
type Weights struct {
	// Category bases.
	ChordToneBase float64
	ExtensionBase float64
	InKeyBase     float64
	TensionBase   float64

	// Function-specific multipliers.
	DominantLeadingTone float64 // 7th scale degree under a dominant chord
	DominantAlteredTone float64 // tones acting as 7th / b9 / #9
	TonicFirstDegree    float64
	TonicSeventhDegree  float64
	SubdominantFourth   float64

	// Consonance bonus when the chord quality matches the diatonic
	// triad built on its scale degree. Optional: 1.0 disables it.
	ConsonantTriad   float64
	ConsonantSeventh float64 // dominant seventh on the 5th degree
}

// Optional consonance bonus values.
const (
	ConsonanceTriadBonus   = 1.1
	ConsonanceSeventhBonus = 1.15
)

// DefaultWeights returns the production weight constants.
func DefaultWeights() Weights {
	return Weights{
		ChordToneBase: 100,
		ExtensionBase: 65,
		InKeyBase:     25,
		TensionBase:   8,

		DominantLeadingTone: 1.4,
		DominantAlteredTone: 1.3,
		TonicFirstDegree:    1.2,
		TonicSeventhDegree:  0.6,
		SubdominantFourth:   1.2,

		ConsonantTriad:   1.0,
		ConsonantSeventh: 1.0,
	}
}

// WithConsonanceBonus returns a copy of w with the consonance bonus
// enabled. The bonus scales every chord tone, root included, so the
// root still carries the maximum weight.
func (w Weights) WithConsonanceBonus() Weights {
	w.ConsonantTriad = ConsonanceTriadBonus
	w.ConsonantSeventh = ConsonanceSeventhBonus
	return w
}

// Position modifier by harmonic interval from the chord root.
func positionModifier(interval int) float64 {
	switch ((interval % 12) + 12) % 12 {
	case 0: // root
		return 1.0
	case 3, 4: // third
		return 0.95
	case 7: // fifth
		return 0.85
	case 10, 11: // seventh / major seventh
		return 0.75
	case 2: // ninth
		return 0.65
	case 5, 9: // eleventh / thirteenth
		return 0.55
	case 1, 6: // altered ninth / eleventh
		return 0.5
	default:
		return 0.4
	}
}
