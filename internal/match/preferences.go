package match

// Preferences is the hand-tuned weight table applied on top of the raw
// overlap score. Entries are written as tokens (stemmed forms), not whole
// words. The value is immutable once handed to a Scorer.
type Preferences struct {
	// Tokens maps a single token to a signed weight, added once per
	// occurrence of the token in a vacancy.
	Tokens map[string]float64 `mapstructure:"tokens" yaml:"tokens"`
	// Phrases are groups of token sequences sharing one weight.
	Phrases []PhraseGroup `mapstructure:"phrases" yaml:"phrases"`
}

// PhraseGroup adds its weight once for every sequence in the group that
// appears contiguously in a vacancy's token stream.
type PhraseGroup struct {
	Sequences [][]string `mapstructure:"sequences" yaml:"sequences"`
	Score     float64    `mapstructure:"score" yaml:"score"`
}
