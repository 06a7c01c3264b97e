package rulesbot

// Scorer rates the similarity of two strings.
type Scorer interface {
	// Ratio returns a similarity between 0 and 100, where 100 means the
	// strings are identical.
	Ratio(a, b string) int
}
