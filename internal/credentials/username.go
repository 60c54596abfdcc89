package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Word lists for suggested learner usernames
var adjectives = []string{
	"happy", "sunny", "brave", "bright", "calm", "swift", "clever", "gentle",
	"kind", "quiet", "lucky", "green", "golden", "early", "friendly", "proud",
	"steady", "cheerful", "eager", "patient", "warm", "careful", "curious", "bold",
}

var nouns = []string{
	"river", "maple", "harbor", "garden", "meadow", "robin", "falcon", "otter",
	"lantern", "compass", "bridge", "island", "valley", "orchard", "sparrow", "willow",
	"comet", "canyon", "forest", "pebble", "summit", "breeze", "heron", "beacon",
}

// GenerateUsername returns a suggestion like "calm-river-42". Suggestions
// are random and not checked for uniqueness.
func GenerateUsername() (string, error) {
	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}

	noun, err := randomElement(nouns)
	if err != nil {
		return "", err
	}

	n, err := rand.Int(rand.Reader, big.NewInt(100))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%02d", adjective, noun, n.Int64()), nil
}

// randomElement picks a random element from a string slice
func randomElement(slice []string) (string, error) {
	if len(slice) == 0 {
		return "", nil
	}

	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}

	return slice[num.Int64()], nil
}
