// internal/alias/alias.go

// Package alias generates the human-readable pseudonyms shown to readers in
// place of applicant PII. Uniqueness is best-effort: with the vocabulary below
// there are over sixty thousand combinations, and nothing downstream keys on
// the alias.
package alias

import "math/rand"

var adjectives = []string{
	"amber", "ancient", "bold", "brave", "bright", "calm", "clever", "crimson",
	"curious", "daring", "eager", "fearless", "gentle", "glad", "golden",
	"graceful", "happy", "hidden", "humble", "jolly", "keen", "kind", "lively",
	"lucky", "mellow", "merry", "mighty", "noble", "patient", "plucky", "proud",
	"quick", "quiet", "rapid", "silent", "steady", "swift", "tranquil",
	"vivid", "wise",
}

var animals = []string{
	"albatross", "antelope", "badger", "bison", "canary", "caribou", "cheetah",
	"condor", "cougar", "crane", "dolphin", "falcon", "ferret", "finch", "fox",
	"gazelle", "heron", "ibis", "jaguar", "kestrel", "lemur", "lynx", "marmot",
	"meerkat", "narwhal", "ocelot", "osprey", "otter", "owl", "panther",
	"pelican", "puffin", "raven", "salamander", "sparrow", "stoat", "tapir",
	"toucan", "walrus", "wombat",
}

var colors = []string{
	"amethyst", "azure", "cerulean", "charcoal", "cobalt", "copper", "coral",
	"crimson", "emerald", "fuchsia", "indigo", "ivory", "jade", "lavender",
	"magenta", "maroon", "ochre", "olive", "sapphire", "scarlet", "sienna",
	"silver", "teal", "turquoise", "umber", "vermilion", "violet", "viridian",
}

// Generator produces adjective-animal-color triples from a caller-supplied
// random source.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Next returns a fresh pseudonym such as "plucky-otter-teal".
func (g *Generator) Next() string {
	return adjectives[g.rng.Intn(len(adjectives))] +
		"-" + animals[g.rng.Intn(len(animals))] +
		"-" + colors[g.rng.Intn(len(colors))]
}

// InVocabulary reports whether each segment of a generated alias came from the
// fixed word lists. Exposed for tests.
func InVocabulary(adjective, animal, color string) bool {
	return contains(adjectives, adjective) && contains(animals, animal) && contains(colors, color)
}

func contains(list []string, s string) bool {
	for _, candidate := range list {
		if candidate == s {
			return true
		}
	}
	return false
}
