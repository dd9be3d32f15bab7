package keywords

import (
	"fmt"
	"os"

	"github.com/mark-chris/prodcat/internal/textnorm"
	"gopkg.in/yaml.v3"
)

// Vocabulary holds the term tables that drive domain-weighted extraction.
// All terms are compared after lowercasing and accent folding.
type Vocabulary struct {
	Stopwords    []string    `yaml:"stopwords"`
	ProductTypes []string    `yaml:"product_types"`
	Materials    []string    `yaml:"materials"`
	Finishes     []string    `yaml:"finishes"`
	Ranked       RankedTerms `yaml:"ranked"`
	Weights      Weights     `yaml:"weights"`
}

// RankedTerms are the subsets of each category that earn the category weight.
// An empty subset means the whole category is ranked.
type RankedTerms struct {
	ProductTypes []string `yaml:"product_types"`
	Materials    []string `yaml:"materials"`
	Finishes     []string `yaml:"finishes"`
}

// Weights orders extracted keywords; higher sorts first.
type Weights struct {
	Technical   int `yaml:"technical"`
	ProductType int `yaml:"product_type"`
	Material    int `yaml:"material"`
	Finish      int `yaml:"finish"`
	Default     int `yaml:"default"`
}

// DefaultVocabulary returns the built-in lighting catalog tables (Portuguese).
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Stopwords: []string{
			"de", "com", "em", "na", "no", "para", "por", "e", "a", "o", "as", "os",
			"do", "da", "dos", "das", "ao", "aos", "à", "às", "um", "uma", "uns", "umas",
			"este", "esta", "estes", "estas", "esse", "essa", "esses", "essas",
		},
		ProductTypes: []string{
			"plafon", "pendente", "spot", "luminaria", "lampada", "refletor",
			"embutir", "sobrepor", "decorativo", "decor", "led", "lumos",
		},
		Materials: []string{
			"aluminio", "alumínio", "metal", "acrilico", "acrílico", "vidro",
			"policarbonato", "abs", "zamac", "inox",
		},
		Finishes: []string{
			"preto", "branco", "cromado", "fosco", "acetinado", "microtextura",
			"texturizado", "brilhante", "escovado",
		},
		Ranked: RankedTerms{
			ProductTypes: []string{"plafon", "pendente", "luminaria", "spot", "led"},
			Materials:    []string{"aluminio", "metal", "acrilico", "vidro"},
			Finishes:     []string{"preto", "branco", "cromado", "microtextura"},
		},
		Weights: DefaultWeights(),
	}
}

// DefaultWeights returns the standard weight table.
func DefaultWeights() Weights {
	return Weights{
		Technical:   100,
		ProductType: 90,
		Material:    80,
		Finish:      70,
		Default:     50,
	}
}

// ParseVocabulary decodes a YAML vocabulary. Sections absent from data keep
// their DefaultVocabulary values.
func ParseVocabulary(data []byte) (Vocabulary, error) {
	vocab := DefaultVocabulary()
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return Vocabulary{}, fmt.Errorf("failed to parse vocabulary: %w", err)
	}
	if err := vocab.Validate(); err != nil {
		return Vocabulary{}, err
	}
	return vocab, nil
}

// LoadVocabulary reads a YAML vocabulary file.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return ParseVocabulary(data)
}

// Validate rejects negative weights.
func (v Vocabulary) Validate() error {
	w := v.Weights
	for name, value := range map[string]int{
		"technical":    w.Technical,
		"product_type": w.ProductType,
		"material":     w.Material,
		"finish":       w.Finish,
		"default":      w.Default,
	} {
		if value < 0 {
			return fmt.Errorf("vocabulary weight %s must be >= 0, got %d", name, value)
		}
	}
	return nil
}

// lexicon is the folded, set-based form of a Vocabulary. Read-only after compile.
type lexicon struct {
	stopwords    map[string]struct{}
	productTypes map[string]struct{}
	materials    map[string]struct{}
	finishes     map[string]struct{}

	rankedProductTypes map[string]struct{}
	rankedMaterials    map[string]struct{}
	rankedFinishes     map[string]struct{}

	weights Weights
}

func compile(v Vocabulary) *lexicon {
	lex := &lexicon{
		stopwords:    termSet(v.Stopwords),
		productTypes: termSet(v.ProductTypes),
		materials:    termSet(v.Materials),
		finishes:     termSet(v.Finishes),
		weights:      v.Weights,
	}
	lex.rankedProductTypes = rankedSet(v.Ranked.ProductTypes, lex.productTypes)
	lex.rankedMaterials = rankedSet(v.Ranked.Materials, lex.materials)
	lex.rankedFinishes = rankedSet(v.Ranked.Finishes, lex.finishes)
	return lex
}

// isDomainTerm reports whether word belongs to any vocabulary category.
func (l *lexicon) isDomainTerm(word string) bool {
	return has(l.productTypes, word) || has(l.materials, word) || has(l.finishes, word)
}

func (l *lexicon) isStopword(word string) bool {
	return has(l.stopwords, word)
}

func (l *lexicon) weight(keyword string) int {
	switch {
	case technicalPattern.MatchString(keyword):
		return l.weights.Technical
	case has(l.rankedProductTypes, keyword):
		return l.weights.ProductType
	case has(l.rankedMaterials, keyword):
		return l.weights.Material
	case has(l.rankedFinishes, keyword):
		return l.weights.Finish
	default:
		return l.weights.Default
	}
}

func termSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if folded := textnorm.Fold(t); folded != "" {
			set[folded] = struct{}{}
		}
	}
	return set
}

func rankedSet(terms []string, category map[string]struct{}) map[string]struct{} {
	if len(terms) == 0 {
		return category
	}
	return termSet(terms)
}

func has(set map[string]struct{}, word string) bool {
	_, ok := set[word]
	return ok
}
