// Package keywords suggests product keywords from free-text descriptions.
package keywords

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mark-chris/prodcat/internal/textnorm"
	"go.uber.org/zap"
)

// Strategy selects an extraction algorithm.
type Strategy string

// Strategies.
const (
	StrategyDomain  Strategy = "domain"
	StrategyGeneric Strategy = "generic"
)

// Default result bounds per strategy.
const (
	DefaultDomainMax  = 12
	DefaultGenericMax = 8
	minWordLength     = 3
)

var (
	// ErrMalformedInput is returned for text that is not valid UTF-8.
	ErrMalformedInput = errors.New("malformed input: text is not valid UTF-8")
	// ErrUnknownStrategy is returned for a strategy name other than domain or generic.
	ErrUnknownStrategy = errors.New("unknown keyword strategy")
)

var (
	specPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?[wva]+`),
		regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?(?:mm|cm|m|kg)`),
		regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:watts|volts|amperes)`),
	}
	technicalPattern = regexp.MustCompile(`(?i)^[0-9]+[wvak]$`)
	nonWordPattern   = regexp.MustCompile(`[^\w\s-]`)
)

// ParseStrategy validates a strategy name. Empty means StrategyDomain.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyDomain:
		return StrategyDomain, nil
	case StrategyGeneric:
		return StrategyGeneric, nil
	default:
		return "", fmt.Errorf("%w: %q (expected domain or generic)", ErrUnknownStrategy, s)
	}
}

// Extractor produces keyword suggestions. It is safe for concurrent use.
type Extractor struct {
	lex    *lexicon
	logger *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used by Suggest.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Extractor over vocab.
func New(vocab Vocabulary, opts ...Option) *Extractor {
	e := &Extractor{
		lex:    compile(vocab),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the given strategy.
func (e *Extractor) Extract(strategy Strategy, text string, max int) ([]string, error) {
	switch strategy {
	case StrategyDomain, "":
		return e.DomainWeighted(text, max)
	case StrategyGeneric:
		return e.Generic(text, max)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// Suggest is the best-effort form of Extract: failures and panics are logged
// and yield an empty list.
func (e *Extractor) Suggest(strategy Strategy, text string, max int) (keywords []string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("keyword extraction panicked",
				zap.String("strategy", string(strategy)),
				zap.Any("panic", r))
			keywords = []string{}
		}
	}()

	keywords, err := e.Extract(strategy, text, max)
	if err != nil {
		e.logger.Warn("keyword extraction failed",
			zap.String("strategy", string(strategy)),
			zap.Error(err))
		return []string{}
	}
	return keywords
}

// DomainWeighted extracts technical specs and vocabulary terms from text and
// orders them by weight. max <= 0 means DefaultDomainMax.
func (e *Extractor) DomainWeighted(text string, max int) ([]string, error) {
	if !utf8.ValidString(text) {
		return nil, ErrMalformedInput
	}
	if max <= 0 {
		max = DefaultDomainMax
	}
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	var specs []string
	for _, re := range specPatterns {
		for _, m := range re.FindAllString(text, -1) {
			specs = append(specs, strings.ToLower(m))
		}
	}

	words := strings.Fields(clean(textnorm.Fold(text)))
	capitalized := capitalizedWords(text)

	candidates := make([]string, 0, len(specs)+2*len(words))
	candidates = append(candidates, specs...)
	for _, w := range words {
		if e.isRelevant(w, capitalized) {
			candidates = append(candidates, w)
		}
	}
	for _, w := range words {
		if e.lex.isDomainTerm(w) {
			candidates = append(candidates, w)
		}
	}

	result := dedupe(candidates)
	sort.SliceStable(result, func(i, j int) bool {
		return e.lex.weight(result[i]) > e.lex.weight(result[j])
	})
	return truncate(result, max), nil
}

// Generic keeps every non-stopword, non-numeric word of three or more letters.
// max <= 0 means DefaultGenericMax.
func (e *Extractor) Generic(text string, max int) ([]string, error) {
	if !utf8.ValidString(text) {
		return nil, ErrMalformedInput
	}
	if max <= 0 {
		max = DefaultGenericMax
	}

	var candidates []string
	for _, w := range strings.Fields(clean(textnorm.Fold(text))) {
		if utf8.RuneCountInString(w) < minWordLength || e.lex.isStopword(w) || isNumeric(w) {
			continue
		}
		candidates = append(candidates, w)
	}
	return truncate(dedupe(candidates), max), nil
}

func (e *Extractor) isRelevant(word string, capitalized map[string]struct{}) bool {
	if utf8.RuneCountInString(word) < minWordLength || e.lex.isStopword(word) {
		return false
	}
	return e.lex.isDomainTerm(word) ||
		technicalPattern.MatchString(word) ||
		has(capitalized, word)
}

// capitalizedWords collects, lowercased, the words of text that start with an
// upper-case letter before lowercasing. Accents are folded first so the result
// lines up with the cleaned word list.
func capitalizedWords(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(clean(textnorm.StripAccents(text))) {
		r, _ := utf8.DecodeRuneInString(w)
		if unicode.IsUpper(r) {
			set[strings.ToLower(w)] = struct{}{}
		}
	}
	return set
}

// clean replaces everything except word characters, whitespace and hyphens with spaces.
func clean(s string) string {
	return strings.TrimSpace(nonWordPattern.ReplaceAllString(s, " "))
}

func isNumeric(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return w != ""
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

func truncate(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
