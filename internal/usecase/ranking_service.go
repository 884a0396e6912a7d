package usecase

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/giftshop/storefront/internal/domain"
	"go.uber.org/zap"
)

// Per-field weights in the composite product score.
const (
	weightName        = 1.0
	weightDescription = 0.7
	weightCategory    = 0.5
	weightVariant     = 0.6
)

// Fuzzy match weights.
const (
	substringWeight   = 2.0
	wordPrefixWeight  = 1.5
	subsequenceWeight = 0.5

	// Queries this long or longer never fall back to subsequence matching.
	maxSubsequenceQueryLen = 4
)

// matchStrategy is one step of the fuzzy cascade. text and query arrive lowercased.
type matchStrategy struct {
	name   string
	weight float64
	match  func(text, query string) bool
}

// fuzzyStrategies run in order; the first that matches decides the weight.
var fuzzyStrategies = []matchStrategy{
	{name: "substring", weight: substringWeight, match: strings.Contains},
	{name: "word-prefix", weight: wordPrefixWeight, match: wordPrefixMatch},
	{name: "subsequence", weight: subsequenceWeight, match: boundedSubsequenceMatch},
}

// FuzzyMatch scores how well query matches text: 2 for a case-insensitive
// substring, 1.5 when a word of text starts with query, 0.5 for an in-order
// character subsequence of a short query, else 0.
func FuzzyMatch(text, query string) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || text == "" {
		return 0
	}
	text = strings.ToLower(text)

	for _, s := range fuzzyStrategies {
		if s.match(text, query) {
			return s.weight
		}
	}
	return 0
}

// wordPrefixMatch checks each whitespace-delimited word, both as written and
// with punctuation removed, so "valentine's" answers to "valentines".
func wordPrefixMatch(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, query) || strings.HasPrefix(stripPunctuation(word), query) {
			return true
		}
	}
	return false
}

// boundedSubsequenceMatch reports whether the runes of a short query appear
// in order within text.
func boundedSubsequenceMatch(text, query string) bool {
	if utf8.RuneCountInString(query) >= maxSubsequenceQueryLen {
		return false
	}

	want := []rune(query)
	i := 0
	for _, r := range text {
		if r == want[i] {
			i++
			if i == len(want) {
				return true
			}
		}
	}
	return false
}

func stripPunctuation(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, word)
}

// RankingService scores and orders products against free-text queries.
type RankingService struct {
	logger *zap.Logger
}

// NewRankingService creates a ranking service. A nil logger disables debug output.
func NewRankingService(logger *zap.Logger) *RankingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RankingService{logger: logger}
}

// Score is the weighted sum of the fuzzy weights of each product field.
// Only the best-matching variant name counts.
func (s *RankingService) Score(p domain.Product, query string) float64 {
	bestVariant := 0.0
	for _, v := range p.Variants {
		if w := FuzzyMatch(v.Name, query); w > bestVariant {
			bestVariant = w
		}
	}

	return weightName*FuzzyMatch(p.Name, query) +
		weightDescription*FuzzyMatch(p.Description, query) +
		weightCategory*FuzzyMatch(string(p.Category), query) +
		weightVariant*bestVariant
}

// SearchScored returns the products with a non-zero score, best first. Equal
// scores keep catalog order.
func (s *RankingService) SearchScored(products []domain.Product, query string) []domain.ScoredProduct {
	query = strings.TrimSpace(query)

	scored := make([]domain.ScoredProduct, 0)
	for _, p := range products {
		if score := s.Score(p, query); score > 0 {
			scored = append(scored, domain.ScoredProduct{Product: p, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if ce := s.logger.Check(zap.DebugLevel, "search ranked"); ce != nil {
		top := ""
		if len(scored) > 0 {
			top = scored[0].Product.Name
		}
		ce.Write(zap.String("query", query), zap.Int("matches", len(scored)), zap.String("top", top))
	}

	return scored
}

// Search narrows products to those matching query, ranked. An empty query
// returns the full list unchanged.
func (s *RankingService) Search(products []domain.Product, query string) []domain.Product {
	if strings.TrimSpace(query) == "" {
		return products
	}

	scored := s.SearchScored(products, query)
	result := make([]domain.Product, len(scored))
	for i, sp := range scored {
		result[i] = sp.Product
	}
	return result
}
