package usecase

import (
	"strings"

	"github.com/giftshop/storefront/internal/domain"
)

// secondPinnedOffset is how many reordered products precede the second pinned one.
const secondPinnedOffset = 10

// PrioritizerConfig holds the load-time ordering rules.
type PrioritizerConfig struct {
	PinnedIDs []string // At most two product codes; the first leads the catalog
	Keywords  []string // Matching products move ahead of the rest
}

// Prioritizer reorders the full catalog once per load.
type Prioritizer struct {
	first, second string
	keywords      []string
}

// NewPrioritizer creates a prioritizer. Keywords are matched case-insensitively.
func NewPrioritizer(cfg PrioritizerConfig) *Prioritizer {
	p := &Prioritizer{}
	if len(cfg.PinnedIDs) > 0 {
		p.first = strings.TrimSpace(cfg.PinnedIDs[0])
	}
	if len(cfg.PinnedIDs) > 1 {
		p.second = strings.TrimSpace(cfg.PinnedIDs[1])
	}
	for _, kw := range cfg.Keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			p.keywords = append(p.keywords, kw)
		}
	}
	return p
}

// Prioritize returns a reordered copy of products. Keyword matches come first,
// each group in its original order. With both pinned products present the first
// goes to index 0 and the second right after the next ten products; a lone
// pinned product is simply prepended.
func (p *Prioritizer) Prioritize(products []domain.Product) []domain.Product {
	firstIdx := p.indexOf(products, p.first)
	secondIdx := p.indexOf(products, p.second)
	if secondIdx == firstIdx {
		secondIdx = -1
	}

	matched := make([]domain.Product, 0, len(products))
	var rest []domain.Product
	for i, prod := range products {
		if i == firstIdx || i == secondIdx {
			continue
		}
		if len(p.keywords) > 0 && containsAny(prod.Name+" "+prod.Description, p.keywords) {
			matched = append(matched, prod)
		} else {
			rest = append(rest, prod)
		}
	}
	reordered := append(matched, rest...)

	result := make([]domain.Product, 0, len(products))
	switch {
	case firstIdx >= 0 && secondIdx >= 0:
		cut := min(secondPinnedOffset, len(reordered))
		result = append(result, products[firstIdx])
		result = append(result, reordered[:cut]...)
		result = append(result, products[secondIdx])
		result = append(result, reordered[cut:]...)
	case firstIdx >= 0:
		result = append(result, products[firstIdx])
		result = append(result, reordered...)
	case secondIdx >= 0:
		result = append(result, products[secondIdx])
		result = append(result, reordered...)
	default:
		result = append(result, reordered...)
	}
	return result
}

func (p *Prioritizer) indexOf(products []domain.Product, productID string) int {
	if productID == "" {
		return -1
	}
	for i, prod := range products {
		if strings.EqualFold(prod.ProductID, productID) {
			return i
		}
	}
	return -1
}
