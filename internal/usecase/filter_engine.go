package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/giftshop/storefront/internal/domain"
)

// Filter price bands in whole naira.
const (
	under50kCeiling   = 50000
	midBandFloor      = 50000
	midBandCeiling    = 100000
	premiumFilterFrom = 120000

	trendingFloor   = 40000
	trendingCeiling = 100000
	trendingLimit   = 50
)

// categoryKeywords drive the keyword-based browse groups. Matching is plain
// substring containment over lowercased "name description".
var categoryKeywords = map[domain.CategoryTag][]string{
	domain.CategoryTagForHer: {
		"necklace", "bracelet", "earring", "handbag", "perfume", "lingerie",
		"rose", "flower", "jewelry", "jewellery", "for her", "women",
	},
	domain.CategoryTagForHim: {
		"watch", "wallet", "cologne", "boxers", "cufflink", "belt",
		"car key", "key fob", "military", "whiskey", "for him", "men's",
	},
	domain.CategoryTagRomantic: {
		"love", "rose", "heart", "valentine", "couple", "teddy", "wine", "romantic",
	},
	domain.CategoryTagBirthday: {
		"birthday", "cake", "balloon", "cupcake", "surprise", "party",
	},
	domain.CategoryTagSweets: {
		"chocolate", "candy", "cake", "cookie", "sweet", "ferrero", "doughnut",
	},
}

// FilterEngine narrows product lists by predefined predicates.
type FilterEngine struct{}

// NewFilterEngine creates a filter engine
func NewFilterEngine() *FilterEngine {
	return &FilterEngine{}
}

// ApplyTags parses raw filter and category tags and applies them.
func (e *FilterEngine) ApplyTags(products []domain.Product, filterTag, categoryTag string) ([]domain.Product, error) {
	filter, err := domain.ParseFilterTag(filterTag)
	if err != nil {
		return nil, err
	}
	category, err := domain.ParseCategoryTag(categoryTag)
	if err != nil {
		return nil, err
	}
	return e.Apply(products, filter, category)
}

// Apply narrows products by the filter predicate, then by the category group.
// Relative order is preserved. products is taken to be in catalog order.
func (e *FilterEngine) Apply(products []domain.Product, filter domain.FilterTag, category domain.CategoryTag) ([]domain.Product, error) {
	return e.ApplyRanked(products, nil, filter, category)
}

// ApplyRanked is Apply for lists that are not in catalog order, such as search
// results. positions maps product ID to catalog index; the trending cap keeps
// the earliest catalog entries while the result keeps the order of products.
func (e *FilterEngine) ApplyRanked(products []domain.Product, positions map[int]int, filter domain.FilterTag, category domain.CategoryTag) ([]domain.Product, error) {
	keep, err := filterPredicate(filter)
	if err != nil {
		return nil, err
	}
	result := selectProducts(products, keep, 0)

	if category == domain.CategoryTagNone {
		return result, nil
	}

	if category == domain.CategoryTagTrending {
		return trending(result, positions), nil
	}

	keywords, ok := categoryKeywords[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	return selectProducts(result, func(p domain.Product) bool {
		return containsAny(p.Name+" "+p.Description, keywords)
	}, 0), nil
}

// trending keeps the first trendingLimit products in the price band, counted
// in catalog order.
func trending(products []domain.Product, positions map[int]int) []domain.Product {
	inBand := func(p domain.Product) bool {
		return p.PriceValue > trendingFloor && p.PriceValue < trendingCeiling
	}
	if positions == nil {
		return selectProducts(products, inBand, trendingLimit)
	}

	band := selectProducts(products, inBand, 0)
	if len(band) <= trendingLimit {
		return band
	}

	position := func(p domain.Product) int {
		if i, ok := positions[p.ID]; ok {
			return i
		}
		return math.MaxInt
	}
	order := make([]int, len(band))
	for i, p := range band {
		order[i] = position(p)
	}
	sort.Ints(order)
	cutoff := order[trendingLimit-1]

	return selectProducts(band, func(p domain.Product) bool {
		return position(p) <= cutoff
	}, trendingLimit)
}

func filterPredicate(filter domain.FilterTag) (func(domain.Product) bool, error) {
	switch filter {
	case domain.FilterNone:
		return func(domain.Product) bool { return true }, nil
	case domain.FilterUnder50k:
		return func(p domain.Product) bool { return p.PriceValue > 0 && p.PriceValue < under50kCeiling }, nil
	case domain.Filter50to100k:
		return func(p domain.Product) bool { return p.PriceValue >= midBandFloor && p.PriceValue <= midBandCeiling }, nil
	case domain.FilterPremium:
		return func(p domain.Product) bool { return p.PriceValue >= premiumFilterFrom }, nil
	case domain.FilterSameDay:
		return func(p domain.Product) bool { return p.SameDay }, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFilter, filter)
	}
}

// selectProducts keeps products satisfying keep, stopping after limit matches
// when limit is positive.
func selectProducts(products []domain.Product, keep func(domain.Product) bool, limit int) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !keep(p) {
			continue
		}
		result = append(result, p)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}

func containsAny(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
