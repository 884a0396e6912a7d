package feed

import (
	"regexp"
	"strings"

	"github.com/giftshop/storefront/internal/domain"
)

// Positional feed columns.
const (
	colProductID = iota
	colName
	colDescription
	colPrice
	colVariants
	colImage
)

// noDescription is the placeholder some feed rows carry instead of a description.
const noDescription = "No description"

var newlineRun = regexp.MustCompile(`[\r\n]+`)

// BuildMode selects between the two call sites that build products from the feed.
type BuildMode int

const (
	// StorefrontBuild normalizes the "No description" placeholder to empty.
	StorefrontBuild BuildMode = iota
	// StaffBuild keeps descriptions exactly as authored, placeholder included.
	StaffBuild
)

// ClassifyFunc derives a category from a product name.
type ClassifyFunc func(name string) domain.Category

// BuildResult is the outcome of one builder pass over the feed.
type BuildResult struct {
	Products []domain.Product
	Dropped  int // Data rows rejected for a missing identifier or price
}

// Builder maps feed rows onto products.
type Builder struct {
	mode     BuildMode
	classify ClassifyFunc
}

// NewBuilder creates a builder. A nil classify leaves every product in "Other".
func NewBuilder(mode BuildMode, classify ClassifyFunc) *Builder {
	if classify == nil {
		classify = func(string) domain.Category { return domain.CategoryOther }
	}
	return &Builder{mode: mode, classify: classify}
}

// Build parses the whole feed text. The first row is always the header and is
// only used to locate the same-day column. Bad rows are skipped silently.
func (b *Builder) Build(text string) BuildResult {
	rows := SplitRows(text)
	if len(rows) == 0 {
		return BuildResult{Products: []domain.Product{}}
	}

	sameDayCol := SameDayColumn(ParseRow(rows[0]))

	result := BuildResult{Products: make([]domain.Product, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		product, ok := b.buildProduct(ParseRow(row), sameDayCol)
		if !ok {
			result.Dropped++
			continue
		}
		product.ID = len(result.Products) + 1
		result.Products = append(result.Products, product)
	}

	return result
}

// buildProduct maps one row's fields onto a product. It reports false when the
// row has no identifier or no resolvable display price.
func (b *Builder) buildProduct(fields []string, sameDayCol int) (domain.Product, bool) {
	if len(fields) < 2 {
		return domain.Product{}, false
	}

	productID := field(fields, colProductID)
	if productID == "" {
		return domain.Product{}, false
	}

	name := collapseNewlines(field(fields, colName))
	description := collapseNewlines(field(fields, colDescription))
	if b.mode == StorefrontBuild && description == noDescription {
		description = ""
	}

	variants := ParseVariants(field(fields, colVariants))

	price := field(fields, colPrice)
	priceValue := ParsePrice(price)
	if price == "" {
		cheapest, ok := cheapestVariant(variants)
		if !ok {
			return domain.Product{}, false
		}
		price, priceValue = cheapest.Price, cheapest.PriceValue
	}

	sameDay := false
	if sameDayCol >= 0 {
		sameDay = strings.EqualFold(field(fields, sameDayCol), "true")
	}

	return domain.Product{
		ProductID:   productID,
		Name:        name,
		Description: description,
		Price:       price,
		PriceValue:  priceValue,
		Variants:    variants,
		Category:    b.classify(name),
		SameDay:     sameDay,
		ImageURL:    field(fields, colImage),
	}, true
}

// ParseVariants splits a "|"-separated variant blob. Entries that do not look
// like "<name> – <₦price>" are dropped; the rest keep their source order.
func ParseVariants(blob string) []domain.Variant {
	variants := []domain.Variant{}
	if strings.TrimSpace(blob) == "" {
		return variants
	}

	for _, entry := range strings.Split(blob, "|") {
		m := variantPattern.FindStringSubmatch(strings.TrimSpace(entry))
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		variants = append(variants, domain.Variant{
			Name:       name,
			Price:      m[2],
			PriceValue: ParsePrice(m[2]),
		})
	}

	return variants
}

// cheapestVariant returns the lowest-priced variant, the earliest one on ties.
func cheapestVariant(variants []domain.Variant) (domain.Variant, bool) {
	if len(variants) == 0 {
		return domain.Variant{}, false
	}
	cheapest := variants[0]
	for _, v := range variants[1:] {
		if v.PriceValue < cheapest.PriceValue {
			cheapest = v
		}
	}
	return cheapest, true
}

// field returns the i-th field with one more layer of enclosing quotes removed,
// or "" when the row is too short.
func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return unquote(fields[i])
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

func collapseNewlines(s string) string {
	return strings.TrimSpace(newlineRun.ReplaceAllString(s, " "))
}
