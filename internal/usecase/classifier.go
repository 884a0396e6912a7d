package usecase

import (
	"regexp"

	"github.com/giftshop/storefront/internal/domain"
)

// Badge price thresholds in whole naira.
const (
	budgetCeiling    = 50000  // Below this is Budget-Friendly
	bestValueCeiling = 100000 // Up to and including this is Best Value
	premiumFloor     = 150000 // Above this is Premium
)

// classifierRule maps names matching include (and not exclude) onto a category.
type classifierRule struct {
	category domain.Category
	emoji    string
	include  *regexp.Regexp
	exclude  *regexp.Regexp
}

func (r classifierRule) matches(name string) bool {
	if r.include == nil {
		return true
	}
	if !r.include.MatchString(name) {
		return false
	}
	return r.exclude == nil || !r.exclude.MatchString(name)
}

// classifierRules is evaluated top to bottom; the first match wins. Flowers and
// Food step aside for wine combos so those reach the Wine & Treats rule.
var classifierRules = []classifierRule{
	{
		category: domain.CategoryJewelry,
		emoji:    "💍",
		include:  regexp.MustCompile(`(?i)\b(necklaces?|bracelets?|earrings?|rings?|pendants?|jewel(le)?ry|anklets?|lockets?)\b`),
	},
	{
		category: domain.CategoryTeddy,
		emoji:    "🧸",
		include:  regexp.MustCompile(`(?i)\b(teddy|teddies|plush|stuffed\s+(animal|bear|toy)s?)\b`),
	},
	{
		category: domain.CategoryFlowers,
		emoji:    "🌹",
		include:  regexp.MustCompile(`(?i)\b(roses?|bouquets?|flowers?|lil(y|ies)|tulips?|orchids?|sunflowers?|floral)\b`),
		exclude:  regexp.MustCompile(`(?i)\bwine\b|\brose\s+gold\b`),
	},
	{
		category: domain.CategoryGiftBaskets,
		emoji:    "🧺",
		include:  regexp.MustCompile(`(?i)\b(hampers?|baskets?|gift\s+box(es)?|care\s+packages?)\b`),
	},
	{
		category: domain.CategoryFood,
		emoji:    "🍰",
		include:  regexp.MustCompile(`(?i)\b(cakes?|cupcakes?|pizzas?|cookies?|doughnuts?|donuts?|snacks?|small\s+chops|jollof|meals?|burgers?|shawarma|parfaits?|brownies?)\b`),
		exclude:  regexp.MustCompile(`(?i)\bwine\b`),
	},
	{
		category: domain.CategoryWineTreats,
		emoji:    "🍷",
		include:  regexp.MustCompile(`(?i)\bwine\b.*\b(cakes?|cupcakes?|roses?|flowers?|treats?)\b|\b(cakes?|cupcakes?|roses?|flowers?|treats?)\b.*\bwine\b`),
	},
	{
		category: domain.CategoryCustom,
		emoji:    "✨",
		include:  regexp.MustCompile(`(?i)\b(custom|customi[sz]ed|personali[sz]ed|engraved|printed|photo)\b`),
	},
	{
		category: domain.CategoryChristmas,
		emoji:    "🎄",
		include:  regexp.MustCompile(`(?i)\b(christmas|xmas|santa|reindeer|festive)\b`),
	},
	{
		category: domain.CategoryWatches,
		emoji:    "⌚",
		include:  regexp.MustCompile(`(?i)\b(watch|watches|wristwatch|smartwatch)\b`),
	},
	{
		category: domain.CategoryCarKeys,
		emoji:    "🔑",
		include:  regexp.MustCompile(`(?i)\b(key\s*fob|car\s*key|smart\s*key|remote\s*key|tesla|mercedes|bmw|toyota|honda|lexus)\b`),
	},
	{
		category: domain.CategoryMilitary,
		emoji:    "🎖️",
		include:  regexp.MustCompile(`(?i)\b(military|army|camouflage|camo|tactical|combat)\b`),
	},
	{
		category: domain.CategoryUnderwear,
		emoji:    "🩲",
		include:  regexp.MustCompile(`(?i)\b(underwear|lingerie|boxers?|briefs|bras?|panties|panty)\b`),
	},
	{
		category: domain.CategoryWineChocolate,
		emoji:    "🍫",
		include:  regexp.MustCompile(`(?i)\b(wines?|champagne|prosecco|chocolates?|ferrero|godiva)\b`),
	},
	{
		category: domain.CategoryOther,
		emoji:    "🎁",
	},
}

// Classify returns the category of the first rule matching name.
func Classify(name string) domain.Category {
	for _, rule := range classifierRules {
		if rule.matches(name) {
			return rule.category
		}
	}
	return domain.CategoryOther
}

// CategoryEmoji returns the display emoji for a category.
func CategoryEmoji(c domain.Category) string {
	for _, rule := range classifierRules {
		if rule.category == c {
			return rule.emoji
		}
	}
	return "🎁"
}

// BadgeFor picks the single badge shown on a product card.
func BadgeFor(priceValue int, category domain.Category) domain.Badge {
	switch {
	case priceValue < budgetCeiling:
		return domain.BadgeBudgetFriendly
	case priceValue <= bestValueCeiling:
		return domain.BadgeBestValue
	case priceValue > premiumFloor:
		return domain.BadgePremium
	case category == domain.CategoryFood:
		return domain.BadgeHot
	default:
		return domain.BadgeNone
	}
}

// NewProductView decorates a product with its presentation-only fields.
func NewProductView(p domain.Product) domain.ProductView {
	return domain.ProductView{
		Product:       p,
		CategoryEmoji: CategoryEmoji(p.Category),
		Badge:         BadgeFor(p.PriceValue, p.Category),
	}
}
