package domain

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// Category is the closed set of catalog categories derived from product names.
type Category string

const (
	CategoryJewelry       Category = "Jewelry"
	CategoryTeddy         Category = "Teddy Bears"
	CategoryFlowers       Category = "Flowers"
	CategoryGiftBaskets   Category = "Gift Baskets"
	CategoryFood          Category = "Food"
	CategoryWineTreats    Category = "Wine & Treats"
	CategoryCustom        Category = "Custom Gifts"
	CategoryChristmas     Category = "Christmas"
	CategoryWatches       Category = "Watches"
	CategoryCarKeys       Category = "Car Keys"
	CategoryMilitary      Category = "Military"
	CategoryUnderwear     Category = "Underwear"
	CategoryWineChocolate Category = "Wine & Chocolate"
	CategoryOther         Category = "Other"
)

// AllCategories lists every category in classifier precedence order.
var AllCategories = []Category{
	CategoryJewelry,
	CategoryTeddy,
	CategoryFlowers,
	CategoryGiftBaskets,
	CategoryFood,
	CategoryWineTreats,
	CategoryCustom,
	CategoryChristmas,
	CategoryWatches,
	CategoryCarKeys,
	CategoryMilitary,
	CategoryUnderwear,
	CategoryWineChocolate,
	CategoryOther,
}

// Slug returns the URL-safe form of the category, e.g. "wine-and-treats".
func (c Category) Slug() string {
	return slug.Make(string(c))
}

// Badge is a presentation label computed from price and category.
type Badge string

const (
	BadgeNone           Badge = ""
	BadgeBudgetFriendly Badge = "Budget-Friendly"
	BadgeBestValue      Badge = "Best Value"
	BadgePremium        Badge = "Premium"
	BadgeHot            Badge = "Hot"
)

// FilterTag is a predefined numeric-range or boolean predicate.
type FilterTag string

const (
	FilterNone     FilterTag = ""
	FilterUnder50k FilterTag = "under50k"
	Filter50to100k FilterTag = "50k-100k"
	FilterPremium  FilterTag = "premium"
	FilterSameDay  FilterTag = "same-day"
)

var filterTags = []FilterTag{FilterUnder50k, Filter50to100k, FilterPremium, FilterSameDay}

// ParseFilterTag maps a raw tag onto the closed enumeration.
// The empty string and "all" mean no filter.
func ParseFilterTag(s string) (FilterTag, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return FilterNone, nil
	}
	for _, t := range filterTags {
		if string(t) == s {
			return t, nil
		}
	}
	return FilterNone, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// CategoryTag is a browse group matched by keywords (or price band for trending).
type CategoryTag string

const (
	CategoryTagNone     CategoryTag = ""
	CategoryTagForHer   CategoryTag = "for-her"
	CategoryTagForHim   CategoryTag = "for-him"
	CategoryTagRomantic CategoryTag = "romantic"
	CategoryTagBirthday CategoryTag = "birthday"
	CategoryTagSweets   CategoryTag = "sweets"
	CategoryTagTrending CategoryTag = "trending"
)

var categoryTags = []CategoryTag{
	CategoryTagForHer,
	CategoryTagForHim,
	CategoryTagRomantic,
	CategoryTagBirthday,
	CategoryTagSweets,
	CategoryTagTrending,
}

// ParseCategoryTag maps a raw tag onto the closed enumeration.
func ParseCategoryTag(s string) (CategoryTag, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return CategoryTagNone, nil
	}
	for _, t := range categoryTags {
		if string(t) == s {
			return t, nil
		}
	}
	return CategoryTagNone, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
