package usecase

import (
	"testing"

	"github.com/giftshop/storefront/internal/domain"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name string
		want domain.Category
	}{
		{"Gold Heart Necklace", domain.CategoryJewelry},
		{"Giant Teddy Bear", domain.CategoryTeddy},
		{"Red Rose Bouquet", domain.CategoryFlowers},
		{"Luxury Gift Hamper", domain.CategoryGiftBaskets},
		{"Red Velvet Cake", domain.CategoryFood},
		{"Wine and Roses Combo", domain.CategoryWineTreats},
		{"Wine & Cake Combo", domain.CategoryWineTreats},
		{"Personalized Photo Frame", domain.CategoryCustom},
		{"Santa Sack", domain.CategoryChristmas},
		{"Rose Gold Watch", domain.CategoryWatches},
		{"Mercedes Key Fob", domain.CategoryCarKeys},
		{"Camo Cap", domain.CategoryMilitary},
		{"Silk Boxers", domain.CategoryUnderwear},
		{"Ferrero Rocher 24pcs", domain.CategoryWineChocolate},
		{"Red Wine", domain.CategoryWineChocolate},
		{"Scented Candle", domain.CategoryOther},
		{"", domain.CategoryOther},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.name); got != tc.want {
				t.Errorf("Classify(%q) = %q, want %q", tc.name, got, tc.want)
			}
		})
	}
}

func TestClassify_FirstRuleWins(t *testing.T) {
	// Jewelry precedes Teddy Bears.
	if got := Classify("Teddy Bear Necklace"); got != domain.CategoryJewelry {
		t.Errorf("Classify() = %q, want %q", got, domain.CategoryJewelry)
	}
}

func TestCategoryEmoji(t *testing.T) {
	for _, c := range domain.AllCategories {
		if CategoryEmoji(c) == "" {
			t.Errorf("CategoryEmoji(%q) is empty", c)
		}
	}
	if got := CategoryEmoji("Gadgets"); got != "🎁" {
		t.Errorf("CategoryEmoji(unknown) = %q, want 🎁", got)
	}
}

func TestBadgeFor(t *testing.T) {
	testCases := []struct {
		name     string
		price    int
		category domain.Category
		want     domain.Badge
	}{
		{"zero price is budget", 0, domain.CategoryOther, domain.BadgeBudgetFriendly},
		{"just under 50k", 49999, domain.CategoryOther, domain.BadgeBudgetFriendly},
		{"50k is best value", 50000, domain.CategoryOther, domain.BadgeBestValue},
		{"100k is best value", 100000, domain.CategoryFood, domain.BadgeBestValue},
		{"mid band food is hot", 120000, domain.CategoryFood, domain.BadgeHot},
		{"mid band other has none", 120000, domain.CategoryOther, domain.BadgeNone},
		{"150k is not premium", 150000, domain.CategoryJewelry, domain.BadgeNone},
		{"above 150k is premium", 150001, domain.CategoryFood, domain.BadgePremium},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BadgeFor(tc.price, tc.category); got != tc.want {
				t.Errorf("BadgeFor(%d, %q) = %q, want %q", tc.price, tc.category, got, tc.want)
			}
		})
	}
}

func TestNewProductView(t *testing.T) {
	p := domain.Product{ID: 3, Name: "Red Rose Bouquet", PriceValue: 30000, Category: domain.CategoryFlowers}

	view := NewProductView(p)

	if view.ID != 3 || view.Name != p.Name {
		t.Errorf("view does not embed product: %+v", view)
	}
	if view.CategoryEmoji != "🌹" {
		t.Errorf("CategoryEmoji = %q, want 🌹", view.CategoryEmoji)
	}
	if view.Badge != domain.BadgeBudgetFriendly {
		t.Errorf("Badge = %q, want %q", view.Badge, domain.BadgeBudgetFriendly)
	}
}
