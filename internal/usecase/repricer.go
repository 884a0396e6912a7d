package usecase

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/giftshop/storefront/internal/infrastructure/feed"
)

// minPriceBump keeps rounded prices from landing barely above the original.
const minPriceBump = 200

// priceTier caps how far a price below ceiling may be rounded up.
type priceTier struct {
	ceiling int
	maxAdd  int
}

var priceTiers = []priceTier{
	{ceiling: 40000, maxAdd: 2500},
	{ceiling: 60000, maxAdd: 3000},
	{ceiling: 80000, maxAdd: 3500},
	{ceiling: 120000, maxAdd: 5000},
	{ceiling: 200000, maxAdd: 6000},
}

const topTierMaxAdd = 7000

// Price ending kinds, ranked by how attractive they look.
const (
	endingThousand = 1 // 52,000
	endingHalf     = 2 // 52,500
	endingNine     = 3 // 52,900
	endingTensNine = 4 // 59,900
)

var (
	dashImageNumber       = regexp.MustCompile(`/(\d{4})-`)
	underscoreImageNumber = regexp.MustCompile(`/(\d{4})_`)
)

// RoundToAttractive rounds price up to a nearby ,000 / ,500 / ,900 or X9,900
// ending. The bump never exceeds the price tier's maximum, and the preferred
// ending rotates with the hundreds digits so a catalog gets a natural mix.
func RoundToAttractive(price int) int {
	maxAdd := topTierMaxAdd
	for _, tier := range priceTiers {
		if price < tier.ceiling {
			maxAdd = tier.maxAdd
			break
		}
	}

	baseK := price / 1000 * 1000
	var candidates []int
	for _, start := range []int{0, 500, 900} {
		for offset := start; offset < maxAdd+1000; offset += 1000 {
			candidates = append(candidates, baseK+offset)
		}
	}
	tensBase := price / 10000 * 10000
	candidates = append(candidates, tensBase+9900, tensBase+19900)

	var valid []int
	for _, c := range candidates {
		if c > price && c-price <= maxAdd {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		next := baseK + 900
		for next <= price {
			next += 1000
		}
		return next
	}
	sort.Ints(valid)

	// closest candidate per ending kind
	best := make(map[int]int)
	for _, c := range valid {
		kind := endingKind(c)
		if _, ok := best[kind]; !ok {
			best[kind] = c
		}
	}

	for _, kind := range endingPreference(price) {
		c, ok := best[kind]
		if ok && (c-price >= minPriceBump || len(best) == 1) {
			return c
		}
	}

	largest := make([]int, 0, len(best))
	for _, c := range best {
		largest = append(largest, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(largest)))
	for _, c := range largest {
		if c-price >= minPriceBump {
			return c
		}
	}
	return valid[0]
}

func endingKind(p int) int {
	switch {
	case p%10000 == 9900:
		return endingTensNine
	case p%1000 == 900:
		return endingNine
	case p%1000 == 500:
		return endingHalf
	case p%1000 == 0:
		return endingThousand
	default:
		return 0
	}
}

func endingPreference(price int) []int {
	switch mod := price % 10000 / 100; {
	case mod < 20:
		return []int{endingHalf, endingThousand, endingNine, endingTensNine}
	case mod < 45:
		return []int{endingNine, endingTensNine, endingHalf, endingThousand}
	case mod < 55:
		return []int{endingThousand, endingHalf, endingNine, endingTensNine}
	case mod < 75:
		return []int{endingTensNine, endingNine, endingHalf, endingThousand}
	default:
		return []int{endingNine, endingHalf, endingTensNine, endingThousand}
	}
}

// ProductCodeFromImage derives "PROD-0910" from image URLs such as
// ".../0910-rose.jpg" or ".../images/0910_rose.png". It returns "" when the
// filename carries no 4-digit prefix.
func ProductCodeFromImage(imageURL string) string {
	for _, re := range []*regexp.Regexp{dashImageNumber, underscoreImageNumber} {
		if m := re.FindStringSubmatch(imageURL); m != nil {
			return "PROD-" + m[1]
		}
	}
	return ""
}

// PricingRow is one row of the acquisition pricing sheet.
type PricingRow struct {
	ProductID string
	Image     string
	SellPrice string
	CostPrice string
	Profit    string
}

// RepriceResult reports what Reprice changed in a row.
type RepriceResult struct {
	Coded    bool
	Repriced bool
	OldSell  int
	NewSell  int
}

// Reprice assigns the product code and rounds the sell price of row in place.
// Prices are only touched when both sell and cost are naira amounts.
func Reprice(row *PricingRow) (RepriceResult, error) {
	var result RepriceResult

	row.ProductID = ProductCodeFromImage(row.Image)
	result.Coded = row.ProductID != ""

	sell := strings.TrimSpace(row.SellPrice)
	cost := strings.TrimSpace(row.CostPrice)
	if !strings.HasPrefix(sell, feed.CurrencySymbol) || !strings.HasPrefix(cost, feed.CurrencySymbol) {
		return result, nil
	}

	oldSell := feed.ParsePrice(sell)
	costValue := feed.ParsePrice(cost)
	if oldSell == 0 {
		return result, fmt.Errorf("unparsable sell price %q", row.SellPrice)
	}

	newSell := RoundToAttractive(oldSell)
	row.SellPrice = feed.FormatPrice(newSell)
	row.Profit = feed.FormatPrice(newSell - costValue)

	result.Repriced = true
	result.OldSell = oldSell
	result.NewSell = newSell
	return result, nil
}
