package usecase

import (
	"fmt"
	"testing"

	"github.com/giftshop/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codedProducts(n int) []domain.Product {
	products := make([]domain.Product, n)
	for i := range products {
		products[i] = domain.Product{
			ID:        i + 1,
			ProductID: fmt.Sprintf("PROD-%04d", i+1),
			Name:      fmt.Sprintf("Item %d", i+1),
		}
	}
	return products
}

func productIDs(products []domain.Product) []string {
	result := make([]string, len(products))
	for i, p := range products {
		result[i] = p.ProductID
	}
	return result
}

func TestPrioritizer_BothPinned(t *testing.T) {
	p := NewPrioritizer(PrioritizerConfig{PinnedIDs: []string{"PROD-0010", "prod-0012"}})

	result := p.Prioritize(codedProducts(15))

	require.Len(t, result, 15)
	assert.Equal(t, "PROD-0010", result[0].ProductID)
	assert.Equal(t, "PROD-0012", result[11].ProductID)
	assert.Equal(t, "PROD-0001", result[1].ProductID)
	assert.Equal(t, "PROD-0011", result[10].ProductID)
	assert.Equal(t, "PROD-0013", result[12].ProductID)
}

func TestPrioritizer_BothPinnedShortCatalog(t *testing.T) {
	p := NewPrioritizer(PrioritizerConfig{PinnedIDs: []string{"PROD-0002", "PROD-0001"}})

	result := p.Prioritize(codedProducts(4))

	assert.Equal(t, []string{"PROD-0002", "PROD-0003", "PROD-0004", "PROD-0001"}, productIDs(result))
}

func TestPrioritizer_SinglePinned(t *testing.T) {
	p := NewPrioritizer(PrioritizerConfig{PinnedIDs: []string{"PROD-0003", "PROD-9999"}})

	result := p.Prioritize(codedProducts(4))

	assert.Equal(t, []string{"PROD-0003", "PROD-0001", "PROD-0002", "PROD-0004"}, productIDs(result))
}

func TestPrioritizer_KeywordPartitionIsStable(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Coffee Mug"},
		{ID: 2, Name: "Giant Teddy"},
		{ID: 3, Name: "Wallet"},
		{ID: 4, Name: "Card", Description: "Say I love you"},
	}
	p := NewPrioritizer(PrioritizerConfig{Keywords: []string{"Teddy", "love"}})

	result := p.Prioritize(products)

	assert.Equal(t, []int{2, 4, 1, 3}, ids(result))
}

func TestPrioritizer_NoRules(t *testing.T) {
	products := codedProducts(3)

	result := NewPrioritizer(PrioritizerConfig{}).Prioritize(products)

	assert.Equal(t, products, result)
}
