package usecase

import (
	"fmt"
	"strings"

	"github.com/giftshop/storefront/internal/domain"
)

// StaffService backs the staff view: quick lookup and copy/share text over
// the staff build of the feed, which keeps descriptions verbatim.
type StaffService struct {
	catalog *CatalogService
}

// NewStaffService creates a staff service reading from catalog.
func NewStaffService(catalog *CatalogService) *StaffService {
	return &StaffService{catalog: catalog}
}

// Products returns the staff list in feed order.
func (s *StaffService) Products() ([]domain.Product, error) {
	state, err := s.catalog.current()
	if err != nil {
		return nil, err
	}
	return state.snapshot.Staff, nil
}

// Lookup finds products by code or name. Products whose code starts with the
// query come first (exact code first), followed by fuzzy name matches.
func (s *StaffService) Lookup(query string) ([]domain.Product, error) {
	products, err := s.Products()
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return products, nil
	}

	var exact, prefixed []domain.Product
	seen := make(map[int]bool)
	for _, p := range products {
		switch {
		case strings.EqualFold(p.ProductID, query):
			exact = append(exact, p)
		case len(p.ProductID) >= len(query) && strings.EqualFold(p.ProductID[:len(query)], query):
			prefixed = append(prefixed, p)
		default:
			continue
		}
		seen[p.ID] = true
	}

	result := append(exact, prefixed...)
	for _, p := range s.catalog.ranking.Search(products, query) {
		if !seen[p.ID] {
			result = append(result, p)
		}
	}
	if result == nil {
		result = []domain.Product{}
	}
	return result, nil
}

// ShareText renders the plain-text block staff paste into chats.
func (s *StaffService) ShareText(id int) (string, error) {
	state, err := s.catalog.current()
	if err != nil {
		return "", err
	}
	idx, ok := state.staffByID[id]
	if !ok {
		return "", fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	return FormatShareText(state.snapshot.Staff[idx]), nil
}

// FormatShareText renders one product as a shareable message.
func FormatShareText(p domain.Product) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s\n", CategoryEmoji(p.Category), p.Name)
	if p.ProductID != "" {
		fmt.Fprintf(&sb, "Code: %s\n", p.ProductID)
	}
	fmt.Fprintf(&sb, "Price: %s\n", p.Price)

	if len(p.Variants) > 0 {
		options := make([]string, len(p.Variants))
		for i, v := range p.Variants {
			options[i] = fmt.Sprintf("%s (%s)", v.Name, v.Price)
		}
		fmt.Fprintf(&sb, "Options: %s\n", strings.Join(options, ", "))
	}
	if p.SameDay {
		sb.WriteString("Same-day delivery available\n")
	}
	if p.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", p.Description)
	}
	if p.ImageURL != "" {
		fmt.Fprintf(&sb, "\n%s\n", p.ImageURL)
	}

	return strings.TrimRight(sb.String(), "\n")
}
