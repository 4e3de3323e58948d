package checkout

import "strings"

// BuyerInfo is the contact data typed into the confirmation form. It lives
// only for the request that carries it.
type BuyerInfo struct {
	Name  string `json:"name" validate:"max=120"`
	Email string `json:"email" validate:"max=254"`
	Phone string `json:"phone" validate:"max=32"`
}

// Complete reports whether every field is non-empty. No format checks apply.
func (b BuyerInfo) Complete() bool {
	return b.Name != "" && b.Email != "" && b.Phone != ""
}

// Trimmed returns b with surrounding whitespace removed from every field.
func (b BuyerInfo) Trimmed() BuyerInfo {
	return BuyerInfo{
		Name:  strings.TrimSpace(b.Name),
		Email: strings.TrimSpace(b.Email),
		Phone: strings.TrimSpace(b.Phone),
	}
}
