package catalog

import "github.com/angelmondragon/storefront/pkg/enums"

type ProductType = enums.ProductType

const (
	ProductVoucher  = enums.ProductTypeVoucher
	ProductPhysical = enums.ProductTypePhysical
)

type Product struct {
	ID            string      `json:"id" validate:"required,max=64"`
	Name          string      `json:"name" validate:"required"`
	Type          ProductType `json:"type" validate:"required,oneof=voucher physical"`
	Price         int64       `json:"price" validate:"gte=0"`
	OriginalPrice *int64      `json:"originalPrice,omitempty" validate:"omitempty,gte=0"`
	Image         string      `json:"image"`
	Description   string      `json:"description"`
}

// IsVoucher reports whether the product is a digital voucher.
func (p Product) IsVoucher() bool {
	return p.Type == ProductVoucher
}

// HasDiscount reports whether a higher original price should be shown.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > 0
}

type StoreInfo struct {
	Name           string `json:"name" validate:"required"`
	Tagline        string `json:"tagline"`
	WhatsappNumber string `json:"whatsappNumber" validate:"required"`
	MinPurchase    int    `json:"minPurchase" validate:"gte=0"`
}

type VoucherInfo struct {
	Title   string   `json:"title"`
	Details []string `json:"details"`
}

type FormLabels struct {
	Name             string `json:"name"`
	NamePlaceholder  string `json:"namePlaceholder"`
	Email            string `json:"email"`
	EmailPlaceholder string `json:"emailPlaceholder"`
	Phone            string `json:"phone"`
	PhonePlaceholder string `json:"phonePlaceholder"`
}

type Messages struct {
	OrderMessage       string `json:"orderMessage" validate:"required"`
	CheckoutButton     string `json:"checkoutButton"`
	MinPurchaseWarning string `json:"minPurchaseWarning"`
}

// Document is the store configuration as published in JSON.
type Document struct {
	StoreInfo   StoreInfo   `json:"storeInfo"`
	VoucherInfo VoucherInfo `json:"voucherInfo"`
	Products    []Product   `json:"products" validate:"dive"`
	FormLabels  FormLabels  `json:"formLabels"`
	Messages    Messages    `json:"messages"`
}
