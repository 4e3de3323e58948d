package checkout

import (
	"fmt"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Rejection reasons reported by Check.
const (
	ReasonIncompleteBuyer = "incomplete_buyer"
	ReasonBelowMinimum    = "below_minimum"
)

const (
	msgIncompleteBuyer = "Mohon lengkapi semua data yang diperlukan"
	msgBelowMinimum    = "Minimal pembelian %d item"
)

// Eligible reports whether checkout may proceed.
func Eligible(totalItems, minPurchase int, buyer BuyerInfo) bool {
	return totalItems >= minPurchase && buyer.Complete()
}

// MeetsMinimum reports whether the item count alone satisfies the minimum.
func MeetsMinimum(totalItems, minPurchase int) bool {
	return totalItems >= minPurchase
}

// Shortfall is how many more items are needed to reach the minimum.
func Shortfall(totalItems, minPurchase int) int {
	if totalItems >= minPurchase {
		return 0
	}
	return minPurchase - totalItems
}

// Check returns the first reason checkout is blocked, or nil. Missing buyer
// data is reported before an unmet minimum.
func Check(totalItems, minPurchase int, buyer BuyerInfo) error {
	if Eligible(totalItems, minPurchase, buyer) {
		return nil
	}
	if !buyer.Complete() {
		return pkgerrors.New(pkgerrors.CodeValidation, msgIncompleteBuyer).
			WithDetails(map[string]any{"reason": ReasonIncompleteBuyer, "missing": missingFields(buyer)})
	}
	if !MeetsMinimum(totalItems, minPurchase) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf(msgBelowMinimum, minPurchase)).
			WithDetails(map[string]any{
				"reason":      ReasonBelowMinimum,
				"minPurchase": minPurchase,
				"totalItems":  totalItems,
				"shortfall":   Shortfall(totalItems, minPurchase),
			})
	}
	return nil
}

// RejectionReason extracts the reason recorded by Check.
func RejectionReason(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return ""
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		return ""
	}
	reason, _ := details["reason"].(string)
	return reason
}

func missingFields(b BuyerInfo) []string {
	var missing []string
	if b.Name == "" {
		missing = append(missing, "name")
	}
	if b.Email == "" {
		missing = append(missing, "email")
	}
	if b.Phone == "" {
		missing = append(missing, "phone")
	}
	return missing
}
