package validators

import (
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// MaxProductIDLen matches the catalog's id limit.
const MaxProductIDLen = 64

// ProductID checks a product id taken from a path or form value. It does not
// consult the catalog; carts may reference ids the catalog no longer has.
func ProductID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "productId is required").WithDetails(map[string]any{"field": "productId"})
	}
	if utf8.RuneCountInString(id) > MaxProductIDLen {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "productId is too long").WithDetails(map[string]any{"field": "productId"})
	}
	return id, nil
}
