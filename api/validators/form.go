package validators

import (
	"net/http"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

const maxFormBytes = 1 << 16

// ParseForm parses a url-encoded form body with a size cap.
func ParseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	return nil
}

// FormString returns the trimmed form value for key, capped at maxLen runes
// when maxLen > 0.
func FormString(r *http.Request, key string, maxLen int) string {
	return SanitizeString(r.PostFormValue(key), maxLen)
}
