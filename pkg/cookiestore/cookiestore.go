// Package cookiestore keeps small string values in browser cookies behind a
// key/value interface shaped like web storage.
package cookiestore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// MaxValueBytes is the largest encoded cookie value browsers reliably keep.
const MaxValueBytes = 4096

// ErrQuotaExceeded is returned when a value does not fit in a cookie.
var ErrQuotaExceeded = errors.New("cookie storage quota exceeded")

// Options configures the cookies written by a Store.
type Options struct {
	// Names maps storage keys to cookie names. Unmapped keys use the key itself.
	Names  map[string]string
	Path   string
	Secure bool
	MaxAge time.Duration
}

// Store issues per-request jars.
type Store struct {
	opts Options
}

func New(opts Options) *Store {
	if opts.Path == "" {
		opts.Path = "/"
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 30 * 24 * time.Hour
	}
	return &Store{opts: opts}
}

// Bind returns the storage view for a single request/response pair.
func (s *Store) Bind(w http.ResponseWriter, r *http.Request) *Jar {
	return &Jar{store: s, w: w, r: r, pending: map[string]*string{}}
}

func (s *Store) cookieName(key string) string {
	if name, ok := s.opts.Names[key]; ok && strings.TrimSpace(name) != "" {
		return name
	}
	return key
}

// Jar reads values from the request cookies and writes them back through the
// response. Writes are visible to later reads on the same jar.
type Jar struct {
	store   *Store
	w       http.ResponseWriter
	r       *http.Request
	mu      sync.Mutex
	pending map[string]*string
}

func (j *Jar) GetItem(key string) (string, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if v, ok := j.pending[key]; ok {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}
	if j.r == nil {
		return "", false, nil
	}
	c, err := j.r.Cookie(j.store.cookieName(key))
	if err != nil || c.Value == "" {
		return "", false, nil
	}
	value, err := DecodeValue(c.Value)
	if err != nil {
		return "", false, fmt.Errorf("cookie %s: %w", c.Name, err)
	}
	return value, true, nil
}

func (j *Jar) SetItem(key, value string) error {
	encoded := EncodeValue(value)
	name := j.store.cookieName(key)
	if len(name)+1+len(encoded) > MaxValueBytes {
		return fmt.Errorf("%w: %d bytes", ErrQuotaExceeded, len(encoded))
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.pending[key] = &value
	j.write(&http.Cookie{
		Name:    name,
		Value:   encoded,
		MaxAge:  int(j.store.opts.MaxAge.Seconds()),
		Expires: time.Now().Add(j.store.opts.MaxAge),
	})
	return nil
}

func (j *Jar) RemoveItem(key string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.pending[key] = nil
	j.write(&http.Cookie{
		Name:    j.store.cookieName(key),
		Value:   "",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	})
	return nil
}

func (j *Jar) write(c *http.Cookie) {
	if j.w == nil {
		return
	}
	c.Path = j.store.opts.Path
	c.HttpOnly = true
	c.Secure = j.store.opts.Secure
	c.SameSite = http.SameSiteLaxMode

	// Only the last write for a cookie survives the response.
	header := j.w.Header()
	prefix := c.Name + "="
	var kept []string
	for _, v := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	header.Del("Set-Cookie")
	for _, v := range kept {
		header.Add("Set-Cookie", v)
	}
	http.SetCookie(j.w, c)
}

// EncodeValue makes an arbitrary string safe for a cookie value.
func EncodeValue(value string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(value))
}

// DecodeValue reverses EncodeValue. Values written by older clients as plain
// or URL-escaped JSON are accepted as-is.
func DecodeValue(raw string) (string, error) {
	if b, err := base64.RawURLEncoding.DecodeString(raw); err == nil {
		return string(b), nil
	}
	if u, err := url.QueryUnescape(raw); err == nil && looksLikeJSON(u) {
		return u, nil
	}
	return "", errors.New("undecodable cookie value")
}

func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}
