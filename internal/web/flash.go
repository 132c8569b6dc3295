package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/julianstephens/medimate/internal/constants"
)

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// setFlash queues a message for the next page load. Messages queued during
// the same request accumulate.
func setFlash(w http.ResponseWriter, r *http.Request, f Flash) {
	flashes := readFlashes(r)
	flashes = append(flashes, f)

	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	encoded := base64.RawURLEncoding.EncodeToString(data)

	// Visible to later reads within the same request
	r.AddCookie(&http.Cookie{Name: constants.FlashCookieName, Value: encoded})
	http.SetCookie(w, &http.Cookie{
		Name:     constants.FlashCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func readFlashes(r *http.Request) []Flash {
	var cookie *http.Cookie
	// The last cookie wins when setFlash ran earlier in this request
	for _, c := range r.Cookies() {
		if c.Name == constants.FlashCookieName {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

// popFlashes returns the queued messages and clears them
func popFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	flashes := readFlashes(r)
	if len(flashes) > 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     constants.FlashCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return flashes
}
