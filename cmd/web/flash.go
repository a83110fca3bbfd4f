package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"playoh/internal/views"
)

const flashCookieName = "playoh_flash"

const (
	flashSuccess = "success"
	flashWarning = "warning"
	flashDanger  = "danger"
)

// setFlash queues a toast for the next page the browser loads.
func (app *application) setFlash(w http.ResponseWriter, kind, message string) {
	b, err := json.Marshal(views.Flash{Kind: kind, Message: message})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the queued toast, if any, and expires it.
func (app *application) popFlash(w http.ResponseWriter, r *http.Request) *views.Flash {
	c, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Path: "/", MaxAge: -1})

	b, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var f views.Flash
	if err := json.Unmarshal(b, &f); err != nil || f.Message == "" {
		return nil
	}
	return &f
}
