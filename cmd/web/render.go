package main

import (
	"net/http"
	"strconv"

	"playoh/internal/session"
	"playoh/internal/views"
)

const tzCookieName = "tz"

// render writes page with the layout data every screen shares. A toast
// passed in flash replaces any queued one.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page, title, tab string, data any, flash ...*views.Flash) {
	p := views.Page{
		Title: title,
		Tab:   tab,
		TZ:    app.tzOffset(r),
		Data:  data,
		Flash: app.popFlash(w, r),
	}
	if len(flash) > 0 && flash[0] != nil {
		p.Flash = flash[0]
	}

	if sess := session.FromContext(r.Context()); sess != nil && sess.IsAuthenticated(r.Context()) {
		user, err := sess.UserData(r.Context())
		if err != nil {
			app.logger.Warnw("cached user data unreadable", "error", err.Error())
		}
		p.User = user
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := app.views.Render(w, page, p); err != nil {
		app.logger.Errorw("render page", "page", page, "error", err.Error())
	}
}

// tzOffset is the browser's UTC offset in minutes, reported by the layout
// script through a cookie. Until the first page has run it, the configured
// default is used.
func (app *application) tzOffset(r *http.Request) int {
	c, err := r.Cookie(tzCookieName)
	if err != nil {
		return app.config.defaultTZ
	}
	offset, err := strconv.Atoi(c.Value)
	if err != nil || offset < -14*60 || offset > 14*60 {
		return app.config.defaultTZ
	}
	return offset
}

func flashOf(kind, message string) *views.Flash {
	return &views.Flash{Kind: kind, Message: message}
}
