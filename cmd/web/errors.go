package main

import (
	"net/http"

	"playoh/internal/playoh"
	"playoh/internal/session"
	"playoh/internal/validate"
	"playoh/internal/views"
)

type messagePage struct {
	Heading string
	Message string
}

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.errorPage(w, r, http.StatusInternalServerError, "Something went wrong", "The server encountered a problem and could not process your request.")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.errorPage(w, r, http.StatusBadRequest, "Bad request", "The request could not be understood.")
}

func (app *application) formRejected(r *http.Request, form string, v *validate.Form) {
	app.logger.Infow("form rejected", "form", form, "path", r.URL.Path, "error", v.Err())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path)

	app.errorPage(w, r, http.StatusNotFound, "Page not found", "The page you are looking for does not exist.")
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path)

	app.errorPage(w, r, http.StatusForbidden, "Not allowed", "This page is only available to administrators.")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)
	app.errorPage(w, r, http.StatusTooManyRequests, "Slow down", "Too many attempts. Please wait "+retryAfter+" and try again.")
}

func (app *application) errorPage(w http.ResponseWriter, r *http.Request, status int, heading, message string) {
	app.render(w, r, status, views.ErrorPage, "", "", messagePage{Heading: heading, Message: message})
}

// authExpired is the single place that reacts to a rejected credential: the
// device session is cleared and the browser goes to the login screen. It
// reports whether err was such a rejection.
func (app *application) authExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !playoh.IsAuthExpired(err) {
		return false
	}

	app.logger.Infow("credential rejected, clearing session", "method", r.Method, "path", r.URL.Path)
	if sess := session.FromContext(r.Context()); sess != nil {
		if err := sess.Clear(r.Context()); err != nil {
			app.logger.Errorw("clear session", "error", err.Error())
		}
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

// apiFailure finishes a failed mutation: an expired credential goes through
// authExpired, anything else becomes a toast on the screen at back.
func (app *application) apiFailure(w http.ResponseWriter, r *http.Request, err error, fallback, back string) {
	if app.authExpired(w, r, err) {
		return
	}

	app.logger.Warnw("api call failed", "method", r.Method, "path", r.URL.Path, "status", playoh.StatusCode(err), "error", err.Error())
	app.setFlash(w, flashDanger, playoh.Message(err, fallback))
	http.Redirect(w, r, back, http.StatusSeeOther)
}
