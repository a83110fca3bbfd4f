package main

import (
	"net/http"

	"playoh/internal/domain"
	"playoh/internal/domain/users"
	"playoh/internal/playoh"
	"playoh/internal/session"
	"playoh/internal/views"
)

type profilePage struct {
	User      *users.User
	ExpiresAt domain.Time
}

func (app *application) profileHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := session.FromContext(ctx)
	data := profilePage{}

	var flash *views.Flash
	user, err := app.client(r).CurrentUser(ctx)
	if err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("load profile", "error", err.Error())
		flash = flashOf(flashDanger, "Failed to load profile. Please try again.")
	}
	data.User = user
	data.ExpiresAt = app.sessionExpiry(r, sess)

	app.render(w, r, http.StatusOK, views.ProfilePage, "Profile", "profile", data, flash)
}

// sessionExpiry prefers the expiry cached at login and falls back to the
// token's own exp claim.
func (app *application) sessionExpiry(r *http.Request, sess *session.Store) domain.Time {
	ctx := r.Context()
	if snap, err := sess.UserData(ctx); err == nil && snap != nil && !snap.ExpiresAt.IsZero() {
		return snap.ExpiresAt
	}
	token, err := sess.Token(ctx)
	if err != nil || token == "" {
		return domain.Time{}
	}
	exp, err := app.tokens.ExpiresAt(token)
	if err != nil {
		app.logger.Infow("token expiry unknown", "error", err.Error())
		return domain.Time{}
	}
	return domain.NewTime(exp)
}

type userFormPage struct {
	Form   registerForm
	Errors map[string]string
}

func (app *application) newUserPageHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, views.UserFormPage, "Add User", "profile", userFormPage{})
}

func (app *application) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var form registerForm
	if err := readForm(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if v := form.validate(); !v.Valid() {
		app.formRejected(r, "user", v)
		app.render(w, r, http.StatusUnprocessableEntity, views.UserFormPage, "Add User", "profile", userFormPage{Form: form, Errors: v.Errors},
			flashOf(flashWarning, "Please fill in all required fields"))
		return
	}

	req := form.request()
	isAdmin := form.IsAdmin
	req.IsAdmin = &isAdmin

	resp, err := app.client(r).CreateUser(r.Context(), req)
	if err != nil {
		app.apiFailure(w, r, err, "Failed to create user. Please try again.", "/tabs/profile/users/new")
		return
	}

	kind := "User"
	if isAdmin {
		kind = "Admin"
	}
	app.logger.Infow("user created by admin", "userID", resp.UserID, "admin", isAdmin)
	app.setFlash(w, flashSuccess, kind+" created successfully!")
	http.Redirect(w, r, "/tabs/profile", http.StatusSeeOther)
}

// compile-time check that the device session satisfies the client's needs
var _ playoh.Session = (*session.Store)(nil)
