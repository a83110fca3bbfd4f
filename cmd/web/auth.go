package main

import (
	"net/http"
	"strings"

	"playoh/internal/domain"
	"playoh/internal/domain/users"
	"playoh/internal/playoh"
	"playoh/internal/session"
	"playoh/internal/validate"
	"playoh/internal/views"
)

type loginForm struct {
	Email    string `schema:"email"`
	Password string `schema:"password"`
}

type loginPage struct {
	Email  string
	Errors map[string]string
}

type registerForm struct {
	Name            string `schema:"name"`
	Email           string `schema:"email"`
	Phone           string `schema:"phone"`
	Password        string `schema:"password"`
	ConfirmPassword string `schema:"confirmPassword"`
	IsAdmin         bool   `schema:"isAdmin"`
}

// validate runs every check so each field shows its own message.
func (f registerForm) validate() *validate.Form {
	v := validate.New()
	v.Name("name", f.Name)
	v.Email("email", f.Email)
	v.Phone("phone", f.Phone)
	v.Password("password", f.Password)
	v.ConfirmPassword("confirmPassword", f.ConfirmPassword, f.Password)
	return v
}

func (f registerForm) request() users.RegisterRequest {
	return users.RegisterRequest{
		Name:            strings.TrimSpace(f.Name),
		Email:           strings.TrimSpace(f.Email),
		Phone:           domain.String(strings.TrimSpace(f.Phone)),
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
	}
}

type registerPage struct {
	Form   registerForm
	Errors map[string]string
}

func (app *application) loginPageHandler(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/tabs/home", http.StatusSeeOther)
		return
	}

	email, err := sess.RememberedEmail(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, views.LoginPage, "Login", "", loginPage{Email: email})
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := readForm(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validate.New()
	v.Email("email", form.Email)
	v.Password("password", form.Password)
	if !v.Valid() {
		app.formRejected(r, "login", v)
		app.render(w, r, http.StatusUnprocessableEntity, views.LoginPage, "Login", "", loginPage{Email: form.Email, Errors: v.Errors})
		return
	}

	ctx := r.Context()
	sess := session.FromContext(ctx)
	email := strings.TrimSpace(form.Email)

	resp, err := app.client(r).Login(ctx, users.LoginRequest{Email: email, Password: form.Password})
	if err != nil {
		const fallback = "Invalid email or password. Please try again."
		if playoh.IsAuthExpired(err) {
			// on this screen a 401 means wrong credentials
			if err := sess.Clear(ctx); err != nil {
				app.logger.Errorw("clear session", "error", err.Error())
			}
			app.render(w, r, http.StatusUnauthorized, views.LoginPage, "Login", "", loginPage{Email: form.Email}, flashOf(flashDanger, fallback))
			return
		}
		app.logger.Warnw("login failed", "email", email, "status", playoh.StatusCode(err), "error", err.Error())
		app.render(w, r, http.StatusOK, views.LoginPage, "Login", "", loginPage{Email: form.Email}, flashOf(flashDanger, playoh.Message(err, fallback)))
		return
	}

	if err := sess.RememberEmail(ctx, email); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.logger.Infow("user logged in", "userID", resp.UserID, "admin", resp.IsAdmin)
	app.setFlash(w, flashSuccess, "Welcome back, "+resp.Name+"!")
	http.Redirect(w, r, "/tabs/home", http.StatusSeeOther)
}

func (app *application) registerPageHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, views.RegisterPage, "Register", "", registerPage{})
}

func (app *application) registerHandler(w http.ResponseWriter, r *http.Request) {
	var form registerForm
	if err := readForm(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	// self-registration never grants admin
	form.IsAdmin = false

	if v := form.validate(); !v.Valid() {
		app.formRejected(r, "register", v)
		app.render(w, r, http.StatusUnprocessableEntity, views.RegisterPage, "Register", "", registerPage{Form: form, Errors: v.Errors},
			flashOf(flashWarning, "Please fix the errors before submitting"))
		return
	}

	resp, err := app.client(r).Register(r.Context(), form.request())
	if err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("registration failed", "status", playoh.StatusCode(err), "error", err.Error())
		app.render(w, r, http.StatusOK, views.RegisterPage, "Register", "", registerPage{Form: form},
			flashOf(flashDanger, playoh.Message(err, "Registration failed. Please try again.")))
		return
	}

	app.logger.Infow("user registered", "userID", resp.UserID)
	app.setFlash(w, flashSuccess, "Welcome, "+resp.Name+"! Your account has been created.")
	http.Redirect(w, r, "/tabs/home", http.StatusSeeOther)
}

func (app *application) logoutConfirmHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, views.ConfirmPage, "Logout", "profile", confirmPage{
		Heading: "Logout",
		Message: "Are you sure you want to logout?",
		Action:  "/tabs/profile/logout",
		Submit:  "Logout",
		Cancel:  "/tabs/profile",
		Danger:  true,
	})
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.client(r).Logout(r.Context()); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.setFlash(w, flashSuccess, "You have been logged out successfully")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
