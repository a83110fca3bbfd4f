package main

import (
	"errors"
	"net/http"

	"playoh/internal/domain/bookings"
	"playoh/internal/ids"
	"playoh/internal/session"
	"playoh/internal/views"
)

type bookingsPage struct {
	Bookings []bookings.View
	ShowPast bool
}

// bookingsHandler is the second tab: the admin grid for admins, the user's
// own bookings for everyone else.
func (app *application) bookingsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := session.FromContext(r.Context()).UserData(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if user != nil && user.IsAdmin {
		app.adminSchedulesHandler(w, r)
		return
	}

	tz := app.tzOffset(r)
	data := bookingsPage{ShowPast: r.URL.Query().Get("past") == "1"}

	var flash *views.Flash
	list, err := app.client(r).MyBookings(r.Context(), bookings.Filter{
		TimezoneOffsetMinutes: &tz,
		IncludePast:           &data.ShowPast,
	})
	if err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("load bookings", "error", err.Error())
		flash = flashOf(flashDanger, "Failed to load bookings. Please try again.")
	}
	data.Bookings = list

	app.render(w, r, http.StatusOK, views.BookingsPage, "My Bookings", "bookings", data, flash)
}

func (app *application) cancelBookingConfirmHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := app.refParam(r); err != nil {
		app.notFoundResponse(w, r)
		return
	}

	app.render(w, r, http.StatusOK, views.ConfirmPage, "Cancel Booking", "bookings", confirmPage{
		Heading: "Cancel Booking",
		Message: "Are you sure you want to cancel this booking?",
		Action:  r.URL.Path,
		Submit:  "Yes, Cancel",
		Cancel:  "/tabs/bookings",
		Danger:  true,
	})
}

func (app *application) cancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.refParam(r)
	if err != nil {
		if errors.Is(err, ids.ErrInvalidRef) {
			app.notFoundResponse(w, r)
			return
		}
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.client(r).CancelBooking(r.Context(), id); err != nil {
		app.apiFailure(w, r, err, "Failed to cancel booking. Please try again.", "/tabs/bookings")
		return
	}

	app.setFlash(w, flashSuccess, "Booking cancelled successfully")
	http.Redirect(w, r, "/tabs/bookings", http.StatusSeeOther)
}
