package main

import (
	"net/http"
	"strings"
	"testing"

	"playoh/internal/domain/bookings"
)

func TestBookingsListsOwnBookings(t *testing.T) {
	t.Parallel()

	app, backend := newTestApp(t)
	backend.handle("GET /Bookings/my-bookings", jsonReply(http.StatusOK, []bookings.View{
		{ID: 3, ScheduleID: 11, SportName: "Badminton", Venue: "Main Gym", CanCancel: true},
	}))
	h := app.mount()
	dev := newTestDevice(t, app)
	dev.signIn(t, false)

	rec := dev.get(t, h, "/tabs/bookings/?past=1", &http.Cookie{Name: tzCookieName, Value: "120"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	q := backend.called("GET /Bookings/my-bookings")[0].Query
	if q.Get("includeAll") != "true" || q.Get("timezoneOffsetMinutes") != "120" {
		t.Errorf("query = %v", q)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Main Gym") || !strings.Contains(body, "/tabs/bookings/"+app.ids.Encode(3)+"/cancel") {
		t.Error("booking or cancel link missing")
	}
}

func TestCancelBooking(t *testing.T) {
	t.Parallel()

	app, backend := newTestApp(t)
	backend.handle("DELETE /Bookings/3", jsonReply(http.StatusNoContent, nil))
	h := app.mount()
	dev := newTestDevice(t, app)
	dev.signIn(t, false)

	rec := dev.post(t, h, "/tabs/bookings/"+app.ids.Encode(3)+"/cancel", nil)
	assertRedirect(t, rec, "/tabs/bookings")
	if len(backend.called("DELETE /Bookings/3")) != 1 {
		t.Error("cancel request not sent")
	}
	if f := queuedFlash(t, rec); f.Message != "Booking cancelled successfully" {
		t.Errorf("flash = %+v", f)
	}
}

func TestBookingsTabShowsAdminGrid(t *testing.T) {
	t.Parallel()

	app, backend := newTestApp(t)
	backend.handle("GET /Schedules", jsonReply(http.StatusOK, nil))
	h := app.mount()
	dev := newTestDevice(t, app)
	dev.signIn(t, true)

	rec := dev.get(t, h, "/tabs/bookings/")
	if !strings.Contains(rec.Body.String(), "Manage Schedules") {
		t.Error("admin grid not shown")
	}
	if len(backend.called("GET /Bookings/my-bookings")) != 0 {
		t.Error("admin loaded personal bookings")
	}
}
