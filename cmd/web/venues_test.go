package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"playoh/internal/domain/sports"
	"playoh/internal/domain/venues"
)

func newVenuesBackend(t *testing.T) (*fakeBackend, http.Handler, *testDevice) {
	t.Helper()
	app, backend := newTestApp(t)
	backend.handle("GET /Venues/statistics", jsonReply(http.StatusOK, []venues.Statistics{
		{VenueName: "Main Gym", TotalSchedules: 9, FutureSchedules: 4, TotalBookings: 17},
		{VenueName: "East Court", TotalSchedules: 2, FutureSchedules: 1, TotalBookings: 3},
	}))
	backend.handle("GET /Venues/suggestions", jsonReply(http.StatusOK, []string{"Main Gym", "East Court"}))
	h := app.mount()
	dev := newTestDevice(t, app)
	dev.signIn(t, true)
	return backend, h, dev
}

func TestVenuesPageListsStatistics(t *testing.T) {
	t.Parallel()

	_, h, dev := newVenuesBackend(t)

	rec := dev.get(t, h, "/tabs/venue-management/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, want := range []string{"Main Gym", "East Court"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestRenameVenueStopsOnValidationIssues(t *testing.T) {
	t.Parallel()

	backend, h, dev := newVenuesBackend(t)
	backend.handle("POST /Venues/validate", jsonReply(http.StatusOK, venues.Validation{
		VenueName:   "main gym",
		IsValid:     false,
		Issues:      []string{"A similar venue already exists"},
		Suggestions: []string{"Main Gym"},
	}))

	rec := dev.post(t, h, "/tabs/venue-management/rename", url.Values{"oldName": {"East Court"}, "newName": {"main gym"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "A similar venue already exists") {
		t.Error("validation issue not shown")
	}
	if n := len(backend.called("PUT /Venues/rename")); n != 0 {
		t.Errorf("rename calls = %d, want 0", n)
	}
}

func TestRenameVenue(t *testing.T) {
	t.Parallel()

	backend, h, dev := newVenuesBackend(t)
	backend.handle("POST /Venues/validate", jsonReply(http.StatusOK, venues.Validation{VenueName: "North Hall", IsValid: true}))
	backend.handle("PUT /Venues/rename", jsonReply(http.StatusOK, venues.RenameResult{OldName: "East Court", NewName: "North Hall", SchedulesUpdated: 2}))

	rec := dev.post(t, h, "/tabs/venue-management/rename", url.Values{"oldName": {"East Court"}, "newName": {" North Hall "}})
	assertRedirect(t, rec, venuesPath)

	calls := backend.called("PUT /Venues/rename")
	if len(calls) != 1 {
		t.Fatalf("rename calls = %d, want 1", len(calls))
	}
	var sent venues.RenameRequest
	json.Unmarshal(calls[0].Body, &sent)
	if sent.OldName != "East Court" || sent.NewName != "North Hall" {
		t.Errorf("rename body = %+v", sent)
	}
	if f := queuedFlash(t, rec); f.Message != "Venue renamed successfully. 2 schedules updated." {
		t.Errorf("flash = %+v", f)
	}
}

func TestMergeVenuesNeedsTwoVenues(t *testing.T) {
	t.Parallel()

	backend, h, dev := newVenuesBackend(t)

	rec := dev.post(t, h, "/tabs/venue-management/merge", url.Values{"venues": {"Main Gym"}, "targetName": {"Main Gym"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please select at least 2 venues and provide a target name") {
		t.Error("merge message missing")
	}
	if n := len(backend.called("POST /Venues/merge")); n != 0 {
		t.Errorf("merge calls = %d, want 0", n)
	}
}

func TestMergeVenues(t *testing.T) {
	t.Parallel()

	backend, h, dev := newVenuesBackend(t)
	backend.handle("POST /Venues/merge", jsonReply(http.StatusOK, venues.MergeResult{TargetName: "Main Gym", SchedulesUpdated: 11, Message: "Merged 2 venues"}))

	rec := dev.post(t, h, "/tabs/venue-management/merge", url.Values{"venues": {"Main Gym", "East Court"}, "targetName": {"Main Gym"}})
	assertRedirect(t, rec, venuesPath)

	var sent venues.MergeRequest
	json.Unmarshal(backend.called("POST /Venues/merge")[0].Body, &sent)
	if sent.TargetName != "Main Gym" || len(sent.VenuesToMerge) != 2 {
		t.Errorf("merge body = %+v", sent)
	}
	if f := queuedFlash(t, rec); f.Message != "Merged 2 venues" {
		t.Errorf("flash = %+v", f)
	}
}

func TestDeleteVenueConfirmShowsImpact(t *testing.T) {
	t.Parallel()

	_, h, dev := newVenuesBackend(t)

	rec := dev.get(t, h, "/tabs/venue-management/delete?venue="+url.QueryEscape("Main Gym"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "This will delete 4 future schedules and affect 17 bookings.") {
		t.Errorf("impact missing:\n%s", rec.Body.String())
	}
}

func TestDeleteVenue(t *testing.T) {
	t.Parallel()

	backend, h, dev := newVenuesBackend(t)
	backend.handle("DELETE /Venues/Main Gym", jsonReply(http.StatusOK, venues.DeleteResult{VenueName: "Main Gym", SchedulesDeleted: 4, BookingsAffected: 17}))

	rec := dev.post(t, h, "/tabs/venue-management/delete?venue="+url.QueryEscape("Main Gym"), nil)
	assertRedirect(t, rec, venuesPath)
	if f := queuedFlash(t, rec); f.Message != "Venue deleted. 4 schedules and 17 bookings removed." {
		t.Errorf("flash = %+v", f)
	}
}

func TestCreateSportRequiresName(t *testing.T) {
	t.Parallel()

	app, backend := newTestApp(t)
	h := app.mount()
	dev := newTestDevice(t, app)
	dev.signIn(t, true)

	rec := dev.post(t, h, "/tabs/sports-management", url.Values{"name": {"  "}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please enter a sport name") {
		t.Error("name message missing")
	}
	if n := len(backend.called("POST /Sports")); n != 0 {
		t.Errorf("create calls = %d, want 0", n)
	}
}

func TestCreateSportWithIconURL(t *testing.T) {
	t.Parallel()

	app, backend := newTestApp(t)
	backend.handle("POST /Sports", jsonReply(http.StatusOK, sports.Sport{ID: 5, Name: "Futsal"}))
	h := app.mount()
	dev := newTestDevice(t, app)
	dev.signIn(t, true)

	rec := dev.post(t, h, "/tabs/sports-management", url.Values{"name": {"Futsal"}, "iconUrl": {"https://cdn.example.com/futsal.png"}})
	assertRedirect(t, rec, "/tabs/sports-management")

	var sent sports.CreateSportRequest
	json.Unmarshal(backend.called("POST /Sports")[0].Body, &sent)
	if sent.Name != "Futsal" || sent.IconURL == nil || *sent.IconURL != "https://cdn.example.com/futsal.png" {
		t.Errorf("create body = %+v", sent)
	}
}

func TestDeleteSportInUse(t *testing.T) {
	t.Parallel()

	app, backend := newTestApp(t)
	backend.handle("DELETE /Sports/5", jsonReply(http.StatusBadRequest, map[string]string{"message": "Cannot delete sport with existing schedules"}))
	h := app.mount()
	dev := newTestDevice(t, app)
	dev.signIn(t, true)

	rec := dev.post(t, h, "/tabs/sports-management/"+app.ids.Encode(5)+"/delete", nil)
	assertRedirect(t, rec, "/tabs/sports-management")
	if f := queuedFlash(t, rec); f.Kind != flashDanger || f.Message != "Cannot delete sport with existing schedules" {
		t.Errorf("flash = %+v", f)
	}
}

func TestUpdateSportDiscardsReplacedIcon(t *testing.T) {
	t.Parallel()

	const oldIcon = "https://res.cloudinary.com/demo/image/upload/v3/sport-icons/sport_1b2c.png"
	app, backend := newTestApp(t)
	uploads := &recordingUploader{}
	app.media = uploads
	backend.handle("PUT /Sports/5", jsonReply(http.StatusNoContent, nil))
	h := app.mount()
	dev := newTestDevice(t, app)
	dev.signIn(t, true)

	rec := dev.post(t, h, "/tabs/sports-management/"+app.ids.Encode(5), url.Values{
		"name":            {"Futsal"},
		"iconUrl":         {"https://cdn.example.com/futsal.png"},
		"previousIconUrl": {oldIcon},
	})
	assertRedirect(t, rec, "/tabs/sports-management")

	if got := uploads.deletedURLs(); len(got) != 1 || got[0] != oldIcon {
		t.Errorf("deleted = %v, want [%s]", got, oldIcon)
	}
}

func TestUpdateSportKeepsForeignIcon(t *testing.T) {
	t.Parallel()

	app, backend := newTestApp(t)
	uploads := &recordingUploader{}
	app.media = uploads
	backend.handle("PUT /Sports/5", jsonReply(http.StatusNoContent, nil))
	h := app.mount()
	dev := newTestDevice(t, app)
	dev.signIn(t, true)

	rec := dev.post(t, h, "/tabs/sports-management/"+app.ids.Encode(5), url.Values{
		"name":            {"Futsal"},
		"iconUrl":         {"https://cdn.example.com/futsal.png"},
		"previousIconUrl": {"https://cdn.example.com/old.png"},
	})
	assertRedirect(t, rec, "/tabs/sports-management")

	if got := uploads.deletedURLs(); len(got) != 0 {
		t.Errorf("deleted = %v, want none", got)
	}
}

func TestDeleteSportDiscardsIcon(t *testing.T) {
	t.Parallel()

	icon := "https://res.cloudinary.com/demo/image/upload/v3/sport-icons/sport_5.png"
	app, backend := newTestApp(t)
	uploads := &recordingUploader{}
	app.media = uploads
	backend.handle("GET /Sports/5", jsonReply(http.StatusOK, sports.Sport{ID: 5, Name: "Futsal", IconURL: &icon}))
	backend.handle("DELETE /Sports/5", jsonReply(http.StatusNoContent, nil))
	h := app.mount()
	dev := newTestDevice(t, app)
	dev.signIn(t, true)

	rec := dev.post(t, h, "/tabs/sports-management/"+app.ids.Encode(5)+"/delete", nil)
	assertRedirect(t, rec, "/tabs/sports-management")

	if got := uploads.deletedURLs(); len(got) != 1 || got[0] != icon {
		t.Errorf("deleted = %v, want [%s]", got, icon)
	}
}
