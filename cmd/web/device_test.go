package main

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestDeviceSealerRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := newDeviceSealer("secret", true)
	if err != nil {
		t.Fatal(err)
	}
	id := uuid.New()
	sealed, err := s.seal(id)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.open(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got != id {
		t.Errorf("opened %s, want %s", got, id)
	}

	other, _ := newDeviceSealer("another secret", true)
	if _, err := other.open(sealed); !errors.Is(err, errBadDeviceCookie) {
		t.Errorf("foreign key err = %v, want errBadDeviceCookie", err)
	}

	box, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		t.Fatal(err)
	}
	box[len(box)/2] ^= 1
	if _, err := s.open(base64.RawURLEncoding.EncodeToString(box)); !errors.Is(err, errBadDeviceCookie) {
		t.Error("tampered cookie opened")
	}
	if _, err := s.open("short"); !errors.Is(err, errBadDeviceCookie) {
		t.Errorf("short cookie err = %v", err)
	}
}

func TestDeviceIDIsStable(t *testing.T) {
	t.Parallel()

	s, _ := newDeviceSealer("secret", false)

	first := httptest.NewRecorder()
	id, err := s.deviceID(first, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	cookies := first.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	again := httptest.NewRecorder()
	id2, err := s.deviceID(again, req)
	if err != nil {
		t.Fatal(err)
	}
	if id2 != id {
		t.Errorf("second id %s, want %s", id2, id)
	}
	if len(again.Result().Cookies()) != 0 {
		t.Error("a valid cookie was replaced")
	}

	forged := httptest.NewRequest(http.MethodGet, "/", nil)
	forged.AddCookie(&http.Cookie{Name: deviceCookieName, Value: id})
	id3, _ := s.deviceID(httptest.NewRecorder(), forged)
	if id3 == id {
		t.Error("a plain device id was accepted")
	}
}
