package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	deviceCookieName = "playoh_device"
	deviceCookieAge  = 365 * 24 * time.Hour
)

var errBadDeviceCookie = errors.New("device cookie does not open")

// deviceSealer signs and encrypts the device id kept in the browser, so a
// client cannot pick another device's id and read its session.
type deviceSealer struct {
	key    [32]byte
	secure bool
}

func newDeviceSealer(secret string, secure bool) (*deviceSealer, error) {
	s := &deviceSealer{secure: secure}
	if secret == "" {
		// sessions then do not survive a restart
		if _, err := io.ReadFull(rand.Reader, s.key[:]); err != nil {
			return nil, err
		}
		return s, nil
	}
	s.key = sha256.Sum256([]byte(secret))
	return s, nil
}

func (s *deviceSealer) seal(id uuid.UUID) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	box := secretbox.Seal(nonce[:], id[:], &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func (s *deviceSealer) open(value string) (uuid.UUID, error) {
	box, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(box) < 24+secretbox.Overhead {
		return uuid.Nil, errBadDeviceCookie
	}
	var nonce [24]byte
	copy(nonce[:], box[:24])
	plain, ok := secretbox.Open(nil, box[24:], &nonce, &s.key)
	if !ok {
		return uuid.Nil, errBadDeviceCookie
	}
	id, err := uuid.FromBytes(plain)
	if err != nil {
		return uuid.Nil, errBadDeviceCookie
	}
	return id, nil
}

// deviceID returns the id from the request cookie, minting and setting a new
// one when the cookie is missing or does not open.
func (s *deviceSealer) deviceID(w http.ResponseWriter, r *http.Request) (string, error) {
	if c, err := r.Cookie(deviceCookieName); err == nil {
		if id, err := s.open(c.Value); err == nil {
			return id.String(), nil
		}
	}

	id := uuid.New()
	value, err := s.seal(id)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     deviceCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(deviceCookieAge.Seconds()),
	})
	return id.String(), nil
}
