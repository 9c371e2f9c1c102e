package auth

import (
	"testing"
)

func TestSession_IsGuest(t *testing.T) {
	s := Session{Role: RoleGuest}
	if !s.IsGuest() {
		t.Fatalf("expected guest")
	}
	if (Session{Role: RoleAdmin, UserID: "u1"}).IsGuest() {
		t.Fatalf("did not expect guest")
	}
	// A session without an identity is a guest regardless of role.
	if !(Session{Role: RoleAdmin}).IsGuest() {
		t.Fatalf("expected sessions without a user to be guests")
	}
}

func TestSession_SetUpstreamCookie(t *testing.T) {
	var s Session
	s.SetUpstreamCookie("XSRF-TOKEN", "tok")
	if s.UpstreamCookies["XSRF-TOKEN"] != "tok" {
		t.Fatalf("cookie not recorded: %+v", s.UpstreamCookies)
	}

	s.SetUpstreamCookie("XSRF-TOKEN", "tok2")
	if s.UpstreamCookies["XSRF-TOKEN"] != "tok2" {
		t.Fatalf("cookie not replaced: %+v", s.UpstreamCookies)
	}

	// An empty value clears the cookie, mirroring Set-Cookie expiry.
	s.SetUpstreamCookie("XSRF-TOKEN", "")
	if _, ok := s.UpstreamCookies["XSRF-TOKEN"]; ok {
		t.Fatalf("cookie not cleared: %+v", s.UpstreamCookies)
	}
}

func TestSession_DirtyTracksCookieChanges(t *testing.T) {
	var s Session
	if s.Dirty() {
		t.Fatalf("fresh session should be clean")
	}

	s.SetUpstreamCookie("access_token", "jwt")
	if !s.Dirty() {
		t.Fatalf("recording a cookie should mark the session dirty")
	}

	s.ClearDirty()
	s.SetUpstreamCookie("access_token", "jwt")
	if s.Dirty() {
		t.Fatalf("re-recording the same value should stay clean")
	}

	s.SetUpstreamCookie("missing", "")
	if s.Dirty() {
		t.Fatalf("deleting an absent cookie should stay clean")
	}

	s.SetUpstreamCookie("access_token", "")
	if !s.Dirty() {
		t.Fatalf("clearing a recorded cookie should mark the session dirty")
	}
}
