package auth

import (
	"errors"
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"admin", RoleAdmin, true},
		{" User ", RoleUser, true},
		{"CONTRACTOR", RoleContractor, true},
		{"guest", Role("guest"), false},
		{"", Role(""), false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseRole(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRouteForRole_EnumeratedRoles(t *testing.T) {
	for _, r := range Roles() {
		want := "/" + string(r) + "/dashboard"
		if got := RouteForRole(r); got != want {
			t.Fatalf("RouteForRole(%q) = %q, want %q", r, got, want)
		}
	}
}

func TestRouteForRole_UnknownFallsBackToAdmin(t *testing.T) {
	for _, r := range []Role{"", "guest", "Admin", "root"} {
		if got := RouteForRole(r); got != "/admin/dashboard" {
			t.Fatalf("RouteForRole(%q) = %q, want /admin/dashboard", r, got)
		}
		if _, ok := RouteSegment(r); ok {
			t.Fatalf("RouteSegment(%q) reported a mapped role", r)
		}
	}
}

func TestRouteForRole_Idempotent(t *testing.T) {
	first := RouteForRole(RoleContractor)
	second := RouteForRole(RoleContractor)
	if first != second {
		t.Fatalf("expected identical results, got %q and %q", first, second)
	}
}

func TestAuthState_Transitions(t *testing.T) {
	allowed := []struct {
		from AuthState
		ev   Event
		to   AuthState
	}{
		{StateIdle, EventSubmit, StateSubmitting},
		{StateSubmitting, EventMatch, StateAuthenticated},
		{StateSubmitting, EventNoMatch, StateFailed},
		{StateSubmitting, EventFault, StateFailed},
		{StateFailed, EventReset, StateIdle},
	}
	for _, tt := range allowed {
		got, err := tt.from.Next(tt.ev)
		if err != nil || got != tt.to {
			t.Fatalf("%s --%s--> got %s, %v; want %s", tt.from, tt.ev, got, err, tt.to)
		}
	}

	rejected := []struct {
		from AuthState
		ev   Event
	}{
		{StateIdle, EventMatch},
		{StateSubmitting, EventSubmit},
		{StateAuthenticated, EventSubmit},
		{StateAuthenticated, EventReset},
		{StateFailed, EventSubmit},
	}
	for _, tt := range rejected {
		got, err := tt.from.Next(tt.ev)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%s --%s--> expected ErrInvalidTransition, got %v", tt.from, tt.ev, err)
		}
		if got != tt.from {
			t.Fatalf("rejected transition should keep state %s, got %s", tt.from, got)
		}
	}
}

func TestSession_ApplyMirrorsLoading(t *testing.T) {
	s := NewSession("s1", time.Now().Add(time.Hour))
	if s.Loading || s.State != StateIdle {
		t.Fatalf("unexpected initial session: %+v", s)
	}
	if err := s.Apply(EventSubmit); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !s.Loading {
		t.Fatal("expected loading while submitting")
	}
	if err := s.Apply(EventNoMatch); err != nil {
		t.Fatalf("no match: %v", err)
	}
	if s.Loading {
		t.Fatal("loading should clear once the attempt fails")
	}

	var zero Session
	if err := zero.Apply(EventSubmit); err != nil {
		t.Fatalf("zero-value session should start idle: %v", err)
	}
}

func TestSession_AuthenticateCopiesIdentity(t *testing.T) {
	id := UserIdentity{Role: RoleUser, Email: "u@itec.com", Name: "U"}
	var s Session
	s.Authenticate(id)
	id.Name = "changed"
	if !s.HasUser() || s.User.Name != "U" {
		t.Fatalf("session identity should be an independent copy: %+v", s.User)
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	if (Session{}).Expired(now) {
		t.Fatal("zero expiry should never expire")
	}
	if !(Session{ExpiresAt: now.Add(-time.Second)}).Expired(now) {
		t.Fatal("past expiry should be expired")
	}
}
