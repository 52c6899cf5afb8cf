package domain_test

import (
	"testing"

	"github.com/leadhive/leadhive-backend/internal/proposals/domain"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{domain.StatusPending, domain.StatusAccepted, true},
		{domain.StatusPending, domain.StatusRejected, true},
		{domain.StatusPending, domain.StatusPending, false},
		{domain.StatusAccepted, domain.StatusRejected, false},
		{domain.StatusAccepted, domain.StatusPending, false},
		{domain.StatusRejected, domain.StatusAccepted, false},
		{domain.StatusRejected, domain.StatusPending, false},
		{"unknown", domain.StatusAccepted, false},
	}

	for _, tc := range cases {
		if got := domain.CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if domain.IsTerminal(domain.StatusPending) {
		t.Error("IsTerminal(pending) should be false")
	}
	for _, s := range []string{domain.StatusAccepted, domain.StatusRejected} {
		if !domain.IsTerminal(s) {
			t.Errorf("IsTerminal(%q) should be true", s)
		}
	}
}
