package deeplink

import (
	"testing"

	"github.com/varepato/pantrypal/internal/engine"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		route  string
		wantOK bool
		wantN  int
	}{
		{"items", true, 1},
		{"expiring", true, 2},
		{"expired", true, 2},
		{"pantry://expired", true, 2},
		{"  EXPIRING  ", true, 2},
		{"/items/", true, 1},
		{"settings", false, 0},
		{"", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			actions, ok := Resolve(tt.route)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if len(actions) != tt.wantN {
				t.Errorf("got %d actions, want %d", len(actions), tt.wantN)
			}
		})
	}
}

func TestResolveTargets(t *testing.T) {
	actions, _ := Resolve("expired")
	if _, ok := actions[0].(engine.OpenAllItems); !ok {
		t.Errorf("first action = %T, want OpenAllItems", actions[0])
	}
	tapped, ok := actions[1].(engine.BannerTapped)
	if !ok || tapped.Kind != engine.BannerExpired {
		t.Errorf("second action = %#v, want BannerTapped{BannerExpired}", actions[1])
	}

	actions, _ = Resolve("expiring")
	tapped, ok = actions[1].(engine.BannerTapped)
	if !ok || tapped.Kind != engine.BannerExpiringSoon {
		t.Errorf("second action = %#v, want BannerTapped{BannerExpiringSoon}", actions[1])
	}
}
