// Package deeplink maps external route strings onto engine actions.
package deeplink

import (
	"strings"

	"github.com/varepato/pantrypal/internal/engine"
)

// Known routes. A full URL form ("pantry://expiring") is accepted too;
// only the host/path token matters.
const (
	RouteItems    = "items"
	RouteExpiring = "expiring"
	RouteExpired  = "expired"
)

// Resolve parses a route and returns the actions to dispatch against
// the places store. Unknown routes resolve to nothing; callers decide
// whether to warn.
func Resolve(route string) ([]engine.Action, bool) {
	r := strings.ToLower(strings.TrimSpace(route))
	if i := strings.Index(r, "://"); i >= 0 {
		r = r[i+3:]
	}
	r = strings.Trim(r, "/")

	switch r {
	case RouteItems:
		return []engine.Action{engine.OpenAllItems{}}, true
	case RouteExpiring:
		return []engine.Action{
			engine.OpenAllItems{},
			engine.BannerTapped{Kind: engine.BannerExpiringSoon},
		}, true
	case RouteExpired:
		return []engine.Action{
			engine.OpenAllItems{},
			engine.BannerTapped{Kind: engine.BannerExpired},
		}, true
	}
	return nil, false
}
