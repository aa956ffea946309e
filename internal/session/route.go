package session

import (
	"strings"

	"github.com/abhisek/educareer/internal/catalog"
)

// Page is a logical screen of the application.
type Page string

const (
	PageHome       Page = "home"
	PageDiscover   Page = "discover"
	PageTrack      Page = "track"
	PageAuth       Page = "auth"
	PageDashboard  Page = "dashboard"
	PageTasks      Page = "tasks"
	PageProjects   Page = "projects"
	PagePortfolio  Page = "portfolio"
	PageAssessment Page = "assessment"
	PageUnknown    Page = "unknown"
)

// Route is a page plus the track id for the detail page.
type Route struct {
	Page  Page
	Track catalog.Specialization
}

var (
	RouteHome       = Route{Page: PageHome}
	RouteDiscover   = Route{Page: PageDiscover}
	RouteAuth       = Route{Page: PageAuth}
	RouteDashboard  = Route{Page: PageDashboard}
	RouteAssessment = Route{Page: PageAssessment}
)

// TrackRoute returns the detail route of a track.
func TrackRoute(id catalog.Specialization) Route {
	return Route{Page: PageTrack, Track: id}
}

// String returns the path form of the route.
func (r Route) String() string {
	switch r.Page {
	case PageHome:
		return "/"
	case PageTrack:
		return "/discover/" + string(r.Track)
	case PageUnknown:
		return "/404"
	default:
		return "/" + string(r.Page)
	}
}

// Protected reports whether the page requires an authenticated user.
func (r Route) Protected() bool {
	switch r.Page {
	case PageDashboard, PageTasks, PageProjects, PagePortfolio, PageAssessment:
		return true
	}
	return false
}

// ParseRoute parses a path such as "/discover/finance". Unrecognized
// paths produce a PageUnknown route.
func ParseRoute(path string) Route {
	p := strings.Trim(strings.TrimPrefix(path, "#"), "/")
	if p == "" {
		return RouteHome
	}
	parts := strings.Split(p, "/")
	switch {
	case len(parts) == 1:
		switch Page(parts[0]) {
		case PageDiscover, PageAuth, PageDashboard, PageTasks, PageProjects, PagePortfolio, PageAssessment:
			return Route{Page: Page(parts[0])}
		}
	case len(parts) == 2 && parts[0] == string(PageDiscover):
		return Route{Page: PageTrack, Track: catalog.Specialization(parts[1])}
	}
	return Route{Page: PageUnknown}
}

// Resolve applies the navigation guards to r for the current state and
// returns the route that should actually be shown.
func (s *Session) Resolve(r Route) Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return resolve(s.state, s.catalog, r)
}

func resolve(st State, cat *catalog.Catalog, r Route) Route {
	u := st.user()
	switch {
	case r.Page == PageUnknown:
		return RouteHome
	case r.Page == PageTrack && !cat.Has(r.Track):
		return RouteDiscover
	case r.Protected() && u == nil:
		return RouteAuth
	case r.Page == PageAuth && u != nil:
		return RouteDashboard
	}

	_, inAssessment := st.(InAssessment)
	switch r.Page {
	case PageAssessment:
		if inAssessment {
			return r
		}
		if _, ok := u.Track(); ok {
			return r
		}
		return RouteDiscover
	case PageDashboard, PageTasks:
		if inAssessment {
			return RouteAssessment
		}
	}
	return r
}
