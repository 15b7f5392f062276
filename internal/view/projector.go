// Package view is the pure projection from mirror snapshots and UI state
// to renderable view models. Nothing here performs I/O; given the same
// snapshot and state it always produces the same result.
package view

import (
	"html/template"
	"sort"
	"strings"

	"folio/internal/domain/entity"
	"folio/internal/usecase"
)

// Sort keys accepted from the query string. Anything else falls back to
// the default order, updatedAt descending.
const (
	SortUpdatedDesc = "updated_desc"
	SortUpdatedAsc  = "updated_asc"
	SortTitleAsc    = "title_asc"
	SortTitleDesc   = "title_desc"
)

// State is the per-request UI state the projection depends on.
type State struct {
	Search   string
	Sort     string
	DetailID string
	Admin    bool
	Verified bool
	GateMsg  string
}

// Card is one renderable project. Thumbnail is pre-marked as a URL
// because generated placeholders are data URIs, which the template's
// contextual URL filter would otherwise reject in src attributes;
// thumbnailURL admits only known-good schemes before marking.
type Card struct {
	ID          string
	Title       string
	URL         string
	Description string
	Prompt      string
	Thumbnail   template.URL
	Views       int64
	Updated     string
}

// AuthClient is the browser sign-in configuration surfaced to the page;
// a zero value hides the sign-in control.
type AuthClient struct {
	APIKey     string
	AuthDomain string
}

// Page is the complete renderable page.
type Page struct {
	Admin    bool
	Verified bool
	GateMsg  string
	SignedIn bool
	Auth     AuthClient

	Profile       entity.Profile
	ProfileExists bool
	ProfileErr    string
	Links         []Link

	Search      string
	Sort        string
	Cards       []Card
	ProjectsErr string

	Detail   *Card
	NotFound bool
}

// Link is one non-empty social link.
type Link struct {
	Label string
	Href  string
}

// Project derives the page from the latest snapshot and the request
// state: filter, then sort, then shape for rendering.
func Project(snap usecase.Snapshot, state State) Page {
	page := Page{
		Admin:         state.Admin,
		Verified:      state.Verified,
		GateMsg:       state.GateMsg,
		Profile:       snap.Profile,
		ProfileExists: snap.ProfileExists,
		ProfileErr:    snap.ProfileErr,
		Links:         profileLinks(snap.Profile),
		Search:        state.Search,
		Sort:          state.Sort,
		ProjectsErr:   snap.ProjectsErr,
	}

	projects := SortProjects(Filter(snap.Projects, state.Search), state.Sort)
	page.Cards = make([]Card, 0, len(projects))
	for _, p := range projects {
		page.Cards = append(page.Cards, card(p))
	}

	if state.DetailID != "" {
		if p, ok := findProject(snap.Projects, state.DetailID); ok {
			detail := card(p)
			page.Detail = &detail
		} else {
			page.NotFound = true
		}
	}

	return page
}

// Filter keeps the projects whose title, description, or prompt contains
// the term case-insensitively. An empty term keeps everything.
func Filter(projects []entity.Project, term string) []entity.Project {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return projects
	}

	filtered := make([]entity.Project, 0, len(projects))
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Prompt), term) {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

// SortProjects orders a copy of the slice by the given key. The sort is
// stable, so equal keys keep the snapshot order.
func SortProjects(projects []entity.Project, key string) []entity.Project {
	sorted := append([]entity.Project(nil), projects...)

	switch key {
	case SortUpdatedAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].UpdatedAt.Before(sorted[j].UpdatedAt)
		})
	case SortTitleAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	case SortTitleDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) > strings.ToLower(sorted[j].Title)
		})
	default:
		// The snapshot already arrives updatedAt descending; re-sorting
		// keeps the guarantee when the key is explicit.
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
		})
	}

	return sorted
}

func card(p entity.Project) Card {
	return Card{
		ID:          p.ID,
		Title:       p.Title,
		URL:         p.URL,
		Description: p.Description,
		Prompt:      p.Prompt,
		Thumbnail:   thumbnailURL(p.Thumbnail, p.Title),
		Views:       p.Views,
		Updated:     p.UpdatedAt.Format("2006-01-02"),
	}
}

// thumbnailURL resolves the stored thumbnail reference for rendering. An
// empty or unrecognized scheme falls back to the generated placeholder,
// so only http(s) links and data images are ever marked safe.
func thumbnailURL(raw, title string) template.URL {
	switch {
	case strings.HasPrefix(raw, "http://"),
		strings.HasPrefix(raw, "https://"),
		strings.HasPrefix(raw, "data:image/"):
		return template.URL(raw)
	}

	return template.URL(entity.PlaceholderThumbnail(title))
}

func findProject(projects []entity.Project, id string) (entity.Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}

	return entity.Project{}, false
}

func profileLinks(profile entity.Profile) []Link {
	links := make([]Link, 0, 4)
	if profile.GitHub != "" {
		links = append(links, Link{Label: "GitHub", Href: profile.GitHub})
	}
	if profile.LinkedIn != "" {
		links = append(links, Link{Label: "LinkedIn", Href: profile.LinkedIn})
	}
	if profile.Instagram != "" {
		links = append(links, Link{Label: "Instagram", Href: profile.Instagram})
	}
	if profile.Email != "" {
		links = append(links, Link{Label: "Email", Href: "mailto:" + profile.Email})
	}

	return links
}
