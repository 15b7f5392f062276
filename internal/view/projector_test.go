package view

import (
	"html/template"
	"testing"
	"time"

	"folio/internal/domain/entity"
	"folio/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProjects() []entity.Project {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	return []entity.Project{
		{ID: "1", Title: "Weather Radar", Description: "live map", Prompt: "build a radar", UpdatedAt: base.Add(3 * time.Hour)},
		{ID: "2", Title: "chess engine", Description: "Minimax AI", Prompt: "play chess", UpdatedAt: base.Add(2 * time.Hour)},
		{ID: "3", Title: "Budget App", Description: "tracks spending", Prompt: "weather-proof budget", UpdatedAt: base.Add(time.Hour)},
	}
}

func ids(projects []entity.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}

	return out
}

func TestFilter(t *testing.T) {
	projects := sampleProjects()

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty keeps everything", "", []string{"1", "2", "3"}},
		{"whitespace keeps everything", "   ", []string{"1", "2", "3"}},
		{"title match is case-insensitive", "CHESS", []string{"2"}},
		{"description matches", "minimax", []string{"2"}},
		{"prompt matches", "weather", []string{"1", "3"}},
		{"no match empties the list", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(projects, tt.term)))
		})
	}
}

func TestSortProjects(t *testing.T) {
	projects := sampleProjects()

	tests := []struct {
		name string
		key  string
		want []string
	}{
		{"updated descending", SortUpdatedDesc, []string{"1", "2", "3"}},
		{"updated ascending", SortUpdatedAsc, []string{"3", "2", "1"}},
		{"title ascending ignores case", SortTitleAsc, []string{"3", "2", "1"}},
		{"title descending", SortTitleDesc, []string{"1", "2", "3"}},
		{"unknown key falls back to updated descending", "bogus", []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortProjects(projects, tt.key)))
		})
	}

	// Input order is never mutated.
	assert.Equal(t, []string{"1", "2", "3"}, ids(projects))
}

func TestSortProjects_StableOnEqualKeys(t *testing.T) {
	same := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	projects := []entity.Project{
		{ID: "a", Title: "Same", UpdatedAt: same},
		{ID: "b", Title: "Same", UpdatedAt: same},
		{ID: "c", Title: "Same", UpdatedAt: same},
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(SortProjects(projects, SortTitleAsc)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(SortProjects(projects, SortUpdatedDesc)))
}

func TestProject_DetailLookup(t *testing.T) {
	snap := usecase.Snapshot{Projects: sampleProjects()}

	page := Project(snap, State{DetailID: "2"})
	require.NotNil(t, page.Detail)
	assert.Equal(t, "chess engine", page.Detail.Title)
	assert.False(t, page.NotFound)

	page = Project(snap, State{DetailID: "missing"})
	assert.Nil(t, page.Detail)
	assert.True(t, page.NotFound)
}

func TestProject_DetailIgnoresActiveFilter(t *testing.T) {
	snap := usecase.Snapshot{Projects: sampleProjects()}

	page := Project(snap, State{Search: "chess", DetailID: "1"})
	require.NotNil(t, page.Detail, "the detail route resolves against the full snapshot")
	assert.Equal(t, "Weather Radar", page.Detail.Title)
	assert.Len(t, page.Cards, 1)
}

func TestProject_CardsUsePlaceholderWhenThumbnailMissing(t *testing.T) {
	snap := usecase.Snapshot{Projects: []entity.Project{
		{ID: "1", Title: "No Art"},
		{ID: "2", Title: "Has Art", Thumbnail: "https://img/x.png"},
	}}

	page := Project(snap, State{})
	require.Len(t, page.Cards, 2)

	byID := map[string]Card{}
	for _, c := range page.Cards {
		byID[c.ID] = c
	}
	assert.Equal(t, template.URL(entity.PlaceholderThumbnail("No Art")), byID["1"].Thumbnail)
	assert.Equal(t, template.URL("https://img/x.png"), byID["2"].Thumbnail)
}

func TestThumbnailURL_AdmitsKnownSchemesOnly(t *testing.T) {
	placeholder := template.URL(entity.PlaceholderThumbnail("T"))

	tests := []struct {
		name string
		raw  string
		want template.URL
	}{
		{"https passes", "https://img/x.png", "https://img/x.png"},
		{"http passes", "http://img/x.png", "http://img/x.png"},
		{"data image passes", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"empty falls back", "", placeholder},
		{"javascript is rejected", "javascript:alert(1)", placeholder},
		{"bare path is rejected", "/etc/passwd", placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, thumbnailURL(tt.raw, "T"))
		})
	}
}

func TestProfileLinks(t *testing.T) {
	page := Project(usecase.Snapshot{Profile: entity.Profile{
		GitHub: "https://github.com/x",
		Email:  "x@example.com",
	}}, State{})

	require.Len(t, page.Links, 2)
	assert.Equal(t, Link{Label: "GitHub", Href: "https://github.com/x"}, page.Links[0])
	assert.Equal(t, Link{Label: "Email", Href: "mailto:x@example.com"}, page.Links[1])

	assert.Empty(t, Project(usecase.Snapshot{}, State{}).Links)
}

func TestProject_CarriesErrorRegions(t *testing.T) {
	page := Project(usecase.Snapshot{
		ProjectsErr: "stream down",
		ProfileErr:  "doc gone",
	}, State{})

	assert.Equal(t, "stream down", page.ProjectsErr)
	assert.Equal(t, "doc gone", page.ProfileErr)
}
