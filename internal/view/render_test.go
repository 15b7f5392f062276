package view

import (
	"strings"
	"testing"

	"folio/internal/domain/entity"
	"folio/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_EscapesUserSuppliedText(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	page := Project(usecase.Snapshot{Projects: []entity.Project{{
		ID:          "1",
		Title:       `<script>alert("x")</script>`,
		Description: `Tom & Jerry's "show" <b>`,
		Thumbnail:   "https://img/x.png",
	}}}, State{Verified: true})

	var sb strings.Builder
	require.NoError(t, r.Render(&sb, page))
	html := sb.String()

	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Tom &amp; Jerry")
	assert.NotContains(t, html, "<b>")
}

func TestRenderer_PlaceholderThumbnailSurvivesEscaping(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	snap := usecase.Snapshot{Projects: []entity.Project{{ID: "1", Title: "No Art"}}}

	var list strings.Builder
	require.NoError(t, r.Render(&list, Project(snap, State{Verified: true})))
	assert.Contains(t, list.String(), `src="data:image/svg+xml;base64,`)
	assert.NotContains(t, list.String(), "ZgotmplZ")

	// The detail view renders the same image.
	var detail strings.Builder
	require.NoError(t, r.Render(&detail, Project(snap, State{Verified: true, DetailID: "1"})))
	assert.Contains(t, detail.String(), `src="data:image/svg+xml;base64,`)
	assert.NotContains(t, detail.String(), "ZgotmplZ")
}

func TestRenderer_AdminControlsHiddenForVisitors(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	snap := usecase.Snapshot{Projects: []entity.Project{{ID: "1", Title: "P"}}}

	var visitor strings.Builder
	require.NoError(t, r.Render(&visitor, Project(snap, State{Verified: true})))
	assert.NotContains(t, visitor.String(), "delete-btn")
	assert.NotContains(t, visitor.String(), "addProjectBtn")
	assert.NotContains(t, visitor.String(), "views")
	assert.NotContains(t, visitor.String(), "projectDialog")
	assert.NotContains(t, visitor.String(), "profileForm")

	var admin strings.Builder
	require.NoError(t, r.Render(&admin, Project(snap, State{Verified: true, Admin: true})))
	assert.Contains(t, admin.String(), "delete-btn")
	assert.Contains(t, admin.String(), "addProjectBtn")
	assert.Contains(t, admin.String(), "projectDialog")
	assert.Contains(t, admin.String(), "profileForm")
}

func TestRenderer_AuthConfigEmbeddedOnlyWhenConfigured(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var plain strings.Builder
	require.NoError(t, r.Render(&plain, Project(usecase.Snapshot{}, State{Verified: true})))
	assert.NotContains(t, plain.String(), "folioAuth")
	assert.NotContains(t, plain.String(), "firebase-auth-compat")

	page := Project(usecase.Snapshot{}, State{Verified: true})
	page.Auth = AuthClient{APIKey: "AIzaKey", AuthDomain: "demo.firebaseapp.com"}
	var configured strings.Builder
	require.NoError(t, r.Render(&configured, page))
	assert.Contains(t, configured.String(), "firebase-auth-compat")
	assert.Contains(t, configured.String(), "AIzaKey")
	assert.Contains(t, configured.String(), "demo.firebaseapp.com")
}

func TestRenderer_GateOverlayOnlyWhileLocked(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var locked strings.Builder
	require.NoError(t, r.Render(&locked, Project(usecase.Snapshot{}, State{GateMsg: "Verification failed. Please try again."})))
	assert.Contains(t, locked.String(), "cf-turnstile")
	assert.Contains(t, locked.String(), "Verification failed. Please try again.")

	var open strings.Builder
	require.NoError(t, r.Render(&open, Project(usecase.Snapshot{}, State{Verified: true})))
	assert.NotContains(t, open.String(), "cf-turnstile")
}

func TestRenderer_DetailAndNotFound(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	snap := usecase.Snapshot{Projects: []entity.Project{{ID: "1", Title: "Solo"}}}

	var detail strings.Builder
	require.NoError(t, r.Render(&detail, Project(snap, State{Verified: true, DetailID: "1"})))
	assert.Contains(t, detail.String(), "Solo")

	var missing strings.Builder
	require.NoError(t, r.Render(&missing, Project(snap, State{Verified: true, DetailID: "zzz"})))
	assert.Contains(t, missing.String(), "no longer exists")
}
