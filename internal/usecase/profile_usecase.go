package usecase

import (
	"context"

	"folio/internal/domain/entity"
)

// ProfileInput is the editable landing-area content.
type ProfileInput struct {
	Name      string `json:"name"`
	Tagline   string `json:"tagline"`
	About     string `json:"about"`
	GitHub    string `json:"github" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin" validate:"omitempty,url"`
	Instagram string `json:"instagram" validate:"omitempty,url"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// ProfileUsecase is the mutation gateway for the profile singleton,
// admin-gated identically to project mutations.
type ProfileUsecase interface {
	// Update merge-writes all profile fields plus a refreshed updatedAt.
	Update(ctx context.Context, sess *entity.Session, input ProfileInput) (applied bool, err error)
}
