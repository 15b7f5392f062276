package entity

import "time"

// Profile is the site owner's landing-area content. Exactly one instance
// exists, stored under a fixed well-known document id. Writes always use
// merge semantics so partial updates never erase untouched fields.
type Profile struct {
	Name    string `firestore:"name" json:"name"`
	Tagline string `firestore:"tagline" json:"tagline"`
	About   string `firestore:"about" json:"about"`

	// Social links; only non-empty ones render.
	GitHub    string `firestore:"github" json:"github"`
	LinkedIn  string `firestore:"linkedin" json:"linkedin"`
	Instagram string `firestore:"instagram" json:"instagram"`
	Email     string `firestore:"email" json:"email"`

	UpdatedAt time.Time `firestore:"updatedAt,serverTimestamp" json:"updatedAt"`
}

// DefaultProfile is written once, with merge semantics, the first time the
// mirror observes the singleton absent. Content is fixed so the
// first-boot race between two clients stays idempotent.
func DefaultProfile() Profile {
	return Profile{
		Name:    "Your Name",
		Tagline: "What you do, in one line",
		About:   "Tell visitors about yourself here.",
	}
}
