package github

import "time"

// UserProfile is the subset of the GitHub user resource the summary needs.
// Unknown fields in the upstream payload are ignored.
type UserProfile struct {
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	Location  *string   `json:"location"`
}

// RepositoryRef identifies a single repository owned by a user.
type RepositoryRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
