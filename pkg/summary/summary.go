// Package summary assembles the consolidated user summary from upstream
// profile and repository data.
package summary

import (
	"regexp"
	"strings"

	"github.com/Sternrassler/github-user-summary/pkg/github"
)

// UserSummary is the consolidated view of a GitHub user and their repositories.
// It is the unit stored in and returned from the fallback cache.
type UserSummary struct {
	UserName    string       `json:"userName"`
	DisplayName string       `json:"displayName"`
	Avatar      string       `json:"avatar"`
	GeoLocation *string      `json:"geoLocation"`
	Email       *string      `json:"email"`
	URL         string       `json:"url"`
	CreatedAt   HTTPTime     `json:"createdAt"`
	Repos       []Repository `json:"repos"`
}

// Repository is one entry of UserSummary.Repos.
type Repository struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// loginPattern accepts GitHub logins: alphanumerics and single inner hyphens, 1-39 chars.
var loginPattern = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,37}[a-zA-Z0-9])?$`)

// ValidLogin reports whether raw is a well-formed GitHub login.
// Anything else (path separators, dots, empty) must not reach upstream.
func ValidLogin(raw string) bool {
	return loginPattern.MatchString(raw)
}

// NormalizeLogin returns the case-folded login used as identity and cache key.
func NormalizeLogin(raw string) string {
	return strings.ToLower(raw)
}

// Build maps a profile and its repositories into a UserSummary.
// The login is normalized, repository order is preserved and inputs are not modified.
func Build(profile *github.UserProfile, repos []github.RepositoryRef) *UserSummary {
	out := make([]Repository, len(repos))
	for i, r := range repos {
		out[i] = Repository{Name: r.Name, URL: r.URL}
	}

	return &UserSummary{
		UserName:    NormalizeLogin(profile.Login),
		DisplayName: profile.Name,
		Avatar:      profile.AvatarURL,
		GeoLocation: copyString(profile.Location),
		Email:       copyString(profile.Email),
		URL:         profile.URL,
		CreatedAt:   HTTPTime{Time: profile.CreatedAt},
		Repos:       out,
	}
}

// Clone returns a deep copy that shares no memory with s.
func (s *UserSummary) Clone() *UserSummary {
	if s == nil {
		return nil
	}
	c := *s
	c.GeoLocation = copyString(s.GeoLocation)
	c.Email = copyString(s.Email)
	if s.Repos != nil {
		c.Repos = append(make([]Repository, 0, len(s.Repos)), s.Repos...)
	}
	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
