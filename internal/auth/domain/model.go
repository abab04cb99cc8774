package domain

// Identity is the authenticated user as the application sees it. It is
// mapped from the provider profile once, at the OAuth callback boundary,
// stored whole in the session, and never mutated afterwards.
type Identity struct {
	Provider       string `json:"provider"`
	ProviderUserID string `json:"provider_user_id"`
	DisplayName    string `json:"display_name"`
	Email          string `json:"email,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
}

func (i Identity) IsZero() bool {
	return i.ProviderUserID == ""
}
