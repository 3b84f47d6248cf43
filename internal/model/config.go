package model

// AdminConfig is the global admin-role registry. An empty AdminRoles list
// means only the guild owner and configured superusers hold admin rights.
type AdminConfig struct {
	AdminRoles    []string `json:"adminRoles"`
	DisplayRoleID string   `json:"displayRoleId,omitempty"`
}

// WelcomeConfig is the per-guild welcome message configuration.
// Message may contain a {user} placeholder substituted at send time.
type WelcomeConfig struct {
	ChannelID string `json:"channelId"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Message   string `json:"welcomeMessage"`
	LogoURL   string `json:"logoUrl,omitempty"`
	Enabled   bool   `json:"enabled"`
	Timestamp int64  `json:"timestamp"`
}
