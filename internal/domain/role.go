package domain

// Role is a guild role with its derived color and admin flag.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	ColorValue  int    `json:"colorValue"`
	Hoist       bool   `json:"hoist"`
	Position    int    `json:"position"`
	Permissions string `json:"permissions"`
	IsAdmin     bool   `json:"isAdmin"`
	Managed     bool   `json:"managed"`
	Mentionable bool   `json:"mentionable"`
	*RoleDetails
}

type RoleDetails struct {
	Tags         *RoleTags `json:"tags,omitempty"`
	IconURL      *string   `json:"iconUrl"`
	UnicodeEmoji *string   `json:"unicodeEmoji"`
}

type RoleTags struct {
	IsBot                  bool `json:"isBot"`
	IsIntegration          bool `json:"isIntegration"`
	IsPremiumSubscriber    bool `json:"isPremiumSubscriber"`
	IsGuildConnections     bool `json:"isGuildConnections"`
	IsAvailableForPurchase bool `json:"isAvailableForPurchase"`
}
