package domain

// MemberUser is a guild member flattened with its user record.
type MemberUser struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"globalName"`
	Nickname      *string `json:"nickname"`
	AvatarURL     *string `json:"avatarUrl"`
	IsBot         bool    `json:"isBot"`
	*MemberDetails
}

type MemberDetails struct {
	Roles        []string `json:"roles"`
	JoinedAt     string   `json:"joinedAt"`
	PremiumSince *string  `json:"premiumSince,omitempty"`
}

// MemberProfile is the member record returned alongside its roles.
type MemberProfile struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"globalName"`
	Nickname      *string `json:"nickname"`
	AvatarURL     *string `json:"avatarUrl"`
	IsBot         bool    `json:"isBot"`
	JoinedAt      string  `json:"joinedAt"`
	PremiumSince  *string `json:"premiumSince"`
}

// UserSummary is a user reference embedded in invites and webhooks.
type UserSummary struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"globalName"`
	AvatarURL     *string `json:"avatarUrl"`
}
