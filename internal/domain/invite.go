package domain

// Invite is a channel or guild invite.
type Invite struct {
	Code                     string         `json:"code"`
	Guild                    *InviteGuild   `json:"guild,omitempty"`
	Channel                  *InviteChannel `json:"channel"`
	Inviter                  *UserSummary   `json:"inviter,omitempty"`
	ApproximateMemberCount   *int           `json:"approximateMemberCount,omitempty"`
	ApproximatePresenceCount *int           `json:"approximatePresenceCount,omitempty"`
	ExpiresAt                *string        `json:"expiresAt"`
	Type                     int            `json:"type"`
	Uses                     *int           `json:"uses,omitempty"`
	MaxUses                  *int           `json:"maxUses,omitempty"`
	MaxAge                   *int           `json:"maxAge,omitempty"`
	Temporary                *bool          `json:"temporary,omitempty"`
	CreatedAt                string         `json:"createdAt,omitempty"`
}

type InviteGuild struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	Icon                     *string  `json:"icon"`
	Description              *string  `json:"description"`
	Features                 []string `json:"features"`
	VerificationLevel        int      `json:"verificationLevel"`
	NSFWLevel                int      `json:"nsfwLevel"`
	PremiumSubscriptionCount *int     `json:"premiumSubscriptionCount,omitempty"`
}

type InviteChannel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

// Webhook is a channel or guild webhook.
type Webhook struct {
	ID            string          `json:"id"`
	Type          int             `json:"type"`
	GuildID       string          `json:"guildId,omitempty"`
	ChannelID     *string         `json:"channelId"`
	User          *UserSummary    `json:"user,omitempty"`
	Name          *string         `json:"name"`
	Avatar        *string         `json:"avatar"`
	ApplicationID *string         `json:"applicationId"`
	SourceGuild   *WebhookGuild   `json:"sourceGuild,omitempty"`
	SourceChannel *WebhookChannel `json:"sourceChannel,omitempty"`
	URL           string          `json:"url,omitempty"`
}

type WebhookGuild struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

type WebhookChannel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
