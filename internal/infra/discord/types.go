package discord

import "encoding/json"

// Payload types mirror the REST v10 wire shapes. Nullable fields are pointers.

type User struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"global_name"`
	Avatar        *string `json:"avatar"`
	Bot           bool    `json:"bot"`
}

type Guild struct {
	ID                       string            `json:"id"`
	Name                     string            `json:"name"`
	Icon                     *string           `json:"icon"`
	Description              *string           `json:"description"`
	OwnerID                  string            `json:"owner_id"`
	Region                   string            `json:"region"`
	AFKChannelID             *string           `json:"afk_channel_id"`
	AFKTimeout               int               `json:"afk_timeout"`
	ApproximateMemberCount   *int              `json:"approximate_member_count"`
	ApproximatePresenceCount *int              `json:"approximate_presence_count"`
	PremiumSubscriptionCount *int              `json:"premium_subscription_count"`
	PremiumTier              int               `json:"premium_tier"`
	Features                 []string          `json:"features"`
	Emojis                   []json.RawMessage `json:"emojis"`
	Stickers                 []json.RawMessage `json:"stickers"`
}

type Channel struct {
	ID                   string                `json:"id"`
	Type                 int                   `json:"type"`
	Name                 string                `json:"name"`
	Position             int                   `json:"position"`
	Topic                *string               `json:"topic"`
	NSFW                 bool                  `json:"nsfw"`
	ParentID             *string               `json:"parent_id"`
	PermissionOverwrites []PermissionOverwrite `json:"permission_overwrites"`
}

type PermissionOverwrite struct {
	ID    string `json:"id"`
	Type  int    `json:"type"`
	Allow string `json:"allow"`
	Deny  string `json:"deny"`
}

type Member struct {
	User         *User    `json:"user"`
	Nick         *string  `json:"nick"`
	Roles        []string `json:"roles"`
	JoinedAt     string   `json:"joined_at"`
	PremiumSince *string  `json:"premium_since"`
}

type Role struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Color        int       `json:"color"`
	Hoist        bool      `json:"hoist"`
	Icon         *string   `json:"icon"`
	UnicodeEmoji *string   `json:"unicode_emoji"`
	Position     int       `json:"position"`
	Permissions  string    `json:"permissions"`
	Managed      bool      `json:"managed"`
	Mentionable  bool      `json:"mentionable"`
	Tags         *RoleTags `json:"tags"`
}

// RoleTags encodes boolean tags as present-with-null keys.
type RoleTags struct {
	BotID                 *string `json:"bot_id"`
	IntegrationID         *string `json:"integration_id"`
	PremiumSubscriber     Flag    `json:"premium_subscriber"`
	GuildConnections      Flag    `json:"guild_connections"`
	AvailableForPurchase  Flag    `json:"available_for_purchase"`
	SubscriptionListingID *string `json:"subscription_listing_id"`
}

// Flag is true when its key is present in the payload, whatever the value.
type Flag bool

func (f *Flag) UnmarshalJSON(_ []byte) error {
	*f = true
	return nil
}

type Message struct {
	ID              string            `json:"id"`
	ChannelID       string            `json:"channel_id"`
	GuildID         string            `json:"guild_id"`
	Author          User              `json:"author"`
	Member          *MessageMember    `json:"member"`
	Content         string            `json:"content"`
	Timestamp       string            `json:"timestamp"`
	EditedTimestamp *string           `json:"edited_timestamp"`
	TTS             bool              `json:"tts"`
	MentionEveryone bool              `json:"mention_everyone"`
	Mentions        []User            `json:"mentions"`
	MentionRoles    []string          `json:"mention_roles"`
	Attachments     []Attachment      `json:"attachments"`
	Embeds          []json.RawMessage `json:"embeds"`
	Reactions       []Reaction        `json:"reactions"`
	Type            int               `json:"type"`
	Pinned          bool              `json:"pinned"`
	WebhookID       string            `json:"webhook_id"`
}

type MessageMember struct {
	Nick  *string  `json:"nick"`
	Roles []string `json:"roles"`
}

type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Height      *int   `json:"height"`
	Width       *int   `json:"width"`
}

type Reaction struct {
	Emoji Emoji `json:"emoji"`
	Count int   `json:"count"`
	Me    bool  `json:"me"`
}

type Emoji struct {
	ID       *string `json:"id"`
	Name     *string `json:"name"`
	Animated bool    `json:"animated"`
}

type Invite struct {
	Code                     string         `json:"code"`
	Guild                    *InviteGuild   `json:"guild"`
	Channel                  *InviteChannel `json:"channel"`
	Inviter                  *User          `json:"inviter"`
	ApproximateMemberCount   *int           `json:"approximate_member_count"`
	ApproximatePresenceCount *int           `json:"approximate_presence_count"`
	ExpiresAt                *string        `json:"expires_at"`
	Type                     int            `json:"type"`
	Uses                     *int           `json:"uses"`
	MaxUses                  *int           `json:"max_uses"`
	MaxAge                   *int           `json:"max_age"`
	Temporary                *bool          `json:"temporary"`
	CreatedAt                string         `json:"created_at"`
}

type InviteGuild struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	Icon                     *string  `json:"icon"`
	Description              *string  `json:"description"`
	Features                 []string `json:"features"`
	VerificationLevel        int      `json:"verification_level"`
	NSFWLevel                int      `json:"nsfw_level"`
	PremiumSubscriptionCount *int     `json:"premium_subscription_count"`
}

type InviteChannel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

type Webhook struct {
	ID            string         `json:"id"`
	Type          int            `json:"type"`
	GuildID       string         `json:"guild_id"`
	ChannelID     *string        `json:"channel_id"`
	User          *User          `json:"user"`
	Name          *string        `json:"name"`
	Avatar        *string        `json:"avatar"`
	ApplicationID *string        `json:"application_id"`
	SourceGuild   *WebhookGuild  `json:"source_guild"`
	SourceChannel *WebhookSource `json:"source_channel"`
	URL           string         `json:"url"`
}

type WebhookGuild struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

type WebhookSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type VoiceState struct {
	GuildID                 string  `json:"guild_id"`
	ChannelID               *string `json:"channel_id"`
	UserID                  string  `json:"user_id"`
	SessionID               string  `json:"session_id"`
	Deaf                    bool    `json:"deaf"`
	Mute                    bool    `json:"mute"`
	SelfDeaf                bool    `json:"self_deaf"`
	SelfMute                bool    `json:"self_mute"`
	SelfStream              *bool   `json:"self_stream"`
	SelfVideo               bool    `json:"self_video"`
	Suppress                bool    `json:"suppress"`
	RequestToSpeakTimestamp *string `json:"request_to_speak_timestamp"`
}

type VoiceRegion struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Optimal    bool   `json:"optimal"`
	Deprecated bool   `json:"deprecated"`
	Custom     bool   `json:"custom"`
}

// MessagePayload is the body of a create or edit message request.
type MessagePayload struct {
	Content string  `json:"content,omitempty"`
	TTS     bool    `json:"tts,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Color       *int         `json:"color,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Image       *EmbedMedia  `json:"image,omitempty"`
	Thumbnail   *EmbedMedia  `json:"thumbnail,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedMedia struct {
	URL string `json:"url"`
}

type EmbedAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// FileUpload is a single attachment sent with a message.
type FileUpload struct {
	Name        string
	Data        []byte
	ContentType string
	Spoiler     bool
}

type MemberListOptions struct {
	Limit int
	After string
}

type MessageListOptions struct {
	Limit  int
	Before string
	After  string
	Around string
}
