package domain

// Message is a channel message reshaped for the host.
type Message struct {
	ID              string          `json:"id"`
	ChannelID       string          `json:"channelId"`
	GuildID         string          `json:"guildId,omitempty"`
	Author          MessageAuthor   `json:"author"`
	Member          *MessageMember  `json:"member,omitempty"`
	Content         string          `json:"content"`
	Timestamp       string          `json:"timestamp"`
	EditedTimestamp *string         `json:"editedTimestamp"`
	TTS             bool            `json:"tts"`
	MentionEveryone bool            `json:"mentionEveryone"`
	Mentions        []MentionedUser `json:"mentions"`
	MentionRoles    []string        `json:"mentionRoles"`
	Attachments     []Attachment    `json:"attachments"`
	EmbedCount      int             `json:"embedCount"`
	Reactions       []Reaction      `json:"reactions"`
	Type            int             `json:"type"`
	Pinned          bool            `json:"pinned"`
	IsWebhook       bool            `json:"isWebhook"`
}

type MessageAuthor struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"globalName"`
	AvatarURL     *string `json:"avatarUrl"`
	IsBot         bool    `json:"isBot"`
}

type MessageMember struct {
	Nickname *string  `json:"nickname"`
	Roles    []string `json:"roles"`
}

type MentionedUser struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"globalName"`
}

type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
	ContentType string `json:"contentType,omitempty"`
	Height      *int   `json:"height"`
	Width       *int   `json:"width"`
}

type Reaction struct {
	Emoji ReactionEmoji `json:"emoji"`
	Count int           `json:"count"`
	Me    bool          `json:"me"`
}

type ReactionEmoji struct {
	ID       *string `json:"id"`
	Name     *string `json:"name"`
	Animated bool    `json:"animated,omitempty"`
}
