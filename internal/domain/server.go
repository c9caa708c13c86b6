package domain

// Server is a guild as listed for the bot user.
type Server struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	IconURL     *string  `json:"iconUrl"`
	MemberCount *int     `json:"memberCount,omitempty"`
	OnlineCount *int     `json:"onlineCount,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// ServerDetails is a single guild with its derived counts.
type ServerDetails struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	IconURL       *string  `json:"iconUrl"`
	CreatedAt     string   `json:"createdAt"`
	OwnerID       string   `json:"ownerId"`
	Region        string   `json:"region,omitempty"`
	AFKChannelID  *string  `json:"afkChannelId"`
	AFKTimeout    int      `json:"afkTimeout"`
	MemberCount   *int     `json:"memberCount,omitempty"`
	OnlineCount   *int     `json:"onlineCount,omitempty"`
	BoostCount    *int     `json:"boostCount,omitempty"`
	BoostLevel    int      `json:"boostLevel"`
	ChannelsCount int      `json:"channelsCount"`
	RolesCount    int      `json:"rolesCount"`
	EmojisCount   int      `json:"emojisCount"`
	StickersCount int      `json:"stickersCount"`
	Features      []string `json:"features"`
}

// Channel is a guild channel. Details are present only when requested.
type Channel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     int    `json:"type"`
	Position int    `json:"position"`
	*ChannelDetails
}

type ChannelDetails struct {
	Topic                *string               `json:"topic"`
	NSFW                 bool                  `json:"nsfw"`
	ParentID             *string               `json:"parentId"`
	PermissionOverwrites []PermissionOverwrite `json:"permissionOverwrites"`
}

type PermissionOverwrite struct {
	ID    string `json:"id"`
	Type  int    `json:"type"`
	Allow string `json:"allow"`
	Deny  string `json:"deny"`
}
