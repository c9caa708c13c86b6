package domain

type VoiceState struct {
	GuildID                 string  `json:"guildId,omitempty"`
	ChannelID               *string `json:"channelId"`
	UserID                  string  `json:"userId"`
	SessionID               string  `json:"sessionId"`
	Deaf                    bool    `json:"deaf"`
	Mute                    bool    `json:"mute"`
	SelfDeaf                bool    `json:"selfDeaf"`
	SelfMute                bool    `json:"selfMute"`
	SelfStream              *bool   `json:"selfStream,omitempty"`
	SelfVideo               bool    `json:"selfVideo"`
	Suppress                bool    `json:"suppress"`
	RequestToSpeakTimestamp *string `json:"requestToSpeakTimestamp"`
}

type VoiceRegion struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Optimal    bool   `json:"optimal"`
	Deprecated bool   `json:"deprecated"`
	Custom     bool   `json:"custom"`
}
