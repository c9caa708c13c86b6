package tools

import (
	"context"

	"discord-mcp/internal/infra/discord"
)

// API is the upstream surface the operations call into.
type API interface {
	Guilds(ctx context.Context) ([]discord.Guild, error)
	Guild(ctx context.Context, guildID string) (*discord.Guild, error)
	GuildChannels(ctx context.Context, guildID string) ([]discord.Channel, error)
	GuildMembers(ctx context.Context, guildID string, opts discord.MemberListOptions) ([]discord.Member, error)
	GuildMember(ctx context.Context, guildID, userID string) (*discord.Member, error)
	GuildRoles(ctx context.Context, guildID string) ([]discord.Role, error)
	ChannelMessages(ctx context.Context, channelID string, opts discord.MessageListOptions) ([]discord.Message, error)
	Message(ctx context.Context, channelID, messageID string) (*discord.Message, error)
	PinnedMessages(ctx context.Context, channelID string) ([]discord.Message, error)
	SendMessage(ctx context.Context, channelID string, payload discord.MessagePayload) (*discord.Message, error)
	EditMessage(ctx context.Context, channelID, messageID string, payload discord.MessagePayload) (*discord.Message, error)
	DeleteMessage(ctx context.Context, channelID, messageID, reason string) error
	SendMessageWithFile(ctx context.Context, channelID, content string, file discord.FileUpload) (*discord.Message, error)
	ChannelInvites(ctx context.Context, channelID string) ([]discord.Invite, error)
	GuildInvites(ctx context.Context, guildID string) ([]discord.Invite, error)
	ChannelWebhooks(ctx context.Context, channelID string) ([]discord.Webhook, error)
	GuildWebhooks(ctx context.Context, guildID string) ([]discord.Webhook, error)
	GuildVoiceStates(ctx context.Context, guildID string) ([]discord.VoiceState, error)
	VoiceRegions(ctx context.Context) ([]discord.VoiceRegion, error)
}

var _ API = (*discord.Client)(nil)
