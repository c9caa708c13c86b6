package tools

import (
	"context"
	"errors"
	"sync/atomic"

	"discord-mcp/internal/infra/discord"
)

var errUnexpectedCall = errors.New("unexpected upstream call")

// fakeAPI answers only the calls a test wires up and counts every call.
type fakeAPI struct {
	calls atomic.Int32

	guilds           func(ctx context.Context) ([]discord.Guild, error)
	guild            func(ctx context.Context, guildID string) (*discord.Guild, error)
	guildChannels    func(ctx context.Context, guildID string) ([]discord.Channel, error)
	guildMembers     func(ctx context.Context, guildID string, opts discord.MemberListOptions) ([]discord.Member, error)
	guildMember      func(ctx context.Context, guildID, userID string) (*discord.Member, error)
	guildRoles       func(ctx context.Context, guildID string) ([]discord.Role, error)
	channelMessages  func(ctx context.Context, channelID string, opts discord.MessageListOptions) ([]discord.Message, error)
	message          func(ctx context.Context, channelID, messageID string) (*discord.Message, error)
	pinnedMessages   func(ctx context.Context, channelID string) ([]discord.Message, error)
	sendMessage      func(ctx context.Context, channelID string, payload discord.MessagePayload) (*discord.Message, error)
	editMessage      func(ctx context.Context, channelID, messageID string, payload discord.MessagePayload) (*discord.Message, error)
	deleteMessage    func(ctx context.Context, channelID, messageID, reason string) error
	sendFile         func(ctx context.Context, channelID, content string, file discord.FileUpload) (*discord.Message, error)
	channelInvites   func(ctx context.Context, channelID string) ([]discord.Invite, error)
	guildInvites     func(ctx context.Context, guildID string) ([]discord.Invite, error)
	channelWebhooks  func(ctx context.Context, channelID string) ([]discord.Webhook, error)
	guildWebhooks    func(ctx context.Context, guildID string) ([]discord.Webhook, error)
	guildVoiceStates func(ctx context.Context, guildID string) ([]discord.VoiceState, error)
	voiceRegions     func(ctx context.Context) ([]discord.VoiceRegion, error)
}

var _ API = (*fakeAPI)(nil)

func (f *fakeAPI) Guilds(ctx context.Context) ([]discord.Guild, error) {
	f.calls.Add(1)
	if f.guilds == nil {
		return nil, errUnexpectedCall
	}
	return f.guilds(ctx)
}

func (f *fakeAPI) Guild(ctx context.Context, guildID string) (*discord.Guild, error) {
	f.calls.Add(1)
	if f.guild == nil {
		return nil, errUnexpectedCall
	}
	return f.guild(ctx, guildID)
}

func (f *fakeAPI) GuildChannels(ctx context.Context, guildID string) ([]discord.Channel, error) {
	f.calls.Add(1)
	if f.guildChannels == nil {
		return nil, errUnexpectedCall
	}
	return f.guildChannels(ctx, guildID)
}

func (f *fakeAPI) GuildMembers(ctx context.Context, guildID string, opts discord.MemberListOptions) ([]discord.Member, error) {
	f.calls.Add(1)
	if f.guildMembers == nil {
		return nil, errUnexpectedCall
	}
	return f.guildMembers(ctx, guildID, opts)
}

func (f *fakeAPI) GuildMember(ctx context.Context, guildID, userID string) (*discord.Member, error) {
	f.calls.Add(1)
	if f.guildMember == nil {
		return nil, errUnexpectedCall
	}
	return f.guildMember(ctx, guildID, userID)
}

func (f *fakeAPI) GuildRoles(ctx context.Context, guildID string) ([]discord.Role, error) {
	f.calls.Add(1)
	if f.guildRoles == nil {
		return nil, errUnexpectedCall
	}
	return f.guildRoles(ctx, guildID)
}

func (f *fakeAPI) ChannelMessages(ctx context.Context, channelID string, opts discord.MessageListOptions) ([]discord.Message, error) {
	f.calls.Add(1)
	if f.channelMessages == nil {
		return nil, errUnexpectedCall
	}
	return f.channelMessages(ctx, channelID, opts)
}

func (f *fakeAPI) Message(ctx context.Context, channelID, messageID string) (*discord.Message, error) {
	f.calls.Add(1)
	if f.message == nil {
		return nil, errUnexpectedCall
	}
	return f.message(ctx, channelID, messageID)
}

func (f *fakeAPI) PinnedMessages(ctx context.Context, channelID string) ([]discord.Message, error) {
	f.calls.Add(1)
	if f.pinnedMessages == nil {
		return nil, errUnexpectedCall
	}
	return f.pinnedMessages(ctx, channelID)
}

func (f *fakeAPI) SendMessage(ctx context.Context, channelID string, payload discord.MessagePayload) (*discord.Message, error) {
	f.calls.Add(1)
	if f.sendMessage == nil {
		return nil, errUnexpectedCall
	}
	return f.sendMessage(ctx, channelID, payload)
}

func (f *fakeAPI) EditMessage(ctx context.Context, channelID, messageID string, payload discord.MessagePayload) (*discord.Message, error) {
	f.calls.Add(1)
	if f.editMessage == nil {
		return nil, errUnexpectedCall
	}
	return f.editMessage(ctx, channelID, messageID, payload)
}

func (f *fakeAPI) DeleteMessage(ctx context.Context, channelID, messageID, reason string) error {
	f.calls.Add(1)
	if f.deleteMessage == nil {
		return errUnexpectedCall
	}
	return f.deleteMessage(ctx, channelID, messageID, reason)
}

func (f *fakeAPI) SendMessageWithFile(ctx context.Context, channelID, content string, file discord.FileUpload) (*discord.Message, error) {
	f.calls.Add(1)
	if f.sendFile == nil {
		return nil, errUnexpectedCall
	}
	return f.sendFile(ctx, channelID, content, file)
}

func (f *fakeAPI) ChannelInvites(ctx context.Context, channelID string) ([]discord.Invite, error) {
	f.calls.Add(1)
	if f.channelInvites == nil {
		return nil, errUnexpectedCall
	}
	return f.channelInvites(ctx, channelID)
}

func (f *fakeAPI) GuildInvites(ctx context.Context, guildID string) ([]discord.Invite, error) {
	f.calls.Add(1)
	if f.guildInvites == nil {
		return nil, errUnexpectedCall
	}
	return f.guildInvites(ctx, guildID)
}

func (f *fakeAPI) ChannelWebhooks(ctx context.Context, channelID string) ([]discord.Webhook, error) {
	f.calls.Add(1)
	if f.channelWebhooks == nil {
		return nil, errUnexpectedCall
	}
	return f.channelWebhooks(ctx, channelID)
}

func (f *fakeAPI) GuildWebhooks(ctx context.Context, guildID string) ([]discord.Webhook, error) {
	f.calls.Add(1)
	if f.guildWebhooks == nil {
		return nil, errUnexpectedCall
	}
	return f.guildWebhooks(ctx, guildID)
}

func (f *fakeAPI) GuildVoiceStates(ctx context.Context, guildID string) ([]discord.VoiceState, error) {
	f.calls.Add(1)
	if f.guildVoiceStates == nil {
		return nil, errUnexpectedCall
	}
	return f.guildVoiceStates(ctx, guildID)
}

func (f *fakeAPI) VoiceRegions(ctx context.Context) ([]discord.VoiceRegion, error) {
	f.calls.Add(1)
	if f.voiceRegions == nil {
		return nil, errUnexpectedCall
	}
	return f.voiceRegions(ctx)
}

func strPtr(s string) *string {
	return &s
}

func intPtr(v int) *int {
	return &v
}
