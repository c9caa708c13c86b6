package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/discord"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func call(t *testing.T, api API, tool, raw string) (any, error) {
	t.Helper()
	registry := NewRegistry(Options{Now: func() time.Time { return fixedNow }})
	op, ok := registry.Lookup(tool)
	require.True(t, ok, "tool %s not registered", tool)
	args, err := op.Parse(json.RawMessage(raw))
	require.NoError(t, err)
	return op.Run(context.Background(), api, args)
}

func TestServerList(t *testing.T) {
	api := &fakeAPI{guilds: func(context.Context) ([]discord.Guild, error) {
		return []discord.Guild{
			{ID: "1", Name: "one", Icon: strPtr("abc"), ApproximateMemberCount: intPtr(10), ApproximatePresenceCount: intPtr(3), Features: []string{"COMMUNITY"}},
			{ID: "2", Name: "two"},
		}, nil
	}}

	got, err := call(t, api, "get_server_list", `{}`)
	require.NoError(t, err)
	want := ServerListResult{
		Servers: []domain.Server{
			{ID: "1", Name: "one", IconURL: strPtr("https://cdn.discordapp.com/icons/1/abc.png")},
			{ID: "2", Name: "two"},
		},
		TotalCount: 2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	encoded, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"servers":[
		{"id":"1","name":"one","iconUrl":"https://cdn.discordapp.com/icons/1/abc.png"},
		{"id":"2","name":"two","iconUrl":null}
	],"totalCount":2}`, string(encoded))

	detailed, err := call(t, api, "get_server_list", `{"includeDetails":true}`)
	require.NoError(t, err)
	first := detailed.(ServerListResult).Servers[0]
	assert.Equal(t, 10, *first.MemberCount)
	assert.Equal(t, 3, *first.OnlineCount)
	assert.Equal(t, []string{"COMMUNITY"}, first.Features)
}

func TestServerList_WrapsUpstreamFailure(t *testing.T) {
	api := &fakeAPI{guilds: func(context.Context) ([]discord.Guild, error) {
		return nil, &discord.APIError{Kind: discord.KindAuth, StatusCode: 401}
	}}

	_, err := call(t, api, "get_server_list", `{}`)
	require.Error(t, err)
	assert.Equal(t, "failed to get server list: Discord API authentication error: invalid token", err.Error())

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "get_server_list", opErr.Tool)
	var apiErr *discord.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestServerDetails(t *testing.T) {
	api := &fakeAPI{
		guild: func(_ context.Context, id string) (*discord.Guild, error) {
			return &discord.Guild{
				ID: id, Name: "guild", OwnerID: "o1", AFKTimeout: 300, PremiumTier: 2,
				PremiumSubscriptionCount: intPtr(7),
				Emojis:                   []json.RawMessage{json.RawMessage(`{}`), json.RawMessage(`{}`)},
				Stickers:                 []json.RawMessage{json.RawMessage(`{}`)},
			}, nil
		},
		guildChannels: func(context.Context, string) ([]discord.Channel, error) {
			return []discord.Channel{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}}, nil
		},
		guildRoles: func(context.Context, string) ([]discord.Role, error) {
			return []discord.Role{{ID: "r1"}}, nil
		},
	}

	got, err := call(t, api, "get_server_details", `{"serverId":"175928847299117063"}`)
	require.NoError(t, err)
	server := got.(ServerDetailsResult).Server
	assert.Equal(t, "2016-04-30T11:18:25.796Z", server.CreatedAt)
	assert.Equal(t, 3, server.ChannelsCount)
	assert.Equal(t, 1, server.RolesCount)
	assert.Equal(t, 2, server.EmojisCount)
	assert.Equal(t, 1, server.StickersCount)
	assert.Equal(t, 7, *server.BoostCount)
	assert.Equal(t, 2, server.BoostLevel)
	assert.Equal(t, []string{}, server.Features)
	assert.Nil(t, server.IconURL)
	assert.Equal(t, int32(3), api.calls.Load())
}

func TestServerDetails_FailsFast(t *testing.T) {
	boom := &discord.APIError{Kind: discord.KindPermission, StatusCode: 403, Message: "Missing Access"}
	api := &fakeAPI{
		guild: func(context.Context, string) (*discord.Guild, error) {
			return nil, boom
		},
		guildChannels: func(ctx context.Context, _ string) ([]discord.Channel, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
		guildRoles: func(ctx context.Context, _ string) ([]discord.Role, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	op, ok := NewRegistry(Options{}).Lookup("get_server_details")
	require.True(t, ok)
	args, err := op.Parse(json.RawMessage(`{"serverId":"1"}`))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := op.Run(context.Background(), api, args)
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Equal(t, "failed to get server details: Discord API permission error: Missing Access", err.Error())
		assert.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("sibling calls were not cancelled")
	}
}

func TestChannelList(t *testing.T) {
	api := &fakeAPI{guildChannels: func(context.Context, string) ([]discord.Channel, error) {
		return []discord.Channel{
			{ID: "c1", Name: "general", Type: 0, Position: 1, Topic: strPtr("chat"), PermissionOverwrites: []discord.PermissionOverwrite{{ID: "r1", Type: 0, Allow: "1024", Deny: "0"}}},
			{ID: "c2", Name: "voice", Type: 2, Position: 2},
			{ID: "c3", Name: "random", Type: 0, Position: 3, ParentID: strPtr("cat")},
		}, nil
	}}

	got, err := call(t, api, "get_channel_list", `{"serverId":"1","channelType":0}`)
	require.NoError(t, err)
	result := got.(ChannelListResult)
	assert.Equal(t, 2, result.TotalCount)
	assert.Nil(t, result.Channels[0].ChannelDetails)

	encoded, err := json.Marshal(result.Channels[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c1","name":"general","type":0,"position":1}`, string(encoded))

	detailed, err := call(t, api, "get_channel_list", `{"serverId":"1","includeDetails":true}`)
	require.NoError(t, err)
	channels := detailed.(ChannelListResult).Channels
	require.Len(t, channels, 3)
	encoded, err = json.Marshal(channels[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c2","name":"voice","type":2,"position":2,"topic":null,"nsfw":false,"parentId":null,"permissionOverwrites":[]}`, string(encoded))
	assert.Equal(t, "1024", channels[0].PermissionOverwrites[0].Allow)
}

func memberPage(n int) []discord.Member {
	out := make([]discord.Member, 0, n)
	for i := 0; i < n; i++ {
		roles := []string{"member"}
		if i%2 == 0 {
			roles = append(roles, "even")
		}
		out = append(out, discord.Member{
			User:     &discord.User{ID: fmt.Sprintf("%d", i+1), Username: fmt.Sprintf("user%d", i+1), Discriminator: "0"},
			Roles:    roles,
			JoinedAt: "2024-01-01T00:00:00Z",
		})
	}
	return out
}

func TestUserList_Pagination(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		returned int
		hasMore  bool
		next     *string
		total    int
	}{
		{name: "full default page", raw: `{"serverId":"g1"}`, returned: 100, hasMore: true, next: strPtr("100"), total: 100},
		{name: "short page", raw: `{"serverId":"g1","limit":50}`, returned: 37, hasMore: false, total: 37},
		{name: "full page filtered by role", raw: `{"serverId":"g1","limit":10,"roleId":"even"}`, returned: 10, hasMore: true, next: strPtr("9"), total: 5},
		{name: "full page filtered to nothing", raw: `{"serverId":"g1","limit":4,"roleId":"ghost"}`, returned: 4, hasMore: true, total: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requested discord.MemberListOptions
			api := &fakeAPI{guildMembers: func(_ context.Context, _ string, opts discord.MemberListOptions) ([]discord.Member, error) {
				requested = opts
				return memberPage(tt.returned), nil
			}}

			got, err := call(t, api, "get_user_list", tt.raw)
			require.NoError(t, err)
			result := got.(UserListResult)
			assert.Equal(t, tt.hasMore, result.HasMore)
			assert.Equal(t, tt.total, result.TotalCount)
			assert.Equal(t, tt.next, result.NextUserID)
			assert.NotZero(t, requested.Limit)
		})
	}
}

func TestUserList_Shape(t *testing.T) {
	api := &fakeAPI{guildMembers: func(_ context.Context, _ string, opts discord.MemberListOptions) ([]discord.Member, error) {
		assert.Equal(t, discord.MemberListOptions{Limit: 2, After: "41"}, opts)
		return []discord.Member{
			{User: &discord.User{ID: "42", Username: "bot", Discriminator: "1234", Avatar: strPtr("h"), Bot: true}, Nick: strPtr("Botty"), Roles: []string{"r1"}, JoinedAt: "2024-01-01T00:00:00Z", PremiumSince: strPtr("2024-02-01T00:00:00Z")},
			{Roles: nil, JoinedAt: "2024-01-02T00:00:00Z"},
		}, nil
	}}

	got, err := call(t, api, "get_user_list", `{"serverId":"g1","limit":2,"after":"41","includeDetails":true}`)
	require.NoError(t, err)
	encoded, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"users":[
			{"id":"42","username":"bot","discriminator":"1234","globalName":null,"nickname":"Botty",
			 "avatarUrl":"https://cdn.discordapp.com/avatars/42/h.png","isBot":true,
			 "roles":["r1"],"joinedAt":"2024-01-01T00:00:00Z","premiumSince":"2024-02-01T00:00:00Z"},
			{"id":"unknown","username":"Unknown User","discriminator":"0000","globalName":null,"nickname":null,
			 "avatarUrl":null,"isBot":false,"roles":[],"joinedAt":"2024-01-02T00:00:00Z"}
		],
		"totalCount":2,"hasMore":true,"nextUserId":"unknown"
	}`, string(encoded))
}

func TestChannelMessages(t *testing.T) {
	var requested discord.MessageListOptions
	api := &fakeAPI{channelMessages: func(_ context.Context, channelID string, opts discord.MessageListOptions) ([]discord.Message, error) {
		assert.Equal(t, "c1", channelID)
		requested = opts
		return []discord.Message{
			{ID: "30", Author: discord.User{ID: "u1"}},
			{ID: "20", Author: discord.User{ID: "u1"}},
			{ID: "10", Author: discord.User{ID: "u1"}},
		}, nil
	}}

	got, err := call(t, api, "get_channel_messages", `{"channelId":"c1","around":"20"}`)
	require.NoError(t, err)
	assert.Equal(t, discord.MessageListOptions{Limit: 50, Around: "20"}, requested)

	result := got.(MessagePageResult)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, "10", *result.OldestMessageID)
	assert.Equal(t, "30", *result.NewestMessageID)
}

func TestPinnedMessages_Empty(t *testing.T) {
	api := &fakeAPI{pinnedMessages: func(context.Context, string) ([]discord.Message, error) {
		return nil, nil
	}}

	got, err := call(t, api, "get_pinned_messages", `{"channelId":"c1"}`)
	require.NoError(t, err)
	encoded, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"messages":[],"totalCount":0,"oldestMessageId":null,"newestMessageId":null}`, string(encoded))
}

func TestGetMessage(t *testing.T) {
	api := &fakeAPI{message: func(_ context.Context, channelID, messageID string) (*discord.Message, error) {
		return &discord.Message{ID: messageID, ChannelID: channelID, Author: discord.User{ID: "u1", Username: "a"}, Content: "hi"}, nil
	}}

	got, err := call(t, api, "get_message", `{"channelId":"c1","messageId":"m1"}`)
	require.NoError(t, err)
	msg := got.(MessageResult).Message
	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, "c1", msg.ChannelID)
	assert.Equal(t, "hi", msg.Content)
}

func guildRoleFixture() []discord.Role {
	return []discord.Role{
		{ID: "everyone", Name: "@everyone", Permissions: "104324673"},
		{ID: "admin", Name: "Admin", Color: 0xFF0000, Permissions: "8", Icon: strPtr("ic")},
		{ID: "bot", Name: "Bot", Color: 65280, Permissions: "2147483647", Managed: true, Tags: &discord.RoleTags{BotID: strPtr("b1")}},
		{ID: "booster", Name: "Booster", Permissions: "0", Managed: true, Tags: &discord.RoleTags{PremiumSubscriber: true}, UnicodeEmoji: strPtr("🚀")},
	}
}

func TestGuildRoles(t *testing.T) {
	api := &fakeAPI{guildRoles: func(context.Context, string) ([]discord.Role, error) {
		return guildRoleFixture(), nil
	}}

	got, err := call(t, api, "get_guild_roles", `{"guildId":"g1","adminOnly":true,"excludeManaged":true}`)
	require.NoError(t, err)
	result := got.(GuildRolesResult)
	require.Len(t, result.Roles, 1)
	assert.Equal(t, "admin", result.Roles[0].ID)
	assert.Equal(t, "#ff0000", result.Roles[0].Color)
	assert.True(t, result.Roles[0].IsAdmin)
	assert.Nil(t, result.Roles[0].RoleDetails)
	assert.Equal(t, 4, result.TotalCount)
	assert.Equal(t, 1, result.FilteredCount)
	assert.Equal(t, 2, result.AdminRoleCount)
	assert.Equal(t, 2, result.ManagedRoleCount)
}

func TestGuildRoles_Details(t *testing.T) {
	api := &fakeAPI{guildRoles: func(context.Context, string) ([]discord.Role, error) {
		return guildRoleFixture(), nil
	}}

	got, err := call(t, api, "get_guild_roles", `{"guildId":"g1","includeDetails":true}`)
	require.NoError(t, err)
	roles := got.(GuildRolesResult).Roles
	require.Len(t, roles, 4)

	encoded, err := json.Marshal(roles)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":"everyone","name":"@everyone","color":"#000000","colorValue":0,"hoist":false,"position":0,
		 "permissions":"104324673","isAdmin":false,"managed":false,"mentionable":false,
		 "iconUrl":null,"unicodeEmoji":null},
		{"id":"admin","name":"Admin","color":"#ff0000","colorValue":16711680,"hoist":false,"position":0,
		 "permissions":"8","isAdmin":true,"managed":false,"mentionable":false,
		 "iconUrl":"https://cdn.discordapp.com/role-icons/admin/ic.png","unicodeEmoji":null},
		{"id":"bot","name":"Bot","color":"#00ff00","colorValue":65280,"hoist":false,"position":0,
		 "permissions":"2147483647","isAdmin":true,"managed":true,"mentionable":false,
		 "tags":{"isBot":true,"isIntegration":false,"isPremiumSubscriber":false,"isGuildConnections":false,"isAvailableForPurchase":false},
		 "iconUrl":null,"unicodeEmoji":null},
		{"id":"booster","name":"Booster","color":"#000000","colorValue":0,"hoist":false,"position":0,
		 "permissions":"0","isAdmin":false,"managed":true,"mentionable":false,
		 "tags":{"isBot":false,"isIntegration":false,"isPremiumSubscriber":true,"isGuildConnections":false,"isAvailableForPurchase":false},
		 "iconUrl":null,"unicodeEmoji":"🚀"}
	]`, string(encoded))
}

func TestMemberRoles(t *testing.T) {
	api := &fakeAPI{
		guildMember: func(_ context.Context, guildID, userID string) (*discord.Member, error) {
			assert.Equal(t, "g1", guildID)
			return &discord.Member{
				User:     &discord.User{ID: userID, Username: "carol", Discriminator: "0"},
				Roles:    []string{"admin", "bot", "deleted-role"},
				JoinedAt: "2024-01-01T00:00:00Z",
			}, nil
		},
		guildRoles: func(context.Context, string) ([]discord.Role, error) {
			return guildRoleFixture(), nil
		},
	}

	got, err := call(t, api, "get_member_roles", `{"guildId":"g1","userId":"u7","excludeManaged":true}`)
	require.NoError(t, err)
	result := got.(MemberRolesResult)
	assert.Equal(t, "u7", result.Member.ID)
	assert.Nil(t, result.Member.PremiumSince)
	require.Len(t, result.Roles, 1)
	assert.Equal(t, "admin", result.Roles[0].ID)
	assert.Equal(t, 3, result.TotalRoleCount)
	assert.Equal(t, 1, result.FilteredRoleCount)
	assert.Equal(t, 1, result.AdminRoleCount)
	assert.Equal(t, 0, result.ManagedRoleCount)
}

func TestMemberRoles_MissingUserFallsBackToRequestedID(t *testing.T) {
	api := &fakeAPI{
		guildMember: func(context.Context, string, string) (*discord.Member, error) {
			return &discord.Member{Roles: []string{}}, nil
		},
		guildRoles: func(context.Context, string) ([]discord.Role, error) {
			return nil, nil
		},
	}

	got, err := call(t, api, "get_member_roles", `{"guildId":"g1","userId":"u7"}`)
	require.NoError(t, err)
	member := got.(MemberRolesResult).Member
	assert.Equal(t, "u7", member.ID)
	assert.Equal(t, "Unknown User", member.Username)
	assert.Equal(t, "0000", member.Discriminator)
}

func TestMemberRoles_FailsFast(t *testing.T) {
	api := &fakeAPI{
		guildMember: func(ctx context.Context, _, _ string) (*discord.Member, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
		guildRoles: func(context.Context, string) ([]discord.Role, error) {
			return nil, &discord.APIError{Kind: discord.KindServer, StatusCode: 502}
		},
	}

	_, err := call(t, api, "get_member_roles", `{"guildId":"g1","userId":"u7"}`)
	require.Error(t, err)
	assert.Equal(t, "failed to get member roles: Discord API server error: upstream server failure", err.Error())
}

func sentMessage(channelID string) *discord.Message {
	return &discord.Message{ID: "m9", ChannelID: channelID, Author: discord.User{ID: "bot", Bot: true}, Content: "hello"}
}

func TestSendMessage(t *testing.T) {
	var sent discord.MessagePayload
	api := &fakeAPI{sendMessage: func(_ context.Context, channelID string, payload discord.MessagePayload) (*discord.Message, error) {
		sent = payload
		return sentMessage(channelID), nil
	}}

	got, err := call(t, api, "send_message", `{"channelId":"c1","content":"hello","embeds":[{"title":"t","color":65280,"fields":[{"name":"n","value":"v"}]}]}`)
	require.NoError(t, err)
	result := got.(SentMessageResult)
	assert.True(t, result.Success)
	assert.True(t, result.Message.Author.IsBot)

	color := 65280
	want := discord.MessagePayload{
		Content: "hello",
		Embeds:  []discord.Embed{{Title: "t", Color: &color, Fields: []discord.EmbedField{{Name: "n", Value: "v"}}}},
	}
	if diff := cmp.Diff(want, sent); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestEditMessage(t *testing.T) {
	api := &fakeAPI{editMessage: func(_ context.Context, channelID, messageID string, payload discord.MessagePayload) (*discord.Message, error) {
		assert.Equal(t, "m1", messageID)
		assert.Equal(t, "edited", payload.Content)
		assert.False(t, payload.TTS)
		msg := sentMessage(channelID)
		msg.Content = payload.Content
		return msg, nil
	}}

	got, err := call(t, api, "edit_message", `{"channelId":"c1","messageId":"m1","content":"edited"}`)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.(SentMessageResult).Message.Content)
}

func TestDeleteMessage(t *testing.T) {
	var gotReason string
	api := &fakeAPI{deleteMessage: func(_ context.Context, _, _, reason string) error {
		gotReason = reason
		return nil
	}}

	got, err := call(t, api, "delete_message", `{"channelId":"c1","messageId":"m1","reason":"spam"}`)
	require.NoError(t, err)
	assert.Equal(t, "spam", gotReason)
	assert.Equal(t, DeleteMessageResult{
		Success:   true,
		MessageID: "m1",
		ChannelID: "c1",
		DeletedAt: "2024-06-01T12:00:00.000Z",
		Reason:    "spam",
	}, got)

	plain, err := call(t, api, "delete_message", `{"channelId":"c1","messageId":"m2"}`)
	require.NoError(t, err)
	encoded, err := json.Marshal(plain)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "reason")
}

func TestSendFile(t *testing.T) {
	var upload discord.FileUpload
	var content string
	api := &fakeAPI{sendFile: func(_ context.Context, channelID, text string, file discord.FileUpload) (*discord.Message, error) {
		upload = file
		content = text
		return sentMessage(channelID), nil
	}}

	got, err := call(t, api, "send_file", `{"channelId":"c1","content":"see attached","file":{"name":"a.txt","content":"aGVsbG8=","contentType":"text/plain"},"spoiler":true}`)
	require.NoError(t, err)
	assert.True(t, got.(SentMessageResult).Success)
	assert.Equal(t, "see attached", content)
	assert.Equal(t, discord.FileUpload{Name: "a.txt", Data: []byte("hello"), ContentType: "text/plain", Spoiler: true}, upload)
}

func TestInvites(t *testing.T) {
	invites := []discord.Invite{{
		Code:    "abc",
		Guild:   &discord.InviteGuild{ID: "g1", Name: "guild", Features: []string{}},
		Channel: &discord.InviteChannel{ID: "c1", Name: "general"},
		Inviter: &discord.User{ID: "u1", Username: "alice", Discriminator: "0", Avatar: strPtr("h")},
		Uses:    intPtr(3),
		MaxUses: intPtr(0),
	}}
	api := &fakeAPI{
		channelInvites: func(context.Context, string) ([]discord.Invite, error) { return invites, nil },
		guildInvites:   func(context.Context, string) ([]discord.Invite, error) { return invites, nil },
	}

	for _, tc := range []struct{ tool, raw string }{
		{"get_channel_invites", `{"channelId":"c1"}`},
		{"get_guild_invites", `{"guildId":"g1"}`},
	} {
		got, err := call(t, api, tc.tool, tc.raw)
		require.NoError(t, err, tc.tool)
		result := got.(InvitesResult)
		require.Equal(t, 1, result.TotalCount)
		invite := result.Invites[0]
		assert.Equal(t, "abc", invite.Code)
		assert.Equal(t, "https://cdn.discordapp.com/avatars/u1/h.png", *invite.Inviter.AvatarURL)
		assert.Equal(t, 3, *invite.Uses)
		assert.Equal(t, 0, *invite.MaxUses)
	}
}

func TestWebhooks(t *testing.T) {
	webhooks := []discord.Webhook{
		{ID: "w1", Type: 1, GuildID: "g1", ChannelID: strPtr("c1"), Name: strPtr("deploy"), User: &discord.User{ID: "u1"}},
		{ID: "w2", Type: 2, SourceGuild: &discord.WebhookGuild{ID: "g2", Name: "news"}, SourceChannel: &discord.WebhookSource{ID: "c9", Name: "announcements"}},
	}
	api := &fakeAPI{
		channelWebhooks: func(context.Context, string) ([]discord.Webhook, error) { return webhooks[:1], nil },
		guildWebhooks:   func(context.Context, string) ([]discord.Webhook, error) { return webhooks, nil },
	}

	got, err := call(t, api, "get_channel_webhooks", `{"channelId":"c1"}`)
	require.NoError(t, err)
	assert.Equal(t, 1, got.(WebhooksResult).TotalCount)

	got, err = call(t, api, "get_guild_webhooks", `{"guildId":"g1"}`)
	require.NoError(t, err)
	result := got.(WebhooksResult)
	require.Equal(t, 2, result.TotalCount)
	assert.Equal(t, "announcements", result.Webhooks[1].SourceChannel.Name)
	assert.Nil(t, result.Webhooks[1].User)
	assert.Nil(t, result.Webhooks[0].User.AvatarURL)
}

func TestVoice(t *testing.T) {
	api := &fakeAPI{
		guildVoiceStates: func(context.Context, string) ([]discord.VoiceState, error) {
			return []discord.VoiceState{{GuildID: "g1", ChannelID: strPtr("v1"), UserID: "u1", SessionID: "s", SelfMute: true}}, nil
		},
		voiceRegions: func(context.Context) ([]discord.VoiceRegion, error) {
			return []discord.VoiceRegion{{ID: "us-east", Name: "US East", Optimal: true}}, nil
		},
	}

	got, err := call(t, api, "get_guild_voice_states", `{"guildId":"g1"}`)
	require.NoError(t, err)
	states := got.(VoiceStatesResult)
	require.Equal(t, 1, states.TotalCount)
	assert.True(t, states.VoiceStates[0].SelfMute)

	got, err = call(t, api, "get_voice_regions", `{}`)
	require.NoError(t, err)
	assert.Equal(t, VoiceRegionsResult{
		Regions:    []domain.VoiceRegion{{ID: "us-east", Name: "US East", Optimal: true}},
		TotalCount: 1,
	}, got)
}

func TestOperation_RecoversPanics(t *testing.T) {
	api := &fakeAPI{voiceRegions: func(context.Context) ([]discord.VoiceRegion, error) {
		panic("boom")
	}}

	got, err := call(t, api, "get_voice_regions", `{}`)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Equal(t, "failed to get voice regions: unknown error while listing voice regions", err.Error())

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "boom", opErr.Recovered)
}

func TestOperation_ParseRejectsUnbindableArguments(t *testing.T) {
	type narrowInput struct {
		Count int8 `json:"count"`
	}
	called := false
	op := newOperation(definition{
		name:   "narrow",
		schema: objectSchema(map[string]any{"count": map[string]any{"type": "integer"}}),
		phrase: "failed to count",
	}, func(context.Context, API, narrowInput) (int, error) {
		called = true
		return 0, nil
	})

	_, err := op.Parse(json.RawMessage(`{"count":1000}`))
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, domain.ErrInvalidParams)
	assert.Equal(t, "count: number 1000 is out of range", verr.Message)
	assert.False(t, called)

	args, err := op.Parse(json.RawMessage(`{"count":7}`))
	require.NoError(t, err)
	_, err = op.Run(context.Background(), &fakeAPI{}, args)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestOperation_NilUpstreamResultIsRecovered(t *testing.T) {
	api := &fakeAPI{message: func(context.Context, string, string) (*discord.Message, error) {
		return nil, nil
	}}

	_, err := call(t, api, "get_message", `{"channelId":"c1","messageId":"m1"}`)
	require.Error(t, err)
	assert.Equal(t, "failed to get message: unknown error while fetching the message", err.Error())
}

func TestOperation_Idempotent(t *testing.T) {
	api := &fakeAPI{guildRoles: func(context.Context, string) ([]discord.Role, error) {
		return guildRoleFixture(), nil
	}}

	first, err := call(t, api, "get_guild_roles", `{"guildId":"g1","includeDetails":true}`)
	require.NoError(t, err)
	second, err := call(t, api, "get_guild_roles", `{"guildId":"g1","includeDetails":true}`)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated calls differ (-first +second):\n%s", diff)
	}
}

func TestOperation_PreservesContextCancellation(t *testing.T) {
	api := &fakeAPI{voiceRegions: func(ctx context.Context) ([]discord.VoiceRegion, error) {
		return nil, ctx.Err()
	}}
	op, ok := NewRegistry(Options{}).Lookup("get_voice_regions")
	require.True(t, ok)
	args, err := op.Parse(nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = op.Run(ctx, api, args)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
