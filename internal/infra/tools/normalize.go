package tools

import (
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"time"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/discord"
)

// timestampLayout renders instants in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// discordEpochMs is the first millisecond of 2015, the snowflake epoch.
const discordEpochMs = 1420070400000

var adminBit = big.NewInt(domain.AdministratorPermission)

// shaper turns upstream payloads into normalized entities.
type shaper struct {
	cdnBase string
	now     func() time.Time
}

func newShaper(cdnBase string, now func() time.Time) *shaper {
	cdnBase = strings.TrimRight(cdnBase, "/")
	if cdnBase == "" {
		cdnBase = domain.DefaultCDNBaseURL
	}
	if now == nil {
		now = time.Now
	}
	return &shaper{cdnBase: cdnBase, now: now}
}

// cdnURL builds <cdn>/<kind>/<owner>/<hash>.png, or nil without a hash.
func (s *shaper) cdnURL(kind, owner string, hash *string) *string {
	if hash == nil || *hash == "" {
		return nil
	}
	url := fmt.Sprintf("%s/%s/%s/%s.png", s.cdnBase, kind, owner, *hash)
	return &url
}

func (s *shaper) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}

func colorHex(color int) string {
	return fmt.Sprintf("#%06x", color)
}

// isAdmin reports whether the ADMINISTRATOR bit is set. Permission sets are
// decimal strings wider than 64 bits; unparseable values are not admin.
func isAdmin(permissions string) bool {
	value, ok := new(big.Int).SetString(strings.TrimSpace(permissions), 10)
	if !ok {
		return false
	}
	return new(big.Int).And(value, adminBit).Cmp(adminBit) == 0
}

// snowflakeTime returns the creation instant encoded in a snowflake id.
func snowflakeTime(id string) string {
	value, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return ""
	}
	ms := int64(value>>22) + discordEpochMs
	return time.UnixMilli(ms).UTC().Format(timestampLayout)
}

// nonNil keeps list fields encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func nonEmpty(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}

func (s *shaper) message(msg discord.Message) domain.Message {
	out := domain.Message{
		ID:        msg.ID,
		ChannelID: msg.ChannelID,
		GuildID:   msg.GuildID,
		Author: domain.MessageAuthor{
			ID:            msg.Author.ID,
			Username:      msg.Author.Username,
			Discriminator: msg.Author.Discriminator,
			GlobalName:    nonEmpty(msg.Author.GlobalName),
			AvatarURL:     s.cdnURL("avatars", msg.Author.ID, msg.Author.Avatar),
			IsBot:         msg.Author.Bot,
		},
		Content:         msg.Content,
		Timestamp:       msg.Timestamp,
		EditedTimestamp: msg.EditedTimestamp,
		TTS:             msg.TTS,
		MentionEveryone: msg.MentionEveryone,
		Mentions:        make([]domain.MentionedUser, 0, len(msg.Mentions)),
		MentionRoles:    nonNil(msg.MentionRoles),
		Attachments:     make([]domain.Attachment, 0, len(msg.Attachments)),
		EmbedCount:      len(msg.Embeds),
		Reactions:       make([]domain.Reaction, 0, len(msg.Reactions)),
		Type:            msg.Type,
		Pinned:          msg.Pinned,
		IsWebhook:       msg.WebhookID != "",
	}
	if msg.Member != nil {
		out.Member = &domain.MessageMember{Nickname: nonEmpty(msg.Member.Nick), Roles: nonNil(msg.Member.Roles)}
	}
	for _, user := range msg.Mentions {
		out.Mentions = append(out.Mentions, domain.MentionedUser{
			ID:            user.ID,
			Username:      user.Username,
			Discriminator: user.Discriminator,
			GlobalName:    nonEmpty(user.GlobalName),
		})
	}
	for _, att := range msg.Attachments {
		out.Attachments = append(out.Attachments, domain.Attachment{
			ID:          att.ID,
			Filename:    att.Filename,
			Size:        att.Size,
			URL:         att.URL,
			ContentType: att.ContentType,
			Height:      att.Height,
			Width:       att.Width,
		})
	}
	for _, reaction := range msg.Reactions {
		out.Reactions = append(out.Reactions, domain.Reaction{
			Emoji: domain.ReactionEmoji{
				ID:       reaction.Emoji.ID,
				Name:     reaction.Emoji.Name,
				Animated: reaction.Emoji.Animated,
			},
			Count: reaction.Count,
			Me:    reaction.Me,
		})
	}
	return out
}

func (s *shaper) messages(msgs []discord.Message) []domain.Message {
	out := make([]domain.Message, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, s.message(msg))
	}
	return out
}

// pageBounds returns the oldest and newest ids of a newest-first page.
func pageBounds(msgs []domain.Message) (oldest, newest *string) {
	if len(msgs) == 0 {
		return nil, nil
	}
	newestID := msgs[0].ID
	oldestID := msgs[len(msgs)-1].ID
	return &oldestID, &newestID
}

func (s *shaper) role(role discord.Role, withDetails bool) domain.Role {
	out := domain.Role{
		ID:          role.ID,
		Name:        role.Name,
		Color:       colorHex(role.Color),
		ColorValue:  role.Color,
		Hoist:       role.Hoist,
		Position:    role.Position,
		Permissions: role.Permissions,
		IsAdmin:     isAdmin(role.Permissions),
		Managed:     role.Managed,
		Mentionable: role.Mentionable,
	}
	if !withDetails {
		return out
	}
	details := &domain.RoleDetails{
		IconURL:      s.cdnURL("role-icons", role.ID, role.Icon),
		UnicodeEmoji: nonEmpty(role.UnicodeEmoji),
	}
	if role.Tags != nil {
		details.Tags = &domain.RoleTags{
			IsBot:                  nonEmpty(role.Tags.BotID) != nil,
			IsIntegration:          nonEmpty(role.Tags.IntegrationID) != nil,
			IsPremiumSubscriber:    bool(role.Tags.PremiumSubscriber),
			IsGuildConnections:     bool(role.Tags.GuildConnections),
			IsAvailableForPurchase: bool(role.Tags.AvailableForPurchase),
		}
	}
	out.RoleDetails = details
	return out
}

// roleFilter holds the post-fetch role filters shared by the role tools.
type roleFilter struct {
	AdminOnly      bool `json:"adminOnly"`
	ExcludeManaged bool `json:"excludeManaged"`
	IncludeDetails bool `json:"includeDetails"`
}

func (f roleFilter) apply(roles []discord.Role) []discord.Role {
	return slices.DeleteFunc(slices.Clone(roles), func(role discord.Role) bool {
		if f.AdminOnly && !isAdmin(role.Permissions) {
			return true
		}
		return f.ExcludeManaged && role.Managed
	})
}

func countRoles(roles []discord.Role) (admin, managed int) {
	for _, role := range roles {
		if isAdmin(role.Permissions) {
			admin++
		}
		if role.Managed {
			managed++
		}
	}
	return admin, managed
}

func (s *shaper) userSummary(user *discord.User) *domain.UserSummary {
	if user == nil {
		return nil
	}
	return &domain.UserSummary{
		ID:            user.ID,
		Username:      user.Username,
		Discriminator: user.Discriminator,
		GlobalName:    user.GlobalName,
		AvatarURL:     s.cdnURL("avatars", user.ID, user.Avatar),
	}
}
