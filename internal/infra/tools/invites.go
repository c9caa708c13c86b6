package tools

import (
	"context"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/discord"
)

type InvitesResult struct {
	Invites    []domain.Invite `json:"invites"`
	TotalCount int             `json:"totalCount"`
}

type channelInvitesInput struct {
	ChannelID string `json:"channelId"`
}

type guildInvitesInput struct {
	GuildID string `json:"guildId"`
}

func channelInvitesOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "get_channel_invites",
		description: "List the active invites of a Discord channel",
		schema:      channelScoped("ID of the channel whose invites are listed"),
		phrase:      "failed to get channel invites",
		activity:    "listing channel invites",
	}, func(ctx context.Context, api API, in channelInvitesInput) (InvitesResult, error) {
		invites, err := api.ChannelInvites(ctx, in.ChannelID)
		if err != nil {
			return InvitesResult{}, err
		}
		return s.invites(invites), nil
	})
}

func guildInvitesOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "get_guild_invites",
		description: "List the active invites of a Discord server",
		schema:      guildScoped("ID of the server whose invites are listed"),
		phrase:      "failed to get guild invites",
		activity:    "listing server invites",
	}, func(ctx context.Context, api API, in guildInvitesInput) (InvitesResult, error) {
		invites, err := api.GuildInvites(ctx, in.GuildID)
		if err != nil {
			return InvitesResult{}, err
		}
		return s.invites(invites), nil
	})
}

func (s *shaper) invites(invites []discord.Invite) InvitesResult {
	out := make([]domain.Invite, 0, len(invites))
	for _, invite := range invites {
		item := domain.Invite{
			Code:                     invite.Code,
			Inviter:                  s.userSummary(invite.Inviter),
			ApproximateMemberCount:   invite.ApproximateMemberCount,
			ApproximatePresenceCount: invite.ApproximatePresenceCount,
			ExpiresAt:                invite.ExpiresAt,
			Type:                     invite.Type,
			Uses:                     invite.Uses,
			MaxUses:                  invite.MaxUses,
			MaxAge:                   invite.MaxAge,
			Temporary:                invite.Temporary,
			CreatedAt:                invite.CreatedAt,
		}
		if g := invite.Guild; g != nil {
			item.Guild = &domain.InviteGuild{
				ID:                       g.ID,
				Name:                     g.Name,
				Icon:                     g.Icon,
				Description:              g.Description,
				Features:                 nonNil(g.Features),
				VerificationLevel:        g.VerificationLevel,
				NSFWLevel:                g.NSFWLevel,
				PremiumSubscriptionCount: g.PremiumSubscriptionCount,
			}
		}
		if c := invite.Channel; c != nil {
			item.Channel = &domain.InviteChannel{ID: c.ID, Name: c.Name, Type: c.Type}
		}
		out = append(out, item)
	}
	return InvitesResult{Invites: out, TotalCount: len(out)}
}
