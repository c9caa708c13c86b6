package tools

import (
	"context"

	"golang.org/x/sync/errgroup"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/discord"
)

type serverListInput struct {
	IncludeDetails bool `json:"includeDetails"`
}

type ServerListResult struct {
	Servers    []domain.Server `json:"servers"`
	TotalCount int             `json:"totalCount"`
}

func serverListOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "get_server_list",
		description: "List the Discord servers the bot has joined",
		schema: objectSchema(map[string]any{
			"includeDetails": boolProperty("Include member counts and feature flags", false),
		}),
		phrase:   "failed to get server list",
		activity: "listing servers",
	}, func(ctx context.Context, api API, in serverListInput) (ServerListResult, error) {
		guilds, err := api.Guilds(ctx)
		if err != nil {
			return ServerListResult{}, err
		}
		servers := make([]domain.Server, 0, len(guilds))
		for _, guild := range guilds {
			server := domain.Server{
				ID:      guild.ID,
				Name:    guild.Name,
				IconURL: s.cdnURL("icons", guild.ID, guild.Icon),
			}
			if in.IncludeDetails {
				server.MemberCount = guild.ApproximateMemberCount
				server.OnlineCount = guild.ApproximatePresenceCount
				server.Features = guild.Features
			}
			servers = append(servers, server)
		}
		return ServerListResult{Servers: servers, TotalCount: len(servers)}, nil
	})
}

type serverDetailsInput struct {
	ServerID string `json:"serverId"`
}

type ServerDetailsResult struct {
	Server domain.ServerDetails `json:"server"`
}

func serverDetailsOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "get_server_details",
		description: "Get detailed information about a Discord server",
		schema: objectSchema(map[string]any{
			"serverId": idProperty("ID of the server to inspect"),
		}, "serverId"),
		phrase:   "failed to get server details",
		activity: "fetching server details",
	}, func(ctx context.Context, api API, in serverDetailsInput) (ServerDetailsResult, error) {
		var (
			guild    *discord.Guild
			channels []discord.Channel
			roles    []discord.Role
		)
		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			var err error
			guild, err = api.Guild(groupCtx, in.ServerID)
			return err
		})
		group.Go(func() error {
			var err error
			channels, err = api.GuildChannels(groupCtx, in.ServerID)
			return err
		})
		group.Go(func() error {
			var err error
			roles, err = api.GuildRoles(groupCtx, in.ServerID)
			return err
		})
		if err := group.Wait(); err != nil {
			return ServerDetailsResult{}, err
		}

		return ServerDetailsResult{Server: domain.ServerDetails{
			ID:            guild.ID,
			Name:          guild.Name,
			Description:   guild.Description,
			IconURL:       s.cdnURL("icons", guild.ID, guild.Icon),
			CreatedAt:     snowflakeTime(guild.ID),
			OwnerID:       guild.OwnerID,
			Region:        guild.Region,
			AFKChannelID:  guild.AFKChannelID,
			AFKTimeout:    guild.AFKTimeout,
			MemberCount:   guild.ApproximateMemberCount,
			OnlineCount:   guild.ApproximatePresenceCount,
			BoostCount:    guild.PremiumSubscriptionCount,
			BoostLevel:    guild.PremiumTier,
			ChannelsCount: len(channels),
			RolesCount:    len(roles),
			EmojisCount:   len(guild.Emojis),
			StickersCount: len(guild.Stickers),
			Features:      nonNil(guild.Features),
		}}, nil
	})
}
