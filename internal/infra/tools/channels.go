package tools

import (
	"context"
	"math"

	"discord-mcp/internal/domain"
)

type channelListInput struct {
	ServerID       string `json:"serverId"`
	IncludeDetails bool   `json:"includeDetails"`
	ChannelType    *int   `json:"channelType"`
}

type ChannelListResult struct {
	Channels   []domain.Channel `json:"channels"`
	TotalCount int              `json:"totalCount"`
}

func channelListOperation(_ *shaper) *Operation {
	return newOperation(definition{
		name:        "get_channel_list",
		description: "List the channels of a Discord server",
		schema: objectSchema(map[string]any{
			"serverId":       idProperty("ID of the server whose channels are listed"),
			"includeDetails": boolProperty("Include topic, NSFW flag, parent category and permission overwrites", false),
			"channelType": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     math.MaxInt32,
				"description": "Only return channels of this type (0 text, 2 voice, 4 category)",
			},
		}, "serverId"),
		phrase:   "failed to get channel list",
		activity: "listing channels",
	}, func(ctx context.Context, api API, in channelListInput) (ChannelListResult, error) {
		channels, err := api.GuildChannels(ctx, in.ServerID)
		if err != nil {
			return ChannelListResult{}, err
		}
		out := make([]domain.Channel, 0, len(channels))
		for _, channel := range channels {
			if in.ChannelType != nil && channel.Type != *in.ChannelType {
				continue
			}
			item := domain.Channel{
				ID:       channel.ID,
				Name:     channel.Name,
				Type:     channel.Type,
				Position: channel.Position,
			}
			if in.IncludeDetails {
				overwrites := make([]domain.PermissionOverwrite, 0, len(channel.PermissionOverwrites))
				for _, ow := range channel.PermissionOverwrites {
					overwrites = append(overwrites, domain.PermissionOverwrite{
						ID:    ow.ID,
						Type:  ow.Type,
						Allow: ow.Allow,
						Deny:  ow.Deny,
					})
				}
				item.ChannelDetails = &domain.ChannelDetails{
					Topic:                channel.Topic,
					NSFW:                 channel.NSFW,
					ParentID:             channel.ParentID,
					PermissionOverwrites: overwrites,
				}
			}
			out = append(out, item)
		}
		return ChannelListResult{Channels: out, TotalCount: len(out)}, nil
	})
}
