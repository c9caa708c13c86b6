package tools

import (
	"context"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/discord"
)

type WebhooksResult struct {
	Webhooks   []domain.Webhook `json:"webhooks"`
	TotalCount int              `json:"totalCount"`
}

type channelWebhooksInput struct {
	ChannelID string `json:"channelId"`
}

type guildWebhooksInput struct {
	GuildID string `json:"guildId"`
}

func channelWebhooksOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "get_channel_webhooks",
		description: "List the webhooks attached to a Discord channel",
		schema:      channelScoped("ID of the channel whose webhooks are listed"),
		phrase:      "failed to get channel webhooks",
		activity:    "listing channel webhooks",
	}, func(ctx context.Context, api API, in channelWebhooksInput) (WebhooksResult, error) {
		webhooks, err := api.ChannelWebhooks(ctx, in.ChannelID)
		if err != nil {
			return WebhooksResult{}, err
		}
		return s.webhooks(webhooks), nil
	})
}

func guildWebhooksOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "get_guild_webhooks",
		description: "List every webhook of a Discord server",
		schema:      guildScoped("ID of the server whose webhooks are listed"),
		phrase:      "failed to get guild webhooks",
		activity:    "listing server webhooks",
	}, func(ctx context.Context, api API, in guildWebhooksInput) (WebhooksResult, error) {
		webhooks, err := api.GuildWebhooks(ctx, in.GuildID)
		if err != nil {
			return WebhooksResult{}, err
		}
		return s.webhooks(webhooks), nil
	})
}

func (s *shaper) webhooks(webhooks []discord.Webhook) WebhooksResult {
	out := make([]domain.Webhook, 0, len(webhooks))
	for _, hook := range webhooks {
		item := domain.Webhook{
			ID:            hook.ID,
			Type:          hook.Type,
			GuildID:       hook.GuildID,
			ChannelID:     hook.ChannelID,
			User:          s.userSummary(hook.User),
			Name:          hook.Name,
			Avatar:        hook.Avatar,
			ApplicationID: hook.ApplicationID,
			URL:           hook.URL,
		}
		if g := hook.SourceGuild; g != nil {
			item.SourceGuild = &domain.WebhookGuild{ID: g.ID, Name: g.Name, Icon: g.Icon}
		}
		if c := hook.SourceChannel; c != nil {
			item.SourceChannel = &domain.WebhookChannel{ID: c.ID, Name: c.Name}
		}
		out = append(out, item)
	}
	return WebhooksResult{Webhooks: out, TotalCount: len(out)}
}
