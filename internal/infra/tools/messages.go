package tools

import (
	"context"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/discord"
)

type channelMessagesInput struct {
	ChannelID string `json:"channelId"`
	Limit     int    `json:"limit"`
	Before    string `json:"before"`
	After     string `json:"after"`
	Around    string `json:"around"`
}

// MessagePageResult is a newest-first page of messages.
type MessagePageResult struct {
	Messages        []domain.Message `json:"messages"`
	TotalCount      int              `json:"totalCount"`
	OldestMessageID *string          `json:"oldestMessageId"`
	NewestMessageID *string          `json:"newestMessageId"`
}

func (s *shaper) messagePage(msgs []discord.Message) MessagePageResult {
	shaped := s.messages(msgs)
	oldest, newest := pageBounds(shaped)
	return MessagePageResult{
		Messages:        shaped,
		TotalCount:      len(shaped),
		OldestMessageID: oldest,
		NewestMessageID: newest,
	}
}

// singleCursor rejects more than one of before, after and around.
func singleCursor(args map[string]any) error {
	set := 0
	for _, key := range []string{"before", "after", "around"} {
		if value, ok := args[key].(string); ok && value != "" {
			set++
		}
	}
	if set > 1 {
		return invalid("only one of before, after or around may be specified")
	}
	return nil
}

func channelMessagesOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "get_channel_messages",
		description: "Get recent messages from a Discord channel",
		schema: objectSchema(map[string]any{
			"channelId": idProperty("ID of the channel to read"),
			"limit":     integerProperty("Maximum number of messages to fetch", 1, domain.MaxMessagePageSize, 50),
			"before":    stringProperty("Only return messages before this message id"),
			"after":     stringProperty("Only return messages after this message id"),
			"around":    stringProperty("Only return messages around this message id"),
		}, "channelId"),
		refines:  []Refinement{singleCursor},
		phrase:   "failed to get channel messages",
		activity: "fetching channel messages",
	}, func(ctx context.Context, api API, in channelMessagesInput) (MessagePageResult, error) {
		msgs, err := api.ChannelMessages(ctx, in.ChannelID, discord.MessageListOptions{
			Limit:  in.Limit,
			Before: in.Before,
			After:  in.After,
			Around: in.Around,
		})
		if err != nil {
			return MessagePageResult{}, err
		}
		return s.messagePage(msgs), nil
	})
}

type messageInput struct {
	ChannelID string `json:"channelId"`
	MessageID string `json:"messageId"`
}

type MessageResult struct {
	Message domain.Message `json:"message"`
}

func messageOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "get_message",
		description: "Get a single Discord message",
		schema: objectSchema(map[string]any{
			"channelId": idProperty("ID of the channel holding the message"),
			"messageId": idProperty("ID of the message"),
		}, "channelId", "messageId"),
		phrase:   "failed to get message",
		activity: "fetching the message",
	}, func(ctx context.Context, api API, in messageInput) (MessageResult, error) {
		msg, err := api.Message(ctx, in.ChannelID, in.MessageID)
		if err != nil {
			return MessageResult{}, err
		}
		return MessageResult{Message: s.message(*msg)}, nil
	})
}

type pinnedMessagesInput struct {
	ChannelID string `json:"channelId"`
}

func pinnedMessagesOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "get_pinned_messages",
		description: "Get the pinned messages of a Discord channel",
		schema:      channelScoped("ID of the channel whose pins are listed"),
		phrase:      "failed to get pinned messages",
		activity:    "fetching pinned messages",
	}, func(ctx context.Context, api API, in pinnedMessagesInput) (MessagePageResult, error) {
		msgs, err := api.PinnedMessages(ctx, in.ChannelID)
		if err != nil {
			return MessagePageResult{}, err
		}
		return s.messagePage(msgs), nil
	})
}
