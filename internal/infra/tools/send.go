package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/discord"
)

const (
	maxContentLength  = 2000
	maxEmbeds         = 10
	maxReasonLength   = 512
	maxFilenameLength = 256
)

func urlProperty(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"format":      "uri",
		"description": description,
	}
}

func mediaSchema(description string) map[string]any {
	return objectSchema(map[string]any{
		"url": urlProperty(description),
	}, "url")
}

func embedSchema() map[string]any {
	return objectSchema(map[string]any{
		"title":       boundedString("Embed title", 0, 256),
		"description": boundedString("Embed body", 0, 4096),
		"url":         urlProperty("Link target of the title"),
		"color": map[string]any{
			"type":        "integer",
			"minimum":     0,
			"maximum":     0xFFFFFF,
			"description": "Sidebar color as a 24-bit RGB integer",
		},
		"footer": objectSchema(map[string]any{
			"text":     boundedString("Footer text", 1, 2048),
			"icon_url": urlProperty("Footer icon"),
		}, "text"),
		"image":     mediaSchema("Image URL"),
		"thumbnail": mediaSchema("Thumbnail URL"),
		"author": objectSchema(map[string]any{
			"name":     boundedString("Author name", 1, 256),
			"url":      urlProperty("Author link"),
			"icon_url": urlProperty("Author icon"),
		}, "name"),
		"fields": map[string]any{
			"type":     "array",
			"maxItems": 25,
			"items": objectSchema(map[string]any{
				"name":   boundedString("Field name", 1, 256),
				"value":  boundedString("Field value", 1, 1024),
				"inline": map[string]any{"type": "boolean"},
			}, "name", "value"),
		},
		"timestamp": map[string]any{
			"type":        "string",
			"format":      "date-time",
			"description": "RFC 3339 timestamp shown in the footer",
		},
	})
}

func embedsProperty() map[string]any {
	return map[string]any{
		"type":        "array",
		"maxItems":    maxEmbeds,
		"items":       embedSchema(),
		"description": "Rich embeds attached to the message",
	}
}

// validEmbeds checks the formats the schema validator leaves unchecked.
func validEmbeds(args map[string]any) error {
	embeds, _ := args["embeds"].([]any)
	for i, item := range embeds {
		embed, _ := item.(map[string]any)
		prefix := fmt.Sprintf("embeds[%d]", i)
		checks := []struct {
			path  string
			value any
		}{
			{prefix + ".url", embed["url"]},
			{prefix + ".footer.icon_url", nested(embed, "footer", "icon_url")},
			{prefix + ".image.url", nested(embed, "image", "url")},
			{prefix + ".thumbnail.url", nested(embed, "thumbnail", "url")},
			{prefix + ".author.url", nested(embed, "author", "url")},
			{prefix + ".author.icon_url", nested(embed, "author", "icon_url")},
		}
		for _, check := range checks {
			raw, ok := check.value.(string)
			if ok && !isAbsoluteURL(raw) {
				return invalid("%s must be an absolute URL", check.path)
			}
		}
		if raw, ok := embed["timestamp"].(string); ok {
			if _, err := time.Parse(time.RFC3339, raw); err != nil {
				return invalid("%s.timestamp must be an RFC 3339 timestamp", prefix)
			}
		}
	}
	return nil
}

func nested(obj map[string]any, key, field string) any {
	inner, _ := obj[key].(map[string]any)
	return inner[field]
}

func isAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(raw)
	return err == nil && parsed.Scheme != "" && parsed.Host != ""
}

// SentMessageResult is returned by every tool that creates or edits a message.
type SentMessageResult struct {
	Message domain.Message `json:"message"`
	Success bool           `json:"success"`
}

type sendMessageInput struct {
	ChannelID string          `json:"channelId"`
	Content   string          `json:"content"`
	TTS       bool            `json:"tts"`
	Embeds    []discord.Embed `json:"embeds"`
}

func sendMessageOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "send_message",
		description: "Send a message to a Discord channel",
		schema: objectSchema(map[string]any{
			"channelId": idProperty("ID of the destination channel"),
			"content":   boundedString("Message text", 1, maxContentLength),
			"tts":       boolProperty("Send as a text-to-speech message", false),
			"embeds":    embedsProperty(),
		}, "channelId", "content"),
		refines:  []Refinement{validEmbeds},
		phrase:   "failed to send message",
		activity: "sending the message",
	}, func(ctx context.Context, api API, in sendMessageInput) (SentMessageResult, error) {
		msg, err := api.SendMessage(ctx, in.ChannelID, discord.MessagePayload{
			Content: in.Content,
			TTS:     in.TTS,
			Embeds:  in.Embeds,
		})
		if err != nil {
			return SentMessageResult{}, err
		}
		return SentMessageResult{Message: s.message(*msg), Success: true}, nil
	})
}

type editMessageInput struct {
	ChannelID string          `json:"channelId"`
	MessageID string          `json:"messageId"`
	Content   string          `json:"content"`
	Embeds    []discord.Embed `json:"embeds"`
}

func editMessageOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "edit_message",
		description: "Edit a message previously sent by the bot",
		schema: objectSchema(map[string]any{
			"channelId": idProperty("ID of the channel holding the message"),
			"messageId": idProperty("ID of the message to edit"),
			"content":   boundedString("Replacement message text", 1, maxContentLength),
			"embeds":    embedsProperty(),
		}, "channelId", "messageId", "content"),
		refines:  []Refinement{validEmbeds},
		phrase:   "failed to edit message",
		activity: "editing the message",
	}, func(ctx context.Context, api API, in editMessageInput) (SentMessageResult, error) {
		msg, err := api.EditMessage(ctx, in.ChannelID, in.MessageID, discord.MessagePayload{
			Content: in.Content,
			Embeds:  in.Embeds,
		})
		if err != nil {
			return SentMessageResult{}, err
		}
		return SentMessageResult{Message: s.message(*msg), Success: true}, nil
	})
}

type deleteMessageInput struct {
	ChannelID string `json:"channelId"`
	MessageID string `json:"messageId"`
	Reason    string `json:"reason"`
}

type DeleteMessageResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	ChannelID string `json:"channelId"`
	DeletedAt string `json:"deletedAt"`
	Reason    string `json:"reason,omitempty"`
}

func deleteMessageOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "delete_message",
		description: "Delete a message from a Discord channel",
		schema: objectSchema(map[string]any{
			"channelId": idProperty("ID of the channel holding the message"),
			"messageId": idProperty("ID of the message to delete"),
			"reason":    boundedString("Reason recorded in the audit log", 0, maxReasonLength),
		}, "channelId", "messageId"),
		phrase:   "failed to delete message",
		activity: "deleting the message",
	}, func(ctx context.Context, api API, in deleteMessageInput) (DeleteMessageResult, error) {
		if err := api.DeleteMessage(ctx, in.ChannelID, in.MessageID, in.Reason); err != nil {
			return DeleteMessageResult{}, err
		}
		return DeleteMessageResult{
			Success:   true,
			MessageID: in.MessageID,
			ChannelID: in.ChannelID,
			DeletedAt: s.timestamp(),
			Reason:    in.Reason,
		}, nil
	})
}

type fileInput struct {
	Name        string `json:"name"`
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

type sendFileInput struct {
	ChannelID string    `json:"channelId"`
	Content   string    `json:"content"`
	File      fileInput `json:"file"`
	Spoiler   bool      `json:"spoiler"`
}

// decodableFile rejects file content the base64 pattern admits but a decoder refuses.
func decodableFile(args map[string]any) error {
	file, _ := args["file"].(map[string]any)
	content, _ := file["content"].(string)
	if _, err := base64.StdEncoding.DecodeString(content); err != nil {
		return invalid("file.content must be valid base64: %v", err)
	}
	return nil
}

func sendFileOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "send_file",
		description: "Upload a file to a Discord channel",
		schema: objectSchema(map[string]any{
			"channelId": idProperty("ID of the destination channel"),
			"content":   boundedString("Message text sent along with the file", 0, maxContentLength),
			"file": objectSchema(map[string]any{
				"name": boundedString("File name including extension", 1, maxFilenameLength),
				"content": map[string]any{
					"type":        "string",
					"minLength":   1,
					"pattern":     "^[A-Za-z0-9+/]*={0,2}$",
					"description": "File bytes, base64 encoded",
				},
				"contentType": stringProperty("MIME type of the file"),
			}, "name", "content"),
			"spoiler": boolProperty("Mark the file as a spoiler", false),
		}, "channelId", "file"),
		refines:  []Refinement{decodableFile},
		phrase:   "failed to send file",
		activity: "sending the file",
	}, func(ctx context.Context, api API, in sendFileInput) (SentMessageResult, error) {
		data, err := base64.StdEncoding.DecodeString(in.File.Content)
		if err != nil {
			return SentMessageResult{}, fmt.Errorf("decode file content: %w", err)
		}
		msg, err := api.SendMessageWithFile(ctx, in.ChannelID, in.Content, discord.FileUpload{
			Name:        in.File.Name,
			Data:        data,
			ContentType: in.File.ContentType,
			Spoiler:     in.Spoiler,
		})
		if err != nil {
			return SentMessageResult{}, err
		}
		return SentMessageResult{Message: s.message(*msg), Success: true}, nil
	})
}
