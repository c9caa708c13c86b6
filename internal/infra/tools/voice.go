package tools

import (
	"context"

	"discord-mcp/internal/domain"
)

type VoiceStatesResult struct {
	VoiceStates []domain.VoiceState `json:"voiceStates"`
	TotalCount  int                 `json:"totalCount"`
}

type voiceStatesInput struct {
	GuildID string `json:"guildId"`
}

func voiceStatesOperation(_ *shaper) *Operation {
	return newOperation(definition{
		name:        "get_guild_voice_states",
		description: "List who is connected to voice in a Discord server",
		schema:      guildScoped("ID of the server whose voice states are listed"),
		phrase:      "failed to get guild voice states",
		activity:    "listing voice states",
	}, func(ctx context.Context, api API, in voiceStatesInput) (VoiceStatesResult, error) {
		states, err := api.GuildVoiceStates(ctx, in.GuildID)
		if err != nil {
			return VoiceStatesResult{}, err
		}
		out := make([]domain.VoiceState, 0, len(states))
		for _, state := range states {
			out = append(out, domain.VoiceState{
				GuildID:                 state.GuildID,
				ChannelID:               state.ChannelID,
				UserID:                  state.UserID,
				SessionID:               state.SessionID,
				Deaf:                    state.Deaf,
				Mute:                    state.Mute,
				SelfDeaf:                state.SelfDeaf,
				SelfMute:                state.SelfMute,
				SelfStream:              state.SelfStream,
				SelfVideo:               state.SelfVideo,
				Suppress:                state.Suppress,
				RequestToSpeakTimestamp: state.RequestToSpeakTimestamp,
			})
		}
		return VoiceStatesResult{VoiceStates: out, TotalCount: len(out)}, nil
	})
}

type VoiceRegionsResult struct {
	Regions    []domain.VoiceRegion `json:"regions"`
	TotalCount int                  `json:"totalCount"`
}

type voiceRegionsInput struct{}

func voiceRegionsOperation(_ *shaper) *Operation {
	return newOperation(definition{
		name:        "get_voice_regions",
		description: "List the voice regions available to the bot",
		schema:      objectSchema(map[string]any{}),
		phrase:      "failed to get voice regions",
		activity:    "listing voice regions",
	}, func(ctx context.Context, api API, _ voiceRegionsInput) (VoiceRegionsResult, error) {
		regions, err := api.VoiceRegions(ctx)
		if err != nil {
			return VoiceRegionsResult{}, err
		}
		out := make([]domain.VoiceRegion, 0, len(regions))
		for _, region := range regions {
			out = append(out, domain.VoiceRegion{
				ID:         region.ID,
				Name:       region.Name,
				Optimal:    region.Optimal,
				Deprecated: region.Deprecated,
				Custom:     region.Custom,
			})
		}
		return VoiceRegionsResult{Regions: out, TotalCount: len(out)}, nil
	})
}
