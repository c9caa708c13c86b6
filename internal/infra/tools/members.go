package tools

import (
	"context"
	"slices"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/discord"
)

type userListInput struct {
	ServerID       string `json:"serverId"`
	Limit          int    `json:"limit"`
	After          string `json:"after"`
	IncludeDetails bool   `json:"includeDetails"`
	RoleID         string `json:"roleId"`
}

type UserListResult struct {
	Users      []domain.MemberUser `json:"users"`
	TotalCount int                 `json:"totalCount"`
	HasMore    bool                `json:"hasMore"`
	NextUserID *string             `json:"nextUserId"`
}

// placeholderUser stands in for a member record that arrived without a user.
var placeholderUser = discord.User{ID: "unknown", Username: "Unknown User", Discriminator: "0000"}

func userListOperation(s *shaper) *Operation {
	return newOperation(definition{
		name:        "get_user_list",
		description: "List the members of a Discord server, one page at a time",
		schema: objectSchema(map[string]any{
			"serverId":       idProperty("ID of the server whose members are listed"),
			"limit":          integerProperty("Maximum number of members to fetch", 1, domain.MaxMemberPageSize, 100),
			"after":          stringProperty("Only return members with an id after this user id"),
			"includeDetails": boolProperty("Include roles, join date and boost date", false),
			"roleId":         stringProperty("Only return members holding this role"),
		}, "serverId"),
		phrase:   "failed to get user list",
		activity: "listing members",
	}, func(ctx context.Context, api API, in userListInput) (UserListResult, error) {
		members, err := api.GuildMembers(ctx, in.ServerID, discord.MemberListOptions{
			Limit: in.Limit,
			After: in.After,
		})
		if err != nil {
			return UserListResult{}, err
		}

		users := make([]domain.MemberUser, 0, len(members))
		for _, member := range members {
			if in.RoleID != "" && !slices.Contains(member.Roles, in.RoleID) {
				continue
			}
			users = append(users, s.memberUser(member, in.IncludeDetails))
		}

		// A full page suggests, but does not guarantee, that more members exist.
		result := UserListResult{
			Users:      users,
			TotalCount: len(users),
			HasMore:    len(members) == in.Limit,
		}
		if result.HasMore && len(users) > 0 {
			next := users[len(users)-1].ID
			result.NextUserID = &next
		}
		return result, nil
	})
}

func (s *shaper) memberUser(member discord.Member, withDetails bool) domain.MemberUser {
	user := placeholderUser
	if member.User != nil {
		user = *member.User
	}
	out := domain.MemberUser{
		ID:            user.ID,
		Username:      user.Username,
		Discriminator: user.Discriminator,
		GlobalName:    nonEmpty(user.GlobalName),
		Nickname:      nonEmpty(member.Nick),
		AvatarURL:     s.cdnURL("avatars", user.ID, user.Avatar),
		IsBot:         user.Bot,
	}
	if withDetails {
		out.MemberDetails = &domain.MemberDetails{
			Roles:        nonNil(member.Roles),
			JoinedAt:     member.JoinedAt,
			PremiumSince: nonEmpty(member.PremiumSince),
		}
	}
	return out
}
