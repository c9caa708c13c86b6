package tools

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/discord"
)

func roleFilterProperties() map[string]any {
	return map[string]any{
		"adminOnly":      boolProperty("Only return roles with the administrator permission", false),
		"excludeManaged": boolProperty("Skip roles managed by integrations or bots", false),
		"includeDetails": boolProperty("Include tags, icon and unicode emoji", false),
	}
}

type guildRolesInput struct {
	GuildID string `json:"guildId"`
	roleFilter
}

type GuildRolesResult struct {
	Roles            []domain.Role `json:"roles"`
	TotalCount       int           `json:"totalCount"`
	FilteredCount    int           `json:"filteredCount"`
	AdminRoleCount   int           `json:"adminRoleCount"`
	ManagedRoleCount int           `json:"managedRoleCount"`
}

func guildRolesOperation(s *shaper) *Operation {
	props := roleFilterProperties()
	props["guildId"] = idProperty("ID of the server whose roles are listed")
	return newOperation(definition{
		name:        "get_guild_roles",
		description: "List the roles of a Discord server",
		schema:      objectSchema(props, "guildId"),
		phrase:      "failed to get guild roles",
		activity:    "listing roles",
	}, func(ctx context.Context, api API, in guildRolesInput) (GuildRolesResult, error) {
		roles, err := api.GuildRoles(ctx, in.GuildID)
		if err != nil {
			return GuildRolesResult{}, err
		}
		filtered := in.apply(roles)
		out := make([]domain.Role, 0, len(filtered))
		for _, role := range filtered {
			out = append(out, s.role(role, in.IncludeDetails))
		}
		// Summary counts cover every role, not just the filtered ones.
		admin, managed := countRoles(roles)
		return GuildRolesResult{
			Roles:            out,
			TotalCount:       len(roles),
			FilteredCount:    len(out),
			AdminRoleCount:   admin,
			ManagedRoleCount: managed,
		}, nil
	})
}

type memberRolesInput struct {
	GuildID string `json:"guildId"`
	UserID  string `json:"userId"`
	roleFilter
}

type MemberRolesResult struct {
	Member            domain.MemberProfile `json:"member"`
	Roles             []domain.Role        `json:"roles"`
	TotalRoleCount    int                  `json:"totalRoleCount"`
	FilteredRoleCount int                  `json:"filteredRoleCount"`
	AdminRoleCount    int                  `json:"adminRoleCount"`
	ManagedRoleCount  int                  `json:"managedRoleCount"`
}

func memberRolesOperation(s *shaper) *Operation {
	props := roleFilterProperties()
	props["guildId"] = idProperty("ID of the server")
	props["userId"] = idProperty("ID of the member")
	return newOperation(definition{
		name:        "get_member_roles",
		description: "List the roles held by a member of a Discord server",
		schema:      objectSchema(props, "guildId", "userId"),
		phrase:      "failed to get member roles",
		activity:    "fetching member roles",
	}, func(ctx context.Context, api API, in memberRolesInput) (MemberRolesResult, error) {
		var (
			member *discord.Member
			roles  []discord.Role
		)
		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			var err error
			member, err = api.GuildMember(groupCtx, in.GuildID, in.UserID)
			return err
		})
		group.Go(func() error {
			var err error
			roles, err = api.GuildRoles(groupCtx, in.GuildID)
			return err
		})
		if err := group.Wait(); err != nil {
			return MemberRolesResult{}, err
		}

		held := slices.DeleteFunc(slices.Clone(roles), func(role discord.Role) bool {
			return !slices.Contains(member.Roles, role.ID)
		})
		held = in.apply(held)
		out := make([]domain.Role, 0, len(held))
		for _, role := range held {
			out = append(out, s.role(role, in.IncludeDetails))
		}
		admin, managed := countRoles(held)
		return MemberRolesResult{
			Member:            s.memberProfile(*member, in.UserID),
			Roles:             out,
			TotalRoleCount:    len(member.Roles),
			FilteredRoleCount: len(out),
			AdminRoleCount:    admin,
			ManagedRoleCount:  managed,
		}, nil
	})
}

func (s *shaper) memberProfile(member discord.Member, userID string) domain.MemberProfile {
	user := discord.User{ID: userID, Username: placeholderUser.Username, Discriminator: placeholderUser.Discriminator}
	if member.User != nil {
		user = *member.User
	}
	return domain.MemberProfile{
		ID:            user.ID,
		Username:      user.Username,
		Discriminator: user.Discriminator,
		GlobalName:    nonEmpty(user.GlobalName),
		Nickname:      nonEmpty(member.Nick),
		AvatarURL:     s.cdnURL("avatars", user.ID, user.Avatar),
		IsBot:         user.Bot,
		JoinedAt:      member.JoinedAt,
		PremiumSince:  nonEmpty(member.PremiumSince),
	}
}
