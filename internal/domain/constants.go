package domain

const (
	DefaultAPIBaseURL                 = "https://discord.com/api/v10"
	DefaultCDNBaseURL                 = "https://cdn.discordapp.com"
	DefaultUserAgent                  = "discord-mcp/1.0.0"
	DefaultRequestTimeoutSeconds      = 10
	DefaultTokenEnv                   = "DISCORD_TOKEN"
	DefaultEnvPrefix                  = "DISCORD_MCP"
	DefaultLogLevel                   = "info"
	DefaultObservabilityListenAddress = "127.0.0.1:9090"
)

// Upstream pagination caps applied before a request is sent.
const (
	MaxMemberPageSize  = 1000
	MaxMessagePageSize = 100
)

// AdministratorPermission is the ADMINISTRATOR bit of a role permission set.
const AdministratorPermission = 8
