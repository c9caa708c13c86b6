package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"discord-mcp/internal/domain"
	"discord-mcp/internal/infra/telemetry"
)

// Config holds the immutable settings of a Client.
type Config struct {
	Token     string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Options configures optional collaborators of a Client.
type Options struct {
	Logger     *zap.Logger
	Metrics    domain.Metrics
	HTTPClient *http.Client
}

// Client issues authenticated REST calls. It is safe for concurrent use and
// never mutated after New returns.
type Client struct {
	baseURL   string
	auth      string
	userAgent string
	http      *http.Client
	logger    *zap.Logger
	metrics   domain.Metrics
}

func New(cfg Config, opts Options) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = domain.DefaultAPIBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = domain.DefaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultRequestTimeoutSeconds * time.Second
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	// Copy so the timeout never leaks into a caller-owned client.
	clientCopy := *httpClient
	clientCopy.Timeout = timeout

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}

	return &Client{
		baseURL:   baseURL,
		auth:      "Bot " + token,
		userAgent: userAgent,
		http:      &clientCopy,
		logger:    logger.Named("discord"),
		metrics:   metrics,
	}, nil
}

type request struct {
	method      string
	route       string
	path        string
	query       url.Values
	body        []byte
	contentType string
	header      http.Header
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, req, out)
	kind := ""
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		kind = string(apiErr.Kind)
	}
	c.metrics.ObserveUpstream(domain.UpstreamMetric{
		Method:     req.method,
		Route:      req.route,
		StatusCode: status,
		Kind:       kind,
		Duration:   time.Since(start),
	})
	if err != nil {
		c.logger.Debug("upstream request failed",
			zap.String("method", req.method),
			zap.String("route", req.route),
			zap.Int("status", status),
			zap.String("kind", kind),
			telemetry.DurationField(time.Since(start)),
			zap.Error(err),
		)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, req request, out any) (int, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return 0, requestError(err)
	}
	httpReq.Header.Set("Authorization", c.auth)
	httpReq.Header.Set("User-Agent", c.userAgent)
	contentType := req.contentType
	if contentType == "" {
		contentType = "application/json"
	}
	httpReq.Header.Set("Content-Type", contentType)
	for key, values := range req.header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, connectivityError(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, connectivityError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, statusError(resp.StatusCode, payload)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(payload)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return resp.StatusCode, &APIError{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Message:    "malformed response body: " + err.Error(),
			Cause:      err,
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) get(ctx context.Context, route, path string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, route: route, path: path, query: query}, out)
}

func (c *Client) sendJSON(ctx context.Context, method, route, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return requestError(err)
	}
	return c.do(ctx, request{method: method, route: route, path: path, body: body}, out)
}

func seg(id string) string {
	return url.PathEscape(id)
}

// clampLimit bounds a page size to [1, ceiling]. Zero means "let upstream decide".
func (c *Client) clampLimit(route string, limit, ceiling int) int {
	if limit <= 0 {
		return 0
	}
	clamped := min(limit, ceiling)
	if clamped != limit {
		c.logger.Debug("page size clamped",
			zap.String("route", route),
			zap.Int("requested", limit),
			zap.Int("sent", clamped),
		)
	}
	return clamped
}

// Guilds lists the guilds the bot user belongs to.
func (c *Client) Guilds(ctx context.Context) ([]Guild, error) {
	var guilds []Guild
	query := url.Values{"with_counts": {"true"}}
	if err := c.get(ctx, "/users/@me/guilds", "/users/@me/guilds", query, &guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}

func (c *Client) Guild(ctx context.Context, guildID string) (*Guild, error) {
	var guild Guild
	query := url.Values{"with_counts": {"true"}}
	if err := c.get(ctx, "/guilds/{guild}", "/guilds/"+seg(guildID), query, &guild); err != nil {
		return nil, err
	}
	return &guild, nil
}

func (c *Client) GuildChannels(ctx context.Context, guildID string) ([]Channel, error) {
	var channels []Channel
	if err := c.get(ctx, "/guilds/{guild}/channels", "/guilds/"+seg(guildID)+"/channels", nil, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// GuildMembers lists one page of members. The limit is clamped to 1000.
func (c *Client) GuildMembers(ctx context.Context, guildID string, opts MemberListOptions) ([]Member, error) {
	const route = "/guilds/{guild}/members"
	query := url.Values{}
	if limit := c.clampLimit(route, opts.Limit, domain.MaxMemberPageSize); limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if opts.After != "" {
		query.Set("after", opts.After)
	}
	var members []Member
	if err := c.get(ctx, route, "/guilds/"+seg(guildID)+"/members", query, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) GuildMember(ctx context.Context, guildID, userID string) (*Member, error) {
	var member Member
	path := "/guilds/" + seg(guildID) + "/members/" + seg(userID)
	if err := c.get(ctx, "/guilds/{guild}/members/{user}", path, nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *Client) GuildRoles(ctx context.Context, guildID string) ([]Role, error) {
	var roles []Role
	if err := c.get(ctx, "/guilds/{guild}/roles", "/guilds/"+seg(guildID)+"/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// ChannelMessages lists one page of messages, newest first. The limit is
// clamped to 100.
func (c *Client) ChannelMessages(ctx context.Context, channelID string, opts MessageListOptions) ([]Message, error) {
	const route = "/channels/{channel}/messages"
	query := url.Values{}
	if limit := c.clampLimit(route, opts.Limit, domain.MaxMessagePageSize); limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if opts.Before != "" {
		query.Set("before", opts.Before)
	}
	if opts.After != "" {
		query.Set("after", opts.After)
	}
	if opts.Around != "" {
		query.Set("around", opts.Around)
	}
	var messages []Message
	if err := c.get(ctx, route, "/channels/"+seg(channelID)+"/messages", query, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *Client) Message(ctx context.Context, channelID, messageID string) (*Message, error) {
	var message Message
	path := "/channels/" + seg(channelID) + "/messages/" + seg(messageID)
	if err := c.get(ctx, "/channels/{channel}/messages/{message}", path, nil, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *Client) PinnedMessages(ctx context.Context, channelID string) ([]Message, error) {
	var messages []Message
	if err := c.get(ctx, "/channels/{channel}/pins", "/channels/"+seg(channelID)+"/pins", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *Client) SendMessage(ctx context.Context, channelID string, payload MessagePayload) (*Message, error) {
	var message Message
	path := "/channels/" + seg(channelID) + "/messages"
	if err := c.sendJSON(ctx, http.MethodPost, "/channels/{channel}/messages", path, payload, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *Client) EditMessage(ctx context.Context, channelID, messageID string, payload MessagePayload) (*Message, error) {
	var message Message
	path := "/channels/" + seg(channelID) + "/messages/" + seg(messageID)
	if err := c.sendJSON(ctx, http.MethodPatch, "/channels/{channel}/messages/{message}", path, payload, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// DeleteMessage deletes a message. A non-empty reason is recorded in the
// guild audit log.
func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID, reason string) error {
	req := request{
		method: http.MethodDelete,
		route:  "/channels/{channel}/messages/{message}",
		path:   "/channels/" + seg(channelID) + "/messages/" + seg(messageID),
	}
	if reason != "" {
		req.header = http.Header{"X-Audit-Log-Reason": {url.PathEscape(reason)}}
	}
	return c.do(ctx, req, nil)
}

type attachmentRef struct {
	ID       int    `json:"id"`
	Filename string `json:"filename"`
}

type filePayload struct {
	Content     string          `json:"content,omitempty"`
	Attachments []attachmentRef `json:"attachments"`
}

// SendMessageWithFile posts a multipart message carrying one attachment.
func (c *Client) SendMessageWithFile(ctx context.Context, channelID, content string, file FileUpload) (*Message, error) {
	filename := file.Name
	if file.Spoiler && !strings.HasPrefix(filename, "SPOILER_") {
		filename = "SPOILER_" + filename
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	payload, err := json.Marshal(filePayload{
		Content:     content,
		Attachments: []attachmentRef{{ID: 0, Filename: filename}},
	})
	if err != nil {
		return nil, requestError(err)
	}
	if err := writer.WriteField("payload_json", string(payload)); err != nil {
		return nil, requestError(err)
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[0]"; filename="%s"`, escapeQuotes(filename)))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, requestError(err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, requestError(err)
	}
	if err := writer.Close(); err != nil {
		return nil, requestError(err)
	}

	var message Message
	err = c.do(ctx, request{
		method:      http.MethodPost,
		route:       "/channels/{channel}/messages",
		path:        "/channels/" + seg(channelID) + "/messages",
		body:        buf.Bytes(),
		contentType: writer.FormDataContentType(),
	}, &message)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func (c *Client) ChannelInvites(ctx context.Context, channelID string) ([]Invite, error) {
	var invites []Invite
	if err := c.get(ctx, "/channels/{channel}/invites", "/channels/"+seg(channelID)+"/invites", nil, &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

func (c *Client) GuildInvites(ctx context.Context, guildID string) ([]Invite, error) {
	var invites []Invite
	if err := c.get(ctx, "/guilds/{guild}/invites", "/guilds/"+seg(guildID)+"/invites", nil, &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

func (c *Client) ChannelWebhooks(ctx context.Context, channelID string) ([]Webhook, error) {
	var webhooks []Webhook
	if err := c.get(ctx, "/channels/{channel}/webhooks", "/channels/"+seg(channelID)+"/webhooks", nil, &webhooks); err != nil {
		return nil, err
	}
	return webhooks, nil
}

func (c *Client) GuildWebhooks(ctx context.Context, guildID string) ([]Webhook, error) {
	var webhooks []Webhook
	if err := c.get(ctx, "/guilds/{guild}/webhooks", "/guilds/"+seg(guildID)+"/webhooks", nil, &webhooks); err != nil {
		return nil, err
	}
	return webhooks, nil
}

func (c *Client) GuildVoiceStates(ctx context.Context, guildID string) ([]VoiceState, error) {
	var states []VoiceState
	if err := c.get(ctx, "/guilds/{guild}/voice-states", "/guilds/"+seg(guildID)+"/voice-states", nil, &states); err != nil {
		return nil, err
	}
	return states, nil
}

func (c *Client) VoiceRegions(ctx context.Context) ([]VoiceRegion, error) {
	var regions []VoiceRegion
	if err := c.get(ctx, "/voice/regions", "/voice/regions", nil, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}
