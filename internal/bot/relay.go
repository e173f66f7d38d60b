// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

// Package bot implements the Notification Relay: best-effort outbound webhook
// calls that keep the Discord bot's local state in sync with mutations here.
//
// # Delivery semantics
//
// At-most-once, fire-and-forget. Every call runs after the local mutation has
// committed; transport failures are logged at WARN and swallowed, never
// surfaced to the caller, and never roll the mutation back. There is no retry
// and no queue. The HTTP client carries a bounded timeout so a slow or
// unreachable bot cannot stall a request indefinitely.
package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Relay is the outbound webhook client. The zero BaseURL disables it: every
// method becomes a no-op, which is how deployments without a bot run.
type Relay struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewRelay creates a relay for the given bot base URL. An empty baseURL
// yields a disabled relay.
func NewRelay(baseURL string, timeout time.Duration, logger *slog.Logger) *Relay {
	return &Relay{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Enabled reports whether a bot URL is configured.
func (relay *Relay) Enabled() bool {
	return relay.baseURL != ""
}

// send performs one fire-and-forget call. Failures are logged and dropped.
func (relay *Relay) send(ctx context.Context, method, path string, payload any) {
	if !relay.Enabled() {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		relay.logger.WarnContext(ctx, "bot_relay_marshal_failed",
			slog.String("path", path), slog.String("error", err.Error()))
		return
	}

	request, err := http.NewRequestWithContext(ctx, method, relay.baseURL+path, bytes.NewReader(body))
	if err != nil {
		relay.logger.WarnContext(ctx, "bot_relay_request_failed",
			slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := relay.client.Do(request)
	if err != nil {
		relay.logger.WarnContext(ctx, "bot_relay_unreachable",
			slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		relay.logger.WarnContext(ctx, "bot_relay_rejected",
			slog.String("path", path), slog.Int("status", response.StatusCode))
	}
}

// SubjectAdded tells the bot a subject channel should appear in the guild.
func (relay *Relay) SubjectAdded(ctx context.Context, guildID, subjectName string) {
	relay.send(ctx, http.MethodPost, "/subjects", map[string]any{
		"guild_id": guildID,
		"subject":  subjectName,
	})
}

// SubjectRemoved tells the bot a subject channel should disappear.
func (relay *Relay) SubjectRemoved(ctx context.Context, guildID, subjectName string) {
	relay.send(ctx, http.MethodDelete, "/subjects", map[string]any{
		"guild_id": guildID,
		"subject":  subjectName,
	})
}

// MessageCreated forwards a freshly posted message to the guild's channel.
func (relay *Relay) MessageCreated(ctx context.Context, guildID, subjectName, title, text, author string) {
	relay.send(ctx, http.MethodPost, "/messages/create", map[string]any{
		"guild_id": guildID,
		"subject":  subjectName,
		"title":    title,
		"text":     text,
		"author":   author,
	})
}

// ClassDeleted tells the bot its guild's class no longer exists.
func (relay *Relay) ClassDeleted(ctx context.Context, guildID string) {
	relay.send(ctx, http.MethodDelete, "/classes", map[string]any{
		"guild_id": guildID,
	})
}

// Ping probes the bot's status endpoint. Used by the dashboard status report;
// a disabled relay is simply unreachable.
func (relay *Relay) Ping(ctx context.Context) bool {
	if !relay.Enabled() {
		return false
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, relay.baseURL+"/status", nil)
	if err != nil {
		return false
	}

	response, err := relay.client.Do(request)
	if err != nil {
		relay.logger.WarnContext(ctx, "bot_probe_failed", slog.String("error", err.Error()))
		return false
	}
	defer response.Body.Close()

	return response.StatusCode < 400
}
