// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

// Package discord implements the guild handshake the bot uses to bind itself
// to a class, plus the dashboard status report.
//
// # Guild binding state machine
//
// Uninitialized -> Initialized via init (guarded by the class key and the
// guild/class uniqueness checks), Initialized -> Uninitialized via deactivate.
// No other transitions: re-initialization requires deactivating first.
package discord

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/classcord/classcord/internal/core/class"
	"github.com/classcord/classcord/internal/core/enrollment"
	"github.com/classcord/classcord/internal/platform/apperr"
	"github.com/classcord/classcord/internal/platform/constants"
	"github.com/classcord/classcord/internal/platform/validate"
)

// ClassStore is the slice of the class repository the handshake needs.
type ClassStore interface {
	FindByGuildID(ctx context.Context, guildID string) (*class.Class, error)
	FindByKey(ctx context.Context, key string) (*class.Class, error)
	SetGuildID(ctx context.Context, classID string, guildID *string) error
	CountInitialized(ctx context.Context) (int, error)
}

// EnrollmentSource lists a class's enrollments for the init payload.
type EnrollmentSource interface {
	ListForClass(ctx context.Context, classID string) ([]*enrollment.Enrollment, error)
}

// BotProbe checks whether the bot process answers.
type BotProbe interface {
	Ping(ctx context.Context) bool
}

type Service struct {
	classes     ClassStore
	enrollments EnrollmentSource
	probe       BotProbe
	cache       *goredis.Client
	logger      *slog.Logger
}

func NewService(
	classes ClassStore,
	enrollments EnrollmentSource,
	probe BotProbe,
	cache *goredis.Client,
	logger *slog.Logger,
) *Service {
	return &Service{
		classes:     classes,
		enrollments: enrollments,
		probe:       probe,
		cache:       cache,
		logger:      logger,
	}
}

// GuildStatus is what the bot learns about its binding.
type GuildStatus struct {
	ClassName string   `json:"class"`
	Subjects  []string `json:"subjects"`
}

// subjectNames flattens a class's enrollments for the bot payload.
func (service *Service) subjectNames(ctx context.Context, classID string) ([]string, error) {
	enrollments, err := service.enrollments.ListForClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(enrollments))
	for _, enr := range enrollments {
		names = append(names, enr.SubjectName)
	}
	return names, nil
}

// Status resolves a guild to its bound class.
//
// An unbound guild is a ValidationError rather than NotFound: the bot treats
// the 400 as "run init first".
func (service *Service) Status(ctx context.Context, guildID string) (*GuildStatus, error) {
	if guildID == "" {
		return nil, validate.RequiredError("guild_id", "is required")
	}

	cls, err := service.classes.FindByGuildID(ctx, guildID)
	if err != nil {
		return nil, apperr.ValidationError("Guild is not initialized")
	}

	subjects, err := service.subjectNames(ctx, cls.ID)
	if err != nil {
		return nil, err
	}

	return &GuildStatus{ClassName: cls.Name, Subjects: subjects}, nil
}

// Init binds a guild to the class whose key is quoted.
//
// # Rejections
//   - Conflict when the guild is already bound to some class.
//   - NotFound when the key resolves to no class.
//   - Conflict when that class already has a guild bound.
//
// On success it returns the class's subject list, the payload the bot uses to
// build its channels.
func (service *Service) Init(ctx context.Context, key, guildID string) (*GuildStatus, error) {
	validator := &validate.Validator{}
	validator.Required("key", key).Required("guild_id", guildID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.classes.FindByGuildID(ctx, guildID); err == nil {
		return nil, apperr.Conflict("Guild is already initialized")
	}

	cls, err := service.classes.FindByKey(ctx, key)
	if err != nil {
		return nil, apperr.NotFound("Class")
	}

	if cls.Initialized() {
		return nil, apperr.Conflict("Class is already bound to a guild")
	}

	// The UNIQUE constraint on class.guild_id backs the pre-checks against
	// concurrent init calls.
	if err := service.classes.SetGuildID(ctx, cls.ID, &guildID); err != nil {
		return nil, err
	}

	subjects, err := service.subjectNames(ctx, cls.ID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("guild_initialized",
		slog.String("class", cls.Name), slog.String("guild_id", guildID))
	return &GuildStatus{ClassName: cls.Name, Subjects: subjects}, nil
}

// Deactivate clears a guild's binding; NotFound when nothing is bound.
func (service *Service) Deactivate(ctx context.Context, guildID string) error {
	if guildID == "" {
		return validate.RequiredError("guild_id", "is required")
	}

	cls, err := service.classes.FindByGuildID(ctx, guildID)
	if err != nil {
		return apperr.NotFound("Guild")
	}

	if err := service.classes.SetGuildID(ctx, cls.ID, nil); err != nil {
		return err
	}

	service.logger.Info("guild_deactivated",
		slog.String("class", cls.Name), slog.String("guild_id", guildID))
	return nil
}

// SystemStatus is the dashboard's health snapshot.
type SystemStatus struct {
	BotReachable bool `json:"bot"`
	Servers      int  `json:"servers"`
}

// SystemStatus reports bot reachability and the initialized-guild count.
//
// The probe result is cached in Redis for a short TTL so dashboard polling
// cannot hammer an offline bot. Redis being down degrades to a live probe.
func (service *Service) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	servers, err := service.classes.CountInitialized(ctx)
	if err != nil {
		return nil, err
	}

	reachable, cached := service.cachedProbe(ctx)
	if !cached {
		reachable = service.probe.Ping(ctx)
		service.storeProbe(ctx, reachable)
	}

	return &SystemStatus{BotReachable: reachable, Servers: servers}, nil
}

func (service *Service) cachedProbe(ctx context.Context) (reachable, ok bool) {
	if service.cache == nil {
		return false, false
	}

	value, err := service.cache.Get(ctx, constants.RedisKeyBotStatus).Result()
	if err != nil {
		return false, false
	}
	return value == "up", true
}

func (service *Service) storeProbe(ctx context.Context, reachable bool) {
	if service.cache == nil {
		return
	}

	value := "down"
	if reachable {
		value = "up"
	}
	if err := service.cache.Set(ctx, constants.RedisKeyBotStatus, value, constants.BotStatusCacheTTL).Err(); err != nil {
		service.logger.WarnContext(ctx, "bot_status_cache_write_failed",
			slog.String("error", err.Error()))
	}
}
