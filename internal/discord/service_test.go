// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package discord_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classcord/classcord/internal/core/class"
	"github.com/classcord/classcord/internal/core/enrollment"
	"github.com/classcord/classcord/internal/discord"
	"github.com/classcord/classcord/internal/platform/apperr"
	"github.com/classcord/classcord/pkg/uuidv7"
)

type fakeClassStore struct {
	byID map[string]*class.Class
}

func (f *fakeClassStore) FindByGuildID(_ context.Context, guildID string) (*class.Class, error) {
	for _, c := range f.byID {
		if c.GuildID != nil && *c.GuildID == guildID {
			return c, nil
		}
	}
	return nil, apperr.NotFound("Class")
}

func (f *fakeClassStore) FindByKey(_ context.Context, key string) (*class.Class, error) {
	for _, c := range f.byID {
		if c.Key == key {
			return c, nil
		}
	}
	return nil, apperr.NotFound("Class")
}

func (f *fakeClassStore) SetGuildID(_ context.Context, classID string, guildID *string) error {
	c, ok := f.byID[classID]
	if !ok {
		return apperr.NotFound("Class")
	}
	c.GuildID = guildID
	return nil
}

func (f *fakeClassStore) CountInitialized(_ context.Context) (int, error) {
	count := 0
	for _, c := range f.byID {
		if c.Initialized() {
			count++
		}
	}
	return count, nil
}

type fakeEnrollments struct {
	byClass map[string][]*enrollment.Enrollment
}

func (f *fakeEnrollments) ListForClass(_ context.Context, classID string) ([]*enrollment.Enrollment, error) {
	return f.byClass[classID], nil
}

type fakeProbe struct {
	up    bool
	calls int
}

func (f *fakeProbe) Ping(context.Context) bool {
	f.calls++
	return f.up
}

type fixture struct {
	service *discord.Service
	classes *fakeClassStore
	probe   *fakeProbe
	classID string
}

func newFixture() *fixture {
	classID := uuidv7.New()
	classes := &fakeClassStore{byID: map[string]*class.Class{
		classID: {ID: classID, Name: "10A", Key: "key-10A"},
	}}
	enrollments := &fakeEnrollments{byClass: map[string][]*enrollment.Enrollment{
		classID: {
			{SubjectName: "Math"},
			{SubjectName: "History"},
		},
	}}
	probe := &fakeProbe{up: true}

	// nil redis client: the probe cache degrades to a live probe per call.
	service := discord.NewService(classes, enrollments, probe, nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	return &fixture{service: service, classes: classes, probe: probe, classID: classID}
}

/*
TestService_Init walks the binding state machine: successful bind returns the
subject list; duplicate guild, unknown key and already-bound class are
rejected; deactivate resets so init works again.
*/
func TestService_Init(t *testing.T) {
	fx := newFixture()

	status, err := fx.service.Init(context.Background(), "key-10A", "guild-42")
	require.NoError(t, err)
	assert.Equal(t, "10A", status.ClassName)
	assert.Equal(t, []string{"Math", "History"}, status.Subjects)

	t.Run("guild_already_bound", func(t *testing.T) {
		_, err := fx.service.Init(context.Background(), "key-10A", "guild-42")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
	})

	t.Run("class_already_bound", func(t *testing.T) {
		_, err := fx.service.Init(context.Background(), "key-10A", "guild-43")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
	})

	t.Run("unknown_key", func(t *testing.T) {
		_, err := fx.service.Init(context.Background(), "bogus", "guild-43")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	})

	t.Run("reinit_after_deactivate", func(t *testing.T) {
		require.NoError(t, fx.service.Deactivate(context.Background(), "guild-42"))

		_, err := fx.service.Init(context.Background(), "key-10A", "guild-99")
		require.NoError(t, err)
	})
}

/*
TestService_Deactivate: clearing a never-bound guild is NotFound.
*/
func TestService_Deactivate(t *testing.T) {
	fx := newFixture()

	err := fx.service.Deactivate(context.Background(), "guild-42")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}

/*
TestService_Status: bound guild resolves; unbound guild is a 400 telling the
bot to run init.
*/
func TestService_Status(t *testing.T) {
	fx := newFixture()

	_, err := fx.service.Init(context.Background(), "key-10A", "guild-42")
	require.NoError(t, err)

	status, err := fx.service.Status(context.Background(), "guild-42")
	require.NoError(t, err)
	assert.Equal(t, "10A", status.ClassName)

	_, err = fx.service.Status(context.Background(), "guild-unknown")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
}

/*
TestService_SystemStatus reports the probe result and the bound-guild count.
*/
func TestService_SystemStatus(t *testing.T) {
	fx := newFixture()

	status, err := fx.service.SystemStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.BotReachable)
	assert.Equal(t, 0, status.Servers)

	_, err = fx.service.Init(context.Background(), "key-10A", "guild-42")
	require.NoError(t, err)

	fx.probe.up = false
	status, err = fx.service.SystemStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.BotReachable)
	assert.Equal(t, 1, status.Servers)
}
