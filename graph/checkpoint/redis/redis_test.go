//
// Tencent is pleased to support the open source community by making meetingmuse available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// meetingmuse is licensed under the Apache License Version 2.0.
//
//

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisisarjun/meetingmuse-sub000/graph"
	"github.com/thisisarjun/meetingmuse-sub000/model"
)

func newTestSaver(t *testing.T, opts ...Option) (*Saver, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	saver, err := NewSaver(client, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { saver.Close() })
	return saver, mr
}

func TestSaverRoundTrip(t *testing.T) {
	saver, _ := newTestSaver(t)
	ctx := context.Background()

	state := model.NewBotState()
	state.AddHumanMessage("schedule a sync")
	state.CollectedFields = model.MeetingFindings{Duration: model.IntPtr(45)}
	original := graph.NewCheckpoint("s1", state)
	original.SetInterrupt(model.NodeHumanMoreInfo, model.NewSeekMoreInfo("need info", "who attends?"))

	require.NoError(t, saver.Save(ctx, original))

	loaded, err := saver.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, original.ID, loaded.ID)
	assert.Equal(t, 45, *loaded.State.CollectedFields.Duration)
	assert.Equal(t, "who attends?", loaded.Interrupt.Question)
	assert.True(t, loaded.IsSuspended())
}

func TestSaverLoadMissing(t *testing.T) {
	saver, _ := newTestSaver(t)

	loaded, err := saver.Load(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSaverLastWriteWins(t *testing.T) {
	saver, _ := newTestSaver(t)
	ctx := context.Background()

	first := graph.NewCheckpoint("s1", model.NewBotState())
	first.SetInterrupt(model.NodeHumanMoreInfo, model.NewSeekMoreInfo("need info", "when?"))
	require.NoError(t, saver.Save(ctx, first))

	second := graph.NewCheckpoint("s1", model.NewBotState())
	require.NoError(t, saver.Save(ctx, second))

	loaded, err := saver.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, loaded.ID)
	assert.False(t, loaded.IsSuspended())
}

func TestSaverDelete(t *testing.T) {
	saver, _ := newTestSaver(t)
	ctx := context.Background()

	require.NoError(t, saver.Save(ctx, graph.NewCheckpoint("s1", model.NewBotState())))
	require.NoError(t, saver.Delete(ctx, "s1"))

	loaded, err := saver.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSaverKeyPrefix(t *testing.T) {
	saver, mr := newTestSaver(t, WithKeyPrefix("custom:"))
	ctx := context.Background()

	require.NoError(t, saver.Save(ctx, graph.NewCheckpoint("s1", model.NewBotState())))
	assert.True(t, mr.Exists("custom:s1"))
}

func TestSaverTTL(t *testing.T) {
	saver, mr := newTestSaver(t, WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, saver.Save(ctx, graph.NewCheckpoint("s1", model.NewBotState())))

	mr.FastForward(2 * time.Minute)

	loaded, err := saver.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, loaded, "checkpoint should expire after the TTL")
}

func TestSaverRejectsInvalidCheckpoint(t *testing.T) {
	saver, _ := newTestSaver(t)

	assert.Error(t, saver.Save(context.Background(), nil))
	assert.Error(t, saver.Save(context.Background(), &graph.Checkpoint{}))
}
