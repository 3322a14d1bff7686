package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"propchat/internal/model"
)

func TestSessionManagerMintsAndReuses(t *testing.T) {
	manager := NewSessionManager(50)

	created := manager.GetOrCreate("")
	_, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	require.Equal(t, 1, manager.Count())

	same := manager.GetOrCreate(created.ID)
	require.Same(t, created, same)
	require.Equal(t, 1, manager.Count())

	// An unknown ID gets a fresh session, not the caller's ID.
	minted := manager.GetOrCreate("no-such-session")
	require.NotEqual(t, "no-such-session", minted.ID)
	require.Equal(t, 2, manager.Count())
}

func TestSessionTurnLifecycle(t *testing.T) {
	session := newSession()

	prior := session.BeginTurn()
	require.Nil(t, prior)

	filter := &model.EffectiveFilter{City: strPtr("Pune")}
	result := Apply(filter, testRecords())
	session.CompleteTurn("homes in Pune", filter, result, false, 50)
	require.Same(t, result, session.LastResult())
	session.EndTurn()

	require.Same(t, filter, session.Filter())

	snapshot := session.Snapshot()
	require.Equal(t, session.ID, snapshot.SessionID)
	require.Equal(t, *filter, snapshot.Filter)
	require.Equal(t, result.Count, snapshot.MatchCount)
	require.Len(t, snapshot.Turns, 1)
	require.Equal(t, "homes in Pune", snapshot.Turns[0].Utterance)
	require.False(t, snapshot.Turns[0].ParseFailed)
}

func TestSessionNextTurnSeesPreviousFilter(t *testing.T) {
	session := newSession()

	filter := &model.EffectiveFilter{City: strPtr("Pune")}
	prior := session.BeginTurn()
	require.Nil(t, prior)
	session.CompleteTurn("homes in Pune", filter, Apply(filter, nil), false, 50)
	session.EndTurn()

	prior = session.BeginTurn()
	defer session.EndTurn()
	require.Same(t, filter, prior)
}

func TestSessionHistoryCapped(t *testing.T) {
	session := newSession()

	for i := 1; i <= 5; i++ {
		filter := &model.EffectiveFilter{}
		session.BeginTurn()
		session.CompleteTurn(fmt.Sprintf("turn %d", i), filter, Apply(filter, nil), false, 3)
		session.EndTurn()
	}

	snapshot := session.Snapshot()
	require.Len(t, snapshot.Turns, 3)
	require.Equal(t, "turn 3", snapshot.Turns[0].Utterance)
	require.Equal(t, "turn 5", snapshot.Turns[2].Utterance)
}

func TestSessionReset(t *testing.T) {
	session := newSession()

	filter := &model.EffectiveFilter{City: strPtr("Pune")}
	session.BeginTurn()
	session.CompleteTurn("homes in Pune", filter, Apply(filter, testRecords()), false, 50)
	session.EndTurn()

	session.Reset()

	require.Nil(t, session.Filter())
	snapshot := session.Snapshot()
	require.Empty(t, snapshot.Turns)
	require.Zero(t, snapshot.MatchCount)
}

func TestSessionManagerDelete(t *testing.T) {
	manager := NewSessionManager(50)
	session := manager.GetOrCreate("")

	require.True(t, manager.Delete(session.ID))
	require.False(t, manager.Delete(session.ID))
	require.Nil(t, manager.Get(session.ID))
	require.Zero(t, manager.Count())
}

func TestSessionTurnsSerialize(t *testing.T) {
	session := newSession()

	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			session.BeginTurn()
			defer session.EndTurn()
			order = append(order, n)
		}(i)
	}
	wg.Wait()

	// The lock serializes the appends, so none may be lost.
	require.Len(t, order, 8)
}
