package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"superapp-api/models"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingKV counts writes per key on top of a MemoryKV.
type recordingKV struct {
	*MemoryKV
	mu     sync.Mutex
	writes map[string]int
}

func newRecordingKV() *recordingKV {
	return &recordingKV{MemoryKV: NewMemoryKV(), writes: map[string]int{}}
}

func (r *recordingKV) Put(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	r.writes[key]++
	r.mu.Unlock()
	return r.MemoryKV.Put(ctx, key, value)
}

func (r *recordingKV) count(key Collection) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes[string(key)]
}

func TestLoadSeedsDefaultsAndWritesThemBack(t *testing.T) {
	ctx := context.Background()
	kv := newRecordingKV()

	snap, err := Load(ctx, kv)
	require.NoError(t, err)

	assert.Len(t, snap.Users, 3)
	assert.Len(t, snap.Products, 2)
	assert.Empty(t, snap.Orders)
	assert.Nil(t, snap.Session)

	assert.Equal(t, 1, kv.count(CollectionUsers))
	assert.Equal(t, 1, kv.count(CollectionProducts))
	assert.Equal(t, 0, kv.count(CollectionOrders))

	raw, ok, err := kv.Get(ctx, string(CollectionUsers))
	require.NoError(t, err)
	require.True(t, ok)
	var users []models.User
	require.NoError(t, json.Unmarshal(raw, &users))
	assert.Equal(t, "admin-001", users[0].UID)
}

func TestLoadKeepsPersistedValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, string(CollectionUsers), []byte(`[{"uid":"u1","name":"Ana","email":"ana@x.com","password":"p","role":"customer"}]`)))
	require.NoError(t, kv.Put(ctx, string(CollectionSession), []byte(`{"uid":"u1","name":"Ana","email":"ana@x.com","role":"customer"}`)))

	snap, err := Load(ctx, kv)
	require.NoError(t, err)
	require.Len(t, snap.Users, 1)
	assert.Equal(t, "Ana", snap.Users[0].Name)
	require.NotNil(t, snap.Session)
	assert.Equal(t, "u1", snap.Session.UID)
}

func TestLoadRejectsCorruptSlot(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Put(ctx, string(CollectionOrders), []byte(`{"not":"a list"}`)))

	_, err := Load(ctx, kv)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptSlot)
	assert.Contains(t, err.Error(), string(CollectionOrders))

	raw, _, _ := kv.Get(ctx, string(CollectionOrders))
	assert.JSONEq(t, `{"not":"a list"}`, string(raw))
}

func TestUpdatePersistsOnlyChangedCollections(t *testing.T) {
	ctx := context.Background()
	kv := newRecordingKV()
	log, _ := logtest.NewNullLogger()

	s, err := Open(ctx, kv, log)
	require.NoError(t, err)
	usersBefore := kv.count(CollectionUsers)
	productsBefore := kv.count(CollectionProducts)

	err = s.Update(ctx, func(tx *Tx) error {
		tx.PrependOrder(models.Order{ID: "ORD-1", Status: models.StatusPending})
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1, kv.count(CollectionOrders))
	assert.Equal(t, usersBefore, kv.count(CollectionUsers))
	assert.Equal(t, productsBefore, kv.count(CollectionProducts))

	reloaded, err := Load(ctx, kv)
	require.NoError(t, err)
	require.Len(t, reloaded.Orders, 1)
	assert.Equal(t, "ORD-1", reloaded.Orders[0].ID)
}

func TestFailedUpdateLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	s := New(Snapshot{Users: DefaultUsers()})
	notified := 0
	s.Subscribe(SubscriberFunc(func(context.Context, Change) { notified++ }))

	boom := errors.New("boom")
	err := s.Update(ctx, func(tx *Tx) error {
		tx.AppendUser(models.User{UID: "x"})
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, s.Snapshot().Users, 3)
	assert.Zero(t, notified)
}

func TestNoopUpdateDoesNotNotify(t *testing.T) {
	s := New(Snapshot{})
	notified := 0
	s.Subscribe(SubscriberFunc(func(context.Context, Change) { notified++ }))
	require.NoError(t, s.Update(context.Background(), func(tx *Tx) error { return nil }))
	assert.Zero(t, notified)
}

func TestPrependOrderKeepsMostRecentFirst(t *testing.T) {
	s := New(Snapshot{})
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		id := id
		require.NoError(t, s.Update(ctx, func(tx *Tx) error {
			tx.PrependOrder(models.Order{ID: id})
			return nil
		}))
	}
	orders := s.Snapshot().Orders
	require.Len(t, orders, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{orders[0].ID, orders[1].ID, orders[2].ID})
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(Snapshot{Users: DefaultUsers()})
	snap := s.Snapshot()
	snap.Users[0].Name = "changed"
	assert.Equal(t, "Ivan Admin", s.Snapshot().Users[0].Name)
}

func TestSessionClearDeletesSlot(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s, err := Open(ctx, kv, logrus.New())
	require.NoError(t, err)

	u := DefaultUsers()[1]
	require.NoError(t, s.Update(ctx, func(tx *Tx) error { tx.SetSession(&u); return nil }))
	_, ok, _ := kv.Get(ctx, string(CollectionSession))
	assert.True(t, ok)

	require.NoError(t, s.Update(ctx, func(tx *Tx) error { tx.SetSession(nil); return nil }))
	_, ok, _ = kv.Get(ctx, string(CollectionSession))
	assert.False(t, ok)
}

func TestResetDropsAllSlots(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_, err := Load(ctx, kv)
	require.NoError(t, err)
	require.NoError(t, Reset(ctx, kv))
	for _, c := range AllCollections {
		_, ok, err := kv.Get(ctx, string(c))
		require.NoError(t, err)
		assert.False(t, ok, c)
	}
}
