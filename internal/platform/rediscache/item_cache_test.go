package rediscache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockItemStore struct {
	mock.Mock
}

func (m *mockItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *mockItemStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Item, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *mockItemStore) ListBySection(ctx context.Context, section int) ([]domain.Item, error) {
	args := m.Called(ctx, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *mockItemStore) CountBySection(ctx context.Context, section int) (int, error) {
	args := m.Called(ctx, section)
	return args.Int(0), args.Error(1)
}

// fakeClient is an in-memory Client with injectable failures.
type fakeClient struct {
	data     map[string]string
	getErr   error
	setErr   error
	setCalls int
	lastTTL  time.Duration
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: map[string]string{}}
}

func (f *fakeClient) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if f.getErr != nil {
		cmd.SetErr(f.getErr)
		return cmd
	}
	v, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)
	f.setCalls++
	f.lastTTL = expiration
	if f.setErr != nil {
		cmd.SetErr(f.setErr)
		return cmd
	}
	f.data[key] = string(value.([]byte))
	cmd.SetVal("OK")
	return cmd
}

func sectionItems() []domain.Item {
	return []domain.Item{
		{ID: uuid.New(), Spelling: "cat", Phonetic: "キャット", Gloss: "ねこ", Section: 4},
		{ID: uuid.New(), Spelling: "dog", Phonetic: "ドッグ", Gloss: "いぬ", Section: 4},
	}
}

func TestListBySection_MissThenHit(t *testing.T) {
	ctx := context.Background()
	items := sectionItems()
	next := &mockItemStore{}
	next.On("ListBySection", ctx, 4).Return(items, nil).Once()
	client := newFakeClient()

	cache := NewCachedItemStore(next, client, time.Minute, nil)

	first, err := cache.ListBySection(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, items, first)
	assert.Equal(t, 1, client.setCalls)
	assert.Equal(t, time.Minute, client.lastTTL)

	second, err := cache.ListBySection(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, items, second)

	n, err := cache.CountBySection(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	next.AssertExpectations(t)
}

func TestListBySection_RedisDown(t *testing.T) {
	ctx := context.Background()
	items := sectionItems()
	next := &mockItemStore{}
	next.On("ListBySection", ctx, 4).Return(items, nil).Twice()
	client := newFakeClient()
	client.getErr = errors.New("connection refused")
	client.setErr = errors.New("connection refused")

	cache := NewCachedItemStore(next, client, time.Minute, nil)

	for i := 0; i < 2; i++ {
		got, err := cache.ListBySection(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, items, got)
	}
	next.AssertExpectations(t)
}

func TestListBySection_MalformedEntry(t *testing.T) {
	ctx := context.Background()
	items := sectionItems()
	next := &mockItemStore{}
	next.On("ListBySection", ctx, 4).Return(items, nil).Once()
	client := newFakeClient()
	client.data[SectionKey(4)] = "{not json"

	got, err := NewCachedItemStore(next, client, time.Minute, nil).ListBySection(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	var cached []domain.Item
	require.NoError(t, json.Unmarshal([]byte(client.data[SectionKey(4)]), &cached))
	assert.Equal(t, items, cached)
}

func TestListBySection_EncodeFailure(t *testing.T) {
	ctx := context.Background()
	items := sectionItems()
	next := &mockItemStore{}
	next.On("ListBySection", ctx, 4).Return(items, nil).Once()
	client := newFakeClient()

	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cache := NewCachedItemStore(next, client, time.Minute, log)
	cache.encode = func(any) ([]byte, error) { return nil, errors.New("unsupported value") }

	got, err := cache.ListBySection(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, items, got)
	assert.Zero(t, client.setCalls)
	assert.Contains(t, logs.String(), `"msg":"section cache encode failed"`)
	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), "unsupported value")
}

func TestListBySection_StoreError(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("db down")
	next := &mockItemStore{}
	next.On("ListBySection", ctx, 4).Return(nil, storeErr)
	client := newFakeClient()

	_, err := NewCachedItemStore(next, client, time.Minute, nil).ListBySection(ctx, 4)
	assert.ErrorIs(t, err, storeErr)
	assert.Zero(t, client.setCalls)
}

func TestPassThroughLookups(t *testing.T) {
	ctx := context.Background()
	item := &domain.Item{ID: uuid.New(), Spelling: "sun", Gloss: "たいよう", Section: 1}
	next := &mockItemStore{}
	next.On("GetByID", ctx, item.ID).Return(item, nil)
	next.On("GetByIDs", ctx, []uuid.UUID{item.ID}).Return([]domain.Item{*item}, nil)

	cache := NewCachedItemStore(next, newFakeClient(), time.Minute, nil)

	got, err := cache.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item, got)

	list, err := cache.GetByIDs(ctx, []uuid.UUID{item.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	next.AssertExpectations(t)
}
