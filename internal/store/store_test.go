package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{kvTable, eventsTable} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestSchemaMatchesQueriedColumns(t *testing.T) {
	s := openTestStore(t)

	columns := func(table string) []string {
		rows, err := s.DB().Query("SELECT name FROM pragma_table_info(?) ORDER BY cid", table)
		require.NoError(t, err)
		defer rows.Close()
		var names []string
		for rows.Next() {
			var n string
			require.NoError(t, rows.Scan(&n))
			names = append(names, n)
		}
		require.NoError(t, rows.Err())
		return names
	}

	assert.Equal(t, eventColumns, columns(eventsTable))
	assert.Equal(t, []string{"key", "value", "updated_at"}, columns(kvTable))

	var idx string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='llm_request_events_purpose'",
	).Scan(&idx)
	assert.NoError(t, err, "purpose index must exist")
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.KV().Set(context.Background(), "k", "v"))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.KV().Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

// testKV runs the KV contract against an implementation.
func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok, "absent key must report ok=false")

	require.NoError(t, kv.Set(ctx, "greeting", "hello"))
	v, ok, err := kv.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	require.NoError(t, kv.Set(ctx, "greeting", `{"replaced":true}`))
	v, _, err = kv.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, `{"replaced":true}`, v)

	require.NoError(t, kv.Set(ctx, "empty", ""))
	v, ok, err = kv.Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, ok, "empty value is still present")
	assert.Equal(t, "", v)

	require.NoError(t, kv.Remove(ctx, "greeting"))
	_, ok, err = kv.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, kv.Remove(ctx, "never-set"), "removing an absent key is not an error")
}

func TestSQLiteKV(t *testing.T) {
	testKV(t, openTestStore(t).KV())
}

func TestMemoryKV(t *testing.T) {
	testKV(t, NewMemoryKV())
}

func TestRedisKV(t *testing.T) {
	url := os.Getenv("STUDYBUDDY_TEST_REDIS_URL")
	if url == "" {
		t.Skip("STUDYBUDDY_TEST_REDIS_URL not set")
	}

	client, err := OpenRedis(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	prefix := DefaultRedisPrefix + "test:" + t.Name() + ":"
	kv := NewRedisKV(client, prefix)
	t.Cleanup(func() {
		ctx := context.Background()
		for _, k := range []string{"greeting", "empty", "missing", "never-set"} {
			_ = kv.Remove(ctx, k)
		}
	})
	testKV(t, kv)
}

func TestOpenRedisBadURL(t *testing.T) {
	_, err := OpenRedis(context.Background(), "not-a-redis-url")
	assert.Error(t, err)
}

func TestLLMEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "quiz", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "req-1", ResponseBody: "resp-1"},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "study-plan", InputTokens: 300, OutputTokens: 500, LatencyMs: 900, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "quiz", LatencyMs: 100, Success: false, ErrorMessage: "rate limit"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "rate limit", all[0].ErrorMessage, "newest first")
	assert.False(t, all[0].Success)
	assert.False(t, all[0].Timestamp.IsZero())

	quiz, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz", Limit: 1})
	require.NoError(t, err)
	require.Len(t, quiz, 1)
	assert.Equal(t, "quiz", quiz[0].Purpose)

	first := all[2]
	got, err := repo.GetLLMEvent(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "req-1", got.RequestBody)
	assert.Equal(t, "resp-1", got.ResponseBody)
	assert.True(t, got.Success)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "gemini", Model: "m1", Purpose: "quiz", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "gemini", Model: "m1", Purpose: "quiz", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "openai", Model: "m2", Purpose: "tip", InputTokens: 5, OutputTokens: 5, LatencyMs: 50, Success: false}))

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{Purpose: "quiz", Calls: 2, InputTokens: 40, OutputTokens: 60, AvgLatencyMs: 200}, byPurpose[0])
	assert.Equal(t, "tip", byPurpose[1].Purpose)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1, "failed calls are excluded from model usage")
	assert.Equal(t, ModelUsage{Model: "m1", Calls: 2, InputTokens: 40, OutputTokens: 60}, byModel[0])
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("STUDYBUDDY_DB", want)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.DirExists(t, filepath.Dir(want))
}

func TestDefaultDBPathXDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("STUDYBUDDY_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "studybuddy", "studybuddy.db"), got)
}
