package transcript

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteWriter_WriteRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcripts.db")
	w, err := NewSQLiteWriter(path)
	if err != nil {
		t.Fatalf("new sqlite writer: %v", err)
	}
	t.Cleanup(func() {
		_ = w.Close()
	})

	now := time.Now().UTC()
	entries := []Entry{
		{
			SessionID: "sess-1",
			UserID:    "user-1",
			Role:      RoleUser,
			Intent:    "rag",
			Guardrail: "PASS",
			Content:   "환불 규정이 궁금합니다",
			CreatedAt: now.Add(-2 * time.Minute),
		},
		{
			SessionID: "sess-1",
			UserID:    "user-1",
			Role:      RoleAssistant,
			Intent:    "rag",
			Guardrail: "PASS",
			Content:   "다음 정보를 찾았습니다",
			CreatedAt: now.Add(-1 * time.Minute),
		},
		{
			SessionID: "sess-2",
			UserID:    "user-2",
			Role:      RoleUser,
			Intent:    "phone",
			Guardrail: "PASS",
			Content:   "전화로 연락해주세요",
			CreatedAt: now,
		},
	}

	for _, entry := range entries {
		if err := w.Write(context.Background(), entry); err != nil {
			t.Fatalf("write transcript entry: %v", err)
		}
	}

	got, err := w.Recent(context.Background(), "sess-1", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for sess-1, got %d", len(got))
	}
	if got[0].Role != RoleUser || got[1].Role != RoleAssistant {
		t.Fatalf("expected chronological order user then assistant, got %s then %s", got[0].Role, got[1].Role)
	}
	if got[0].Content != "환불 규정이 궁금합니다" {
		t.Fatalf("unexpected first content: %q", got[0].Content)
	}

	other, err := w.Recent(context.Background(), "sess-2", 10)
	if err != nil {
		t.Fatalf("recent sess-2: %v", err)
	}
	if len(other) != 1 || other[0].Intent != "phone" {
		t.Fatalf("unexpected sess-2 entries: %+v", other)
	}
}

func TestSQLiteWriter_RecentLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcripts.db")
	w, err := NewSQLiteWriter(path)
	if err != nil {
		t.Fatalf("new sqlite writer: %v", err)
	}
	t.Cleanup(func() {
		_ = w.Close()
	})

	for i := 0; i < 5; i++ {
		entry := Entry{SessionID: "sess", Role: RoleUser, Content: string(rune('a' + i))}
		if err := w.Write(context.Background(), entry); err != nil {
			t.Fatalf("write entry %d: %v", i, err)
		}
	}

	got, err := w.Recent(context.Background(), "sess", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	// Limit keeps the newest entries, still returned oldest first.
	if got[0].Content != "d" || got[1].Content != "e" {
		t.Fatalf("expected newest two in order, got %q then %q", got[0].Content, got[1].Content)
	}
}

func TestPostgresWriterContract(t *testing.T) {
	dsn := os.Getenv("CARELINE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set CARELINE_TEST_POSTGRES_DSN to run Postgres transcript integration tests")
	}

	w, err := NewPostgresWriter(dsn)
	if err != nil {
		t.Fatalf("new postgres writer: %v", err)
	}
	t.Cleanup(func() {
		_, _ = w.db.Exec("DELETE FROM transcripts")
		_ = w.Close()
	})

	_, _ = w.db.Exec("DELETE FROM transcripts")

	entry := Entry{
		SessionID: "pg-sess",
		UserID:    "pg-user",
		Role:      RoleAssistant,
		Intent:    "app",
		Guardrail: "PASS",
		Content:   "앱에서 바로 진행할 수 있는 버튼을 생성했습니다.",
		CreatedAt: time.Now().UTC(),
	}
	if err := w.Write(context.Background(), entry); err != nil {
		t.Fatalf("write postgres transcript: %v", err)
	}

	got, err := w.Recent(context.Background(), "pg-sess", 10)
	if err != nil {
		t.Fatalf("recent postgres: %v", err)
	}
	if len(got) != 1 || got[0].Role != RoleAssistant {
		t.Fatalf("unexpected postgres entries: %+v", got)
	}
}
