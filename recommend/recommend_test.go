package recommend

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recommendations.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeFile(t, `{
		"recommendations": [
			{"id": 1, "question": "환불은 어떻게 하나요?"},
			{"id": 2, "question": "배송 조회 방법 알려주세요"}
		]
	}`)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(got))
	}
	if got[0].ID != 1 || got[0].Question != "환불은 어떻게 하나요?" {
		t.Fatalf("unexpected first recommendation: %+v", got[0])
	}
}

func TestLoad_EmptyList(t *testing.T) {
	path := writeFile(t, `{"recommendations": []}`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no recommendations, got %d", len(got))
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing recommendations key", `{"items": []}`},
		{"missing question", `{"recommendations": [{"id": 1}]}`},
		{"empty question", `{"recommendations": [{"id": 1, "question": ""}]}`},
		{"non-integer id", `{"recommendations": [{"id": "one", "question": "q"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.content)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoad_BadJSON(t *testing.T) {
	_, err := Load(writeFile(t, "not json"))
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
