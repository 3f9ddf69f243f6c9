package responders

import (
	"context"
	"strings"
	"testing"

	"github.com/careline/careline/intent"
)

func TestEscalation_FlagsSensitiveIssues(t *testing.T) {
	r := NewEscalation()
	tests := []struct {
		name    string
		text    string
		flagged bool
	}{
		{"refund", "환불 처리가 안 되고 있어요", true},
		{"payment error", "결제 오류가 반복됩니다", true},
		{"locked account", "계정 잠김 상태를 풀어주세요", true},
		{"legal", "법적 대응을 검토 중입니다", true},
		{"plain request", "상담사와 이야기하고 싶어요", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := r.Respond(context.Background(), Turn{Text: tt.text})
			if err != nil {
				t.Fatalf("respond: %v", err)
			}
			if reply.Intent != intent.Human {
				t.Fatalf("unexpected intent: %s", reply.Intent)
			}
			if tt.flagged && !strings.HasPrefix(reply.Text, "민감/복잡 이슈로 판단되어") {
				t.Fatalf("expected escalation text, got %q", reply.Text)
			}
			if !tt.flagged && !strings.HasPrefix(reply.Text, "상담사 검토 대상은 아니지만") {
				t.Fatalf("expected neutral text, got %q", reply.Text)
			}
			if !strings.Contains(reply.Text, "- 고객 메시지 요약: '"+truncateRunes(tt.text, 120)+"' ...") {
				t.Fatalf("missing summary echo: %q", reply.Text)
			}
		})
	}
}

func TestEscalation_SummaryEchoCapped(t *testing.T) {
	long := strings.Repeat("환", 200)
	r := NewEscalation()
	reply, err := r.Respond(context.Background(), Turn{Text: long})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	wantEcho := strings.Repeat("환", 120)
	if !strings.Contains(reply.Text, "'"+wantEcho+"'") {
		t.Fatal("expected 120-rune echo")
	}
	if strings.Contains(reply.Text, strings.Repeat("환", 121)) {
		t.Fatal("echo exceeds 120 runes")
	}
}

func TestEscalation_CustomKeywords(t *testing.T) {
	r := NewEscalation("보상")
	if !r.Flagged("보상 문의드립니다") {
		t.Fatal("expected custom keyword to flag")
	}
	if r.Flagged("환불 문의드립니다") {
		t.Fatal("default keywords should be replaced by custom list")
	}
}
