package responders

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/careline/careline/intent"
	"github.com/careline/careline/internal/cache"
	"github.com/careline/careline/kb"
)

func newTestIndex() *kb.Index {
	return kb.NewIndex([]kb.Document{
		{Path: "kb/refund.txt", Text: "환불 정책 안내 환불 요청은 결제 후 7일 이내 가능합니다"},
		{Path: "kb/shipping.txt", Text: "배송 조회 안내 배송 상태는 주문 내역에서 확인할 수 있습니다"},
		{Path: "kb/account.txt", Text: "계정 관리 안내 비밀번호 변경은 설정 메뉴에서 가능합니다"},
	})
}

func TestRetrieval_AnswersWithTopDocuments(t *testing.T) {
	r := NewRetrieval(newTestIndex())
	reply, err := r.Respond(context.Background(), Turn{Text: "환불 요청 방법 알려주세요"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply.Intent != intent.Rag {
		t.Fatalf("unexpected intent: %s", reply.Intent)
	}
	if reply.Guardrail != GuardrailPass {
		t.Fatalf("unexpected guardrail: %s", reply.Guardrail)
	}
	if !strings.HasPrefix(reply.Text, "다음 정보를 찾았습니다:\n") {
		t.Fatalf("missing answer header: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "환불 정책 안내") {
		t.Fatalf("expected refund document quoted: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "관련도 ") {
		t.Fatalf("expected relevance score line: %q", reply.Text)
	}
	if len(reply.RefURLs) == 0 || reply.RefURLs[0] != "kb/refund.txt" {
		t.Fatalf("expected refund doc as top reference, got %v", reply.RefURLs)
	}
	// Default blends two documents into the answer.
	if got := strings.Count(reply.Text, "- 관련도"); got != 2 {
		t.Fatalf("expected 2 snippet lines, got %d", got)
	}
}

func TestRetrieval_EmptyCorpus(t *testing.T) {
	r := NewRetrieval(kb.NewIndex(nil))
	reply, err := r.Respond(context.Background(), Turn{Text: "아무거나"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply.Text != noInfoMessage {
		t.Fatalf("expected no-info message, got %q", reply.Text)
	}
	if len(reply.RefURLs) != 0 {
		t.Fatalf("expected no references, got %v", reply.RefURLs)
	}
}

func TestRetrieval_SnippetCapped(t *testing.T) {
	long := strings.Repeat("환불 ", 400)
	r := NewRetrieval(kb.NewIndex([]kb.Document{{Path: "kb/long.txt", Text: long}}), WithTopK(1))
	reply, err := r.Respond(context.Background(), Turn{Text: "환불"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	lines := strings.Split(reply.Text, "\n")
	var snippetLine string
	for _, line := range lines {
		if strings.HasPrefix(line, "- 관련도") {
			snippetLine = line
		}
	}
	if snippetLine == "" {
		t.Fatal("missing snippet line")
	}
	// The quoted portion is at most 300 runes.
	quoted := snippetLine[strings.Index(snippetLine, ": ")+2:]
	if n := len([]rune(quoted)); n > 300 {
		t.Fatalf("snippet too long: %d runes", n)
	}
}

func TestRetrieval_CacheReturnsSameAnswer(t *testing.T) {
	c := cache.NewMemory[*Reply](8, time.Minute)
	r := NewRetrieval(newTestIndex(), WithCache(c))

	first, err := r.Respond(context.Background(), Turn{Text: "배송 상태 확인"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	second, err := r.Respond(context.Background(), Turn{Text: "배송 상태 확인"})
	if err != nil {
		t.Fatalf("respond cached: %v", err)
	}
	if first.Text != second.Text {
		t.Fatalf("cached answer differs:\n%q\n%q", first.Text, second.Text)
	}
	// Cached replies are copies so downstream mutation is isolated.
	second.FinalText = "styled"
	third, _ := r.Respond(context.Background(), Turn{Text: "배송 상태 확인"})
	if third.FinalText != "" {
		t.Fatal("cache entry mutated by caller")
	}
}
