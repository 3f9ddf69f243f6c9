package styler

import (
	"context"
	"testing"

	"github.com/careline/careline/plugin"
	"github.com/careline/careline/responders"
)

func newPlugin(t *testing.T, config map[string]interface{}) plugin.Plugin {
	t.Helper()
	f, ok := plugin.GetFactory("styler")
	if !ok {
		t.Fatal("styler factory not registered")
	}
	p := f()
	if err := p.Init(config); err != nil {
		t.Fatalf("init: %v", err)
	}
	return p
}

func TestStyler_WrapsReply(t *testing.T) {
	p := newPlugin(t, nil)
	pctx := plugin.NewContext(&responders.Turn{})
	pctx.Reply = &responders.Reply{Text: "배송은 내일 도착합니다."}
	if err := p.Execute(context.Background(), pctx); err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := Greeting + "\n배송은 내일 도착합니다.\n\n" + Closing
	if pctx.Reply.FinalText != want {
		t.Fatalf("FinalText = %q, want %q", pctx.Reply.FinalText, want)
	}
}

func TestStyler_EmptyTextBecomesApology(t *testing.T) {
	p := newPlugin(t, nil)
	pctx := plugin.NewContext(&responders.Turn{})
	pctx.Reply = &responders.Reply{}
	if err := p.Execute(context.Background(), pctx); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if pctx.Reply.FinalText != Apology {
		t.Fatalf("FinalText = %q, want apology", pctx.Reply.FinalText)
	}
}

func TestStyler_HonorsApplyStyleMetadata(t *testing.T) {
	p := newPlugin(t, nil)
	pctx := plugin.NewContext(&responders.Turn{})
	pctx.Reply = &responders.Reply{Text: "raw"}
	pctx.Metadata[MetadataApplyStyle] = false
	if err := p.Execute(context.Background(), pctx); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if pctx.Reply.FinalText != "raw" {
		t.Fatalf("expected untouched text, got %q", pctx.Reply.FinalText)
	}
}

func TestStyler_CustomFragments(t *testing.T) {
	p := newPlugin(t, map[string]interface{}{
		"greeting": "반갑습니다.",
		"closing":  "좋은 하루 되세요.",
	})
	pctx := plugin.NewContext(&responders.Turn{})
	pctx.Reply = &responders.Reply{Text: "답변"}
	if err := p.Execute(context.Background(), pctx); err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := "반갑습니다.\n답변\n\n좋은 하루 되세요."
	if pctx.Reply.FinalText != want {
		t.Fatalf("FinalText = %q, want %q", pctx.Reply.FinalText, want)
	}
}

func TestStyler_NilReply(t *testing.T) {
	p := newPlugin(t, nil)
	pctx := plugin.NewContext(&responders.Turn{})
	if err := p.Execute(context.Background(), pctx); err != nil {
		t.Fatalf("execute with nil reply: %v", err)
	}
}
