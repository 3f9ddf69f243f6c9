package responders

import (
	"context"
	"fmt"
	"strings"

	"github.com/careline/careline/intent"
	"github.com/careline/careline/internal/cache"
	"github.com/careline/careline/kb"
)

const (
	// defaultTopK is the number of knowledge-base documents blended into
	// one answer.
	defaultTopK = 2

	// snippetRunes caps how much of each matched document is quoted.
	snippetRunes = 300

	noInfoMessage = "지식베이스에 관련 정보가 없습니다. 상담사 연결 또는 다른 요청을 시도해주세요."

	answerHeader = "다음 정보를 찾았습니다:\n"
	answerFooter = "\n\n질문에 대한 핵심 정보를 위에서 발췌했습니다. 추가 질문이 있다면 말씀해주세요."
)

// Retrieval answers general questions by quoting the most relevant
// knowledge-base documents, ranked by TF-IDF cosine similarity.
type Retrieval struct {
	index *kb.Index
	topK  int
	cache *cache.Memory[*Reply]
}

// RetrievalOption customises a Retrieval responder.
type RetrievalOption func(*Retrieval)

// WithTopK overrides the number of documents blended into an answer.
func WithTopK(k int) RetrievalOption {
	return func(r *Retrieval) {
		if k > 0 {
			r.topK = k
		}
	}
}

// WithCache enables memoization of replies by query text.
func WithCache(c *cache.Memory[*Reply]) RetrievalOption {
	return func(r *Retrieval) { r.cache = c }
}

// NewRetrieval builds the retrieval responder over a fitted index.
func NewRetrieval(index *kb.Index, opts ...RetrievalOption) *Retrieval {
	r := &Retrieval{index: index, topK: defaultTopK}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Retrieval) Name() string          { return "retrieval" }
func (r *Retrieval) Intent() intent.Intent { return intent.Rag }

func (r *Retrieval) Respond(_ context.Context, turn Turn) (*Reply, error) {
	if r.cache != nil {
		if reply, ok := r.cache.Get(turn.Text); ok {
			copied := *reply
			return &copied, nil
		}
	}

	hits := r.index.Retrieve(turn.Text, r.topK)
	reply := &Reply{Intent: intent.Rag, Guardrail: GuardrailPass}
	if len(hits) == 0 {
		reply.Text = noInfoMessage
	} else {
		lines := make([]string, 0, len(hits))
		for _, hit := range hits {
			lines = append(lines, fmt.Sprintf("- 관련도 %.2f: %s", hit.Score, snippet(hit.Doc.Text)))
			reply.RefURLs = append(reply.RefURLs, hit.Doc.Path)
		}
		reply.Text = answerHeader + strings.Join(lines, "\n") + answerFooter
	}

	if r.cache != nil {
		copied := *reply
		r.cache.Set(turn.Text, &copied)
	}
	return reply, nil
}

// snippet returns the first snippetRunes runes of text.
func snippet(text string) string {
	runes := []rune(text)
	if len(runes) > snippetRunes {
		return string(runes[:snippetRunes])
	}
	return text
}
