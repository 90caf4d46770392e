package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dkeye/Live/internal/app/chat"
	"google.golang.org/genai"
)

func TestBuildContentsHistoryRoles(t *testing.T) {
	got := BuildContents(chat.Prompt{
		Text: "and now?",
		History: []chat.Message{
			{Role: chat.RoleUser, Text: "hi"},
			{Role: chat.RoleAssistant, Text: "hello"},
			{Role: chat.RoleUser, Text: "   "},
		},
	})
	if len(got) != 3 {
		t.Fatalf("contents = %d, want 3", len(got))
	}
	if got[0].Role != "user" || got[1].Role != "model" || got[2].Role != "user" {
		t.Fatalf("roles = %s %s %s", got[0].Role, got[1].Role, got[2].Role)
	}
	if got[2].Parts[0].Text != "and now?" {
		t.Fatalf("question = %q", got[2].Parts[0].Text)
	}
}

func TestBuildContentsInlineImage(t *testing.T) {
	img := []byte{0x89, 'P', 'N', 'G'}
	got := BuildContents(chat.Prompt{
		Text:       "what is this",
		Attachment: &chat.Attachment{MIMEType: "image/png", Data: img},
	})
	parts := got[0].Parts
	if len(parts) != 2 || parts[0].Text != "what is this" {
		t.Fatalf("parts = %+v", parts)
	}
	if parts[1].InlineData == nil || parts[1].InlineData.MIMEType != "image/png" {
		t.Fatalf("inline data missing: %+v", parts[1])
	}
}

func TestBuildContentsTextAttachmentAndNotes(t *testing.T) {
	got := BuildContents(chat.Prompt{
		Text:       "summarize",
		Attachment: &chat.Attachment{MIMEType: "text/plain", Data: []byte("lecture notes")},
		Notes:      []string{"Note: something"},
	})
	parts := got[0].Parts
	if len(parts) != 1 {
		t.Fatalf("text attachment must be inlined, got %d parts", len(parts))
	}
	q := parts[0].Text
	if !strings.Contains(q, "lecture notes") || !strings.HasSuffix(q, "Note: something") {
		t.Fatalf("question = %q", q)
	}
}

func TestResponseText(t *testing.T) {
	if responseText(nil) != "" {
		t.Fatal("nil response must be empty")
	}
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{Text: "Hel"}, {Text: "lo"}}},
	}}}
	if got := responseText(resp); got != "Hello" {
		t.Fatalf("got %q", got)
	}
}

func TestBuildContentsFileOnlyHasInstruction(t *testing.T) {
	got := BuildContents(chat.Prompt{
		Attachment: &chat.Attachment{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}},
	})
	parts := got[len(got)-1].Parts
	if len(parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(parts))
	}
	if parts[0].Text != fileOnlyInstruction {
		t.Fatalf("question = %q", parts[0].Text)
	}
	b, err := json.Marshal(parts[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(b) == "{}" {
		t.Fatal("text part serialized empty")
	}
}
