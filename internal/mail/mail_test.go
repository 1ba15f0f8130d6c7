package mail

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestWelcomeMessage(t *testing.T) {
	msg, err := WelcomeMessage("ana@example.com", WelcomeData{
		Name:      "Ana <Gómez>",
		Documento: 1001,
		Password:  "1001",
		LoginURL:  "http://localhost/login",
	})
	if err != nil {
		t.Fatalf("WelcomeMessage failed: %v", err)
	}

	if msg.To != "ana@example.com" {
		t.Errorf("Expected recipient ana@example.com, got %s", msg.To)
	}
	if !strings.Contains(msg.HTML, "1001") {
		t.Error("Expected document id in body")
	}
	if !strings.Contains(msg.HTML, "http://localhost/login") {
		t.Error("Expected login link in body")
	}
	if strings.Contains(msg.HTML, "<Gómez>") {
		t.Error("Expected name to be HTML-escaped")
	}
}

func TestLogSender(t *testing.T) {
	s := NewLogSender(zerolog.Nop())
	if err := s.Send(context.Background(), &Message{To: "a@example.com", Subject: "hi"}); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}
