package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNotifierPublishPost(t *testing.T) {
	t.Parallel()

	var path, chatID, text string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = r.ParseForm()
		chatID = r.PostForm.Get("chat_id")
		text = r.PostForm.Get("text")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	n := NewNotifier("token", "-100").WithAPIBase(server.URL, server.Client())
	if err := n.PublishPost(context.Background(), "Heute vor 5 Jahren:\n\nx"); err != nil {
		t.Fatalf("PublishPost error: %v", err)
	}

	if path != "/bottoken/sendMessage" {
		t.Fatalf("unexpected path: %s", path)
	}
	if chatID != "-100" || text != "Heute vor 5 Jahren:\n\nx" {
		t.Fatalf("unexpected form: chat_id=%q text=%q", chatID, text)
	}
}

func TestNotifierMisconfigured(t *testing.T) {
	t.Parallel()

	if err := NewNotifier("", "").PublishPost(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
}
