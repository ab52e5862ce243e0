package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const atomFixture = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xml:lang="de">
  <title>Wikipedia – Was geschah am?</title>
  <entry>
    <id>https://de.wikipedia.org/wiki/Wikipedia:Hauptseite/Jahrestage/Oktober/18</id>
    <title>Was geschah am 18. Oktober?</title>
    <link rel="alternate" type="text/html" href="https://de.wikipedia.org/wiki/Wikipedia:Hauptseite/Jahrestage/Oktober/18"/>
    <updated>2026-10-18T00:00:00Z</updated>
    <summary type="html">&lt;ul&gt;&lt;li&gt;1867: gestern&lt;/li&gt;&lt;/ul&gt;</summary>
  </entry>
  <entry>
    <id>https://de.wikipedia.org/wiki/Wikipedia:Hauptseite/Jahrestage/Oktober/19</id>
    <title>Was geschah am 19. Oktober?</title>
    <link rel="alternate" type="text/html" href="https://de.wikipedia.org/wiki/Wikipedia:Hauptseite/Jahrestage/Oktober/19"/>
    <updated>2026-10-19T00:00:00Z</updated>
    <summary type="html">&lt;ul&gt;&lt;li&gt;1781: heute&lt;/li&gt;&lt;/ul&gt;</summary>
  </entry>
</feed>`

func TestSourceFetch(t *testing.T) {
	t.Parallel()

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(atomFixture))
	}))
	defer server.Close()

	src := NewSource(server.URL, "TootBot/1.0", server.Client(), nil)
	items, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if gotUA != "TootBot/1.0" {
		t.Fatalf("unexpected user agent: %q", gotUA)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[1].Updated != "2026-10-19T00:00:00Z" {
		t.Fatalf("unexpected updated: %q", items[1].Updated)
	}
	if !strings.Contains(items[1].Summary, "<li>1781: heute</li>") {
		t.Fatalf("unexpected summary: %q", items[1].Summary)
	}
	if items[1].Title != "Was geschah am 19. Oktober?" {
		t.Fatalf("unexpected title: %q", items[1].Title)
	}
}

func TestSourceFetchStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := NewSource(server.URL, "", server.Client(), nil).Fetch(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
