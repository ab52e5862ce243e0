package onthisday

import (
	"errors"
	"reflect"
	"testing"

	"TootBot/internal/domain"
)

const summaryFixture = `
<ul>
  <li><a href="/wiki/Datei:Lunar_Orbiter.jpg" class="image"><img alt="Lunar Orbiter" src="//upload.wikimedia.org/lo/100px.jpg" srcset="//upload.wikimedia.org/lo/150px.jpg 1.5x, //upload.wikimedia.org/lo/200px.jpg 2x" /></a><a href="/wiki/1966" title="1966">1966</a>: <a href="/wiki/Lunar_Orbiter_2">Lunar Orbiter 2</a> startet zum Mond.</li>
  <li><a href="/wiki/1781" title="1781">1781</a>: Kapitulation bei <a href="/wiki/Belagerung_von_Yorktown">Yorktown</a>.</li>
  <li>1989: Die <a href="/wiki/SED">SED</a> wählt ihren Vorsitzenden in <a href="/wiki/1989">einem Jahr</a> neu.</li>
</ul>`

func TestParseExtractsEntries(t *testing.T) {
	t.Parallel()

	entries, err := NewParser("").Parse(summaryFixture)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Year != 1966 {
		t.Fatalf("unexpected year: %d", first.Year)
	}
	if first.Text != "1966: Lunar Orbiter 2 startet zum Mond." {
		t.Fatalf("unexpected text: %q", first.Text)
	}
	if first.YearLink != "https://de.wikipedia.org/wiki/1966" {
		t.Fatalf("unexpected year link: %q", first.YearLink)
	}
	if !reflect.DeepEqual(first.Links, []string{"https://de.wikipedia.org/wiki/Lunar_Orbiter_2"}) {
		t.Fatalf("unexpected links: %v", first.Links)
	}
	if first.Image == nil {
		t.Fatal("expected image")
	}
	if first.Image.URL != "https://upload.wikimedia.org/lo/200px.jpg" {
		t.Fatalf("unexpected image url: %s", first.Image.URL)
	}
	if first.Image.AltText != "Lunar Orbiter" {
		t.Fatalf("unexpected alt text: %s", first.Image.AltText)
	}

	second := entries[1]
	if second.Year != 1781 || second.YearLink != "https://de.wikipedia.org/wiki/1781" {
		t.Fatalf("unexpected second entry: %+v", second)
	}
	if second.Image != nil {
		t.Fatalf("expected no image, got %+v", second.Image)
	}
}

func TestParseYearLinkOnlyBeforeRegularLinks(t *testing.T) {
	t.Parallel()

	entries, err := NewParser("").Parse(summaryFixture)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	third := entries[2]
	if third.YearLink != "" {
		t.Fatalf("expected no year link, got %q", third.YearLink)
	}
	want := []string{
		"https://de.wikipedia.org/wiki/SED",
		"https://de.wikipedia.org/wiki/1989",
	}
	if !reflect.DeepEqual(third.Links, want) {
		t.Fatalf("unexpected links: %v", third.Links)
	}
}

func TestParseKeepsFirstImageOnly(t *testing.T) {
	t.Parallel()

	html := `<ul><li>2001: <a href="/wiki/Datei:A.jpg"><img src="//x/a.jpg" alt="A"/></a> und <a href="/wiki/Datei:B.jpg"><img src="//x/b.jpg" srcset="//x/b2.jpg 2x" alt="B"/></a> <a href="/wiki/Foo">Foo</a></li></ul>`

	entries, err := NewParser("https://de.wikipedia.org/").Parse(html)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	entry := entries[0]
	if entry.Image == nil || entry.Image.URL != "https://x/a.jpg" || entry.Image.AltText != "A" {
		t.Fatalf("unexpected image: %+v", entry.Image)
	}
	if !reflect.DeepEqual(entry.Links, []string{"https://de.wikipedia.org/wiki/Foo"}) {
		t.Fatalf("image links leaked into links: %v", entry.Links)
	}
}

func TestParseMalformedEntry(t *testing.T) {
	t.Parallel()

	html := `<ul><li>1900: ok</li><li>Im Jahr 1900 passierte etwas.</li></ul>`

	entries, err := NewParser("").Parse(html)
	if err == nil {
		t.Fatalf("expected error, got entries %+v", entries)
	}
	if !errors.Is(err, domain.ErrMalformedEntry) {
		t.Fatalf("expected ErrMalformedEntry, got %v", err)
	}
	var malformed *domain.MalformedEntryError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedEntryError, got %T", err)
	}
	if malformed.Text != "Im Jahr 1900 passierte etwas." {
		t.Fatalf("unexpected text in error: %q", malformed.Text)
	}
	if entries != nil {
		t.Fatalf("expected no entries on failure, got %d", len(entries))
	}
}

func TestParseMalformedSrcset(t *testing.T) {
	t.Parallel()

	html := `<ul><li>1900: <a href="/wiki/Datei:A.jpg"><img src="a.jpg" srcset="b.jpg 2y"/></a></li></ul>`

	if _, err := NewParser("").Parse(html); !errors.Is(err, domain.ErrMalformedSrcset) {
		t.Fatalf("expected ErrMalformedSrcset, got %v", err)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	t.Parallel()

	p := NewParser("")
	first, err := p.Parse(summaryFixture)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := p.Parse(summaryFixture)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parses differ:\n%+v\n%+v", first, second)
	}
}

func TestParseYearIsExact(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		html string
		want int
	}{
		{`<ul><li>0: Jahr null</li></ul>`, 0},
		{`<ul><li>44 v. Chr.: Caesar</li></ul>`, 44},
		{`<ul><li>2024abc</li></ul>`, 2024},
	} {
		entries, err := NewParser("").Parse(tc.html)
		if err != nil {
			t.Fatalf("%s: %v", tc.html, err)
		}
		if entries[0].Year != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.html, tc.want, entries[0].Year)
		}
	}
}
