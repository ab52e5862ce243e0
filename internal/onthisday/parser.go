package onthisday

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"TootBot/internal/domain"
)

// DefaultOrigin prefixes the site-relative links of the feed.
const DefaultOrigin = "https://de.wikipedia.org"

var (
	leadingYear = regexp.MustCompile(`^\d+`)
	yearHref    = regexp.MustCompile(`^/wiki/\d+$`)
)

// Parser turns the HTML summary of a feed item into entries.
type Parser struct {
	origin string
}

// NewParser builds a parser resolving relative links against origin.
func NewParser(origin string) *Parser {
	if origin == "" {
		origin = DefaultOrigin
	}
	return &Parser{origin: strings.TrimSuffix(origin, "/")}
}

// Parse returns one entry per <li> of summary, in document order. Any
// malformed list item fails the whole summary.
func (p *Parser) Parse(summary string) ([]domain.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(summary))
	if err != nil {
		return nil, fmt.Errorf("parse summary: %w", err)
	}

	var (
		entries  []domain.Entry
		parseErr error
	)
	doc.Find("li").EachWithBreak(func(i int, li *goquery.Selection) bool {
		entry, err := p.parseItem(li)
		if err != nil {
			parseErr = fmt.Errorf("list item %d: %w", i, err)
			return false
		}
		entries = append(entries, entry)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return entries, nil
}

func (p *Parser) parseItem(li *goquery.Selection) (domain.Entry, error) {
	entry := domain.Entry{Text: li.Text()}

	digits := leadingYear.FindString(entry.Text)
	if digits == "" {
		return domain.Entry{}, &domain.MalformedEntryError{Text: entry.Text}
	}
	year, err := strconv.Atoi(digits)
	if err != nil {
		return domain.Entry{}, &domain.MalformedEntryError{Text: entry.Text}
	}
	entry.Year = year

	var (
		regularLinkSeen bool
		anchorErr       error
	)
	li.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if img := a.Find("img").First(); img.Length() > 0 {
			if entry.Image != nil {
				return true
			}
			entry.Image, anchorErr = pickImage(img)
			return anchorErr == nil
		}

		href, ok := a.Attr("href")
		if !ok {
			return true
		}
		fullURL := p.resolve(href)

		if !regularLinkSeen && yearHref.MatchString(href) {
			entry.YearLink = fullURL
			return true
		}

		entry.Links = append(entry.Links, fullURL)
		regularLinkSeen = true
		return true
	})
	if anchorErr != nil {
		return domain.Entry{}, anchorErr
	}

	return entry, nil
}

func (p *Parser) resolve(href string) string {
	switch {
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	default:
		return p.origin + href
	}
}

func pickImage(img *goquery.Selection) (*domain.Image, error) {
	var candidates []Candidate
	if src, ok := img.Attr("src"); ok && src != "" {
		candidates = append(candidates, Candidate{URL: src, Scale: 1})
	}
	if srcset, ok := img.Attr("srcset"); ok {
		parsed, err := ParseSrcset(srcset)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, parsed...)
	}

	best, ok := Largest(candidates)
	if !ok {
		return nil, nil
	}

	url := best.URL
	if strings.HasPrefix(url, "//") {
		url = "https:" + url
	}
	alt, _ := img.Attr("alt")

	return &domain.Image{URL: url, AltText: alt}, nil
}
