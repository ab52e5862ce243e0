package usecase

import (
	"context"
	"errors"
	"time"

	"TootBot/internal/domain"
)

type fakeSource struct {
	items []domain.FeedItem
	err   error
	calls int
}

func (f *fakeSource) Fetch(context.Context) ([]domain.FeedItem, error) {
	f.calls++
	return f.items, f.err
}

type memoryCache struct {
	blob    []byte
	readErr error
	writes  int
}

func (m *memoryCache) Read() ([]byte, error) { return m.blob, m.readErr }

func (m *memoryCache) Write(blob []byte) error {
	m.writes++
	m.blob = append([]byte(nil), blob...)
	return nil
}

type fakePoster struct {
	statuses   []string
	visibility string
	mediaIDs   []string
	mediaDesc  string
	mediaBytes []byte
	err        error
}

func (f *fakePoster) PostStatus(_ context.Context, text, visibility string, mediaIDs []string) (domain.PostedRecord, error) {
	if f.err != nil {
		return domain.PostedRecord{}, f.err
	}
	f.statuses = append(f.statuses, text)
	f.visibility = visibility
	f.mediaIDs = mediaIDs
	return domain.PostedRecord{StatusID: "1001", PostedAt: time.Now()}, nil
}

func (f *fakePoster) PostMedia(_ context.Context, file []byte, description string) (string, error) {
	f.mediaBytes = file
	f.mediaDesc = description
	return "42", nil
}

type fakeDownloader struct {
	urls []string
}

func (f *fakeDownloader) Download(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	return []byte("jpeg"), nil
}

type memoryRepo struct {
	records []domain.PostedRecord
}

func (m *memoryRepo) AlreadyPosted(_ context.Context, day, kind string, item int) (bool, error) {
	for _, r := range m.records {
		if r.Day == day && r.Kind == kind && r.Item == item {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) SavePosted(_ context.Context, record domain.PostedRecord) error {
	m.records = append(m.records, record)
	return nil
}

type fakeNotifier struct {
	texts []string
	err   error
}

func (f *fakeNotifier) PublishPost(_ context.Context, text string) error {
	f.texts = append(f.texts, text)
	return f.err
}

var errBoom = errors.New("boom")
