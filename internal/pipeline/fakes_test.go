package pipeline

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonathan/recipe-crawler/internal/llm"
	"github.com/jonathan/recipe-crawler/internal/types"
	"github.com/jonathan/recipe-crawler/internal/youtube"
)

const validResponse = "```json\n" + `{
  "dish_name": "오징어볶음",
  "category": "오징어 볶음",
  "ingredients": [
    {"name": "오징어(손질된 것)", "quantity": "1마리"},
    {"name": "고추장", "quantity": "2스푼"}
  ],
  "recipe": [
    {"step": 1, "instruction": "오징어를 손질하여 썰어둔다"},
    {"step": 2, "instruction": "양념을 넣고 센 불에 볶는다"},
    {"step": 3, "instruction": "그릇에 담고 깨를 뿌려 마무리한다"}
  ],
  "difficulty": "쉬움",
  "cooking_time": "20분"
}` + "\n```"

// fakeStore is an in-memory Store. Listings return copies so that callers
// only change stored state through UpsertVideo.
type fakeStore struct {
	mu        sync.Mutex
	docs      map[string]*types.VideoDocument
	skipped   map[string]string
	deleted   []string
	upsertErr error
	listErr   error
}

func newFakeStore(docs ...*types.VideoDocument) *fakeStore {
	s := &fakeStore{
		docs:    make(map[string]*types.VideoDocument),
		skipped: make(map[string]string),
	}
	for _, d := range docs {
		s.docs[d.VideoID] = d
	}
	return s
}

func (s *fakeStore) list(keep func(*types.VideoDocument) bool) ([]*types.VideoDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*types.VideoDocument
	for _, d := range s.docs {
		if keep(d) {
			c := *d
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VideoID < out[j].VideoID })
	return out, nil
}

func (s *fakeStore) ListPendingForExtraction(context.Context) ([]*types.VideoDocument, error) {
	return s.list(func(d *types.VideoDocument) bool { return d.IsCleaned() && !d.IsExtracted() })
}

func (s *fakeStore) ListPendingForCleaning(context.Context) ([]*types.VideoDocument, error) {
	return s.list(func(d *types.VideoDocument) bool { return !d.IsCleaned() && !d.IsExtracted() })
}

func (s *fakeStore) UpsertVideo(_ context.Context, doc *types.VideoDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertErr != nil {
		return s.upsertErr
	}
	c := *doc
	s.docs[doc.VideoID] = &c
	return nil
}

func (s *fakeStore) MarkSkipped(_ context.Context, videoID, reason, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.skipped[videoID]; !ok {
		s.skipped[videoID] = reason
	}
	return nil
}

func (s *fakeStore) DeleteVideo(_ context.Context, videoID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[videoID]
	delete(s.docs, videoID)
	s.deleted = append(s.deleted, videoID)
	return ok, nil
}

func (s *fakeStore) VideoExists(_ context.Context, videoID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[videoID]
	return ok, nil
}

func (s *fakeStore) IsSkipped(_ context.Context, videoID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.skipped[videoID]
	return ok, nil
}

func (s *fakeStore) doc(videoID string) *types.VideoDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[videoID]
}

// fakeClient answers every prompt with respond and tracks concurrency.
type fakeClient struct {
	respond  func(call int) (string, error)
	delay    time.Duration
	calls    atomic.Int32
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (c *fakeClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	n := c.calls.Add(1)
	cur := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		prev := c.maxSeen.Load()
		if cur <= prev || c.maxSeen.CompareAndSwap(prev, cur) {
			break
		}
	}
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return c.respond(int(n))
}

func (c *fakeClient) Close() error { return nil }

func respondWith(text string) func(int) (string, error) {
	return func(int) (string, error) { return text, nil }
}

// fakeSource serves canned search results, details and captions.
type fakeSource struct {
	results     []youtube.SearchResult
	searchErr   error
	details     map[string]*youtube.VideoDetails
	captions    map[string][]types.CaptionSegment
	captionsErr error
}

func (f *fakeSource) Search(context.Context, string, int) ([]youtube.SearchResult, error) {
	return f.results, f.searchErr
}

func (f *fakeSource) FetchDetails(_ context.Context, videoID string) (*youtube.VideoDetails, error) {
	d, ok := f.details[videoID]
	if !ok {
		return nil, youtube.ErrVideoNotFound
	}
	return d, nil
}

func (f *fakeSource) FetchCaptions(_ context.Context, videoID string) ([]types.CaptionSegment, error) {
	if f.captionsErr != nil {
		return nil, f.captionsErr
	}
	return f.captions[videoID], nil
}

func cleanedDoc(videoID, description, captions string, segments ...types.CaptionSegment) *types.VideoDocument {
	return &types.VideoDocument{
		VideoID:          videoID,
		Title:            "title " + videoID,
		URL:              types.WatchURL(videoID),
		RawDescription:   types.StringPtr(description),
		RawCaptions:      types.StringPtr(captions),
		CaptionsSegments: segments,
		CleanDescription: types.StringPtr(description),
		CleanCaptions:    types.StringPtr(captions),
	}
}

func segmentsEvery(n int, step float64) []types.CaptionSegment {
	out := make([]types.CaptionSegment, n)
	for i := range out {
		out[i] = types.CaptionSegment{Text: "자막", Start: float64(i) * step, Duration: step}
	}
	return out
}

var errStoreDown = errors.New("store unavailable")
