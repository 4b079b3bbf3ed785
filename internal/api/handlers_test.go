// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tastekid/tastekid/internal/config"
	"github.com/tastekid/tastekid/internal/models"
	"github.com/tastekid/tastekid/internal/recommend"
)

type rateCall struct {
	userID  int64
	movieID int64
	rating  *int
	status  string
}

// fakeStore backs handler tests with in-memory data and call capture.
type fakeStore struct {
	pingErr  error
	movies   map[int64]*models.MovieDetail
	lookup   map[string]*models.MovieRef
	users    map[int64]*models.UserSummary
	stats    map[int64]*models.ProfileStats
	ratings  []models.RatingEntry
	queue    []models.Candidate
	rateErr  error
	lastRate *rateCall
	cooldown int
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) GetMovieDetail(_ context.Context, movieID int64) (*models.MovieDetail, error) {
	if m, ok := f.movies[movieID]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, models.ErrMovieNotFound
}

func (f *fakeStore) LookupMovieByTitle(_ context.Context, title string) (*models.MovieRef, error) {
	if ref, ok := f.lookup[strings.ToLower(title)]; ok {
		return ref, nil
	}
	return nil, models.ErrMovieNotFound
}

func (f *fakeStore) CreateUser(_ context.Context, displayName string) (*models.UserSummary, error) {
	return &models.UserSummary{ID: 1, DisplayName: displayName}, nil
}

func (f *fakeStore) GetUserSummary(_ context.Context, userID int64) (*models.UserSummary, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeStore) ProfileStats(_ context.Context, userID int64) (*models.ProfileStats, error) {
	if s, ok := f.stats[userID]; ok {
		return s, nil
	}
	if _, ok := f.users[userID]; ok {
		return nil, models.ErrProfileNotFound
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeStore) RateMovie(_ context.Context, userID, movieID int64, rating *int, status string) error {
	if f.rateErr != nil {
		return f.rateErr
	}
	f.lastRate = &rateCall{userID: userID, movieID: movieID, rating: rating, status: status}
	return nil
}

func (f *fakeStore) ListRatings(_ context.Context, userID int64, _ models.RatingFilter, limit, offset int) ([]models.RatingEntry, error) {
	if _, ok := f.users[userID]; !ok {
		return nil, models.ErrUserNotFound
	}
	out := f.ratings
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) PopularityQueue(_ context.Context, _ int64, limit, offset, cooldownDays int, _ bool) ([]models.Candidate, error) {
	f.cooldown = cooldownDays
	out := f.queue
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeRecommender returns canned engine results.
type fakeRecommender struct {
	similar     []models.ScoredCandidate
	similarMore bool
	similarErr  error
	recs        []models.ScoredCandidate
	recsMore    bool
	recsErr     error
	feed        []models.FeedItem
	feedMore    bool
	feedErr     error
	match       *int
	matchErr    error
	next        *models.FeedItem
	nextErr     error
}

func (f *fakeRecommender) Similar(context.Context, int64, int, int) ([]models.ScoredCandidate, bool, error) {
	return f.similar, f.similarMore, f.similarErr
}

func (f *fakeRecommender) Recommendations(context.Context, int64, int, int) ([]models.ScoredCandidate, bool, error) {
	return f.recs, f.recsMore, f.recsErr
}

func (f *fakeRecommender) Feed(context.Context, int64, int, int) ([]models.FeedItem, bool, error) {
	return f.feed, f.feedMore, f.feedErr
}

func (f *fakeRecommender) Match(context.Context, int64, int64) (*int, error) {
	return f.match, f.matchErr
}

func (f *fakeRecommender) Next(context.Context, int64) (*models.FeedItem, error) {
	return f.next, f.nextErr
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Timeout: 5 * time.Second},
		API: config.APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
		},
		Images: config.ImagesConfig{
			BaseURL:      "https://img.example.org",
			PosterSize:   "w342",
			BackdropSize: "w780",
		},
		Recommend: recommend.DefaultConfig(),
	}
}

func newTestServer(store Store, rec Recommender) http.Handler {
	return NewRouter(NewHandler(store, rec, testConfig()), testConfig())
}

// envelope mirrors the wire shape for test decoding.
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		NextCursor *string `json:"next_cursor"`
		HasMore    bool    `json:"has_more"`
	} `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeRecommender{})
	rec, env := doRequest(t, srv, http.MethodGet, "/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data["status"] != "ok" {
		t.Errorf("status = %q, want \"ok\"", data["status"])
	}
}

func TestGetMovie(t *testing.T) {
	store := &fakeStore{movies: map[int64]*models.MovieDetail{
		42: {ID: 42, Title: "Blade Runner", PosterPath: "/br.jpg"},
	}}
	srv := newTestServer(store, &fakeRecommender{})

	rec, env := doRequest(t, srv, http.MethodGet, "/v1/movies/42", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var detail models.MovieDetail
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatal(err)
	}
	if detail.Title != "Blade Runner" {
		t.Errorf("Title = %q", detail.Title)
	}
	if want := "https://img.example.org/w342/br.jpg"; detail.PosterURL != want {
		t.Errorf("PosterURL = %q, want %q", detail.PosterURL, want)
	}
}

func TestGetMovieNotFound(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeRecommender{})
	rec, env := doRequest(t, srv, http.MethodGet, "/v1/movies/999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != CodeMovieNotFound {
		t.Errorf("error = %+v, want code %s", env.Error, CodeMovieNotFound)
	}
}

func TestGetMovieBadID(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeRecommender{})
	for _, id := range []string{"abc", "0", "-3"} {
		rec, env := doRequest(t, srv, http.MethodGet, "/v1/movies/"+id, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("id %q: status = %d, want 400", id, rec.Code)
			continue
		}
		if env.Error == nil || env.Error.Code != CodeInvalidArgument {
			t.Errorf("id %q: error = %+v, want %s", id, env.Error, CodeInvalidArgument)
		}
	}
}

func TestLookupMovie(t *testing.T) {
	store := &fakeStore{lookup: map[string]*models.MovieRef{
		"heat": {ID: 7, Title: "Heat"},
	}}
	srv := newTestServer(store, &fakeRecommender{})

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"found", "/v1/movies/lookup?title=heat", http.StatusOK, ""},
		{"missing title", "/v1/movies/lookup", http.StatusBadRequest, CodeInvalidArgument},
		{"blank title", "/v1/movies/lookup?title=%20%20", http.StatusBadRequest, CodeInvalidArgument},
		{"unknown title", "/v1/movies/lookup?title=nope", http.StatusNotFound, CodeMovieNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRequest(t, srv, http.MethodGet, tt.target, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantCode != "" && (env.Error == nil || env.Error.Code != tt.wantCode) {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestSimilarEnvelope(t *testing.T) {
	rec := &fakeRecommender{
		similar: []models.ScoredCandidate{
			{Candidate: models.Candidate{ID: 2, Title: "Ronin"}, Similarity: 0.9, Score: 1.0},
		},
		similarMore: true,
	}
	srv := newTestServer(&fakeStore{}, rec)

	w, env := doRequest(t, srv, http.MethodGet, "/v1/movies/1/similar?k=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !env.Meta.HasMore {
		t.Error("has_more = false, want true")
	}
	if env.Meta.NextCursor == nil || *env.Meta.NextCursor != "5" {
		t.Errorf("next_cursor = %v, want \"5\"", env.Meta.NextCursor)
	}
}

func TestSimilarLastPageCursorNull(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeRecommender{
		similar: []models.ScoredCandidate{{Candidate: models.Candidate{ID: 2}}},
	})
	_, env := doRequest(t, srv, http.MethodGet, "/v1/movies/1/similar", "")
	if env.Meta.NextCursor != nil {
		t.Errorf("next_cursor = %q, want null", *env.Meta.NextCursor)
	}
	if env.Meta.HasMore {
		t.Error("has_more = true, want false")
	}
}

func TestPaginationValidation(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeRecommender{})
	tests := []struct {
		name   string
		target string
	}{
		{"k zero", "/v1/movies/1/similar?k=0"},
		{"k too large", "/v1/movies/1/similar?k=101"},
		{"k not a number", "/v1/movies/1/similar?k=ten"},
		{"negative cursor", "/v1/movies/1/similar?cursor=-5"},
		{"cursor not a number", "/v1/movies/1/similar?cursor=xyz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRequest(t, srv, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if env.Error == nil || env.Error.Code != CodeInvalidArgument {
				t.Errorf("error = %+v, want %s", env.Error, CodeInvalidArgument)
			}
		})
	}
}

func TestErrorCodeMapping(t *testing.T) {
	tests := []struct {
		name       string
		rec        *fakeRecommender
		target     string
		wantStatus int
		wantCode   string
	}{
		{
			"unindexed anchor", &fakeRecommender{similarErr: models.ErrEmbeddingNotFound},
			"/v1/movies/1/similar", http.StatusNotFound, CodeEmbeddingNotFound,
		},
		{
			"no profile", &fakeRecommender{recsErr: models.ErrProfileNotFound},
			"/v1/users/1/recommendations", http.StatusNotFound, CodeProfileNotFound,
		},
		{
			"unknown user", &fakeRecommender{recsErr: models.ErrUserNotFound},
			"/v1/users/1/recommendations", http.StatusNotFound, CodeUserNotFound,
		},
		{
			"deadline", &fakeRecommender{recsErr: context.DeadlineExceeded},
			"/v1/users/1/recommendations", http.StatusGatewayTimeout, CodeDeadlineExceeded,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&fakeStore{}, tt.rec)
			rec, env := doRequest(t, srv, http.MethodGet, tt.target, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestCreateUser(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeRecommender{})
	rec, env := doRequest(t, srv, http.MethodPost, "/v1/users", `{"display_name":"kate"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var u models.UserSummary
	if err := json.Unmarshal(env.Data, &u); err != nil {
		t.Fatal(err)
	}
	if u.DisplayName != "kate" {
		t.Errorf("DisplayName = %q, want \"kate\"", u.DisplayName)
	}
}

func TestPutRatingSemantics(t *testing.T) {
	intp := func(v int) *int { return &v }
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantRating *int
		wantState  string
	}{
		{"rating only defaults watched", `{"rating":4}`, http.StatusOK, intp(4), models.StatusWatched},
		{"rating zero is valid", `{"rating":0}`, http.StatusOK, intp(0), models.StatusWatched},
		{"status only defaults unwatched", `{"status":"unwatched"}`, http.StatusOK, nil, models.StatusUnwatched},
		{"unwatched clears rating", `{"rating":3,"status":"unwatched"}`, http.StatusOK, nil, models.StatusUnwatched},
		{"explicit watched", `{"rating":5,"status":"watched"}`, http.StatusOK, intp(5), models.StatusWatched},
		{"empty body", ``, http.StatusBadRequest, nil, ""},
		{"neither field", `{}`, http.StatusBadRequest, nil, ""},
		{"rating out of range", `{"rating":6}`, http.StatusBadRequest, nil, ""},
		{"negative rating", `{"rating":-1}`, http.StatusBadRequest, nil, ""},
		{"bogus status", `{"status":"maybe"}`, http.StatusBadRequest, nil, ""},
		{"malformed json", `{"rating":`, http.StatusBadRequest, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			srv := newTestServer(store, &fakeRecommender{})
			rec, _ := doRequest(t, srv, http.MethodPut, "/v1/users/1/ratings/42", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				if store.lastRate != nil {
					t.Error("store mutated on invalid input")
				}
				return
			}
			if store.lastRate == nil {
				t.Fatal("store not called")
			}
			if store.lastRate.userID != 1 || store.lastRate.movieID != 42 {
				t.Errorf("rated (%d,%d), want (1,42)", store.lastRate.userID, store.lastRate.movieID)
			}
			if (store.lastRate.rating == nil) != (tt.wantRating == nil) {
				t.Fatalf("rating = %v, want %v", store.lastRate.rating, tt.wantRating)
			}
			if tt.wantRating != nil && *store.lastRate.rating != *tt.wantRating {
				t.Errorf("rating = %d, want %d", *store.lastRate.rating, *tt.wantRating)
			}
			if store.lastRate.status != tt.wantState {
				t.Errorf("status = %q, want %q", store.lastRate.status, tt.wantState)
			}
		})
	}
}

func TestRateMovieAlias(t *testing.T) {
	store := &fakeStore{}
	srv := newTestServer(store, &fakeRecommender{})

	rec, _ := doRequest(t, srv, http.MethodPost, "/v1/users/1/rate", `{"movie_id":42,"rating":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if store.lastRate == nil || store.lastRate.movieID != 42 {
		t.Fatalf("lastRate = %+v, want movie 42", store.lastRate)
	}

	rec, env := doRequest(t, srv, http.MethodPost, "/v1/users/1/rate", `{"rating":5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing movie_id: status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != CodeInvalidArgument {
		t.Errorf("error = %+v, want %s", env.Error, CodeInvalidArgument)
	}
}

func TestListRatingsFilters(t *testing.T) {
	store := &fakeStore{users: map[int64]*models.UserSummary{1: {ID: 1}}}
	srv := newTestServer(store, &fakeRecommender{})

	tests := []struct {
		name   string
		target string
	}{
		{"bad status", "/v1/users/1/ratings?status=maybe"},
		{"min_rating out of range", "/v1/users/1/ratings?min_rating=7"},
		{"max_rating not a number", "/v1/users/1/ratings?max_rating=high"},
		{"days zero", "/v1/users/1/ratings?days=0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := doRequest(t, srv, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestListRatingsPaging(t *testing.T) {
	entries := make([]models.RatingEntry, 25)
	for i := range entries {
		entries[i].MovieID = int64(i + 1)
	}
	store := &fakeStore{
		users:   map[int64]*models.UserSummary{1: {ID: 1}},
		ratings: entries,
	}
	srv := newTestServer(store, &fakeRecommender{})

	_, env := doRequest(t, srv, http.MethodGet, "/v1/users/1/ratings?k=10", "")
	var page []models.RatingEntry
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatal(err)
	}
	if len(page) != 10 {
		t.Errorf("len = %d, want 10", len(page))
	}
	if !env.Meta.HasMore {
		t.Error("has_more = false, want true")
	}
	if env.Meta.NextCursor == nil || *env.Meta.NextCursor != "10" {
		t.Errorf("next_cursor = %v, want \"10\"", env.Meta.NextCursor)
	}
}

func TestRatingQueue(t *testing.T) {
	store := &fakeStore{
		users: map[int64]*models.UserSummary{1: {ID: 1}},
		queue: []models.Candidate{{ID: 10}, {ID: 11}},
	}
	srv := newTestServer(store, &fakeRecommender{})

	rec, env := doRequest(t, srv, http.MethodGet, "/v1/users/1/rating-queue?k=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var cands []models.Candidate
	if err := json.Unmarshal(env.Data, &cands); err != nil {
		t.Fatal(err)
	}
	if len(cands) != 2 {
		t.Errorf("len = %d, want 2", len(cands))
	}
	if store.cooldown != recommend.DefaultConfig().UnwatchedCooldownDays {
		t.Errorf("cooldown = %d, want default %d", store.cooldown, recommend.DefaultConfig().UnwatchedCooldownDays)
	}

	rec, env = doRequest(t, srv, http.MethodGet, "/v1/users/99/rating-queue", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown user: status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != CodeUserNotFound {
		t.Errorf("error = %+v, want %s", env.Error, CodeUserNotFound)
	}
}

func TestMatchEndpoint(t *testing.T) {
	tests := []struct {
		name  string
		score *int
		want  *int
	}{
		{"scored pair", func() *int { v := 73; return &v }(), func() *int { v := 73; return &v }()},
		{"soft null", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&fakeStore{}, &fakeRecommender{match: tt.score})
			rec, env := doRequest(t, srv, http.MethodGet, "/v1/users/1/movies/42/match", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var data struct {
				Score *int `json:"score"`
			}
			if err := json.Unmarshal(env.Data, &data); err != nil {
				t.Fatal(err)
			}
			if (data.Score == nil) != (tt.want == nil) {
				t.Fatalf("score = %v, want %v", data.Score, tt.want)
			}
			if tt.want != nil && *data.Score != *tt.want {
				t.Errorf("score = %d, want %d", *data.Score, *tt.want)
			}
		})
	}
}

func TestFeedScoreNullOnFallback(t *testing.T) {
	srv := newTestServer(&fakeStore{}, &fakeRecommender{
		feed: []models.FeedItem{
			{Candidate: models.Candidate{ID: 5, Title: "Top Pick"}, Source: models.FeedSourcePopularity},
		},
	})
	_, env := doRequest(t, srv, http.MethodGet, "/v1/users/1/feed", "")

	var items []struct {
		ID     int64    `json:"id"`
		Score  *float64 `json:"score"`
		Source string   `json:"source"`
	}
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	if items[0].Score != nil {
		t.Errorf("score = %v, want null", *items[0].Score)
	}
	if items[0].Source != models.FeedSourcePopularity {
		t.Errorf("source = %q, want %q", items[0].Source, models.FeedSourcePopularity)
	}
}

func TestNextEndpoint(t *testing.T) {
	sim, score := 0.92, 0.88
	srv := newTestServer(&fakeStore{}, &fakeRecommender{
		next: &models.FeedItem{
			Candidate:  models.Candidate{ID: 8, Title: "Next Up", PosterPath: "/n.jpg"},
			Similarity: &sim,
			Score:      &score,
			Source:     models.FeedSourceProfile,
		},
	})
	rec, env := doRequest(t, srv, http.MethodGet, "/v1/users/1/next", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var item struct {
		ID        int64    `json:"id"`
		Score     *float64 `json:"score"`
		PosterURL string   `json:"poster_url"`
	}
	if err := json.Unmarshal(env.Data, &item); err != nil {
		t.Fatal(err)
	}
	if item.ID != 8 || item.Score == nil {
		t.Errorf("item = %+v, want id 8 with score", item)
	}
	if want := "https://img.example.org/w342/n.jpg"; item.PosterURL != want {
		t.Errorf("poster_url = %q, want %q", item.PosterURL, want)
	}
}

func TestGetProfile(t *testing.T) {
	store := &fakeStore{
		users: map[int64]*models.UserSummary{1: {ID: 1}, 2: {ID: 2}},
		stats: map[int64]*models.ProfileStats{1: {UserID: 1, NumRatings: 12, NumLiked: 7, EmbeddingNorm: 1.0}},
	}
	srv := newTestServer(store, &fakeRecommender{})

	rec, env := doRequest(t, srv, http.MethodGet, "/v1/users/1/profile", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var stats models.ProfileStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.NumRatings != 12 || stats.NumLiked != 7 {
		t.Errorf("stats = %+v", stats)
	}

	rec, env = doRequest(t, srv, http.MethodGet, "/v1/users/2/profile", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("no profile: status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != CodeProfileNotFound {
		t.Errorf("error = %+v, want %s", env.Error, CodeProfileNotFound)
	}
}
