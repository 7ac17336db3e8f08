package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/five82/roost/internal/api"
	"github.com/five82/roost/internal/domain"
	"github.com/five82/roost/internal/state"
	"github.com/five82/roost/internal/token"
)

type recorder struct {
	*state.Store
	mu      sync.Mutex
	actions []state.Action
}

func (r *recorder) Dispatch(a state.Action) {
	r.mu.Lock()
	r.actions = append(r.actions, a)
	r.mu.Unlock()
	r.Store.Dispatch(a)
}

func (r *recorder) recorded() []state.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]state.Action, len(r.actions))
	copy(out, r.actions)
	return out
}

type harness struct {
	ops    *Operations
	store  *recorder
	tokens *token.Memory
}

func newHarness(t *testing.T, mux *http.ServeMux) harness {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	tokens := &token.Memory{}
	client, err := api.NewClient(server.URL, 2*time.Second, tokens)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	store := &recorder{Store: state.New()}
	return harness{
		ops:    New(client, store, tokens, nil),
		store:  store,
		tokens: tokens,
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func offerJSON(id, city string, favorite bool) map[string]any {
	return map[string]any{
		"id":           id,
		"title":        "Offer " + id,
		"type":         "apartment",
		"price":        120,
		"city":         map[string]any{"name": city, "location": map[string]any{"latitude": 1, "longitude": 2, "zoom": 10}},
		"location":     map[string]any{"latitude": 1, "longitude": 2, "zoom": 8},
		"isFavorite":   favorite,
		"isPremium":    false,
		"rating":       4.2,
		"previewImage": "img/" + id + ".jpg",
	}
}

func offerList(city string, ids ...string) []map[string]any {
	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, offerJSON(id, city, false))
	}
	return out
}

func TestFetchOffers_DispatchesLoadingAroundLoad(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /offers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, offerList("Paris", "1", "2", "3"))
	})
	h := newHarness(t, mux)

	h.ops.FetchOffers(context.Background())

	actions := h.store.recorded()
	if len(actions) != 3 {
		t.Fatalf("actions = %#v, want 3", actions)
	}
	if a, ok := actions[0].(state.SetLoading); !ok || !a.Loading {
		t.Fatalf("first action = %#v, want SetLoading(true)", actions[0])
	}
	if a, ok := actions[1].(state.LoadOffers); !ok || len(a.Offers) != 3 {
		t.Fatalf("second action = %#v, want LoadOffers with 3 offers", actions[1])
	}
	if a, ok := actions[2].(state.SetLoading); !ok || a.Loading {
		t.Fatalf("third action = %#v, want SetLoading(false)", actions[2])
	}

	s := h.store.State()
	if s.Offers.IsLoading {
		t.Fatalf("still loading after fetch")
	}
	if len(s.Offers.Offers) != 3 || s.Offers.Offers[0].ID != "1" {
		t.Fatalf("offers = %#v", s.Offers.Offers)
	}
}

func TestFetchOffers_FailureKeepsPreviousOffers(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /offers", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	h := newHarness(t, mux)
	h.store.Store.Dispatch(state.LoadOffers{Offers: []domain.Offer{{ID: "old", Name: "Old"}}})

	h.ops.FetchOffers(context.Background())

	for _, a := range h.store.recorded() {
		if _, ok := a.(state.LoadOffers); ok {
			t.Fatalf("LoadOffers dispatched after failure")
		}
	}
	s := h.store.State()
	if s.Offers.IsLoading {
		t.Fatalf("loading flag not cleared after failure")
	}
	if len(s.Offers.Offers) != 1 || s.Offers.Offers[0].ID != "old" {
		t.Fatalf("offers = %#v, want previous offers", s.Offers.Offers)
	}
}

func TestFetchOffers_StaleResponseIsDropped(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	calls := 0
	firstArrived := make(chan struct{})
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /offers", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(firstArrived)
			<-release
			writeJSON(t, w, offerList("Paris", "stale"))
			return
		}
		writeJSON(t, w, offerList("Paris", "fresh-1", "fresh-2"))
	})
	h := newHarness(t, mux)

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ops.FetchOffers(context.Background())
	}()
	<-firstArrived

	h.ops.FetchOffers(context.Background())
	close(release)
	<-done

	s := h.store.State()
	if len(s.Offers.Offers) != 2 || s.Offers.Offers[0].ID != "fresh-1" {
		t.Fatalf("offers = %#v, want the newer response", s.Offers.Offers)
	}
	if s.Offers.IsLoading {
		t.Fatalf("still loading after both fetches")
	}
}

func TestCheckAuth_Success(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /login", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(api.TokenHeader); got != "t0" {
			t.Errorf("token header = %q, want t0", got)
		}
		writeJSON(t, w, map[string]any{"token": "t0", "email": "a@b.com", "name": "A", "avatarUrl": "a.jpg", "isPro": true})
	})
	mux.HandleFunc("GET /favorite", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, offerList("Paris", "1", "2"))
	})
	h := newHarness(t, mux)
	_ = h.tokens.Save("t0")

	h.ops.CheckAuth(context.Background())

	s := h.store.State()
	if s.Auth.AuthorizationStatus != domain.AuthStatusAuth {
		t.Fatalf("status = %q, want AUTH", s.Auth.AuthorizationStatus)
	}
	if s.Auth.User == nil || s.Auth.User.Email != "a@b.com" || !s.Auth.User.IsPro {
		t.Fatalf("user = %#v", s.Auth.User)
	}
	if s.Auth.FavoriteCount != 2 {
		t.Fatalf("favorite count = %d, want 2", s.Auth.FavoriteCount)
	}
}

func TestCheckAuth_FailureSignsOut(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /login", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
	h := newHarness(t, mux)
	_ = h.tokens.Save("expired")

	h.ops.CheckAuth(context.Background())

	s := h.store.State()
	if s.Auth.AuthorizationStatus != domain.AuthStatusNoAuth {
		t.Fatalf("status = %q, want NO_AUTH", s.Auth.AuthorizationStatus)
	}
	if s.Auth.User != nil {
		t.Fatalf("user = %#v, want nil", s.Auth.User)
	}
	if h.tokens.Token() != "" {
		t.Fatalf("token kept after 401")
	}
}

func TestLogin_PersistsTokenAndUser(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var body api.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode login body: %v", err)
		}
		if body.Email != "a@b.com" || body.Password != "x1" {
			t.Errorf("login body = %#v", body)
		}
		writeJSON(t, w, map[string]any{"token": "t1", "email": "a@b.com", "name": "A", "avatarUrl": "", "isPro": false})
	})
	mux.HandleFunc("GET /favorite", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(api.TokenHeader); got != "t1" {
			t.Errorf("favorite token header = %q, want t1", got)
		}
		writeJSON(t, w, offerList("Paris", "9"))
	})
	h := newHarness(t, mux)

	if err := h.ops.Login(context.Background(), "a@b.com", "x1"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if h.tokens.Token() != "t1" {
		t.Fatalf("token = %q, want t1", h.tokens.Token())
	}
	s := h.store.State()
	if s.Auth.AuthorizationStatus != domain.AuthStatusAuth {
		t.Fatalf("status = %q, want AUTH", s.Auth.AuthorizationStatus)
	}
	if s.Auth.User == nil || s.Auth.User.Email != "a@b.com" || s.Auth.User.Token != "t1" {
		t.Fatalf("user = %#v", s.Auth.User)
	}
	if s.Auth.FavoriteCount != 1 {
		t.Fatalf("favorite count = %d, want 1", s.Auth.FavoriteCount)
	}
}

func TestLogin_FailureReturnsError(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusBadRequest)
	})
	h := newHarness(t, mux)

	err := h.ops.Login(context.Background(), "a@b.com", "nope")
	if err == nil {
		t.Fatalf("Login returned nil error")
	}
	if api.StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (err %v)", api.StatusCode(err), err)
	}
	if h.tokens.Token() != "" {
		t.Fatalf("token saved on failed login")
	}
	if got := h.store.State().Auth.AuthorizationStatus; got != domain.AuthStatusNoAuth {
		t.Fatalf("status = %q, want NO_AUTH", got)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	t.Parallel()

	h := newHarness(t, http.NewServeMux())
	_ = h.tokens.Save("t1")
	user := domain.AuthInfo{Email: "a@b.com"}
	h.store.Store.Dispatch(state.RequireAuthorization{Status: domain.AuthStatusAuth})
	h.store.Store.Dispatch(state.SetUser{User: &user})
	h.store.Store.Dispatch(state.SetFavoriteCount{Count: 4})

	h.ops.Logout()

	s := h.store.State()
	if h.tokens.Token() != "" {
		t.Fatalf("token not dropped")
	}
	if s.Auth.AuthorizationStatus != domain.AuthStatusNoAuth || s.Auth.User != nil || s.Auth.FavoriteCount != 0 {
		t.Fatalf("auth = %#v, want signed out", s.Auth)
	}
}

func TestFetchOfferByID_NotFound(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /offers/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	h := newHarness(t, mux)

	_, err := h.ops.FetchOfferByID(context.Background(), "missing")
	if !api.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestFetchReviews_SortsNewestFirstAndTruncates(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		reviews := make([]map[string]any, 0, 15)
		// Oldest first so the order has to be reversed.
		for i := range 15 {
			reviews = append(reviews, map[string]any{
				"id":      fmt.Sprintf("r%d", i),
				"date":    base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
				"user":    map[string]any{"name": "U", "avatarUrl": "u.jpg", "isPro": false},
				"comment": "fine",
				"rating":  4,
			})
		}
		writeJSON(t, w, reviews)
	})
	h := newHarness(t, mux)

	reviews, err := h.ops.FetchReviews(context.Background(), "7")
	if err != nil {
		t.Fatalf("FetchReviews returned error: %v", err)
	}
	if len(reviews) != domain.MaxReviews {
		t.Fatalf("len = %d, want %d", len(reviews), domain.MaxReviews)
	}
	if reviews[0].ID != "r14" || reviews[9].ID != "r5" {
		t.Fatalf("order = %s..%s, want r14..r5", reviews[0].ID, reviews[9].ID)
	}
	for _, r := range reviews {
		if r.OfferID != "7" {
			t.Fatalf("review %s offer = %q, want 7", r.ID, r.OfferID)
		}
	}
}

func TestPostReview_ReturnsStoredReview(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body api.CommentRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode comment: %v", err)
		}
		writeJSON(t, w, map[string]any{
			"id":      "c1",
			"date":    "2024-05-01T10:00:00.000Z",
			"user":    map[string]any{"name": "A", "avatarUrl": "", "isPro": false},
			"comment": body.Comment,
			"rating":  body.Rating,
		})
	})
	h := newHarness(t, mux)

	review, err := h.ops.PostReview(context.Background(), "3", 5, "lovely")
	if err != nil {
		t.Fatalf("PostReview returned error: %v", err)
	}
	if review.ID != "c1" || review.OfferID != "3" || review.Rating != 5 || review.Comment != "lovely" {
		t.Fatalf("review = %#v", review)
	}
}

func TestToggleFavorite_RecountsFromServer(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /favorite/{id}/{status}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("status") != "1" {
			t.Errorf("status segment = %q, want 1", r.PathValue("status"))
		}
		writeJSON(t, w, offerJSON(r.PathValue("id"), "Paris", true))
	})
	mux.HandleFunc("GET /favorite", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, offerList("Paris", "1", "2", "3"))
	})
	h := newHarness(t, mux)
	h.store.Store.Dispatch(state.LoadOffers{Offers: []domain.Offer{{ID: "3", Name: "Three"}}})
	h.store.Store.Dispatch(state.SetFavoriteCount{Count: 2})

	if err := h.ops.ToggleFavorite(context.Background(), "3", true); err != nil {
		t.Fatalf("ToggleFavorite returned error: %v", err)
	}

	s := h.store.State()
	if s.Auth.FavoriteCount != 3 {
		t.Fatalf("favorite count = %d, want 3", s.Auth.FavoriteCount)
	}
	if !s.Offers.Offers[0].IsFavorite {
		t.Fatalf("offer not marked favorite")
	}
}

func TestToggleFavorite_FailedRecountAdjustsLocally(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start int
		next  bool
		want  int
	}{
		{name: "add", start: 2, next: true, want: 3},
		{name: "remove", start: 2, next: false, want: 1},
		{name: "remove from zero", start: 0, next: false, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mux := http.NewServeMux()
			mux.HandleFunc("POST /favorite/{id}/{status}", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, offerJSON(r.PathValue("id"), "Paris", r.PathValue("status") == "1"))
			})
			mux.HandleFunc("GET /favorite", func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "down", http.StatusServiceUnavailable)
			})
			h := newHarness(t, mux)
			h.store.Store.Dispatch(state.SetFavoriteCount{Count: tt.start})

			if err := h.ops.ToggleFavorite(context.Background(), "5", tt.next); err != nil {
				t.Fatalf("ToggleFavorite returned error: %v", err)
			}
			if got := h.store.State().Auth.FavoriteCount; got != tt.want {
				t.Fatalf("favorite count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToggleFavorite_FailedRecountFollowsServerFlag(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /favorite/{id}/{status}", func(w http.ResponseWriter, r *http.Request) {
		// The server answers with the offer still not a favorite.
		writeJSON(t, w, offerJSON(r.PathValue("id"), "Paris", false))
	})
	mux.HandleFunc("GET /favorite", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	h := newHarness(t, mux)
	h.store.Store.Dispatch(state.LoadOffers{Offers: []domain.Offer{{ID: "5", Name: "Five", IsFavorite: true}}})
	h.store.Store.Dispatch(state.SetFavoriteCount{Count: 2})

	if err := h.ops.ToggleFavorite(context.Background(), "5", true); err != nil {
		t.Fatalf("ToggleFavorite returned error: %v", err)
	}
	s := h.store.State()
	if s.Offers.Offers[0].IsFavorite {
		t.Fatalf("offer flag = true, want the server's false")
	}
	if s.Auth.FavoriteCount != 1 {
		t.Fatalf("favorite count = %d, want 1", s.Auth.FavoriteCount)
	}
}

func TestToggleFavorite_ErrorLeavesStateAlone(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /favorite/{id}/{status}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
	h := newHarness(t, mux)
	h.store.Store.Dispatch(state.LoadOffers{Offers: []domain.Offer{{ID: "5", Name: "Five"}}})
	h.store.Store.Dispatch(state.SetFavoriteCount{Count: 1})

	err := h.ops.ToggleFavorite(context.Background(), "5", true)
	if !api.IsUnauthorized(err) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
	s := h.store.State()
	if s.Offers.Offers[0].IsFavorite || s.Auth.FavoriteCount != 1 {
		t.Fatalf("state changed after failed toggle: %#v", s)
	}
}

func TestLoadOfferPage(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /offers/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, offerJSON(r.PathValue("id"), "Amsterdam", false))
	})
	mux.HandleFunc("GET /offers/{id}/nearby", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, offerList("Amsterdam", "n1", "n2", "n3", "n4"))
	})
	mux.HandleFunc("GET /comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{{
			"id": "c1", "date": "2024-01-01T00:00:00Z", "comment": "ok", "rating": 3,
			"user": map[string]any{"name": "U", "avatarUrl": "", "isPro": false},
		}})
	})
	h := newHarness(t, mux)

	page, err := h.ops.LoadOfferPage(context.Background(), "42")
	if err != nil {
		t.Fatalf("LoadOfferPage returned error: %v", err)
	}
	if page.Offer.ID != "42" || page.Offer.City != "Amsterdam" {
		t.Fatalf("offer = %#v", page.Offer)
	}
	if len(page.Nearby) != 4 || len(page.Reviews) != 1 {
		t.Fatalf("nearby = %d reviews = %d", len(page.Nearby), len(page.Reviews))
	}
}

func TestLoadOfferPage_PropagatesFailure(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /offers/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("GET /offers/{id}/nearby", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, offerList("Paris"))
	})
	mux.HandleFunc("GET /comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{})
	})
	h := newHarness(t, mux)

	page, err := h.ops.LoadOfferPage(context.Background(), "missing")
	if !api.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	if page.Offer.ID != "" {
		t.Fatalf("page = %#v, want zero value", page)
	}
}

func TestLocalCount(t *testing.T) {
	if got := localCount(0, false); got != 0 {
		t.Fatalf("localCount(0,false) = %d", got)
	}
	if got := localCount(0, true); got != 1 {
		t.Fatalf("localCount(0,true) = %d", got)
	}
}

func TestGenerations(t *testing.T) {
	var g generations
	first := g.begin("k")
	second := g.begin("k")
	if g.current("k", first) {
		t.Fatalf("first generation still current")
	}
	if !g.current("k", second) {
		t.Fatalf("second generation not current")
	}
	other := g.begin("other")
	if !g.current("other", other) || !g.current("k", second) {
		t.Fatalf("keys interfere")
	}
}

func TestRefreshOffers_ReportsError(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /offers", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	h := newHarness(t, mux)

	err := h.ops.RefreshOffers(context.Background())
	if api.StatusCode(err) != http.StatusBadGateway {
		t.Fatalf("err = %v, want 502", err)
	}
	if h.store.State().Offers.IsLoading {
		t.Fatalf("loading flag not cleared")
	}
}

func TestNewer_UnparsableDatesSortLast(t *testing.T) {
	dates := []string{
		"yesterday",
		"2024-01-01T00:00:00Z",
		"a while ago",
		"2024-03-01T00:00:00.000Z",
		"2024-02-01T00:00:00Z",
	}
	sort.SliceStable(dates, func(i, j int) bool { return newer(dates[i], dates[j]) })

	want := []string{
		"2024-03-01T00:00:00.000Z",
		"2024-02-01T00:00:00Z",
		"2024-01-01T00:00:00Z",
		"yesterday",
		"a while ago",
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("order = %q, want %q", dates, want)
		}
	}

	if newer("garbage", "2024-01-01T00:00:00Z") {
		t.Fatalf("unparsable date ranked before a parsed one")
	}
	if !newer("2024-01-01T00:00:00Z", "garbage") {
		t.Fatalf("parsed date not ranked before an unparsable one")
	}
}
