package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinewrapped/internal/tmdb"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en-US"); err == nil {
		t.Fatal("expected error when api key missing")
	}
	if _, err := tmdb.New("key", " ", "en-US"); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestSearchMovieSendsTitleAndYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if q.Get("api_key") != "key" || q.Get("query") != "Paris, Texas" || q.Get("year") != "1984" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if q.Get("language") != "en-US" {
			t.Errorf("expected language parameter, got %q", q.Get("language"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":655,"title":"Paris, Texas","poster_path":"/p.jpg"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "en-US")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	resp, err := client.SearchMovie(context.Background(), "Paris, Texas", 1984)
	if err != nil {
		t.Fatalf("SearchMovie returned error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != 655 || resp.Results[0].PosterPath != "/p.jpg" {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestSearchMovieOmitsUnknownYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("year") {
			t.Errorf("year must be omitted, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	t.Cleanup(server.Close)

	client, _ := tmdb.New("key", server.URL, "")
	if _, err := client.SearchMovie(context.Background(), "Untitled", 0); err != nil {
		t.Fatalf("SearchMovie returned error: %v", err)
	}
}

func TestSearchMovieHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_code":7}`))
	}))
	t.Cleanup(server.Close)

	client, _ := tmdb.New("key", server.URL, "")
	_, err := client.SearchMovie(context.Background(), "fail", 0)
	var statusErr *tmdb.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected StatusError 401, got %v", err)
	}
}

func TestSearchMovieEmptyQuery(t *testing.T) {
	client, _ := tmdb.New("key", "https://example.com", "")
	if _, err := client.SearchMovie(context.Background(), "  ", 2000); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestResolveFetchesFirstCandidateWithCredits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/movie":
			_, _ = w.Write([]byte(`{"results":[{"id":949,"title":"Heat","poster_path":"/heat.jpg"},{"id":1,"title":"Heat 2"}]}`))
		case "/movie/949":
			if r.URL.Query().Get("append_to_response") != "credits" {
				t.Errorf("expected credits appended, got %q", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`{
				"id":949,"title":"Heat","runtime":170,
				"genres":[{"id":80,"name":"Crime"},{"id":18,"name":"Drama"}],
				"credits":{
					"cast":[
						{"id":1158,"name":"Al Pacino","order":0,"profile_path":"/al.jpg"},
						{"id":380,"name":"Robert De Niro","order":1}
					],
					"crew":[
						{"id":638,"name":"Michael Mann","job":"Director","profile_path":"/mm.jpg"},
						{"id":639,"name":"Someone","job":"Assistant Director"}
					]
				}}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client, _ := tmdb.New("key", server.URL, "")
	details, first, err := client.Resolve(context.Background(), "Heat", 1995)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if first.ID != 949 || first.PosterPath != "/heat.jpg" {
		t.Fatalf("unexpected first candidate: %#v", first)
	}
	if details.Runtime != 170 || len(details.Genres) != 2 {
		t.Fatalf("unexpected details: %#v", details)
	}
	directors := details.Directors()
	if len(directors) != 1 || directors[0].Name != "Michael Mann" {
		t.Fatalf("Directors = %#v", directors)
	}
	if cast := details.TopCast(1); len(cast) != 1 || cast[0].Name != "Al Pacino" {
		t.Fatalf("TopCast(1) = %#v", cast)
	}
	if cast := details.TopCast(5); len(cast) != 2 {
		t.Fatalf("TopCast(5) returned %d members", len(cast))
	}
}

func TestResolveNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	t.Cleanup(server.Close)

	client, _ := tmdb.New("key", server.URL, "")
	if _, _, err := client.Resolve(context.Background(), "Nothing", 2000); !errors.Is(err, tmdb.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestResolveMalformedDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search/movie" {
			_, _ = w.Write([]byte(`{"results":[{"id":5}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":`))
	}))
	t.Cleanup(server.Close)

	client, _ := tmdb.New("key", server.URL, "")
	if _, _, err := client.Resolve(context.Background(), "Broken", 2000); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"https://image.tmdb.org/t/p/w500", "/a.jpg", "https://image.tmdb.org/t/p/w500/a.jpg"},
		{"https://image.tmdb.org/t/p/w500/", "a.jpg", "https://image.tmdb.org/t/p/w500/a.jpg"},
		{"https://image.tmdb.org/t/p/w500", "", ""},
	}
	for _, tt := range tests {
		if got := tmdb.ImageURL(tt.base, tt.path); got != tt.want {
			t.Errorf("ImageURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}
