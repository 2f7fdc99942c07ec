package server_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"cinewrapped/internal/server"
	"cinewrapped/internal/stats"
	"cinewrapped/internal/wrapped"
)

const diaryCSV = "Date,Name,Year,Letterboxd URI,Rating,Rewatch,Tags,Watched Date\n" +
	"2024-01-06,Heat,1995,https://boxd.it/a,5,,,2024-01-05\n" +
	"2024-01-07,Alien,1979,https://boxd.it/b,4.5,,,2024-01-06\n"

const ratingsCSV = "Date,Name,Year,Letterboxd URI,Rating\n" +
	"2024-01-06,Heat,1995,https://boxd.it/a,5\n"

type stubRunner struct {
	got    wrapped.Input
	report *wrapped.Report
	err    error
}

func (s *stubRunner) Run(_ context.Context, in wrapped.Input, _ wrapped.Observer) (*wrapped.Report, error) {
	s.got = in
	return s.report, s.err
}

func emptyReport() *wrapped.Report {
	return &wrapped.Report{Stats: &stats.Stats{}}
}

func upload(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := mw.CreateFormFile(name, name+".csv")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func post(t *testing.T, h http.Handler, files, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := upload(t, files, fields)
	req := httptest.NewRequest(http.MethodPost, "/api/wrapped", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return payload["error"]
}

func TestHealth(t *testing.T) {
	srv := server.New(&stubRunner{}, server.Options{})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "{\"status\":\"ok\"}\n" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestWrappedRunsPipeline(t *testing.T) {
	srv := server.New(wrapped.New(wrapped.Options{}), server.Options{})
	rec := post(t, srv.Handler(), map[string]string{"diary": diaryCSV, "ratings": ratingsCSV}, map[string]string{"year": "2024"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var report struct {
		ID            string  `json:"id"`
		Year          int     `json:"year"`
		TotalWatched  int     `json:"totalWatched"`
		AverageRating float64 `json:"averageRating"`
		Persona       struct {
			Title string `json:"title"`
		} `json:"persona"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.ID == "" || report.Year != 2024 || report.TotalWatched != 2 || report.AverageRating != 5 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Persona.Title == "" {
		t.Fatal("expected a persona")
	}
}

func TestWrappedPassesFormOptions(t *testing.T) {
	runner := &stubRunner{report: emptyReport()}
	srv := server.New(runner, server.Options{})
	rec := post(t, srv.Handler(), map[string]string{"diary": diaryCSV}, map[string]string{"year": "2023", "enrich": "false"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if runner.got.Year != 2023 || !runner.got.SkipEnrichment || len(runner.got.Diary) != 2 || runner.got.Ratings != nil {
		t.Fatalf("unexpected input %+v", runner.got)
	}
}

func TestWrappedClientErrors(t *testing.T) {
	srv := server.New(&stubRunner{report: emptyReport()}, server.Options{})
	cases := []struct {
		name   string
		files  map[string]string
		fields map[string]string
		want   string
	}{
		{"missing diary", map[string]string{"ratings": ratingsCSV}, nil, "Diary CSV is required."},
		{"empty diary", map[string]string{"diary": ""}, nil, "Diary CSV is required."},
		{"header only diary", map[string]string{"diary": "Date,Name,Year,Letterboxd URI,Rating,Rewatch,Tags,Watched Date\n"}, nil, "Diary CSV is required."},
		{"invalid diary", map[string]string{"diary": "Foo,Bar\n1,2\n"}, nil, "Invalid Diary CSV."},
		{"invalid ratings", map[string]string{"diary": diaryCSV, "ratings": "Name,Year\nHeat,1995\n"}, nil, "Invalid Ratings CSV."},
		{"bad year", map[string]string{"diary": diaryCSV}, map[string]string{"year": "soon"}, "Year must be a positive number."},
	}
	for _, tc := range cases {
		rec := post(t, srv.Handler(), tc.files, tc.fields)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, rec.Code)
		}
		if got := errorMessage(t, rec); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestWrappedEmptyYearIsClientError(t *testing.T) {
	srv := server.New(wrapped.New(wrapped.Options{}), server.Options{})
	rec := post(t, srv.Handler(), map[string]string{"diary": diaryCSV}, map[string]string{"year": "2019"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWrappedProcessingErrorIs500(t *testing.T) {
	srv := server.New(&stubRunner{err: wrapped.ErrProcessing}, server.Options{})
	rec := post(t, srv.Handler(), map[string]string{"diary": diaryCSV}, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := errorMessage(t, rec); got != "An error occurred during processing." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestWrappedRateLimit(t *testing.T) {
	srv := server.New(&stubRunner{report: emptyReport()}, server.Options{RateLimitPerMinute: 2})
	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, post(t, srv.Handler(), map[string]string{"diary": diaryCSV}, nil).Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health should not be rate limited, got %d", rec.Code)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := server.New(&stubRunner{}, server.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/api/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	_ = resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("Serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
