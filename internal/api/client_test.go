package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestClientAttachesBearerToken(t *testing.T) {
	t.Parallel()
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL, staticTokens("tok-abc"))
	if _, err := client.ListExercises(context.Background()); err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("Authorization header %q, want %q", gotAuth, "Bearer tok-abc")
	}
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	t.Parallel()
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL, staticTokens(""))
	if _, err := client.ListExercises(context.Background()); err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClientReturnsAPIErrorForNon2xx(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer server.Close()

	client := New(server.URL, nil)
	_, err := client.ListSessions(context.Background(), 7)
	if err == nil {
		t.Fatal("expected an error for a 401 response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", apiErr.Status)
	}
	if apiErr.Message != "token expired" {
		t.Fatalf("message %q, want %q", apiErr.Message, "token expired")
	}
}

func TestClientReturnsDecodeErrorForMalformedBody(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>proxy error page</html>`))
	}))
	defer server.Close()

	client := New(server.URL, nil)
	_, err := client.ListPlans(context.Background())
	if err == nil {
		t.Fatal("expected an error for a non-JSON 200 body")
	}
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
	if decErr.Op != "list plans" {
		t.Fatalf("operation %q, want %q", decErr.Op, "list plans")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatal("a decode failure must not be classified as an API error")
	}
}

func TestGetSummarySendsKeyAsQuery(t *testing.T) {
	t.Parallel()
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"user_id":      q.Get("user_id"),
			"period_type":  q.Get("period_type"),
			"period_start": q.Get("period_start"),
		}
		w.Write([]byte(`{"total_workouts":3,"dailyData":[{"date":"2025-06-01","calories":1800}]}`))
	}))
	defer server.Close()

	client := New(server.URL, nil)
	key := SummaryKey{UserID: 7, PeriodType: PeriodMonthly, PeriodStart: "2025-06-01"}
	summary, err := client.GetSummary(context.Background(), key)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if gotQuery["user_id"] != "7" || gotQuery["period_type"] != "monthly" || gotQuery["period_start"] != "2025-06-01" {
		t.Fatalf("unexpected query parameters: %v", gotQuery)
	}
	if summary.TotalWorkouts != 3 {
		t.Fatalf("TotalWorkouts %d, want 3", summary.TotalWorkouts)
	}
	if len(summary.DailyData) != 1 || summary.DailyData[0].Calories != 1800 {
		t.Fatalf("unexpected daily data: %+v", summary.DailyData)
	}
}

func TestGenerateSummaryPostsKey(t *testing.T) {
	t.Parallel()
	var gotMethod, gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{"message":"Summary generated"}`))
	}))
	defer server.Close()

	client := New(server.URL, nil)
	key := SummaryKey{UserID: 7, PeriodType: PeriodDaily, PeriodStart: "2025-06-15"}
	if _, err := client.GenerateSummary(context.Background(), key); err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/summary/generate" {
		t.Fatalf("got %s %s, want POST /summary/generate", gotMethod, gotPath)
	}
	want := `{"user_id":7,"period_type":"daily","period_start":"2025-06-15"}`
	if gotBody != want {
		t.Fatalf("body %s, want %s", gotBody, want)
	}
}

func TestBaseURLFallsBackToDefault(t *testing.T) {
	t.Parallel()
	client := &Client{}
	if got := client.baseURL(); got != DefaultBaseURL {
		t.Fatalf("baseURL %q, want %q", got, DefaultBaseURL)
	}
	client.BaseURL = "http://example.com/api/"
	if got := client.baseURL(); got != "http://example.com/api" {
		t.Fatalf("trailing slash should be trimmed, got %q", got)
	}
}
