package bibleapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetChapter(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"reference": "Genesis 1",
			"verses": [
				{"book_id": "GEN", "book_name": "Genesis", "chapter": 1, "verse": 1, "text": "In the beginning..."}
			],
			"text": "In the beginning...",
			"translation_id": "web",
			"translation_name": "World English Bible"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.GetChapter(context.Background(), "Genesis", 1, "web")
	if err != nil {
		t.Fatalf("GetChapter() error = %v", err)
	}

	if gotPath != "/Genesis+1" {
		t.Errorf("request path = %q, want %q", gotPath, "/Genesis+1")
	}
	if gotQuery != "translation=web" {
		t.Errorf("request query = %q, want %q", gotQuery, "translation=web")
	}
	if len(got.Verses) != 1 || got.Verses[0].Verse != 1 {
		t.Errorf("unexpected verses: %+v", got.Verses)
	}
	if got.TranslationId != "web" {
		t.Errorf("TranslationId = %q", got.TranslationId)
	}
}

func TestGetChapterNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetChapter(context.Background(), "Opinions", 1, "web")
	if !errors.Is(err, ErrReferenceNotFound) {
		t.Fatalf("error = %v, want ErrReferenceNotFound", err)
	}
}

func TestGetChapterUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error": "upstream unavailable"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetChapter(context.Background(), "Genesis", 1, "web")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrReferenceNotFound) {
		t.Fatalf("error = %v, should not be ErrReferenceNotFound", err)
	}
}
