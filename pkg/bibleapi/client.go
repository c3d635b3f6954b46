// Package bibleapi is a client for the public scripture text API
// (bible-api.com compatible): one GET per chapter, JSON in, JSON out.
package bibleapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrReferenceNotFound is returned when the API answers 404 for a reference.
var ErrReferenceNotFound = errors.New("reference not found")

// Verse is the wire shape of a single verse.
type Verse struct {
	BookId   string `json:"book_id"`
	BookName string `json:"book_name"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse"`
	Text     string `json:"text"`
}

// ChapterText is the API response for a whole chapter.
type ChapterText struct {
	Reference       string  `json:"reference"`
	Verses          []Verse `json:"verses"`
	Text            string  `json:"text"`
	TranslationId   string  `json:"translation_id"`
	TranslationName string  `json:"translation_name"`
}

type apiError struct {
	Error string `json:"error"`
}

type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetChapter fetches every verse of (book, chapter) in the given translation.
func (c *Client) GetChapter(ctx context.Context, book string, chapter int, translation string) (*ChapterText, error) {
	// The API takes references like "Genesis+1" or "1+John+3".
	reference := url.QueryEscape(fmt.Sprintf("%s %d", book, chapter))
	endpoint := fmt.Sprintf("%s/%s?translation=%s", c.BaseURL, reference, url.QueryEscape(translation))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	res, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("text api request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrReferenceNotFound
	}
	if res.StatusCode != http.StatusOK {
		var ae apiError
		if jsonErr := json.Unmarshal(body, &ae); jsonErr == nil && ae.Error != "" {
			return nil, fmt.Errorf("text api error, status %d: %s", res.StatusCode, ae.Error)
		}
		return nil, fmt.Errorf("text api error, status %d: %s", res.StatusCode, string(body))
	}

	var chapterText ChapterText
	if err := json.Unmarshal(body, &chapterText); err != nil {
		return nil, fmt.Errorf("decode chapter: %w", err)
	}
	return &chapterText, nil
}
