package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const profilesTable = "profiles"

type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SelectProfileRow fetches a single profile row by id. A row that does not
// exist (yet) maps to ErrRowNotFound so callers can distinguish replication
// lag from real failures.
func (c *Client) SelectProfileRow(ctx context.Context, id string) (map[string]interface{}, error) {
	path := fmt.Sprintf("/rest/v1/%s?id=eq.%s&select=*", profilesTable, url.QueryEscape(id))
	headers := map[string]string{"Accept": "application/vnd.pgrst.object+json"}

	status, body, err := c.do(ctx, http.MethodGet, path, "", nil, headers)
	if err != nil {
		return nil, err
	}

	// PostgREST answers 406 when the single-object representation matches
	// zero rows; some proxies surface it as PGRST116 in the body instead.
	if status == http.StatusNotAcceptable {
		return nil, ErrRowNotFound
	}
	if status != http.StatusOK {
		var pe postgrestError
		if jsonErr := json.Unmarshal(body, &pe); jsonErr == nil {
			if pe.Code == "PGRST116" {
				return nil, ErrRowNotFound
			}
			return nil, fmt.Errorf("select profile failed, status %d: %s", status, pe.Message)
		}
		return nil, fmt.Errorf("select profile failed, status %d: %s", status, string(body))
	}

	var row map[string]interface{}
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, fmt.Errorf("decode profile row: %w", err)
	}
	return row, nil
}

// InsertProfileRow creates a profile row, returning the stored row. A
// uniqueness violation maps to ErrConflict.
func (c *Client) InsertProfileRow(ctx context.Context, row map[string]interface{}) (map[string]interface{}, error) {
	path := fmt.Sprintf("/rest/v1/%s", profilesTable)
	headers := map[string]string{"Prefer": "return=representation"}

	status, body, err := c.do(ctx, http.MethodPost, path, "", row, headers)
	if err != nil {
		return nil, err
	}

	if status == http.StatusConflict {
		return nil, ErrConflict
	}
	if status != http.StatusCreated && status != http.StatusOK {
		var pe postgrestError
		if jsonErr := json.Unmarshal(body, &pe); jsonErr == nil {
			// 23505 is the postgres unique-violation code.
			if pe.Code == "23505" || strings.Contains(pe.Message, "duplicate key") {
				return nil, ErrConflict
			}
			return nil, fmt.Errorf("insert profile failed, status %d: %s", status, pe.Message)
		}
		return nil, fmt.Errorf("insert profile failed, status %d: %s", status, string(body))
	}

	// return=representation yields an array with the single inserted row.
	var rows []map[string]interface{}
	if err := json.Unmarshal(body, &rows); err != nil || len(rows) == 0 {
		var single map[string]interface{}
		if err := json.Unmarshal(body, &single); err == nil {
			return single, nil
		}
		return nil, fmt.Errorf("decode inserted profile row: %s", string(body))
	}
	return rows[0], nil
}

// UpdateProfileRow applies a partial patch to a profile row. The patch keys
// are wire field names produced by the profile mapper; absent fields are left
// untouched by PostgREST.
func (c *Client) UpdateProfileRow(ctx context.Context, id string, patch map[string]interface{}) error {
	path := fmt.Sprintf("/rest/v1/%s?id=eq.%s", profilesTable, url.QueryEscape(id))

	status, body, err := c.do(ctx, http.MethodPatch, path, "", patch, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent && status != http.StatusOK {
		return fmt.Errorf("update profile failed, status %d: %s", status, string(body))
	}
	return nil
}
