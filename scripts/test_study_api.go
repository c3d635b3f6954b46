package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout; chapter assembly can take a while
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func decode(body []byte) map[string]interface{} {
	var out map[string]interface{}
	json.Unmarshal(body, &out)
	return out
}

func main() {
	color.Cyan("🚀 Starting Study API Walkthrough\n")

	email := os.Getenv("TEST_EMAIL")
	password := os.Getenv("TEST_PASSWORD")
	if email == "" || password == "" {
		color.Red("Set TEST_EMAIL and TEST_PASSWORD first")
		os.Exit(1)
	}

	// 1. Sign In
	color.Yellow("\n[AUTH] 1. Sign In")
	resp, body, err := sendRequest("POST", "/auth/v1/signin", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	signInResp := decode(body)
	prettyPrint(signInResp)

	var token string
	if data, ok := signInResp["data"].(map[string]interface{}); ok {
		token, _ = data["access_token"].(string)
	}
	if token == "" {
		color.Red("No access token in response, aborting")
		os.Exit(1)
	}

	// 2. Get Profile
	color.Yellow("\n[PROFILE] 2. Get Profile")
	resp, body, err = sendRequest("GET", "/profile/v1", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 3. Read-Through Position
	color.Yellow("\n[PROFILE] 3. Read-Through Position")
	resp, body, err = sendRequest("GET", "/profile/v1/read-through", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 4. Fetch a Chapter (first call assembles, second call hits the cache)
	color.Yellow("\n[STUDY] 4. Fetch Genesis 1 (cold)")
	resp, body, err = sendRequest("GET", "/study/v1/chapter?book=Genesis&chapter=1", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	chapterResp := decode(body)
	if data, ok := chapterResp["data"].(map[string]interface{}); ok {
		color.Green("cache_key: %v cached: %v", data["cache_key"], data["cached"])
	}

	color.Yellow("\n[STUDY] 5. Fetch Genesis 1 again (should be cached)")
	resp, body, err = sendRequest("GET", "/study/v1/chapter?book=Genesis&chapter=1", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	if data, ok := decode(body)["data"].(map[string]interface{}); ok {
		color.Green("cached: %v", data["cached"])
	}

	// 6. Toggle Bookmark
	color.Yellow("\n[PROFILE] 6. Toggle Bookmark on Genesis 1")
	resp, body, err = sendRequest("POST", "/profile/v1/bookmarks/toggle", token, map[string]interface{}{
		"book":    "Genesis",
		"chapter": 1,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 7. Save a Note
	color.Yellow("\n[PROFILE] 7. Save Note on Genesis 1")
	resp, body, err = sendRequest("PUT", "/profile/v1/notes", token, map[string]interface{}{
		"book":    "Genesis",
		"chapter": 1,
		"text":    "In the beginning.",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 8. Mark Completed (advances read-through when on plan)
	color.Yellow("\n[PROFILE] 8. Toggle Completed on Genesis 1")
	resp, body, err = sendRequest("POST", "/profile/v1/completed/toggle", token, map[string]interface{}{
		"book":    "Genesis",
		"chapter": 1,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 9. Start a Chat Session
	color.Yellow("\n[CHAT] 9. Start Chat Session on Genesis 1")
	resp, body, err = sendRequest("POST", "/chat/v1/session", token, map[string]interface{}{
		"book":    "Genesis",
		"chapter": 1,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	color.Cyan("\n✅ Walkthrough finished")
}
