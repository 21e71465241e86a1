package utils

import (
	"encoding/json"
	"fmt"
	"time"

	"gamelearn/config"

	"github.com/go-resty/resty/v2"
	"gorm.io/datatypes"
)

// ResolveContentRef expands a content reference for delivery. Inline
// text is returned as-is; a reference carrying a "url" field is fetched
// from the external content host and returned as inline text. The
// original reference is returned unchanged when the fetch fails, so a
// flaky content host never breaks the sections listing.
func ResolveContentRef(ref datatypes.JSON) (datatypes.JSON, error) {
	if len(ref) == 0 {
		return ref, nil
	}

	var parsed struct {
		Text string `json:"text"`
		URL  string `json:"url"`
	}
	if err := json.Unmarshal(ref, &parsed); err != nil || parsed.URL == "" {
		return ref, nil
	}

	text, err := fetchExternalContent(parsed.URL)
	if err != nil {
		return ref, err
	}

	resolved, err := json.Marshal(map[string]string{"text": text, "source": parsed.URL})
	if err != nil {
		return ref, err
	}
	return datatypes.JSON(resolved), nil
}

// fetchExternalContent pulls content text from an external host
func fetchExternalContent(url string) (string, error) {
	client := resty.New().
		SetTimeout(time.Duration(config.AppConfig.ContentFetchTimeout) * time.Second)

	resp, err := client.R().Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %v", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("content host returned %d", resp.StatusCode())
	}

	return resp.String(), nil
}
