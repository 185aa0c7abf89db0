package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	TypeDiscord = "discord"

	// TimeFile is written by PapyrusCs on every render; its mtime dates the
	// map update.
	TimeFile = "chunks.sqlite"
)

var ErrPushFailed = errors.New("webhook push failed")

// DiscordSpec is the `webhook:` block of a render definition.
type DiscordSpec struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	Link string `json:"link"`
}

type Embed struct {
	Title     string `json:"title"`
	URL       string `json:"url,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

type message struct {
	Embeds []Embed `json:"embeds"`
}

// Discord announces map updates to a Discord channel webhook.
type Discord struct {
	URL    string
	Link   string
	Client *retryablehttp.Client
}

func NewDiscord(url, link string) *Discord {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil
	return &Discord{URL: url, Link: link, Client: client}
}

func (d *Discord) String() string {
	return fmt.Sprintf("discord webhook -> %s", d.Link)
}

// Embed builds the announcement for the map rendered into dest.
func (d *Discord) Embed(dest string) Embed {
	embed := Embed{Title: "Map updated!", URL: d.Link}
	if info, err := os.Stat(filepath.Join(dest, TimeFile)); err == nil {
		embed.Timestamp = info.ModTime().UTC().Format(time.RFC3339)
	}
	return embed
}

func (d *Discord) Push(dest string) error {
	body, err := json.Marshal(message{Embeds: []Embed{d.Embed(dest)}})
	if err != nil {
		return err
	}
	req, err := retryablehttp.NewRequest(http.MethodPost, d.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := d.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPushFailed, err)
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("%w: status code %d: %s", ErrPushFailed, res.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}
