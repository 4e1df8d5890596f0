// Package reliefweb is a thin client for the ReliefWeb v1 disasters API.
package reliefweb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/crisisdesk/disaster-response-api/internal/config"
)

// Document is the slice of the ReliefWeb response the dashboard consumes.
type Document struct {
	Data []Record `json:"data"`
}

type Record struct {
	ID     RecordID `json:"id"`
	Fields Fields   `json:"fields"`
}

// RecordID tolerates both the numeric and string id shapes upstream emits.
// One malformed id must not fail the whole document decode.
type RecordID string

func (id *RecordID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("record id must be a string or number: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

func (id RecordID) String() string {
	return string(id)
}

type Fields struct {
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Status         string      `json:"status"`
	Type           []NameField `json:"type"`
	Country        []NameField `json:"country"`
	PrimaryCountry NameField   `json:"primary_country"`
	Date           DateField   `json:"date"`
}

type NameField struct {
	Name string `json:"name"`
}

type DateField struct {
	Created time.Time `json:"created"`
}

// PrimaryType returns the first type name or "Unknown".
func (f Fields) PrimaryType() string {
	if len(f.Type) > 0 && f.Type[0].Name != "" {
		return f.Type[0].Name
	}
	return "Unknown"
}

// CountryName returns the first listed country, falling back to the primary
// country, then "Unknown".
func (f Fields) CountryName() string {
	if len(f.Country) > 0 && f.Country[0].Name != "" {
		return f.Country[0].Name
	}
	if f.PrimaryCountry.Name != "" {
		return f.PrimaryCountry.Name
	}
	return "Unknown"
}

type Client struct {
	cfg        config.ReliefWebConfig
	httpClient *http.Client
}

func NewClient(cfg config.ReliefWebConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchActive lists disasters currently in alert or ongoing status. Any
// transport failure or non-200 answer yields an empty document alongside the
// error so callers can degrade instead of failing the request.
func (c *Client) FetchActive(ctx context.Context) (Document, error) {
	params := url.Values{}
	params.Set("appname", c.cfg.AppName)
	params.Set("limit", fmt.Sprint(c.cfg.Limit))
	params.Set("preset", "latest")
	params.Set("profile", "full")
	for _, field := range []string{
		"name", "description", "country.name", "type.name",
		"status", "date.created", "primary_country.name",
	} {
		params.Add("fields[include][]", field)
	}
	params.Add("status[]", "alert")
	params.Add("status[]", "ongoing")

	return c.fetch(ctx, params)
}

func (c *Client) fetch(ctx context.Context, params url.Values) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"?"+params.Encode(), nil)
	if err != nil {
		return Document{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("error doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	return doc, nil
}
