package markers

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	log "github.com/sirupsen/logrus"
)

const (
	TypeGoogleSheet = "gsheet"
	EnvGoogleAPIKey = "GOOGLEAPIKEY"

	DefaultSheetsEndpoint = "https://sheets.googleapis.com"
)

// Dimension names the cell ranges holding one dimension's players.
type Dimension struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Check    string `json:"check,omitempty"`
}

// SheetSpec is the `spreadsheet:` block of a render definition.
type SheetSpec struct {
	Type       string               `json:"type"`
	ID         string               `json:"id"`
	Key        string               `json:"key,omitempty"`
	Dimensions map[string]Dimension `json:"dimensions"`

	// Order lists the dimension names as written in the definition file.
	Order []string `json:"-"`
}

// GoogleSheet reads player positions through the Sheets v4 REST API.
type GoogleSheet struct {
	ID         string
	Key        string
	Dimensions map[string]Dimension
	Order      []string
	Endpoint   string
	Client     *http.Client
}

func NewGoogleSheet(spec *SheetSpec, key string) (*GoogleSheet, error) {
	if key == "" {
		return nil, ErrNoAPIKey
	}
	return &GoogleSheet{
		ID:         spec.ID,
		Key:        key,
		Dimensions: spec.Dimensions,
		Order:      spec.Order,
		Endpoint:   DefaultSheetsEndpoint,
		Client:     cleanhttp.DefaultClient(),
	}, nil
}

type sheetsResponse struct {
	Sheets []struct {
		Data []gridData `json:"data"`
	} `json:"sheets"`
}

type gridData struct {
	RowData []rowData `json:"rowData"`
}

type rowData struct {
	Values []cellData `json:"values"`
}

type cellData struct {
	FormattedValue    *string        `json:"formattedValue"`
	EffectiveValue    *extendedValue `json:"effectiveValue"`
	UserEnteredFormat *cellFormat    `json:"userEnteredFormat"`
}

type extendedValue struct {
	NumberValue *float64 `json:"numberValue"`
	BoolValue   *bool    `json:"boolValue"`
}

type cellFormat struct {
	TextFormat *struct {
		ForegroundColor *rgbColor `json:"foregroundColor"`
	} `json:"textFormat"`
}

type rgbColor struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

func (c *rgbColor) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", int(c.Red*255), int(c.Green*255), int(c.Blue*255))
}

func (c cellData) color() string {
	if c.UserEnteredFormat == nil || c.UserEnteredFormat.TextFormat == nil ||
		c.UserEnteredFormat.TextFormat.ForegroundColor == nil {
		return ""
	}
	return c.UserEnteredFormat.TextFormat.ForegroundColor.hex()
}

func (c cellData) number() (float64, bool) {
	if c.EffectiveValue == nil || c.EffectiveValue.NumberValue == nil {
		return 0, false
	}
	return *c.EffectiveValue.NumberValue, true
}

func (c cellData) checked() bool {
	if c.EffectiveValue != nil && c.EffectiveValue.BoolValue != nil {
		return *c.EffectiveValue.BoolValue
	}
	return c.FormattedValue != nil && strings.TrimSpace(*c.FormattedValue) != ""
}

// Whole block coordinates point at the block corner; move them to its centre.
func centreBlock(v float64) float64 {
	if v == math.Trunc(v) {
		return v + 0.5
	}
	return v
}

func formLocation(values []cellData) ([3]float64, error) {
	if len(values) != 3 {
		return [3]float64{}, fmt.Errorf("%w: got %d cells", ErrBadPosition, len(values))
	}
	x, ok := values[0].number()
	if !ok {
		return [3]float64{}, ErrBadPosition
	}
	y, _ := values[1].number()
	z, ok := values[2].number()
	if !ok {
		return [3]float64{}, ErrBadPosition
	}
	return [3]float64{centreBlock(x), y, centreBlock(z)}, nil
}

func (g *GoogleSheet) fetchRanges(ranges []string) (*sheetsResponse, error) {
	q := url.Values{}
	q.Set("key", g.Key)
	q.Set("includeGridData", "true")
	for _, r := range ranges {
		q.Add("ranges", r)
	}
	u := fmt.Sprintf("%s/v4/spreadsheets/%s?%s", strings.TrimRight(g.Endpoint, "/"), url.PathEscape(g.ID), q.Encode())
	res, err := g.Client.Get(u)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode/100 != 2 {
		return nil, fmt.Errorf("sheets request failed with status code %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	var out sheetsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// dimensionNames follows Order when it names every dimension, and falls back
// to sorted names otherwise.
func (g *GoogleSheet) dimensionNames() []string {
	if len(g.Order) == len(g.Dimensions) {
		ordered := true
		for _, name := range g.Order {
			if _, ok := g.Dimensions[name]; !ok {
				ordered = false
				break
			}
		}
		if ordered {
			return g.Order
		}
	}
	names := make([]string, 0, len(g.Dimensions))
	for name := range g.Dimensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *GoogleSheet) PlayerMarkers() ([]PlayerMarker, error) {
	markers := []PlayerMarker{}
	for _, dimName := range g.dimensionNames() {
		found, err := g.dimensionMarkers(g.Dimensions[dimName])
		if err != nil {
			return nil, fmt.Errorf("dimension %s: %w", dimName, err)
		}
		markers = append(markers, found...)
	}
	log.Infof("Found %d markers", len(markers))
	return markers, nil
}

func (g *GoogleSheet) dimensionMarkers(dim Dimension) ([]PlayerMarker, error) {
	ranges := []string{dim.Name, dim.Position}
	if dim.Check != "" {
		ranges = append(ranges, dim.Check)
	}
	data, err := g.fetchRanges(ranges)
	if err != nil {
		return nil, err
	}
	if len(data.Sheets) != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrUnexpectedSheets, len(data.Sheets))
	}
	grids := data.Sheets[0].Data
	if len(grids) != len(ranges) {
		return nil, fmt.Errorf("%w: asked for %d ranges, got %d", ErrUnexpectedSheets, len(ranges), len(grids))
	}
	nameRows, positionRows := grids[0].RowData, grids[1].RowData

	n := len(nameRows)
	if len(positionRows) < n {
		n = len(positionRows)
	}
	var checkRows []rowData
	if dim.Check != "" {
		checkRows = grids[2].RowData
		if len(checkRows) < n {
			n = len(checkRows)
		}
	}

	var out []PlayerMarker
	for i := 0; i < n; i++ {
		if positionRows[i].Values == nil {
			continue
		}
		pos, err := formLocation(positionRows[i].Values)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		name := "???"
		if vals := nameRows[i].Values; len(vals) > 0 && vals[0].FormattedValue != nil {
			name = *vals[0].FormattedValue
		}
		visible, color := true, ""
		if checkRows != nil {
			visible = false
			if vals := checkRows[i].Values; len(vals) > 0 {
				visible = vals[0].checked()
				color = vals[0].color()
			}
		}
		m := PlayerMarker{
			Name:        name,
			DimensionID: dim.ID,
			Position:    pos,
			Visible:     visible,
		}
		m.SetUUIDFromName()
		m.SetColor(color)
		out = append(out, m)
	}
	return out, nil
}
