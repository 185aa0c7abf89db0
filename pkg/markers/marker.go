package markers

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var DefaultColors = []string{
	"#0000AA",
	"#00AA00",
	"#00AAAA",
	"#AA0000",
	"#AA00AA",
	"#FFAA00",
	"#5555FF",
	"#55FF55",
	"#55FFFF",
	"#FF5555",
	"#FF55FF",
	"#FFFF55",
}

const PlayersDataFile = "playersData.js"

// PlayerMarker is one entry of the map's playersData.js.
type PlayerMarker struct {
	UUID        string     `json:"uuid"`
	Name        string     `json:"name"`
	DimensionID int        `json:"dimensionId"`
	Position    [3]float64 `json:"position"`
	Color       string     `json:"color"`
	Visible     bool       `json:"visible"`
}

func NewPlayerMarker() *PlayerMarker {
	return &PlayerMarker{
		UUID:    uuid.New().String(),
		Color:   "#ffffff",
		Visible: true,
	}
}

func (m *PlayerMarker) hash() [md5.Size]byte {
	key := m.Name
	if key == "" {
		key = m.UUID
	}
	return md5.Sum([]byte(key))
}

// SetColor sets color, or picks a stable palette entry from the marker's
// name when color is empty.
func (m *PlayerMarker) SetColor(color string) {
	if color == "" {
		sum := m.hash()
		n := new(big.Int).SetBytes(sum[:])
		idx := n.Mod(n, big.NewInt(int64(len(DefaultColors)))).Int64()
		color = DefaultColors[idx]
	}
	m.Color = color
}

// SetUUIDFromName derives a stable UUID so a player keeps its identity
// between renders.
func (m *PlayerMarker) SetUUIDFromName() {
	sum := m.hash()
	id, err := uuid.FromBytes(sum[:])
	if err != nil {
		panic(err)
	}
	m.UUID = id.String()
}

// Source produces the markers for one definition.
type Source interface {
	PlayerMarkers() ([]PlayerMarker, error)
}

func PlayersDataPath(dest string) string {
	return filepath.Join(dest, "map", PlayersDataFile)
}

// WritePlayersData writes <dest>/map/playersData.js.
func WritePlayersData(dest string, markers []PlayerMarker) error {
	if markers == nil {
		markers = []PlayerMarker{}
	}
	var buf bytes.Buffer
	buf.WriteString("var playersData = ")
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string][]PlayerMarker{"players": markers}); err != nil {
		return err
	}
	path := PlayersDataPath(dest)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, bytes.TrimRight(buf.Bytes(), "\n"), 0644)
}
