package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

//go:embed songs.json
var builtin []byte

var ErrDuplicateID = errors.New("duplicate song id")

type Song struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	ImageURL string `json:"imageUrl"`
	AudioURL string `json:"audioUrl"`
	Lyrics   string `json:"lyrics"`
	Comment  string `json:"comment"`
}

// Catalog is the ordered, read-only list of songs shown on the playlist grid.
type Catalog struct {
	songs []Song
	byID  map[int]int
}

// Default returns the built-in gift playlist.
func Default() (*Catalog, error) {
	return Parse(builtin)
}

// Load reads a catalog override from a JSON file. An empty path falls back
// to the built-in playlist.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var songs []Song
	if err := json.Unmarshal(data, &songs); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return New(songs)
}

func New(songs []Song) (*Catalog, error) {
	c := &Catalog{
		songs: make([]Song, len(songs)),
		byID:  make(map[int]int, len(songs)),
	}
	copy(c.songs, songs)
	for i, song := range c.songs {
		if _, ok := c.byID[song.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, song.ID)
		}
		c.byID[song.ID] = i
	}
	return c, nil
}

// Songs returns a copy so callers cannot mutate the catalog.
func (c *Catalog) Songs() []Song {
	out := make([]Song, len(c.songs))
	copy(out, c.songs)
	return out
}

func (c *Catalog) Len() int {
	return len(c.songs)
}

func (c *Catalog) Find(id int) (Song, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Song{}, false
	}
	return c.songs[i], true
}
