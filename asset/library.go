package asset

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Item ids of the default manifest
const (
	AtlasTree   = "tree.atlas"
	AtlasPlayer = "player/player.atlas"
	ThemeFile   = "ui/theme.toml"
)

// CursorIDs lists the selectable cursor glyph sets, the first is installed after loading
var CursorIDs = []string{
	"ui/cursor1.atlas",
	"ui/cursor2.atlas",
	"ui/cursor3.atlas",
	"ui/cursor4.atlas",
}

// DefaultCursor is used until a cursor asset is installed
const DefaultCursor = ">"

var (
	ErrEmptyAtlas    = errors.New("atlas has no frames")
	ErrUnknownFormat = errors.New("unknown asset format")
)

//go:embed data
var embedded embed.FS

//go:embed states.toml
var DefaultStateBindings string

// DefaultFS returns the embedded asset tree
func DefaultFS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Manifest returns every item loaded during the Loading state
func Manifest() []string {
	ids := []string{AtlasTree, AtlasPlayer, ThemeFile}
	return append(ids, CursorIDs...)
}

// Atlas is a set of indexed text frames
type Atlas struct {
	Frames map[int][]string
	Width  int
	Height int
}

// Frame returns the rows of frame i
func (a *Atlas) Frame(i int) ([]string, bool) {
	rows, ok := a.Frames[i]
	return rows, ok
}

// Indexes returns the frame indexes in ascending order
func (a *Atlas) Indexes() []int {
	out := make([]int, 0, len(a.Frames))
	for i := range a.Frames {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// atlasFile is the TOML layout of an atlas, one [[frame]] table per frame
type atlasFile struct {
	Frames []atlasFrame `toml:"frame"`
}

type atlasFrame struct {
	Index *int   `toml:"index"`
	Rows  string `toml:"rows"`
}

// ParseAtlas decodes [[frame]] tables holding an index and multi-line literal rows
// Spaces inside rows are kept, trailing blank rows are dropped
func ParseAtlas(data []byte) (*Atlas, error) {
	var f atlasFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, decodeError("atlas", err)
	}
	if len(f.Frames) == 0 {
		return nil, ErrEmptyAtlas
	}

	a := &Atlas{Frames: make(map[int][]string, len(f.Frames))}
	for i, fr := range f.Frames {
		if fr.Index == nil {
			return nil, fmt.Errorf("atlas: frame #%d has no index", i)
		}
		n := *fr.Index
		if n < 0 {
			return nil, fmt.Errorf("atlas: frame #%d: bad frame index %d", i, n)
		}
		if _, dup := a.Frames[n]; dup {
			return nil, fmt.Errorf("atlas: duplicate frame %d", n)
		}

		rows := strings.Split(strings.ReplaceAll(fr.Rows, "\r\n", "\n"), "\n")
		for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
			rows = rows[:len(rows)-1]
		}
		a.Frames[n] = rows
		a.Height = max(a.Height, len(rows))
		for _, r := range rows {
			a.Width = max(a.Width, len([]rune(r)))
		}
	}
	return a, nil
}

// decodeError reports strict-mode unknown keys with their location
func decodeError(kind string, err error) error {
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		return fmt.Errorf("%s: %s", kind, strict.String())
	}
	return fmt.Errorf("%s: %w", kind, err)
}

// Theme names the palette used by the renderer, values are color names or #rrggbb
type Theme struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Accent     string `toml:"accent"`
	Highlight  string `toml:"highlight"`
	Dim        string `toml:"dim"`
	Ground     string `toml:"ground"`
}

// DefaultTheme is used until the theme asset is loaded
func DefaultTheme() Theme {
	return Theme{
		Background: "black",
		Foreground: "white",
		Accent:     "green",
		Highlight:  "yellow",
		Dim:        "gray",
		Ground:     "darkgreen",
	}
}

// ParseTheme decodes a theme, unset keys keep their defaults
func ParseTheme(data []byte) (Theme, error) {
	th := DefaultTheme()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&th); err != nil {
		return th, decodeError("theme", err)
	}
	return th, nil
}

// Library holds decoded assets, it is a game resource read by systems and the renderer
type Library struct {
	Atlases map[string]*Atlas
	Theme   Theme
	Cursor  string
}

// NewLibrary creates an empty library with default theme and cursor
func NewLibrary() *Library {
	return &Library{
		Atlases: make(map[string]*Atlas),
		Theme:   DefaultTheme(),
		Cursor:  DefaultCursor,
	}
}

// Add decodes data by file extension and stores it under id
func (l *Library) Add(id string, data []byte) error {
	switch path.Ext(id) {
	case ".atlas":
		a, err := ParseAtlas(data)
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		l.Atlases[id] = a
	case ".toml":
		th, err := ParseTheme(data)
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		l.Theme = th
	default:
		return fmt.Errorf("%s: %w", id, ErrUnknownFormat)
	}
	return nil
}

// Atlas returns a decoded atlas
func (l *Library) Atlas(id string) (*Atlas, bool) {
	a, ok := l.Atlases[id]
	return a, ok
}

// InstallCursor uses the first row of the first loaded cursor atlas as the menu cursor
func (l *Library) InstallCursor() bool {
	for _, id := range CursorIDs {
		a, ok := l.Atlases[id]
		if !ok {
			continue
		}
		idx := a.Indexes()
		if rows, _ := a.Frame(idx[0]); len(rows) > 0 && strings.TrimSpace(rows[0]) != "" {
			l.Cursor = strings.TrimSpace(rows[0])
			return true
		}
	}
	return false
}
