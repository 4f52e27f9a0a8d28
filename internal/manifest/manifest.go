// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/invowk/grouprun/pkg/cueutil"
)

// DefaultFileName is the manifest looked up at the discovery root.
const DefaultFileName = "commands.cue"

var (
	//go:embed manifest_schema.cue
	schema []byte

	// ErrManifestNotFound is returned by Load when the file does not exist.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrUnsupportedFormat is returned for extensions other than .cue, .json and .toml.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")

	alternates = []string{"commands.json", "commands.toml"}
)

type (
	// Manifest is a loaded description store.
	Manifest struct {
		Groups []GroupEntry `json:"groups" toml:"groups"`

		path  string
		index map[string]map[string]string
	}

	// GroupEntry lists the described commands of one group.
	GroupEntry struct {
		Name     string         `json:"name" toml:"name"`
		Commands []CommandEntry `json:"commands" toml:"commands"`
	}

	// CommandEntry is one description.
	CommandEntry struct {
		Name        string `json:"name" toml:"name"`
		Description string `json:"description" toml:"description"`
	}
)

// Empty returns a manifest that describes nothing.
func Empty() *Manifest {
	return &Manifest{index: map[string]map[string]string{}}
}

// Locate returns the manifest path for root. A relative name is taken
// relative to root. When name is the default and does not exist, the JSON
// and TOML alternates are tried in turn; the default path is returned if
// none exists.
func Locate(root, name string) string {
	if name == "" {
		name = DefaultFileName
	}
	if filepath.IsAbs(name) {
		return name
	}
	path := filepath.Join(root, name)
	if name != DefaultFileName || exists(path) {
		return path
	}
	for _, alt := range alternates {
		if candidate := filepath.Join(root, alt); exists(candidate) {
			return candidate
		}
	}
	return path
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m *Manifest
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue", ".json":
		m, err = cueutil.Decode[Manifest](schema, "#Manifest", data, cueutil.WithFilename(path))
	case ".toml":
		m, err = decodeTOML(path, data)
	default:
		return nil, fmt.Errorf("%w %q: %s", ErrUnsupportedFormat, ext, path)
	}
	if err != nil {
		return nil, err
	}

	m.path = path
	if err := m.buildIndex(); err != nil {
		return nil, err
	}
	return m, nil
}

// Path returns the file the manifest was loaded from; empty for Empty().
func (m *Manifest) Path() string { return m.path }

// Describe returns the description of command in group.
func (m *Manifest) Describe(group, command string) (string, bool) {
	if m == nil {
		return "", false
	}
	d, ok := m.index[group][command]
	return d, ok
}

// Len returns the number of described commands.
func (m *Manifest) Len() int {
	n := 0
	for _, cmds := range m.index {
		n += len(cmds)
	}
	return n
}

// buildIndex rejects duplicate groups and duplicate commands within a group.
// TOML input reaches this point without schema checks, so names are checked too.
func (m *Manifest) buildIndex() error {
	m.index = make(map[string]map[string]string, len(m.Groups))
	var issues []cueutil.Issue

	for gi, g := range m.Groups {
		at := fmt.Sprintf("groups[%d]", gi)
		if strings.TrimSpace(g.Name) == "" {
			issues = append(issues, cueutil.Issue{Path: at + ".name", Message: "group name must not be empty"})
			continue
		}
		if _, dup := m.index[g.Name]; dup {
			issues = append(issues, cueutil.Issue{Path: at + ".name", Message: fmt.Sprintf("group %q listed more than once", g.Name)})
			continue
		}
		cmds := make(map[string]string, len(g.Commands))
		for ci, c := range g.Commands {
			cat := fmt.Sprintf("%s.commands[%d].name", at, ci)
			if c.Name == "" {
				issues = append(issues, cueutil.Issue{Path: cat, Message: "command name must not be empty"})
				continue
			}
			if _, dup := cmds[c.Name]; dup {
				issues = append(issues, cueutil.Issue{Path: cat, Message: fmt.Sprintf("command %q listed more than once", c.Name)})
				continue
			}
			cmds[c.Name] = c.Description
		}
		m.index[g.Name] = cmds
	}

	if len(issues) > 0 {
		return &cueutil.DocumentError{File: m.path, Issues: issues}
	}
	return nil
}

func decodeTOML(path string, data []byte) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			row, col := decErr.Position()
			return nil, &cueutil.DocumentError{File: path, Issues: []cueutil.Issue{{
				Path:    strings.Join(decErr.Key(), "."),
				Message: fmt.Sprintf("%s (line %d, column %d)", decErr.Error(), row, col),
			}}}
		}
		return nil, &cueutil.DocumentError{File: path, Issues: []cueutil.Issue{{Message: err.Error()}}}
	}
	return &m, nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
