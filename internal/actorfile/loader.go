// Package actorfile reads and writes actor documents on disk. JSON and YAML
// are both accepted; YAML is converted to the JSON shape the host uses.
package actorfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
)

// Supported document formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Loader reads actor documents from a filesystem
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader over fs. A nil fs uses the OS filesystem.
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// FormatOf picks the document format from the file extension
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.InvalidArgumentf("unsupported actor file %s: want .json, .yaml or .yml", path)
	}
}

// Load reads and decodes the actor at path
func (l *Loader) Load(path string) (*bfrpg.Actor, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("actor file %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read actor file %s", path)
	}

	return Decode(format, data)
}

// Decode parses an actor document in the given format
func Decode(format string, data []byte) (*bfrpg.Actor, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	actor := &bfrpg.Actor{}
	if err := json.Unmarshal(data, actor); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode actor")
	}
	return actor, nil
}

// Save writes the actor to path in the format its extension names. An
// existing file is updated in place with Merge, so fields outside the actor
// model survive.
func (l *Loader) Save(path string, actor *bfrpg.Actor) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	existing, err := afero.ReadFile(l.fs, path)
	switch {
	case err == nil:
		data, err = Merge(format, existing, actor)
	case os.IsNotExist(err):
		data, err = Encode(format, actor)
	default:
		return errors.Wrapf(err, "failed to read actor file %s", path)
	}
	if err != nil {
		return err
	}

	if err := l.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := afero.WriteFile(l.fs, path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write actor file %s", path)
	}
	return nil
}

// Encode renders an actor document in the given format
func Encode(format string, actor *bfrpg.Actor) ([]byte, error) {
	data, err := json.MarshalIndent(actor, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode actor %s", actor.ID)
	}
	if format != FormatYAML {
		return append(data, '\n'), nil
	}

	return jsonToYAML(data, actor.ID)
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse yaml")
	}

	out, err := json.Marshal(normalize(doc))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to convert yaml")
	}
	return out, nil
}

// normalize turns YAML maps into string-keyed maps so they encode as JSON
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	default:
		return v
	}
}
