package actorfile

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
)

// Merge writes the actor onto an existing document. Only values the actor
// model changed are rewritten; keys it does not know about, and values it
// reads but leaves alone, keep their stored form.
func Merge(format string, existing []byte, actor *bfrpg.Actor) ([]byte, error) {
	doc := existing
	if format == FormatYAML {
		converted, err := yamlToJSON(existing)
		if err != nil {
			return nil, err
		}
		doc = converted
	}

	stored := &bfrpg.Actor{}
	if err := json.Unmarshal(doc, stored); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode stored actor")
	}
	base, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode stored actor %s", stored.ID)
	}
	current, err := json.Marshal(actor)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode actor %s", actor.ID)
	}

	patched, err := patchValue(doc, "", gjson.ParseBytes(base), gjson.ParseBytes(current))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update actor %s", actor.ID)
	}

	if format == FormatYAML {
		return jsonToYAML(patched, actor.ID)
	}
	return pretty.Pretty(patched), nil
}

// patchValue sets every leaf of current that differs from base onto doc
func patchValue(doc []byte, path string, base, current gjson.Result) ([]byte, error) {
	var err error
	switch {
	case current.IsObject() && base.IsObject():
		old, now := base.Map(), current.Map()
		current.ForEach(func(key, value gjson.Result) bool {
			doc, err = patchValue(doc, joinPath(path, objectKey(key.String())), old[key.String()], value)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
		for key := range old {
			if _, ok := now[key]; ok {
				continue
			}
			if doc, err = sjson.DeleteBytes(doc, joinPath(path, objectKey(key))); err != nil {
				return nil, err
			}
		}
		return doc, nil

	case current.IsArray() && base.IsArray() && len(current.Array()) == len(base.Array()):
		old := base.Array()
		for i, value := range current.Array() {
			if doc, err = patchValue(doc, joinPath(path, strconv.Itoa(i)), old[i], value); err != nil {
				return nil, err
			}
		}
		return doc, nil
	}

	if base.Exists() && base.Raw == current.Raw {
		return doc, nil
	}
	if path == "" {
		return []byte(current.Raw), nil
	}
	return sjson.SetRawBytes(doc, path, []byte(current.Raw))
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// objectKey escapes a key for an sjson path. All-digit keys get the ":"
// prefix so they address an object member rather than an array index.
func objectKey(key string) string {
	escaped := escapeKey(key)
	if key != "" && strings.Trim(key, "0123456789") == "" {
		return ":" + escaped
	}
	return escaped
}

func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		if strings.ContainsRune(`\.*?|#@!=<>%:`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func jsonToYAML(data []byte, id string) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to encode actor %s", id)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode actor %s as yaml", id)
	}
	return out, nil
}
