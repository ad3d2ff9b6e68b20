package main

import (
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/petstore-client/internal/domain"
	"github.com/samvad-hq/petstore-client/pkg/petstore"
)

// buildArgs turns name=value pairs into typed arguments for op.
func buildArgs(op petstore.Operation, raw []string) (petstore.Args, error) {
	params := make(map[string]petstore.ParamSpec, len(op.Params))
	for _, p := range op.Params {
		params[p.Name] = p
	}

	args := petstore.Args{}
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("parameter %q is not name=value", kv)
		}
		param, known := params[name]
		if !known {
			return nil, fmt.Errorf("operation %s has no parameter %q", op.ID, name)
		}

		v, err := argValue(param, value)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", name, err)
		}
		args[name] = v
	}
	return args, nil
}

func argValue(param petstore.ParamSpec, value string) (any, error) {
	switch {
	case param.In == petstore.InBody:
		raw, err := readMaybeFile(value)
		if err != nil {
			return nil, err
		}
		var pet domain.Pet
		if err := json.Unmarshal(raw, &pet); err != nil {
			return nil, fmt.Errorf("decode pet: %w", err)
		}
		return &pet, nil
	case param.In == petstore.InFile:
		path := strings.TrimPrefix(value, "@")
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return petstore.FileData{
			Name:        filepath.Base(path),
			Content:     content,
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
		}, nil
	case param.CollectionFormat != "":
		var values []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
		if values == nil {
			values = []string{}
		}
		return values, nil
	default:
		return value, nil
	}
}

// readMaybeFile returns the contents of the named file for "@path", else the value itself.
func readMaybeFile(value string) ([]byte, error) {
	if path, ok := strings.CutPrefix(value, "@"); ok {
		return os.ReadFile(path)
	}
	return []byte(value), nil
}
