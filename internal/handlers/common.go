// common.go
//
// Content and media service for the Single Tea India website
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of singletea-api.
// singletea-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// singletea-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with singletea-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"encoding/json"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/singletea-api/internal/types"
)

// form holds the fields of a multipart, urlencoded or JSON request body.
// JSON arrays and objects are kept as their encoded text so every client shape
// goes through the same parsing.
type form struct {
	values map[string][]string
	files  map[string][]*multipart.FileHeader
}

func readForm(c *fiber.Ctx) (*form, error) {
	f := &form{values: map[string][]string{}, files: map[string][]*multipart.FileHeader{}}
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		mf, err := c.MultipartForm()
		if err != nil {
			return nil, types.NewValidationError("Invalid multipart form")
		}
		f.values = mf.Value
		f.files = mf.File

	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		if len(c.Body()) == 0 {
			return f, nil
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(c.Body(), &raw); err != nil {
			return nil, types.NewValidationError("Invalid JSON body")
		}
		for k, v := range raw {
			var s string
			if err := json.Unmarshal(v, &s); err == nil {
				f.values[k] = []string{s}
			} else if string(v) != "null" {
				f.values[k] = []string{string(v)}
			}
		}

	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			key := string(k)
			f.values[key] = append(f.values[key], string(v))
		})
	}
	return f, nil
}

// str returns the first value of key, or nil when the field is absent
func (f *form) str(key string) *string {
	vals, ok := f.values[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

func (f *form) has(key string) bool {
	_, ok := f.values[key]
	return ok
}

func (f *form) fileList(key string) []*multipart.FileHeader {
	return f.files[key]
}

// stringList reads a list field sent either as repeated values, a JSON encoded
// array or a single plain value. Nil means the field was absent.
func (f *form) stringList(key string) (*[]string, error) {
	vals, ok := f.values[key]
	if !ok {
		return nil, nil
	}
	if len(vals) != 1 {
		out := append([]string{}, vals...)
		return &out, nil
	}
	v := strings.TrimSpace(vals[0])
	if v != "" && v[0] != '[' && v[0] != '"' {
		out := []string{v}
		return &out, nil
	}
	list, err := types.ParseFlexList[string](v)
	if err != nil {
		return nil, types.NewValidationError("%s must be a JSON encoded list", key)
	}
	out := list.Slice()
	return &out, nil
}

// jsonList decodes a JSON encoded list field of T. Nil means the field was absent.
func jsonList[T any](f *form, key string) (*[]T, error) {
	v := f.str(key)
	if v == nil {
		return nil, nil
	}
	list, err := types.ParseFlexList[T](*v)
	if err != nil {
		return nil, types.NewValidationError("%s must be valid JSON", key)
	}
	out := list.Slice()
	return &out, nil
}
