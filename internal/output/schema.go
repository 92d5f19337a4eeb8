// Copyright (c) 2026 The tootctl Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

// maxSchemaDepth limits how far nested structs are expanded. account.acct is
// listed, account.emojis.url is not.
const maxSchemaDepth = 1

// DumpSchema writes the sorted gjson paths of typ that can be given to
// --attrs. If w is nil, os.Stdout is used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Post attributes that are directly available to the --attrs flag.
For everything the instance returns, use --output=raw.`)
	fmt.Fprintln(w, "")

	paths := SchemaPaths(typ)
	if len(paths) == 0 {
		log.Debugf("no json tags found for type: %s", typ.Name())
		return
	}

	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
}

// SchemaPaths returns the sorted attribute paths of typ.
func SchemaPaths(typ reflect.Type) []string {
	paths := schemaWalker("", typ, 0)
	sort.Strings(paths)
	return paths
}

// schemaWalker walks a struct type collecting json tag names.
func schemaWalker(holder string, typ reflect.Type, depth int) []string {
	for typ.Kind() == reflect.Ptr || typ.Kind() == reflect.Slice {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	paths := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}
		name := strings.Split(tagValue, ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if holder != "" {
			name = holder + "." + name
		}

		ft := field.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		// time.Time and friends are leaves even though they are structs.
		if ft.Kind() == reflect.Struct && ft.PkgPath() != "time" && depth < maxSchemaDepth {
			nested := schemaWalker(name, ft, depth+1)
			if len(nested) > 0 {
				paths = append(paths, nested...)
				continue
			}
		}
		paths = append(paths, name)
	}

	return paths
}
