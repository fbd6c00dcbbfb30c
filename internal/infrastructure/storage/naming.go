// Package storage implements ports.AssetStore on a local directory and on
// S3-compatible object storage. Both use one flat namespace of names shaped
// <unix-millis>-<base name of the upload>.
package storage

import (
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const defaultContentType = "application/octet-stream"

// baseName strips any directory part a client put in the upload filename.
func baseName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return "file"
	}
	return name
}

func assetName(at time.Time, filename string) string {
	return fmt.Sprintf("%d-%s", at.UnixMilli(), baseName(filename))
}

// validName reports whether ref is a single flat name.
func validName(ref string) bool {
	return ref != "" && ref != "." && ref != ".." && !strings.ContainsAny(ref, `/\`)
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return defaultContentType
}
