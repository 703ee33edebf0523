package l10n

import (
	"fmt"
	"net/url"

	"github.com/ytget/map-downloader/internal/storage"
)

// Param is a message parameter for Pair. The set of variants is closed:
// Folder, URI and Scalar.
type Param interface {
	userValue() any
	logValue(locator storage.Locator) any
}

type folderParam struct {
	folder storage.Folder
}

type uriParam struct {
	uri string
}

type scalarParam struct {
	value any
}

// Folder renders as the folder's display name for users and as
// name(location) in logs.
func Folder(f storage.Folder) Param { return folderParam{folder: f} }

// URI renders as a shortened form for users and verbatim in logs.
func URI(u string) Param { return uriParam{uri: u} }

// Scalar renders identically for both audiences.
func Scalar(v any) Param { return scalarParam{value: v} }

// Scalars wraps each value with Scalar
func Scalars(values ...any) []Param {
	params := make([]Param, len(values))
	for i, v := range values {
		params[i] = Scalar(v)
	}
	return params
}

func (p folderParam) userValue() any { return p.folder.DisplayName() }

func (p folderParam) logValue(locator storage.Locator) any {
	location := ""
	if locator != nil {
		location = locator.URIForFolder(p.folder)
	}
	return fmt.Sprintf("%s(%s)", p.folder, location)
}

func (p uriParam) userValue() any                    { return UserDisplayableURI(p.uri) }
func (p uriParam) logValue(_ storage.Locator) any    { return p.uri }
func (p scalarParam) userValue() any                 { return p.value }
func (p scalarParam) logValue(_ storage.Locator) any { return p.value }

// UserDisplayableURI shortens a URI for display: file URIs become their
// path, web URIs lose scheme, query and fragment.
func UserDisplayableURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}
	switch u.Scheme {
	case "file":
		return u.Path
	case "http", "https":
		return u.Host + u.Path
	default:
		if u.Opaque != "" {
			return u.Opaque
		}
		return u.Host + u.Path
	}
}
