package model

import (
	"net/url"
	"strings"
)

// DefaultFilename is used when the source URI carries no path segment.
const DefaultFilename = "default.map"

// Selection is what a map selection screen hands back: the chosen file,
// its human readable size, the file date and the map type code. An empty
// URI means the user made no selection.
type Selection struct {
	URI      string
	SizeInfo string
	Date     int64
	TypeID   int
}

// HasChoice reports whether the selection points at a file
func (s Selection) HasChoice() bool {
	return strings.TrimSpace(s.URI) != ""
}

// DownloadRequest describes one offline map file the user wants to download.
// It is immutable once constructed.
type DownloadRequest struct {
	uri      string
	filename string
	sizeInfo string
	date     int64
	mapType  MapType
}

// NewDownloadRequest builds a request and derives the target filename from
// the URI's last path segment.
func NewDownloadRequest(uri, sizeInfo string, date int64, mapType MapType) DownloadRequest {
	return DownloadRequest{
		uri:      uri,
		filename: FilenameFromURI(uri),
		sizeInfo: sizeInfo,
		date:     date,
		mapType:  mapType,
	}
}

// RequestFromSelection converts a selection into a request
func RequestFromSelection(sel Selection) DownloadRequest {
	return NewDownloadRequest(strings.TrimSpace(sel.URI), sel.SizeInfo, sel.Date, MapType(sel.TypeID))
}

func (r DownloadRequest) URI() string      { return r.uri }
func (r DownloadRequest) Filename() string { return r.filename }
func (r DownloadRequest) SizeInfo() string { return r.sizeInfo }
func (r DownloadRequest) Date() int64      { return r.date }
func (r DownloadRequest) Type() MapType    { return r.mapType }

// FilenameFromURI returns the last non-empty path segment of uri, decoded,
// or DefaultFilename when there is none. Segments that would not name a
// file inside a directory ("." or ".." or anything with a separator) fall
// back to DefaultFilename. When uri does not parse, the raw text after the
// last slash is used.
func FilenameFromURI(uri string) string {
	uri = strings.TrimSpace(uri)
	u, err := url.Parse(uri)
	if err != nil {
		return cleanSegment(rawLastSegment(uri))
	}

	path := u.Path
	if path == "" {
		path = u.Opaque
	}

	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return DefaultFilename
	}
	return cleanSegment(segments[len(segments)-1])
}

func rawLastSegment(uri string) string {
	if i := strings.IndexAny(uri, "?#"); i >= 0 {
		uri = uri[:i]
	}
	if i := strings.Index(uri, "://"); i >= 0 {
		uri = uri[i+3:]
		slash := strings.Index(uri, "/")
		if slash < 0 {
			return ""
		}
		uri = uri[slash:]
	}
	uri = strings.TrimRight(uri, "/")
	return uri[strings.LastIndex(uri, "/")+1:]
}

// IsPlainFilename reports whether name is a single path element that stays
// inside the directory it is joined to.
func IsPlainFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}

func cleanSegment(seg string) string {
	if !IsPlainFilename(seg) {
		return DefaultFilename
	}
	return seg
}
