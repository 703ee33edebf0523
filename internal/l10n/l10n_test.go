package l10n

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/map-downloader/internal/storage"
)

type fakeLocator map[string]string

func (f fakeLocator) URIForFolder(folder storage.Folder) string { return f[folder.Name] }

var mapsFolder = storage.Folder{Name: storage.FolderOfflineMaps, Path: "/data/maps"}

func newCatalog(t *testing.T, code string) *Catalog {
	t.Helper()
	c, err := Load(code, fakeLocator{storage.FolderOfflineMaps: "file:///data/maps"})
	require.NoError(t, err)
	return c
}

func TestNoContext_String(t *testing.T) {
	l := NoContext(nil)
	assert.False(t, l.HasContext())

	assert.Equal(t, "(NoCtx)[]", l.String(KeyDownloadStarted))
	assert.Equal(t, "(NoCtx)[region1.map;12 MB]", l.String(KeyDownloadMapConfirmation, "region1.map", "12 MB"))
	assert.Equal(t, "(NoCtx)fallback[1;;x]", l.StringWithFallback(KeyDownloadMapConfirmation, "fallback", 1, nil, "x"))
}

func TestNoContext_Plural(t *testing.T) {
	l := NoContext(nil)
	assert.Equal(t, "3 thing(s)", l.Plural(KeyPendingDownloads, 3))
	assert.Equal(t, "1 map(s)", l.PluralWithFallback(KeyPendingDownloads, 1, "map(s)"))
}

func TestNoContext_Pair(t *testing.T) {
	l := NoContext(fakeLocator{storage.FolderOfflineMaps: "file:///data/maps"})

	p := l.Pair(KeyDownloadMapTargetNotWritable, "", Folder(mapsFolder), URI("https://host/maps/a.map?x=1"), Scalar(42))

	assert.Equal(t, "(NoCtx)[/data/maps;host/maps/a.map;42]", p.User)
	assert.Equal(t, "(NoCtx)[OFFLINE_MAPS(file:///data/maps);https://host/maps/a.map?x=1;42]", p.Log)
}

func TestPair_ScalarsRenderIdentically(t *testing.T) {
	for _, l := range []Localizer{NoContext(nil), newCatalog(t, "en")} {
		p := l.Pair(KeyDownloadMapConfirmation, "", Scalars("region1.map", "12 MB")...)
		assert.Equal(t, p.User, p.Log)
		assert.Contains(t, p.User, "region1.map")
		assert.Contains(t, p.User, "12 MB")
	}
}

func TestCatalog_String(t *testing.T) {
	c := newCatalog(t, "en")
	assert.True(t, c.HasContext())
	assert.Equal(t, "en", c.Language())

	assert.Equal(t, "Download started", c.String(KeyDownloadStarted))
	assert.Equal(t, "Do you want to download the map file region1.map (12 MB)?",
		c.String(KeyDownloadMapConfirmation, "region1.map", "12 MB"))
}

func TestCatalog_OtherLanguages(t *testing.T) {
	de := newCatalog(t, "de")
	assert.Equal(t, "Download gestartet", de.String(KeyDownloadStarted))

	ru := newCatalog(t, "ru")
	assert.Equal(t, "Загрузка начата", ru.String(KeyDownloadStarted))

	// unknown languages fall back to English
	fr := newCatalog(t, "fr")
	assert.Equal(t, "Download started", fr.String(KeyDownloadStarted))
}

func TestCatalog_UnknownIDFallsBackToPlaceholder(t *testing.T) {
	c := newCatalog(t, "en")
	assert.Equal(t, "(NoCtx)fb[a]", c.StringWithFallback("no_such_message", "fb", "a"))
	assert.Equal(t, "2 thing(s)", c.Plural("no_such_plural", 2))
}

func TestCatalog_Plural(t *testing.T) {
	en := newCatalog(t, "en")
	assert.Equal(t, "1 pending download", en.Plural(KeyPendingDownloads, 1))
	assert.Equal(t, "5 pending downloads", en.Plural(KeyPendingDownloads, 5))

	ru := newCatalog(t, "ru")
	assert.Equal(t, "1 загрузка в очереди", ru.Plural(KeyPendingDownloads, 1))
	assert.Equal(t, "3 загрузки в очереди", ru.Plural(KeyPendingDownloads, 3))
	assert.Equal(t, "5 загрузок в очереди", ru.Plural(KeyPendingDownloads, 5))
}

func TestCatalog_Pair(t *testing.T) {
	c := newCatalog(t, "en")

	p := c.Pair(KeyDownloadMapTargetNotWritable, "", Folder(mapsFolder))
	assert.True(t, strings.HasPrefix(p.User, "The offline maps folder /data/maps is not writable."), p.User)
	assert.True(t, strings.HasPrefix(p.Log, "The offline maps folder OFFLINE_MAPS(file:///data/maps) is not writable."), p.Log)
}

func TestCatalog_Languages(t *testing.T) {
	assert.Equal(t, []string{"de", "en", "ru"}, newCatalog(t, "en").Languages())
}

func TestResolveLanguage(t *testing.T) {
	assert.Equal(t, "de", ResolveLanguage("de"))
	assert.NotEmpty(t, ResolveLanguage(LanguageSystem))
	assert.NotEmpty(t, ResolveLanguage(""))
}

func TestUserDisplayableURI(t *testing.T) {
	tests := map[string]string{
		"https://download.example.org/maps/a.map?token=1": "download.example.org/maps/a.map",
		"file:///sdcard/Download/a.map":                   "/sdcard/Download/a.map",
		"content://provider/docs/a.map":                   "provider/docs/a.map",
		"plain/path/a.map":                                "plain/path/a.map",
	}
	for in, want := range tests {
		assert.Equal(t, want, UserDisplayableURI(in), in)
	}
}
