package loader

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Fybex/naukma-schedule-parser/internal/logger"
)

func xlsxBytes(t *testing.T, cells map[string]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	for axis, value := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", axis, value))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func TestLoadFile_XLSX(t *testing.T) {
	data := xlsxBytes(t, map[string]string{
		"A1": "Факультет інформатики",
		"A2": "Понеділок",
		"B3": "9:30-11:05",
	})
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	sh, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Факультет інформатики", sh.Cell(0, 0))
	assert.Equal(t, "Понеділок", sh.Cell(1, 0))
	assert.Equal(t, "9:30-11:05", sh.Cell(2, 1))
	// Out-of-range access is an empty cell, never a panic.
	assert.Equal(t, "", sh.Cell(2, 7))
	assert.Equal(t, "", sh.Cell(100, 0))
}

func docxBytes(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Факультет інформатики. 1 семестр</w:t></w:r></w:p>
    <w:p><w:r><w:t>Спеціальність «Комп'ютерні науки»</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Понеділок</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>9:30-11:05</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t></w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>11:30-13:05</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

func TestLoadFile_DOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.docx")
	require.NoError(t, os.WriteFile(path, docxBytes(t, sampleDocumentXML), 0o644))

	sh, err := LoadFile(path)
	require.NoError(t, err)

	// Paragraphs become rows of sentence cells, tables are appended below.
	require.Equal(t, 4, sh.NumRows())
	assert.Equal(t, "Факультет інформатики", sh.Cell(0, 0))
	assert.Equal(t, "1 семестр", sh.Cell(0, 1))
	assert.Equal(t, "Спеціальність «Комп'ютерні науки»", sh.Cell(1, 0))
	assert.Equal(t, []string{"Понеділок", "9:30-11:05"}, sh.Rows[2])
	assert.Equal(t, []string{"", "11:30-13:05"}, sh.Rows[3])
}

func TestLoadFile_DOCXWithoutDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "schedule.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err = LoadFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.doc")
	require.NoError(t, os.WriteFile(path, []byte("legacy binary"), 0o644))

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFetchSheet_DownloadsAndCaches(t *testing.T) {
	data := xlsxBytes(t, map[string]string{"A1": "Понеділок"})
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	dir := t.TempDir()
	ld := New(dir, logger.NewNop())

	sh, err := ld.FetchSheet(context.Background(), srv.URL+"/timetable/3.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "Понеділок", sh.Cell(0, 0))
	assert.FileExists(t, filepath.Join(dir, "3.xlsx"))

	// Second fetch reuses the cached copy.
	_, err = ld.FetchSheet(context.Background(), srv.URL+"/timetable/3.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	// Invalidation forces a fresh download.
	ld.Invalidate(srv.URL + "/timetable/3.xlsx")
	_, err = ld.FetchSheet(context.Background(), srv.URL+"/timetable/3.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestFetchSheet_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ld := New(t.TempDir(), logger.NewNop())
	_, err := ld.FetchSheet(context.Background(), srv.URL+"/missing.xlsx")
	assert.Error(t, err)
}

func TestCheckModified(t *testing.T) {
	lastMod := "Mon, 01 Sep 2025 10:00:00 GMT"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Last-Modified", lastMod)
	}))
	defer srv.Close()

	ld := New(t.TempDir(), logger.NewNop())
	ctx := context.Background()
	url := srv.URL + "/timetable/3.xlsx"

	// First probe always requires an update.
	seen, changed := ld.CheckModified(ctx, url, "")
	assert.True(t, changed)
	assert.Equal(t, lastMod, seen)

	// Unchanged header, no update.
	_, changed = ld.CheckModified(ctx, url, seen)
	assert.False(t, changed)

	// Header moved, update required.
	lastMod = "Tue, 02 Sep 2025 10:00:00 GMT"
	next, changed := ld.CheckModified(ctx, url, seen)
	assert.True(t, changed)
	assert.Equal(t, lastMod, next)
}
