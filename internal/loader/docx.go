package loader

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/Fybex/naukma-schedule-parser/internal/sheet"
)

// loadDOCX flattens a .docx timetable into a sheet: every body paragraph
// becomes a row of sentence cells (split on "."), then every table row is
// appended below. The OOXML part is a zip with one XML stream, so the
// text is pulled straight out of word/document.xml.
func loadDOCX(data []byte) (*sheet.Sheet, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}

	var document *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return nil, fmt.Errorf("%w: docx without word/document.xml", ErrUnsupportedFormat)
	}

	rc, err := document.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	paragraphs, tableRows, err := parseDocumentXML(rc)
	if err != nil {
		return nil, fmt.Errorf("parse docx body: %w", err)
	}

	rows := make([][]string, 0, len(paragraphs)+len(tableRows))
	for _, paragraph := range paragraphs {
		var cells []string
		for _, part := range strings.Split(paragraph, ".") {
			if part == "" {
				continue
			}
			cells = append(cells, strings.TrimSpace(part))
		}
		rows = append(rows, cells)
	}
	rows = append(rows, tableRows...)
	return sheet.New(rows), nil
}

// parseDocumentXML walks the document body once, collecting top-level
// paragraph texts and table rows. Paragraphs inside table cells belong to
// their cell, not to the paragraph list.
func parseDocumentXML(r io.Reader) (paragraphs []string, tableRows [][]string, err error) {
	dec := xml.NewDecoder(r)

	var (
		tableDepth int
		paragraph  strings.Builder
		inPara     bool
		cell       strings.Builder
		row        []string
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth > 0 {
					row = nil
				}
			case "tc":
				if tableDepth > 0 {
					cell.Reset()
				}
			case "p":
				if tableDepth == 0 {
					paragraph.Reset()
					inPara = true
				}
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return nil, nil, err
				}
				if tableDepth > 0 {
					cell.WriteString(text)
				} else if inPara {
					paragraph.WriteString(text)
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "tr":
				if tableDepth > 0 {
					tableRows = append(tableRows, row)
				}
			case "tc":
				if tableDepth > 0 {
					row = append(row, cell.String())
				}
			case "p":
				if tableDepth == 0 && inPara {
					paragraphs = append(paragraphs, paragraph.String())
					inPara = false
				}
			}
		}
	}
	return paragraphs, tableRows, nil
}
