package importer

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/barcut/internal/model"
)

// Document is one page of drawing extraction output. The source tag may be
// given once for the page (mtg_no) and overridden per part.
type Document struct {
	TableFound *bool          `yaml:"table_found,omitempty"`
	SourceTag  string         `yaml:"source_tag,omitempty"`
	MtgNo      string         `yaml:"mtg_no,omitempty"`
	Parts      []DocumentPart `yaml:"parts"`
}

// DocumentPart is a single row of the extracted parts table. Every field
// is decoded as text, so numeric sizes and quantities are accepted either
// quoted or bare.
type DocumentPart struct {
	PartNo    string `yaml:"part_no"`
	PartName  string `yaml:"part_name"`
	Material  string `yaml:"material"`
	Size      string `yaml:"size"`
	UnitQty   string `yaml:"unit_qty"`
	Remarks   string `yaml:"remarks,omitempty"`
	SourceTag string `yaml:"source_tag,omitempty"`
	MtgNo     string `yaml:"mtg_no,omitempty"`
}

func (d Document) tag() string {
	if t := strings.TrimSpace(d.SourceTag); t != "" {
		return t
	}
	return strings.TrimSpace(d.MtgNo)
}

func (p DocumentPart) tag(fallback string) string {
	if t := strings.TrimSpace(p.SourceTag); t != "" {
		return t
	}
	if t := strings.TrimSpace(p.MtgNo); t != "" {
		return t
	}
	return fallback
}

// ImportDocument reads an extraction document from a JSON or YAML file.
func ImportDocument(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	return ImportDocumentBytes(data)
}

// ImportDocumentBytes decodes extraction output. The input is either a
// single page object or a list of pages. JSON is read through the YAML
// decoder, which accepts it as a subset.
func ImportDocumentBytes(data []byte) ImportResult {
	result := ImportResult{}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot parse document: %v", err))
		return result
	}

	var pages []Document
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&pages); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Cannot decode pages: %v", err))
			return result
		}
	case yaml.MappingNode:
		var doc Document
		if err := node.Decode(&doc); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Cannot decode document: %v", err))
			return result
		}
		pages = []Document{doc}
	default:
		result.Errors = append(result.Errors, "Document must be an object or a list of pages")
		return result
	}

	for i, page := range pages {
		if page.TableFound != nil && !*page.TableFound {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Page %d: no parts table found", i+1))
			continue
		}
		pageTag := page.tag()
		for _, p := range page.Parts {
			result.Records = append(result.Records, model.RawRecord{
				Material:  strings.TrimSpace(p.Material),
				Length:    cleanSize(p.Size),
				Quantity:  strings.TrimSpace(p.UnitQty),
				PartNo:    strings.TrimSpace(p.PartNo),
				PartName:  strings.TrimSpace(p.PartName),
				SourceTag: p.tag(pageTag),
				Remarks:   strings.TrimSpace(p.Remarks),
			})
		}
	}

	if len(result.Records) == 0 {
		result.Errors = append(result.Errors, "No parts found in document")
	}
	return result
}
