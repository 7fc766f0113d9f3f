// Package schema decodes and encodes persisted project documents.
//
// Every document is checked against the project JSON schema before it is unmarshalled,
// so a malformed document is rejected with ErrUnparseableProject instead of producing a half loaded project.
package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dukex/codeeasy/pkg/models"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrUnparseableProject indicates the stored document is not a valid project.
var ErrUnparseableProject = errors.New("unparseable project")

// Format of a project document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

//go:embed project.schema.json
var projectSchema string

var compiled = mustCompile()

func mustCompile() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(projectSchema))
	if err != nil {
		panic(fmt.Sprintf("invalid project schema: %v", err))
	}

	return s
}

// FormatFromPath guesses the document format from a file extension. JSON is the fallback.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat converts a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q", name)
	}
}

// Decode validates and unmarshals a JSON project document.
func Decode(data []byte) (*models.Project, error) {
	result, err := compiled.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableProject, err)
	}

	if !result.Valid() {
		var violations []string
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}

		return nil, fmt.Errorf("%w: %s", ErrUnparseableProject, strings.Join(violations, "; "))
	}

	var project models.Project

	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableProject, err)
	}

	return &project, nil
}

// DecodeAs decodes a document of the given format.
func DecodeAs(data []byte, format Format) (*models.Project, error) {
	if format != FormatYAML {
		return Decode(data)
	}

	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableProject, err)
	}

	body, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableProject, err)
	}

	return Decode(body)
}

// Encode serializes the project in the given format.
// YAML documents use the same keys as JSON ones.
func Encode(project *models.Project, format Format) ([]byte, error) {
	body, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project %s: %w", project.ID, err)
	}

	if format != FormatYAML {
		return body, nil
	}

	var document map[string]any
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("failed to convert project %s: %w", project.ID, err)
	}

	out, err := yaml.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project %s as yaml: %w", project.ID, err)
	}

	return out, nil
}
