package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/cluso-netresolve/pkg/graph"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxNodeNameLength = 128
	MaxDocumentDepth  = 64

	// Node names: identifier characters plus dots for hierarchy paths
	nodeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.\-]*$`)
)

func init() {
	validate = validator.New()
}

// SearchRequest represents one connectivity query before name resolution.
type SearchRequest struct {
	Start    []string `json:"start" validate:"required,min=1,dive,required,max=128"`
	Targets  []string `json:"targets" validate:"omitempty,dive,required,max=128"`
	MaxPaths uint64   `json:"maxPaths" validate:"omitempty,min=1"`
}

// ValidateSearchRequest validates a connectivity query.
func ValidateSearchRequest(req *SearchRequest) error {
	if req == nil {
		return errors.New("search request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	for i, name := range req.Start {
		if !nodeNamePattern.MatchString(name) {
			return fmt.Errorf("Start: name at index %d contains invalid characters", i)
		}
	}
	for i, name := range req.Targets {
		if !nodeNamePattern.MatchString(name) {
			return fmt.Errorf("Targets: name at index %d contains invalid characters", i)
		}
	}
	return nil
}

// ValidateDocument validates a graph document before it is built: struct
// tags, name syntax, uniqueness, nesting depth and connection endpoint
// references.
func ValidateDocument(doc *graph.Document) error {
	if doc == nil {
		return errors.New("document cannot be nil")
	}
	if err := validate.Struct(doc); err != nil {
		return formatValidationError(err)
	}

	seen := make(map[string]bool)
	var walk func(spec graph.NodeSpec, depth int) error
	walk = func(spec graph.NodeSpec, depth int) error {
		if depth > MaxDocumentDepth {
			return fmt.Errorf("Nodes: nesting deeper than %d levels at %q", MaxDocumentDepth, spec.Name)
		}
		if !nodeNamePattern.MatchString(spec.Name) {
			return fmt.Errorf("Nodes: name %q contains invalid characters", spec.Name)
		}
		if seen[spec.Name] {
			return fmt.Errorf("Nodes: duplicate name %q", spec.Name)
		}
		seen[spec.Name] = true
		for _, child := range spec.Children {
			if err := walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, spec := range doc.Nodes {
		if err := walk(spec, 1); err != nil {
			return err
		}
	}

	for i, conn := range doc.Connections {
		if conn.From == conn.To {
			return fmt.Errorf("Connections: entry %d connects %q to itself", i, conn.From)
		}
		if !seen[conn.From] {
			return fmt.Errorf("Connections: entry %d references undeclared node %q", i, conn.From)
		}
		if !seen[conn.To] {
			return fmt.Errorf("Connections: entry %d references undeclared node %q", i, conn.To)
		}
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("%s: failed %s validation", fieldErr.Field(), fieldErr.Tag()))
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return err
}
