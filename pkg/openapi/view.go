package openapi

import (
	"fmt"
	"strings"
)

// Viewer renders the operations of a loaded document
type Viewer struct {
	parser    *Parser
	displayer *Displayer
}

func NewViewer(parser *Parser) *Viewer {
	return &Viewer{
		parser:    parser,
		displayer: NewDisplayer(parser),
	}
}

// View renders the index for an empty path, "*" or a trailing slash
// prefix, and a single operation for an exact path and method match
func (v *Viewer) View(path, method string) (string, error) {
	filter := path
	showIndex := path == "" || path == "*"
	if path != "/" && strings.HasSuffix(path, "/") {
		filter = strings.TrimSuffix(path, "/") + "*"
		showIndex = true
	}

	paths, err := v.parser.GetPaths(filter, method)
	if err != nil {
		return "", fmt.Errorf("getting paths: %w", err)
	}

	if len(paths) == 0 {
		return "No operations found matching the specified path and method", nil
	}

	if !showIndex && len(paths) == 1 {
		return v.displayer.RenderOperation(paths[0]), nil
	}

	return v.displayer.RenderIndex(paths), nil
}
