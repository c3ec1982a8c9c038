package openapi

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

// methods lists the operations a path item can carry, in display order
var methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// Parser exposes the operations of one OpenAPI 3 document
type Parser struct {
	model *libopenapi.DocumentModel[v3.Document]
}

func NewParser() *Parser {
	return &Parser{}
}

// LoadFromFile reads a local OpenAPI document
func (p *Parser) LoadFromFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", filePath, err)
	}

	return p.LoadFromBytes(data)
}

func (p *Parser) LoadFromBytes(data []byte) error {
	document, err := libopenapi.NewDocument(data)
	if err != nil {
		return fmt.Errorf("parsing OpenAPI document: %w", err)
	}

	model, errs := document.BuildV3Model()
	if len(errs) > 0 {
		return fmt.Errorf("building v3 model: %v", errs)
	}

	p.model = model
	return nil
}

// PathInfo is one operation with its path-level parameters merged in
type PathInfo struct {
	Path        string
	Method      string
	OperationID string
	Summary     string
	Description string
	Parameters  []*v3.Parameter
	RequestBody *v3.RequestBody
	Responses   *v3.Responses
}

// GetPaths returns the operations matching pathFilter and methodFilter.
// An empty filter or "*" matches everything; a trailing "*" holds a prefix.
func (p *Parser) GetPaths(pathFilter, methodFilter string) ([]PathInfo, error) {
	if p.model == nil {
		return nil, fmt.Errorf("no OpenAPI document loaded")
	}

	var paths []PathInfo
	if p.model.Model.Paths == nil || p.model.Model.Paths.PathItems == nil {
		return paths, nil
	}

	for pattern, item := range p.model.Model.Paths.PathItems.FromOldest() {
		if !matchesPath(pattern, pathFilter) {
			continue
		}
		for _, method := range methods {
			op := operation(item, method)
			if op == nil || !matchesMethod(method, methodFilter) {
				continue
			}
			paths = append(paths, PathInfo{
				Path:        pattern,
				Method:      method,
				OperationID: op.OperationId,
				Summary:     op.Summary,
				Description: op.Description,
				Parameters:  mergeParameters(item.Parameters, op.Parameters),
				RequestBody: op.RequestBody,
				Responses:   op.Responses,
			})
		}
	}

	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	return paths, nil
}

func (p *Parser) GetInfo() (*base.Info, error) {
	if p.model == nil {
		return nil, fmt.Errorf("no OpenAPI document loaded")
	}
	return p.model.Model.Info, nil
}

func (p *Parser) GetServers() ([]*v3.Server, error) {
	if p.model == nil {
		return nil, fmt.Errorf("no OpenAPI document loaded")
	}
	return p.model.Model.Servers, nil
}

// Operation returns the single operation at path and method
func (p *Parser) Operation(path, method string) (PathInfo, error) {
	paths, err := p.GetPaths(path, method)
	if err != nil {
		return PathInfo{}, err
	}
	if len(paths) == 0 {
		return PathInfo{}, fmt.Errorf("no operation %s %s", strings.ToUpper(method), path)
	}
	return paths[0], nil
}

func matchesPath(path, filter string) bool {
	switch {
	case filter == "" || filter == "*":
		return true
	case strings.HasSuffix(filter, "*"):
		return strings.HasPrefix(path, strings.TrimSuffix(filter, "*"))
	default:
		return path == filter
	}
}

// matchesMethod accepts a single method, a comma separated list, or ANY
func matchesMethod(method, filter string) bool {
	if filter == "" || filter == "*" || strings.EqualFold(filter, "ANY") {
		return true
	}
	return slices.ContainsFunc(strings.Split(filter, ","), func(m string) bool {
		return strings.EqualFold(method, strings.TrimSpace(m))
	})
}

func operation(item *v3.PathItem, method string) *v3.Operation {
	switch method {
	case "GET":
		return item.Get
	case "POST":
		return item.Post
	case "PUT":
		return item.Put
	case "PATCH":
		return item.Patch
	case "DELETE":
		return item.Delete
	case "HEAD":
		return item.Head
	case "OPTIONS":
		return item.Options
	}
	return nil
}

// mergeParameters lets operation parameters override path parameters
// with the same location and name
func mergeParameters(pathParams, opParams []*v3.Parameter) []*v3.Parameter {
	var merged []*v3.Parameter
	index := make(map[string]int)

	for _, param := range slices.Concat(pathParams, opParams) {
		if param == nil || param.Name == "" || param.In == "" {
			continue
		}
		key := param.In + ":" + param.Name
		if i, ok := index[key]; ok {
			merged[i] = param
			continue
		}
		index[key] = len(merged)
		merged = append(merged, param)
	}

	locations := []string{"path", "query", "header", "cookie"}
	sort.SliceStable(merged, func(i, j int) bool {
		return slices.Index(locations, merged[i].In) < slices.Index(locations, merged[j].In)
	})

	return merged
}
