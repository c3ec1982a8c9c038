package openapi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func contractParser(t *testing.T) *Parser {
	t.Helper()
	parser, err := NewContractParser()
	if err != nil {
		t.Fatalf("NewContractParser() error = %v", err)
	}
	return parser
}

func TestContract_Loads(t *testing.T) {
	parser := contractParser(t)

	info, err := parser.GetInfo()
	if err != nil {
		t.Fatalf("GetInfo() error = %v", err)
	}
	if info.Title != "numberfacts" {
		t.Errorf("Title = %q", info.Title)
	}

	servers, _ := parser.GetServers()
	if len(servers) != 1 || servers[0].URL != "http://localhost:3000" {
		t.Errorf("servers = %v", servers)
	}
}

func TestParser_GetPaths(t *testing.T) {
	tests := []struct {
		name         string
		pathFilter   string
		methodFilter string
		expected     []string
	}{
		{name: "all", expected: []string{"POST /", "GET /primes"}},
		{name: "wildcard", pathFilter: "*", expected: []string{"POST /", "GET /primes"}},
		{name: "exact root", pathFilter: "/", expected: []string{"POST /"}},
		{name: "prefix", pathFilter: "/pri*", expected: []string{"GET /primes"}},
		{name: "method filter", methodFilter: "get", expected: []string{"GET /primes"}},
		{name: "method list", methodFilter: "GET, POST", expected: []string{"POST /", "GET /primes"}},
		{name: "ANY", methodFilter: "ANY", expected: []string{"POST /", "GET /primes"}},
		{name: "no match", pathFilter: "/missing"},
	}

	parser := contractParser(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, err := parser.GetPaths(tt.pathFilter, tt.methodFilter)
			if err != nil {
				t.Fatalf("GetPaths() error = %v", err)
			}

			var got []string
			for _, p := range paths {
				got = append(got, p.Method+" "+p.Path)
			}
			if strings.Join(got, "|") != strings.Join(tt.expected, "|") {
				t.Errorf("GetPaths(%q, %q) = %v, expected %v", tt.pathFilter, tt.methodFilter, got, tt.expected)
			}
		})
	}
}

func TestParser_Operation(t *testing.T) {
	parser := contractParser(t)

	op, err := parser.Operation("/primes", "get")
	if err != nil {
		t.Fatalf("Operation() error = %v", err)
	}
	if op.OperationID != "countPrimes" {
		t.Errorf("OperationID = %q", op.OperationID)
	}
	if len(op.Parameters) != 1 || op.Parameters[0].Name != "max" || op.Parameters[0].In != "query" {
		t.Errorf("Parameters = %v", op.Parameters)
	}

	if _, err := parser.Operation("/primes", "post"); err == nil {
		t.Errorf("expected error for missing operation")
	}
}

func TestParser_NotLoaded(t *testing.T) {
	parser := NewParser()
	if _, err := parser.GetPaths("", ""); err == nil {
		t.Errorf("expected error before loading")
	}
	if _, err := parser.GetInfo(); err == nil {
		t.Errorf("expected error before loading")
	}
}

func TestParser_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "contract.yaml")
	if err := os.WriteFile(file, Contract(), 0o644); err != nil {
		t.Fatalf("write contract: %v", err)
	}

	parser := NewParser()
	if err := parser.LoadFromFile(file); err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if paths, _ := parser.GetPaths("", ""); len(paths) != 2 {
		t.Errorf("expected 2 operations, got %d", len(paths))
	}

	if err := parser.LoadFromFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestParser_LoadInvalid(t *testing.T) {
	if err := NewParser().LoadFromBytes([]byte("not: [valid")); err == nil {
		t.Errorf("expected error for invalid document")
	}
}

func TestMergeParameters(t *testing.T) {
	parser := NewParser()
	doc := `openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /items/{id}:
    parameters:
      - {name: id, in: path, required: true, description: path level}
      - {name: trace, in: header}
    get:
      parameters:
        - {name: id, in: path, required: true, description: operation level}
        - {name: limit, in: query}
      responses:
        "200": {description: ok}
`
	if err := parser.LoadFromBytes([]byte(doc)); err != nil {
		t.Fatalf("LoadFromBytes() error = %v", err)
	}

	op, err := parser.Operation("/items/{id}", "GET")
	if err != nil {
		t.Fatalf("Operation() error = %v", err)
	}

	var got []string
	for _, p := range op.Parameters {
		got = append(got, p.In+":"+p.Name)
	}
	if strings.Join(got, ",") != "path:id,query:limit,header:trace" {
		t.Errorf("parameters = %v", got)
	}
	if op.Parameters[0].Description != "operation level" {
		t.Errorf("operation parameter should override path parameter")
	}
}
