package openapi

import _ "embed"

//go:embed contract.yaml
var contract []byte

// Contract returns the OpenAPI document for the numberfacts functions
func Contract() []byte {
	return append([]byte(nil), contract...)
}

// NewContractParser returns a parser with the embedded contract loaded
func NewContractParser() (*Parser, error) {
	parser := NewParser()
	if err := parser.LoadFromBytes(contract); err != nil {
		return nil, err
	}
	return parser, nil
}
