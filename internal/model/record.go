package model

// Location is a 1-based inclusive line range within a source file.
type Location struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// Parameter is one named function parameter. Names need not be unique and an
// empty name is legal (destructuring patterns); insertion order is
// display-significant.
type Parameter struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Signature describes one function type: generic type parameters, parameters,
// and return type, all in declaration order.
type Signature struct {
	TypeParameters []TypeParameter `json:"typeParameters"`
	Parameters     []Parameter     `json:"parameters"`
	ReturnType     Type            `json:"returnType"`
}

// FunctionRecord is one extracted function declaration. Constructed once by
// the extraction driver and immutable thereafter.
type FunctionRecord struct {
	Name      string    `json:"name,omitempty"`
	Docs      string    `json:"docs,omitempty"`
	Text      string    `json:"text,omitempty"`
	Location  Location  `json:"location"`
	Module    string    `json:"module"`
	Signature Signature `json:"signature"`
}

// Module groups the functions extracted from one source file. Every contained
// record's Module field equals Name.
type Module struct {
	Name      string           `json:"name"`
	Functions []FunctionRecord `json:"functions"`
}
