package graphql

import (
	_ "embed"
)

//go:embed schema.graphqls
var schemaBase string

// Schema returns the storefront schema. Custom fields go through the
// extension(name, args) query backed by graphql/registry.
func Schema() string {
	return schemaBase
}
