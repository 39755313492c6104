package model

import (
	"strings"

	"github.com/hangxie/parquet-go/v2/parquet"
)

// leafColumn is one readable column: a leaf element of the flat schema
// list together with its dotted display path. The slice order matches the
// column chunk order used by the column reader.
type leafColumn struct {
	Name string
	Type parquet.Type
	Elem *parquet.SchemaElement
}

// leafColumns reconstructs paths from the flat depth-first schema list and
// collects the leaf elements. The root element is excluded from paths.
func leafColumns(schema []*parquet.SchemaElement) []leafColumn {
	type stackEntry struct {
		name       string
		childCount int
	}

	var stack []stackEntry
	var leaves []leafColumn

	for i, elem := range schema {
		if i == 0 {
			// root element
			continue
		}

		// Pop completed parent nodes, consuming one child slot on the way in
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.childCount > 0 {
				top.childCount--
				break
			}
			stack = stack[:len(stack)-1]
		}

		path := make([]string, 0, len(stack)+1)
		for _, entry := range stack {
			path = append(path, entry.name)
		}
		path = append(path, elem.Name)

		childCount := 0
		if elem.NumChildren != nil {
			childCount = int(*elem.NumChildren)
		}
		if childCount > 0 {
			stack = append(stack, stackEntry{name: elem.Name, childCount: childCount})
			continue
		}

		leaves = append(leaves, leafColumn{
			Name: strings.Join(path, "."),
			Type: elem.GetType(),
			Elem: elem,
		})
	}

	return leaves
}
