// Package schemas embeds the JSON Schema documents describing model output and stored recipes.
package schemas

import "embed"

// Schema file names.
const (
	RecipeResponse = "recipe_response.schema.json"
	VideoDocument  = "video_document.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw bytes of an embedded schema file.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}
