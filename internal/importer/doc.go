// Package importer reads recipe drafts from files.
//
// Supported formats, chosen by file extension:
//
//   - .cue: unified with the embedded #Recipe schema (schema.cue) before
//     decoding, so range and enum violations carry CUE source positions.
//   - .yaml, .yml, .json: decoded strictly with gopkg.in/yaml.v3; unknown
//     fields are rejected.
//
// A file holds either one recipe at the top level or a list under
// "recipes". Every returned draft has passed recipe.Draft.Validate.
package importer
