// Package output renders command results as a table, JSON or YAML.
//
// Table columns come from struct fields. The header is the field's JSON
// name in upper snake case (imageUrl becomes IMAGE_URL, _id becomes ID).
// The table tag controls visibility:
//
//	`table:"-"`     never shown
//	`table:"wide"`  shown only with --wide
//
// JSON and YAML output use the JSON field names so all three formats
// agree on naming.
package output
