// Package geo serves the province → city → district → town hierarchy and
// resolves filtered random chains through it.
//
// Administrative names carry redundant suffixes (省, 市, 自治区, 街道...), so
// every filter here is a substring-containment test via NameContains rather
// than an equality check on normalized names.
package geo
