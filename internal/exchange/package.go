// Package exchange implements the versioned annotation package format used
// to move annotations between stores. The codec is pure: it works on entity
// shapes and bytes, never on the database.
package exchange

import "github.com/annoti/annoti/internal/models"

// Version is the only package version currently accepted on import and the
// version stamped on every export. Comparison is an exact string match, no
// semantic range checking.
const Version = "1.0"

// SourceDocumentInfo is provenance metadata describing the document an
// exported package came from.
type SourceDocumentInfo struct {
	Name     string `json:"name"`
	Checksum string `json:"checksum"`
}

// BatchPackage is the primary wire shape: a versioned envelope carrying a
// list of annotations.
type BatchPackage struct {
	Version        string              `json:"version" validate:"required"`
	ExportedAt     int64               `json:"exported_at" validate:"required"`
	SourceDocument *SourceDocumentInfo `json:"source_document"`
	Annotations    []models.Annotation `json:"annotations" validate:"dive"`
}

// SinglePackage is the legacy wire shape carrying exactly one annotation.
// It has no discriminant tag of its own; decode recognizes it by the
// presence of the "annotation" key. Kept for backward compatibility only;
// exports always produce the batch shape.
type SinglePackage struct {
	Version        string              `json:"version" validate:"required"`
	ExportedAt     int64               `json:"exported_at" validate:"required"`
	SourceDocument *SourceDocumentInfo `json:"source_document"`
	Annotation     models.Annotation   `json:"annotation"`
}
