package exchange

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/annoti/annoti/internal/common"
	"github.com/annoti/annoti/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Encode builds a batch package containing exactly one annotation, stamped
// with the given export time and the source document's basename and checksum.
func Encode(ann models.Annotation, doc models.Document, exportedAt int64) ([]byte, error) {
	pkg := BatchPackage{
		Version:    Version,
		ExportedAt: exportedAt,
		SourceDocument: &SourceDocumentInfo{
			Name:     filepath.Base(doc.Path),
			Checksum: doc.Checksum,
		},
		Annotations: []models.Annotation{ann},
	}

	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode package: %v", common.ErrInternal, err)
	}
	return data, nil
}

// envelope probes the wire shape without committing to either variant: the
// presence of the "annotations" vs "annotation" key is the discriminant.
type envelope struct {
	Version     string          `json:"version"`
	Annotations json.RawMessage `json:"annotations"`
	Annotation  json.RawMessage `json:"annotation"`
}

// Decoded is the result of parsing a package: the detached annotations plus
// which wire shape carried them. The shape matters downstream: legacy single
// packages merge directly without a dedup check.
type Decoded struct {
	Annotations  []models.Annotation
	LegacySingle bool
}

// Decode parses an annotation package and returns its annotations, detached:
// each gets a freshly generated id, and source document/user bindings are
// discarded (the merge engine rebinds them to the target). The user_name
// snapshot is kept for display.
//
// The batch shape is the primary path; the legacy single shape is accepted
// as a compatibility shim. Any version other than "1.0" is rejected.
func Decode(data []byte) (*Decoded, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedPackage, err)
	}

	var dec Decoded
	switch {
	case env.Annotations != nil:
		batch, err := decodeBatch(data)
		if err != nil {
			return nil, err
		}
		dec.Annotations = batch.Annotations
	case env.Annotation != nil:
		// Legacy single-annotation shim.
		single, err := decodeLegacySingle(data)
		if err != nil {
			return nil, err
		}
		dec.Annotations = []models.Annotation{single.Annotation}
		dec.LegacySingle = true
	default:
		return nil, fmt.Errorf("%w: neither batch nor single shape", common.ErrMalformedPackage)
	}

	detached := make([]models.Annotation, 0, len(dec.Annotations))
	for _, ann := range dec.Annotations {
		ann.ID = uuid.NewString()
		ann.DocumentID = ""
		ann.UserID = ""
		detached = append(detached, ann)
	}
	dec.Annotations = detached
	return &dec, nil
}

func decodeBatch(data []byte) (*BatchPackage, error) {
	var pkg BatchPackage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedPackage, err)
	}
	if pkg.Version != Version {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedVersion, pkg.Version)
	}
	if err := validate.Struct(pkg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedPackage, err)
	}
	return &pkg, nil
}

func decodeLegacySingle(data []byte) (*SinglePackage, error) {
	var pkg SinglePackage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedPackage, err)
	}
	if pkg.Version != Version {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedVersion, pkg.Version)
	}
	if err := validate.Struct(pkg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedPackage, err)
	}
	return &pkg, nil
}
