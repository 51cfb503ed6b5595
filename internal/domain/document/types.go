package document

import "errors"

var ErrInvalidType = errors.New("invalid document type")

type Type string

const (
	TypeInvoice      Type = "invoice"
	TypePrescription Type = "prescription"
	TypeDiagnosis    Type = "diagnosis"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeInvoice, TypePrescription, TypeDiagnosis:
		return true
	default:
		return false
	}
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// AllowedMIMETypes is the upload allow-list.
var AllowedMIMETypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
}

func MIMETypeAllowed(mimeType string) bool {
	_, ok := AllowedMIMETypes[mimeType]
	return ok
}
