package internal

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
	"github.com/lychee-technology/formdesk"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz156789"

var customEncoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// EncodeFormRef renders a form id as a short lowercase reference suitable for links.
func EncodeFormRef(id uuid.UUID) string {
	return customEncoding.EncodeToString(id[:])
}

func decodeFormRef(ref string) (uuid.UUID, error) {
	data, err := customEncoding.DecodeString(ref)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.FromBytes(data)
}

// ResolveFormRef accepts either a canonical UUID or a reference produced by EncodeFormRef.
func ResolveFormRef(ref string) (uuid.UUID, error) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}
	id, err := decodeFormRef(strings.ToLower(ref))
	if err != nil {
		return uuid.Nil, formdesk.NewFormError(formdesk.ErrorTypeValidation, formdesk.ErrCodeInvalidFormRef,
			"not a form id or form reference").WithDetail("ref", ref).WithCause(err)
	}
	return id, nil
}
