package identity

import (
	"context"

	"rental-engine/internal/domain/verification"

	"github.com/google/uuid"
)

// StaticReader reports the same status for every user. Sandbox and local use only.
type StaticReader struct {
	status verification.Status
}

func NewStaticReader(raw string) (*StaticReader, error) {
	status, err := verification.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	return &StaticReader{status: status}, nil
}

func (r *StaticReader) Status(context.Context, uuid.UUID) (verification.Status, error) {
	return r.status, nil
}
