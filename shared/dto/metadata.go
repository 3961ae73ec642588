package dto

import (
	"time"

	"solireserve/shared/constant"
	"solireserve/shared/model"
	"solireserve/shared/timezone"
)

// Metadata is the audit block embedded in every resource response. Timestamps are
// rendered in the application timezone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(meta model.Metadata) {
	*m = Metadata{
		CreatedAt:  formatStamp(meta.CreatedAt),
		ModifiedAt: formatStamp(meta.ModifiedAt),
		CreatedBy:  meta.CreatedBy,
		ModifiedBy: meta.ModifiedBy,
	}
}

// formatStamp leaves unset timestamps empty instead of printing year one.
func formatStamp(t time.Time) string {
	if t.IsZero() {
		return constant.Empty
	}

	return timezone.Format(t, constant.DateFormat)
}
