package order

import (
	"errors"
	"strings"
	"time"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/pkg/errs"
)

// MediaAttachment references an uploaded file. It belongs either to one
// product (reference media) or to the order sample.
type MediaAttachment struct {
	id         kernel.UUID
	productID  *kernel.UUID
	url        string
	fileName   string
	kind       MediaKind
	uploadedBy kernel.UUID
	createdAt  time.Time
}

// NewMediaAttachment builds an attachment; a nil productID scopes it to the sample.
func NewMediaAttachment(
	id kernel.UUID,
	productID *kernel.UUID,
	url, fileName string,
	kind MediaKind,
	uploadedBy kernel.UUID,
	createdAt time.Time,
) (*MediaAttachment, error) {
	var urlErr error
	if strings.TrimSpace(url) == "" {
		urlErr = errs.NewValueIsRequiredError("media url")
	}
	if err := errors.Join(id.Validate(), uploadedBy.Validate(), kind.Validate(), urlErr); err != nil {
		return nil, err
	}
	return RestoreMediaAttachment(id, productID, url, fileName, kind, uploadedBy, createdAt), nil
}

func RestoreMediaAttachment(
	id kernel.UUID,
	productID *kernel.UUID,
	url, fileName string,
	kind MediaKind,
	uploadedBy kernel.UUID,
	createdAt time.Time,
) *MediaAttachment {
	var pid *kernel.UUID
	if productID != nil {
		p := *productID
		pid = &p
	}
	return &MediaAttachment{
		id:         id,
		productID:  pid,
		url:        url,
		fileName:   fileName,
		kind:       kind,
		uploadedBy: uploadedBy,
		createdAt:  createdAt,
	}
}

func (m *MediaAttachment) ID() kernel.UUID {
	return m.id
}

func (m *MediaAttachment) ProductID() *kernel.UUID {
	return m.productID
}

func (m *MediaAttachment) URL() string {
	return m.url
}

func (m *MediaAttachment) FileName() string {
	return m.fileName
}

func (m *MediaAttachment) Kind() MediaKind {
	return m.kind
}

func (m *MediaAttachment) UploadedBy() kernel.UUID {
	return m.uploadedBy
}

func (m *MediaAttachment) CreatedAt() time.Time {
	return m.createdAt
}

// SampleScoped reports whether the attachment documents the sample rather
// than a product reference.
func (m *MediaAttachment) SampleScoped() bool {
	return m.productID == nil
}
