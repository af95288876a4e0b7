package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/domain/services"
	"mfgorders/internal/core/ports"
	"mfgorders/internal/pkg/errs"
	"mfgorders/internal/pkg/metrics"
)

// UploadResult is the outcome of one file. Err is an
// *errs.UpstreamFailureError naming the file when the blob store refused it.
type UploadResult struct {
	FileName string
	MediaID  *kernel.UUID
	URL      string
	Err      error
}

// UploadMediaCommandHandler stores files in the blob store and attaches the
// successful ones to the order in one transaction. A failing file never
// aborts the rest of the batch. When the transaction fails the stored files
// are deleted again.
type UploadMediaCommandHandler struct {
	uowFactory OrderUoWFactory
	blobs      ports.BlobStore
	clock      kernel.Clock
	policy     services.AccessPolicy
}

func NewUploadMediaCommandHandler(uowFactory OrderUoWFactory, blobs ports.BlobStore, clock kernel.Clock) UploadMediaCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return UploadMediaCommandHandler{uowFactory: uowFactory, blobs: blobs, clock: clock, policy: services.NewAccessPolicy()}
}

// Handle returns one result per file, in input order.
func (h UploadMediaCommandHandler) Handle(ctx context.Context, cmd UploadMediaCommand) (results []UploadResult, err error) {
	ctx, done := observe(ctx, "upload_media")
	defer func() { done(err) }()

	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	load := byOrder(cmd.OrderID())
	if cmd.ProductID() != nil {
		load = byProduct(*cmd.ProductID())
	}

	actor := cmd.Actor()
	now := h.clock.Now()
	var stored []string
	err = mutate(ctx, h.uowFactory, actor, now, load, func(o *order.Order) (outcome, error) {
		if err := h.policy.CanUploadMedia(actor, o); err != nil {
			return outcome{}, err
		}
		if cmd.ProductID() != nil {
			if _, err := o.Product(*cmd.ProductID()); err != nil {
				return outcome{}, err
			}
		}

		var out outcome
		results = make([]UploadResult, 0, len(cmd.Files()))
		for _, file := range cmd.Files() {
			res := h.upload(ctx, o, cmd.ProductID(), actor, file, now)
			results = append(results, res)
			if res.URL != "" {
				stored = append(stored, res.URL)
			}
			if res.Err != nil {
				metrics.UploadsTotal.WithLabelValues(metrics.Outcome(res.Err)).Inc()
				continue
			}
			metrics.UploadsTotal.WithLabelValues(metrics.Outcome(nil)).Inc()

			targetType, targetID := audit.TargetSample, o.ID()
			if cmd.ProductID() != nil {
				targetType, targetID = audit.TargetProduct, *cmd.ProductID()
			}
			out.changes = append(out.changes, change{
				action:     audit.MediaUploaded,
				targetType: targetType,
				targetID:   targetID,
				newValue:   res.URL,
			})
		}
		return out, nil
	})
	if err != nil {
		if cleanupErr := h.discard(ctx, stored); cleanupErr != nil {
			err = errors.Join(err, cleanupErr)
		}
		return nil, err
	}
	return results, nil
}

// discard deletes files whose attachments were not committed. It runs even
// when ctx was canceled.
func (h UploadMediaCommandHandler) discard(ctx context.Context, urls []string) error {
	ctx = context.WithoutCancel(ctx)
	var errList []error
	for _, u := range urls {
		if err := h.blobs.Delete(ctx, u); err != nil {
			errList = append(errList, fmt.Errorf("discard %s: %w", u, err))
		}
	}
	return errors.Join(errList...)
}

func (h UploadMediaCommandHandler) upload(
	ctx context.Context,
	o *order.Order,
	productID *kernel.UUID,
	actor kernel.Actor,
	file ports.Upload,
	now time.Time,
) UploadResult {
	res := UploadResult{FileName: file.FileName}

	url, err := h.blobs.Upload(ctx, file)
	if err != nil {
		if !errors.Is(err, errs.ErrUpstreamFailure) {
			err = errs.NewUpstreamFailureError(file.FileName, err)
		}
		res.Err = err
		return res
	}

	m, err := order.NewMediaAttachment(kernel.NewUUID(), productID, url, file.FileName,
		order.MediaKindFromContentType(file.ContentType), actor.ID(), now)
	if err == nil {
		err = o.AttachMedia(m)
	}
	if err != nil {
		if delErr := h.blobs.Delete(context.WithoutCancel(ctx), url); delErr != nil {
			err = errors.Join(err, delErr)
		}
		res.Err = err
		return res
	}

	id := m.ID()
	res.MediaID = &id
	res.URL = url
	return res
}
