package commands

import (
	"errors"
	"strings"

	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/ports"
	"mfgorders/internal/pkg/errs"
	"mfgorders/internal/pkg/guard"
)

var ErrUploadMediaCommandIsNotConstructed = errors.New(
	"UploadMediaCommand must be created via NewUploadProductMediaCommand or NewUploadSampleMediaCommand",
)

// UploadMediaCommand attaches files to a product, or to the order's sample
// when productID is nil.
type UploadMediaCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	orderID   kernel.UUID
	productID *kernel.UUID
	files     []ports.Upload

	guard guard.ConstructorGuard
}

// NewUploadProductMediaCommand targets reference media of a product.
func NewUploadProductMediaCommand(actor kernel.Actor, productID kernel.UUID, files []ports.Upload) (UploadMediaCommand, error) {
	if err := errors.Join(actor.Validate(), productID.Validate(), validateUploads(files)); err != nil {
		return UploadMediaCommand{}, err
	}
	return UploadMediaCommand{actor: actor, productID: &productID, files: files, guard: guard.NewConstructorGuard()}, nil
}

// NewUploadSampleMediaCommand targets the sample of an order.
func NewUploadSampleMediaCommand(actor kernel.Actor, orderID kernel.UUID, files []ports.Upload) (UploadMediaCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate(), validateUploads(files)); err != nil {
		return UploadMediaCommand{}, err
	}
	return UploadMediaCommand{actor: actor, orderID: orderID, files: files, guard: guard.NewConstructorGuard()}, nil
}

func (c UploadMediaCommand) Validate() error {
	return c.guard.Validate(ErrUploadMediaCommandIsNotConstructed)
}

func (c UploadMediaCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID is set for sample uploads only.
func (c UploadMediaCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UploadMediaCommand) ProductID() *kernel.UUID {
	return c.productID
}

func (c UploadMediaCommand) Files() []ports.Upload {
	return c.files
}

func validateUploads(files []ports.Upload) error {
	if len(files) == 0 {
		return errs.NewValueIsRequiredError("files")
	}
	var errList []error
	for _, f := range files {
		if strings.TrimSpace(f.FileName) == "" {
			errList = append(errList, errs.NewValueIsRequiredError("file name"))
		}
		if f.Body == nil {
			errList = append(errList, errs.NewValueIsRequiredError("content of "+f.FileName))
		}
	}
	return errors.Join(errList...)
}
