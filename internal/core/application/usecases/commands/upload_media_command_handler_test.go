package commands_test

import (
	"errors"
	"strings"
	"testing"

	"mfgorders/internal/core/application/usecases/commands"
	"mfgorders/internal/core/domain/model/audit"
	"mfgorders/internal/core/domain/model/order"
	"mfgorders/internal/core/ports"
	"mfgorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploadMediaCommandHandler_Handle_PartialFailure(t *testing.T) {
	f := newFixture(t)
	o := f.submitted(t)
	p := firstProduct(o)
	files := []ports.Upload{
		{FileName: "front.png", ContentType: "image/png", Size: 3, Body: strings.NewReader("png")},
		{FileName: "huge.mov", ContentType: "video/quicktime", Size: 5, Body: strings.NewReader("movie")},
		{FileName: "spec.pdf", ContentType: "application/pdf", Size: 3, Body: strings.NewReader("pdf")},
	}
	cmd, err := commands.NewUploadProductMediaCommand(f.manufacturer, p.ID(), files)
	require.NoError(t, err)

	blobs := new(MockBlobStore)
	blobs.On("Upload", mock.Anything, mock.MatchedBy(func(u ports.Upload) bool { return u.FileName == "front.png" })).
		Return("/media/front.png", nil).Once()
	blobs.On("Upload", mock.Anything, mock.MatchedBy(func(u ports.Upload) bool { return u.FileName == "huge.mov" })).
		Return("", errors.New("file too large")).Once()
	blobs.On("Upload", mock.Anything, mock.MatchedBy(func(u ports.Upload) bool { return u.FileName == "spec.pdf" })).
		Return("/media/spec.pdf", nil).Once()

	w := newOrderUoW()
	var entries []*audit.Entry
	expectMutation(w, "GetByProductID", p.ID(), o, 2, 0, &entries, nil)

	results, err := commands.NewUploadMediaCommandHandler(w.factory, blobs, clock).Handle(t.Context(), cmd)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "/media/front.png", results[0].URL)
	require.NoError(t, results[0].Err)
	require.ErrorIs(t, results[1].Err, errs.ErrUpstreamFailure)
	assert.Contains(t, results[1].Err.Error(), "huge.mov")
	assert.Nil(t, results[1].MediaID)
	require.NotNil(t, results[2].MediaID)

	media := p.Media()
	require.Len(t, media, 2)
	assert.Equal(t, order.MediaImage, media[0].Kind())
	assert.Equal(t, order.MediaDocument, media[1].Kind())
	assert.Equal(t, f.manufacturer.ID(), media[0].UploadedBy())
	assert.Equal(t, audit.MediaUploaded, entries[0].Action())
	blobs.AssertExpectations(t)
	w.assert(t)
}

func TestUploadMediaCommandHandler_Handle_DiscardsFilesWhenTransactionFails(t *testing.T) {
	tests := map[string]struct {
		update error
		commit error
		want   error
	}{
		"stale version": {update: errs.NewConflictError("version", 4), want: errs.ErrConflict},
		"commit fails":  {commit: errors.New("connection reset")},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			o := f.submitted(t)
			p := firstProduct(o)
			cmd, err := commands.NewUploadProductMediaCommand(f.manufacturer, p.ID(), []ports.Upload{
				{FileName: "front.png", ContentType: "image/png", Body: strings.NewReader("png")},
				{FileName: "back.png", ContentType: "image/png", Body: strings.NewReader("png")},
			})
			require.NoError(t, err)

			blobs := new(MockBlobStore)
			blobs.On("Upload", mock.Anything, mock.MatchedBy(func(u ports.Upload) bool { return u.FileName == "front.png" })).
				Return("/media/front.png", nil).Once()
			blobs.On("Upload", mock.Anything, mock.MatchedBy(func(u ports.Upload) bool { return u.FileName == "back.png" })).
				Return("/media/back.png", nil).Once()
			blobs.On("Delete", mock.Anything, "/media/front.png").Return(nil).Once()
			blobs.On("Delete", mock.Anything, "/media/back.png").Return(nil).Once()

			w := newOrderUoW()
			calls := []*mock.Call{
				w.uow.On("Begin", mock.Anything).Return(nil).Once(),
				w.uow.On("OrderRepository").Return(w.orders).Once(),
				w.orders.On("GetByProductID", mock.Anything, p.ID()).Return(o, nil).Once(),
				w.orders.On("Update", mock.Anything, o).Return(tt.update).Once(),
			}
			if tt.update == nil {
				calls = append(calls,
					w.uow.On("AuditRepository").Return(w.audits).Once(),
					w.audits.On("Record", mock.Anything, mock.Anything).Return(nil).Twice(),
					w.uow.On("Commit", mock.Anything).Return(tt.commit).Once(),
				)
			}
			calls = append(calls, w.uow.On("Rollback", mock.Anything).Return(nil).Once())
			mock.InOrder(calls...)

			results, err := commands.NewUploadMediaCommandHandler(w.factory, blobs, clock).Handle(t.Context(), cmd)

			require.Error(t, err)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
			}
			assert.Nil(t, results)
			blobs.AssertExpectations(t)
			w.assert(t)
		})
	}
}

func TestUploadMediaCommandHandler_Handle_CleanupFailureIsReported(t *testing.T) {
	f := newFixture(t)
	o := f.submitted(t)
	p := firstProduct(o)
	cmd, err := commands.NewUploadProductMediaCommand(f.manufacturer, p.ID(), []ports.Upload{
		{FileName: "front.png", ContentType: "image/png", Body: strings.NewReader("png")},
	})
	require.NoError(t, err)

	blobs := new(MockBlobStore)
	blobs.On("Upload", mock.Anything, mock.Anything).Return("/media/front.png", nil).Once()
	blobs.On("Delete", mock.Anything, "/media/front.png").Return(errors.New("disk gone")).Once()

	w := newOrderUoW()
	mock.InOrder(
		w.uow.On("Begin", mock.Anything).Return(nil).Once(),
		w.uow.On("OrderRepository").Return(w.orders).Once(),
		w.orders.On("GetByProductID", mock.Anything, p.ID()).Return(o, nil).Once(),
		w.orders.On("Update", mock.Anything, o).Return(errs.NewConflictError("version", 2)).Once(),
		w.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	_, err = commands.NewUploadMediaCommandHandler(w.factory, blobs, clock).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.ErrorContains(t, err, "disk gone")
	blobs.AssertExpectations(t)
}

func TestUploadMediaCommandHandler_Handle_SampleMedia(t *testing.T) {
	f := newFixture(t)
	o := f.withSample(t)
	cmd, err := commands.NewUploadSampleMediaCommand(f.admin, o.ID(), []ports.Upload{
		{FileName: "sample.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpg")},
	})
	require.NoError(t, err)

	blobs := new(MockBlobStore)
	blobs.On("Upload", mock.Anything, mock.Anything).Return("/media/sample.jpg", nil).Once()

	w := newOrderUoW()
	var entries []*audit.Entry
	expectMutation(w, "Get", o.ID(), o, 1, 0, &entries, nil)

	results, err := commands.NewUploadMediaCommandHandler(w.factory, blobs, clock).Handle(t.Context(), cmd)

	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, o.SampleMedia(), 1)
	assert.True(t, o.SampleMedia()[0].SampleScoped())
	assert.Equal(t, audit.TargetSample, entries[0].TargetType())
}

func TestUploadMediaCommandHandler_Handle_ClientIsDenied(t *testing.T) {
	f := newFixture(t)
	o := f.submitted(t)
	p := firstProduct(o)
	cmd, err := commands.NewUploadProductMediaCommand(f.client, p.ID(), []ports.Upload{
		{FileName: "mine.png", ContentType: "image/png", Body: strings.NewReader("x")},
	})
	require.NoError(t, err)

	blobs := new(MockBlobStore)
	w := newOrderUoW()
	expectRejection(w, "GetByProductID", p.ID(), o)

	_, err = commands.NewUploadMediaCommandHandler(w.factory, blobs, clock).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrNotPermitted)
	blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestNewUploadProductMediaCommand_Validation(t *testing.T) {
	f := newFixture(t)
	_, err := commands.NewUploadProductMediaCommand(f.admin, firstProduct(f.submitted(t)).ID(), nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewUploadProductMediaCommand(f.admin, firstProduct(f.submitted(t)).ID(),
		[]ports.Upload{{FileName: "", Body: strings.NewReader("x")}})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
