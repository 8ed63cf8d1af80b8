package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/internal/domain/repository"
	infraRepo "github.com/sangkips/ddms-api/internal/infrastructure/repository"
	"github.com/sangkips/ddms-api/internal/mocks"
	"github.com/sangkips/ddms-api/pkg/apperror"
	"github.com/sangkips/ddms-api/pkg/clock"
	"github.com/sangkips/ddms-api/pkg/ddms"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type edge struct{ from, to enum.ReceiptState }

type recordingObserver struct {
	accepted []edge
	rejected []edge
}

func (o *recordingObserver) ObserveTransition(from, to enum.ReceiptState) {
	o.accepted = append(o.accepted, edge{from, to})
}

func (o *recordingObserver) ObserveRejected(from, to enum.ReceiptState) {
	o.rejected = append(o.rejected, edge{from, to})
}

type receiptFixture struct {
	receipts    *mocks.MockReceiptRepository
	customers   *mocks.MockCustomerRepository
	particulars *mocks.MockParticularRepository
	stores      *mocks.MockStoreRepository
	observer    *recordingObserver
	clock       *clock.FakeClock
	svc         *ReceiptService
	ctx         context.Context
	storeID     uuid.UUID
	actorID     uuid.UUID
}

func newReceiptFixture(t *testing.T) *receiptFixture {
	ctrl := gomock.NewController(t)
	f := &receiptFixture{
		receipts:    mocks.NewMockReceiptRepository(ctrl),
		customers:   mocks.NewMockCustomerRepository(ctrl),
		particulars: mocks.NewMockParticularRepository(ctrl),
		stores:      mocks.NewMockStoreRepository(ctrl),
		observer:    &recordingObserver{},
		clock:       clock.Fake(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)),
		storeID:     uuid.New(),
		actorID:     uuid.New(),
	}
	f.ctx = infraRepo.WithStore(context.Background(), f.storeID)
	f.svc = NewReceiptService(f.receipts, f.customers, f.particulars, f.stores,
		f.observer, f.clock, zaptest.NewLogger(t).Sugar())
	return f
}

func (f *receiptFixture) receipt(state enum.ReceiptState, total, paid string) *entity.Receipt {
	return &entity.Receipt{
		ID:           uuid.New(),
		StoreID:      f.storeID,
		ReceiptState: state,
		TotalAmount:  decimal.RequireFromString(total),
		PaidAmount:   decimal.RequireFromString(paid),
	}
}

// expectLoad serves r from GetByID for every lookup of its id.
func (f *receiptFixture) expectLoad(r *entity.Receipt) {
	f.receipts.EXPECT().GetByID(gomock.Any(), r.ID).Return(r, nil).AnyTimes()
}

func requireAppError(t *testing.T, err error, code string) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, code, appErr.ErrorCode)
	return appErr
}

func TestCreateReceiptComputesTotal(t *testing.T) {
	f := newReceiptFixture(t)
	customerID := uuid.New()
	p1 := entity.Particular{ID: uuid.New(), Name: "Annadanam", Type: enum.ParticularTypeReceipt, Active: true}
	p2 := entity.Particular{ID: uuid.New(), Name: "Building fund", Type: enum.ParticularTypeReceipt, Active: true}

	f.customers.EXPECT().GetByID(gomock.Any(), customerID).
		Return(&entity.Customer{ID: customerID, Active: true}, nil)
	f.particulars.EXPECT().GetByIDs(gomock.Any(), []uuid.UUID{p1.ID, p2.ID}).
		Return([]entity.Particular{p1, p2}, nil)
	f.stores.EXPECT().GetByID(gomock.Any(), f.storeID).
		Return(&entity.Store{ID: f.storeID, ReceiptPrefix: "SVT"}, nil)

	var created *entity.Receipt
	f.receipts.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *entity.Receipt) error {
			r.ID = uuid.New()
			created = r
			return nil
		})
	f.receipts.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*entity.Receipt, error) {
			return created, nil
		})

	r, err := f.svc.CreateReceipt(f.ctx, &CreateReceiptInput{
		ActorID:    f.actorID,
		CustomerID: customerID,
		Items: []ReceiptItemInput{
			{ParticularID: p1.ID, Amount: decimal.RequireFromString("501")},
			{ParticularID: p2.ID, Amount: decimal.RequireFromString("1000.50")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.ReceiptStateDraft, r.ReceiptState)
	assert.Equal(t, "1501.50", r.TotalAmount.StringFixed(2))
	assert.True(t, r.PaidAmount.IsZero())
	assert.Equal(t, f.storeID, r.StoreID)
	assert.Equal(t, f.actorID, r.CreatedBy)
	assert.Regexp(t, `^SVT-20260314-[0-9A-F]{8}$`, r.ReceiptNumber)
	assert.Equal(t, "Annadanam", r.Items[0].ParticularName)
}

func TestCreateReceiptValidatesItems(t *testing.T) {
	f := newReceiptFixture(t)
	customerID := uuid.New()
	challan := entity.Particular{ID: uuid.New(), Type: enum.ParticularTypeChallan, Active: true}
	missing := uuid.New()

	f.customers.EXPECT().GetByID(gomock.Any(), customerID).
		Return(&entity.Customer{ID: customerID, Active: true}, nil).Times(3)
	f.particulars.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).
		Return([]entity.Particular{challan}, nil)

	_, err := f.svc.CreateReceipt(f.ctx, &CreateReceiptInput{CustomerID: customerID})
	requireAppError(t, err, ddms.CodeValidation)

	_, err = f.svc.CreateReceipt(f.ctx, &CreateReceiptInput{
		CustomerID: customerID,
		Items:      []ReceiptItemInput{{ParticularID: challan.ID, Amount: decimal.Zero}},
	})
	appErr := requireAppError(t, err, ddms.CodeValidation)
	assert.Equal(t, "items[0].amount", appErr.Errors[0].Field)

	_, err = f.svc.CreateReceipt(f.ctx, &CreateReceiptInput{
		CustomerID: customerID,
		Items: []ReceiptItemInput{
			{ParticularID: challan.ID, Amount: decimal.NewFromInt(10)},
			{ParticularID: missing, Amount: decimal.NewFromInt(10)},
		},
	})
	appErr = requireAppError(t, err, ddms.CodeValidation)
	require.Len(t, appErr.Errors, 2)
	assert.Equal(t, "particular cannot be used on receipts", appErr.Errors[0].Message)
	assert.Equal(t, "particular not found", appErr.Errors[1].Message)
}

func TestCreateReceiptRequiresStore(t *testing.T) {
	f := newReceiptFixture(t)
	_, err := f.svc.CreateReceipt(context.Background(), &CreateReceiptInput{})
	assert.Equal(t, apperror.ErrStoreRequired, err)
}

func TestCreateReceiptUnknownCustomer(t *testing.T) {
	f := newReceiptFixture(t)
	f.customers.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := f.svc.CreateReceipt(f.ctx, &CreateReceiptInput{CustomerID: uuid.New()})
	requireAppError(t, err, ddms.CodeNotFound)
}

func TestUpdateReceiptLockedAfterSubmission(t *testing.T) {
	f := newReceiptFixture(t)
	r := f.receipt(enum.ReceiptStatePendingApproval, "100", "0")
	f.expectLoad(r)

	ref := "CHQ-12"
	_, err := f.svc.UpdateReceipt(f.ctx, &UpdateReceiptInput{ID: r.ID, ReferenceNumber: &ref})
	assert.Equal(t, apperror.ErrReceiptLocked, err)
}

func TestUpdateReceiptReplacesItems(t *testing.T) {
	f := newReceiptFixture(t)
	r := f.receipt(enum.ReceiptStateUnpaid, "100", "0")
	f.expectLoad(r)
	p := entity.Particular{ID: uuid.New(), Name: "Pooja", Type: enum.ParticularTypeReceipt, Active: true}

	f.particulars.EXPECT().GetByIDs(gomock.Any(), []uuid.UUID{p.ID}).Return([]entity.Particular{p}, nil)
	f.receipts.EXPECT().Update(gomock.Any(), r).Return(nil)

	out, err := f.svc.UpdateReceipt(f.ctx, &UpdateReceiptInput{
		ID:    r.ID,
		Items: []ReceiptItemInput{{ParticularID: p.ID, Amount: decimal.NewFromInt(250)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "250.00", out.TotalAmount.StringFixed(2))
	assert.Equal(t, r.ID, out.Items[0].ReceiptID)
}

func TestUpdateReceiptStaleWrite(t *testing.T) {
	f := newReceiptFixture(t)
	r := f.receipt(enum.ReceiptStateUnpaid, "100", "0")
	f.expectLoad(r)
	f.receipts.EXPECT().Update(gomock.Any(), r).Return(repository.ErrStaleState)

	ref := "CHQ-12"
	_, err := f.svc.UpdateReceipt(f.ctx, &UpdateReceiptInput{ID: r.ID, ReferenceNumber: &ref})
	requireAppError(t, err, ddms.CodeConflict)
}

func TestChangeStateFollowsLifecycle(t *testing.T) {
	tests := []struct {
		name string
		from enum.ReceiptState
		to   enum.ReceiptState
	}{
		{"submit draft", enum.ReceiptStateDraft, enum.ReceiptStateUnpaid},
		{"send for approval", enum.ReceiptStateUnpaid, enum.ReceiptStatePendingApproval},
		{"reject", enum.ReceiptStatePendingApproval, enum.ReceiptStateUnpaid},
		{"cancel paid", enum.ReceiptStatePaid, enum.ReceiptStateCancelled},
		{"cancel partial", enum.ReceiptStatePartial, enum.ReceiptStateCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReceiptFixture(t)
			r := f.receipt(tt.from, "100", "0")
			f.expectLoad(r)

			f.receipts.EXPECT().ApplyTransition(gomock.Any(), r, gomock.Any()).
				DoAndReturn(func(_ context.Context, got *entity.Receipt, tr *entity.ReceiptTransition) error {
					assert.Equal(t, tt.from, tr.FromState)
					assert.Equal(t, tt.to, tr.ToState)
					assert.Equal(t, f.actorID, tr.ActorID)
					assert.Equal(t, "ok", tr.Notes)
					return nil
				})

			out, err := f.svc.ChangeState(f.ctx, &ChangeStateInput{
				ID: r.ID, ActorID: f.actorID, NewState: tt.to, Notes: "ok",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.to, out.ReceiptState)
			assert.Equal(t, []edge{{tt.from, tt.to}}, f.observer.accepted)
		})
	}
}

func TestChangeStateRejectsIllegalEdges(t *testing.T) {
	tests := []struct {
		from enum.ReceiptState
		to   enum.ReceiptState
	}{
		{enum.ReceiptStateDraft, enum.ReceiptStatePendingApproval},
		{enum.ReceiptStateCancelled, enum.ReceiptStateDraft},
		{enum.ReceiptStateCancelled, enum.ReceiptStateCancelled},
		{enum.ReceiptStatePaid, enum.ReceiptStateUnpaid},
		{enum.ReceiptState("ARCHIVED"), enum.ReceiptStateCancelled},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			f := newReceiptFixture(t)
			r := f.receipt(tt.from, "100", "0")
			f.expectLoad(r)

			_, err := f.svc.ChangeState(f.ctx, &ChangeStateInput{ID: r.ID, NewState: tt.to})
			appErr := requireAppError(t, err, ddms.CodeInvalidTransition)
			assert.Contains(t, appErr.Message, "Cannot transition from "+string(tt.from))
			assert.Equal(t, []edge{{tt.from, tt.to}}, f.observer.rejected)
			assert.Equal(t, tt.from, r.ReceiptState)
		})
	}
}

func TestChangeStateRoutesApprovalAndPayment(t *testing.T) {
	f := newReceiptFixture(t)
	id := uuid.New()

	_, err := f.svc.ChangeState(f.ctx, &ChangeStateInput{ID: id, NewState: enum.ReceiptStatePaid})
	assert.Equal(t, apperror.ErrPaymentRequired, err)
	_, err = f.svc.ChangeState(f.ctx, &ChangeStateInput{ID: id, NewState: enum.ReceiptStatePartial})
	assert.Equal(t, apperror.ErrPaymentRequired, err)
	_, err = f.svc.ChangeState(f.ctx, &ChangeStateInput{ID: id, NewState: enum.ReceiptStateApproved})
	assert.Equal(t, apperror.ErrApprovalRequired, err)
	_, err = f.svc.ChangeState(f.ctx, &ChangeStateInput{ID: id, NewState: "SHREDDED"})
	requireAppError(t, err, ddms.CodeValidation)
}

func TestChangeStateStaleWrite(t *testing.T) {
	f := newReceiptFixture(t)
	r := f.receipt(enum.ReceiptStateUnpaid, "100", "0")
	f.expectLoad(r)
	f.receipts.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(repository.ErrStaleState)

	_, err := f.svc.ChangeState(f.ctx, &ChangeStateInput{ID: r.ID, NewState: enum.ReceiptStateCancelled})
	requireAppError(t, err, ddms.CodeConflict)
	assert.Empty(t, f.observer.accepted)
}

func TestApprove(t *testing.T) {
	f := newReceiptFixture(t)
	r := f.receipt(enum.ReceiptStatePendingApproval, "750", "0")
	f.expectLoad(r)
	f.receipts.EXPECT().ApplyTransition(gomock.Any(), r, gomock.Any()).Return(nil)

	out, err := f.svc.Approve(f.ctx, &ApproveInput{ID: r.ID, ActorID: f.actorID, Notes: "verified"})
	require.NoError(t, err)

	assert.Equal(t, enum.ReceiptStateApproved, out.ReceiptState)
	require.NotNil(t, out.ApprovedBy)
	assert.Equal(t, f.actorID, *out.ApprovedBy)
	assert.Equal(t, f.clock.Now(), *out.ApprovedAt)
}

func TestApproveRejections(t *testing.T) {
	t.Run("not pending", func(t *testing.T) {
		f := newReceiptFixture(t)
		r := f.receipt(enum.ReceiptStateUnpaid, "750", "0")
		f.expectLoad(r)

		_, err := f.svc.Approve(f.ctx, &ApproveInput{ID: r.ID})
		requireAppError(t, err, ddms.CodeInvalidTransition)
	})

	t.Run("zero total", func(t *testing.T) {
		f := newReceiptFixture(t)
		r := f.receipt(enum.ReceiptStatePendingApproval, "0", "0")
		f.expectLoad(r)

		_, err := f.svc.Approve(f.ctx, &ApproveInput{ID: r.ID})
		assert.Equal(t, apperror.ErrInsufficientAmount, err)
		assert.Nil(t, r.ApprovedBy)
	})

	t.Run("not found", func(t *testing.T) {
		f := newReceiptFixture(t)
		f.receipts.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.Approve(f.ctx, &ApproveInput{ID: uuid.New()})
		requireAppError(t, err, ddms.CodeNotFound)
	})
}

func TestPay(t *testing.T) {
	tests := []struct {
		name       string
		from       enum.ReceiptState
		total      string
		paid       string
		amount     string
		wantState  enum.ReceiptState
		wantPaid   string
		wantDueStr string
	}{
		{"full payment", enum.ReceiptStateUnpaid, "1000", "0", "1000", enum.ReceiptStatePaid, "1000.00", "0.00"},
		{"partial payment", enum.ReceiptStateUnpaid, "1000", "0", "400", enum.ReceiptStatePartial, "400.00", "600.00"},
		{"approved full", enum.ReceiptStateApproved, "500", "0", "500", enum.ReceiptStatePaid, "500.00", "0.00"},
		{"complete partial", enum.ReceiptStatePartial, "1000", "400", "600", enum.ReceiptStatePaid, "1000.00", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReceiptFixture(t)
			r := f.receipt(tt.from, tt.total, tt.paid)
			f.expectLoad(r)
			f.receipts.EXPECT().ApplyTransition(gomock.Any(), r, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *entity.Receipt, tr *entity.ReceiptTransition) error {
					assert.Equal(t, tt.amount, tr.Amount.String())
					return nil
				})

			out, err := f.svc.Pay(f.ctx, &PayInput{
				ID:             r.ID,
				ActorID:        f.actorID,
				Amount:         decimal.RequireFromString(tt.amount),
				PaymentMode:    enum.PaymentModeCash,
				PaymentDetails: "counter 2",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, out.ReceiptState)
			assert.Equal(t, tt.wantPaid, out.PaidAmount.StringFixed(2))
			assert.Equal(t, tt.wantDueStr, out.Outstanding().StringFixed(2))
			assert.Equal(t, enum.PaymentModeCash, out.PaymentMode)
		})
	}
}

func TestPayRejections(t *testing.T) {
	t.Run("non positive amount", func(t *testing.T) {
		f := newReceiptFixture(t)
		_, err := f.svc.Pay(f.ctx, &PayInput{ID: uuid.New(), Amount: decimal.NewFromInt(-5)})
		assert.Equal(t, apperror.ErrInsufficientAmount, err)
	})

	t.Run("overpayment", func(t *testing.T) {
		f := newReceiptFixture(t)
		r := f.receipt(enum.ReceiptStateUnpaid, "100", "0")
		f.expectLoad(r)

		_, err := f.svc.Pay(f.ctx, &PayInput{ID: r.ID, Amount: decimal.RequireFromString("100.01")})
		assert.Equal(t, apperror.ErrOverpayment, err)
	})

	t.Run("second partial payment", func(t *testing.T) {
		f := newReceiptFixture(t)
		r := f.receipt(enum.ReceiptStatePartial, "1000", "400")
		f.expectLoad(r)

		_, err := f.svc.Pay(f.ctx, &PayInput{ID: r.ID, Amount: decimal.NewFromInt(100)})
		appErr := requireAppError(t, err, ddms.CodeInvalidTransition)
		assert.Equal(t, "Cannot transition from PARTIAL to PARTIAL", appErr.Message)
		assert.Equal(t, "400", r.PaidAmount.String())
	})

	t.Run("draft cannot be paid", func(t *testing.T) {
		f := newReceiptFixture(t)
		r := f.receipt(enum.ReceiptStateDraft, "100", "0")
		f.expectLoad(r)

		_, err := f.svc.Pay(f.ctx, &PayInput{ID: r.ID, Amount: decimal.NewFromInt(100)})
		requireAppError(t, err, ddms.CodeInvalidTransition)
	})

	t.Run("pending approval cannot be paid", func(t *testing.T) {
		f := newReceiptFixture(t)
		r := f.receipt(enum.ReceiptStatePendingApproval, "100", "0")
		f.expectLoad(r)

		_, err := f.svc.Pay(f.ctx, &PayInput{ID: r.ID, Amount: decimal.NewFromInt(100)})
		requireAppError(t, err, ddms.CodeInvalidTransition)
	})
}

func TestListApprovals(t *testing.T) {
	f := newReceiptFixture(t)
	r := f.receipt(enum.ReceiptStateApproved, "100", "0")
	f.expectLoad(r)
	f.receipts.EXPECT().ListTransitions(gomock.Any(), r.ID).Return(nil, nil)

	out, err := f.svc.ListApprovals(f.ctx, r.ID)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestApplyWrapsRepositoryErrors(t *testing.T) {
	f := newReceiptFixture(t)
	r := f.receipt(enum.ReceiptStateDraft, "100", "0")
	f.expectLoad(r)
	boom := errors.New("connection reset")
	f.receipts.EXPECT().ApplyTransition(gomock.Any(), gomock.Any(), gomock.Any()).Return(boom)

	_, err := f.svc.ChangeState(f.ctx, &ChangeStateInput{ID: r.ID, NewState: enum.ReceiptStateUnpaid})
	assert.ErrorIs(t, err, boom)
}
