package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
	"github.com/dkairat/Esep-api/internal/domain/payroll"
)

func payrollIn(status string) *entity.Payroll {
	return &entity.Payroll{ID: "p1", Year: 2024, Month: 3, Status: status}
}

// Полная матрица переходов ведомости: что разрешено из каждого статуса.
func TestPayrollTransitionMatrix(t *testing.T) {
	cases := []struct {
		from       string
		action     string
		apply      func(*entity.Payroll) error
		wantErr    bool
		wantStatus string
	}{
		{entity.PayrollStatusDraft, "recalculate", payroll.MarkCalculated, false, entity.PayrollStatusCalculated},
		{entity.PayrollStatusCalculated, "recalculate", payroll.MarkCalculated, false, entity.PayrollStatusCalculated},
		{entity.PayrollStatusApproved, "recalculate", payroll.MarkCalculated, true, ""},
		{entity.PayrollStatusPaid, "recalculate", payroll.MarkCalculated, true, ""},

		{entity.PayrollStatusDraft, "approve", payroll.Approve, false, entity.PayrollStatusApproved},
		{entity.PayrollStatusCalculated, "approve", payroll.Approve, false, entity.PayrollStatusApproved},
		{entity.PayrollStatusApproved, "approve", payroll.Approve, true, ""},
		{entity.PayrollStatusPaid, "approve", payroll.Approve, true, ""},

		{entity.PayrollStatusDraft, "mark_paid", payroll.MarkPaid, true, ""},
		{entity.PayrollStatusCalculated, "mark_paid", payroll.MarkPaid, true, ""},
		{entity.PayrollStatusApproved, "mark_paid", payroll.MarkPaid, false, entity.PayrollStatusPaid},
		{entity.PayrollStatusPaid, "mark_paid", payroll.MarkPaid, true, ""},

		{entity.PayrollStatusDraft, "delete", payroll.EnsureDeletable, false, entity.PayrollStatusDraft},
		{entity.PayrollStatusCalculated, "delete", payroll.EnsureDeletable, true, ""},
		{entity.PayrollStatusApproved, "delete", payroll.EnsureDeletable, true, ""},
		{entity.PayrollStatusPaid, "delete", payroll.EnsureDeletable, true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.from+"_"+tc.action, func(t *testing.T) {
			p := payrollIn(tc.from)
			err := tc.apply(p)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
				// статус не изменился
				assert.Equal(t, tc.from, p.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, p.Status)
		})
	}
}

// mark_paid блокируется, пока хоть одна выплата ГПХ в pending.
func TestMarkPaid_PendingGPHBlocks(t *testing.T) {
	p := payrollIn(entity.PayrollStatusApproved)
	p.GPHPayments = []entity.GPHPayment{
		{ID: "g1", Status: entity.GPHStatusApproved},
		{ID: "g2", Status: entity.GPHStatusPending, CompletionActRef: "act-7"},
	}

	err := payroll.MarkPaid(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIncompleteGPHPayments)
	assert.Equal(t, entity.PayrollStatusApproved, p.Status)
}

func TestMarkPaid_AllGPHSettled(t *testing.T) {
	p := payrollIn(entity.PayrollStatusApproved)
	p.GPHPayments = []entity.GPHPayment{
		{ID: "g1", Status: entity.GPHStatusApproved},
		{ID: "g2", Status: entity.GPHStatusPaid},
	}
	require.NoError(t, payroll.MarkPaid(p))
	assert.Equal(t, entity.PayrollStatusPaid, p.Status)
}

// Утверждение выплаты фиксирует флаг вычета и пересчитывает суммы; pending — единственный вход.
func TestApprovePayment(t *testing.T) {
	g := &entity.GPHPayment{ID: "g1", Status: entity.GPHStatusPending, GrossAmount: dec("300000")}

	require.NoError(t, payroll.ApprovePayment(g, true, testRates()))
	assert.Equal(t, entity.GPHStatusApproved, g.Status)
	require.NotNil(t, g.ApplyMRPDeduction)
	assert.True(t, *g.ApplyMRPDeduction)
	assert.False(t, g.NetAmount.IsZero())

	// повторное утверждение запрещено, суммы не трогаются
	frozenNet := g.NetAmount
	err := payroll.ApprovePayment(g, false, testRates())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, g.NetAmount.Equal(frozenNet))
	assert.True(t, *g.ApplyMRPDeduction)
}

func TestMarkPaymentPaid(t *testing.T) {
	// из pending напрямую нельзя
	g := &entity.GPHPayment{ID: "g1", Status: entity.GPHStatusPending}
	assert.ErrorIs(t, payroll.MarkPaymentPaid(g), domain.ErrInvalidTransition)

	g.Status = entity.GPHStatusApproved
	require.NoError(t, payroll.MarkPaymentPaid(g))
	assert.Equal(t, entity.GPHStatusPaid, g.Status)

	// paid терминален
	assert.ErrorIs(t, payroll.MarkPaymentPaid(g), domain.ErrInvalidTransition)
}

// TransitionError несёт контекст перехода и разворачивается в sentinel.
func TestTransitionError_Unwrap(t *testing.T) {
	p := payrollIn(entity.PayrollStatusPaid)
	err := payroll.Approve(p)
	require.Error(t, err)

	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "payroll", te.Entity)
	assert.Equal(t, entity.PayrollStatusPaid, te.From)
	assert.Equal(t, "approve", te.Action)
}
