package payroll_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkairat/Esep-api/internal/application/dto"
	apppayroll "github.com/dkairat/Esep-api/internal/application/payroll"
	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
)

func (e *env) lifecycleUC() *apppayroll.LifecycleUseCase {
	return apppayroll.NewLifecycleUseCase(e.tx, e.payrollRepo, e.rateRepo)
}

func (e *env) gphUC() *apppayroll.GPHUseCase {
	return apppayroll.NewGPHUseCase(e.tx, e.payrollRepo, e.rateRepo)
}

func (e *env) mustGenerate(t *testing.T) *entity.Payroll {
	t.Helper()
	e.seedWorkers()
	e.seedActs()
	p, err := e.generateUC().Generate(context.Background(), "u1", dto.GeneratePayrollRequest{Year: 2024, Month: 3})
	require.NoError(t, err)
	return p
}

// Пересчёт при неизменных ставках даёт байт-в-байт те же записи.
func TestRecalculate_DeterministicWithSameRates(t *testing.T) {
	e := newEnv()
	p := e.mustGenerate(t)
	original := append([]entity.PayrollEntry(nil), p.Entries...)

	recalced, err := e.lifecycleUC().Recalculate(context.Background(), p.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.PayrollStatusCalculated, recalced.Status)
	assert.Equal(t, p.Version+1, recalced.Version)
	require.Len(t, recalced.Entries, len(original))
	for i := range original {
		got, want := recalced.Entries[i], original[i]
		assert.True(t, got.NetSalary.Equal(want.NetSalary), "запись %d", i)
		assert.True(t, got.IPN.Equal(want.IPN), "запись %d", i)
		assert.Equal(t, want.CalculationSnapshot, got.CalculationSnapshot, "запись %d", i)
	}
}

// Смена таблицы ставок меняет результат пересчёта, а слепок — версию ставок.
func TestRecalculate_PicksUpNewRates(t *testing.T) {
	e := newEnv()
	p := e.mustGenerate(t)
	oldIPN := p.Entries[0].IPN

	newRates := ratesFixture()
	newRates.ID = "rt-2024-2"
	newRates.EffectiveFrom = newRates.EffectiveFrom.AddDate(0, 1, 0)
	newRates.IPNRate = dec("0.20")
	require.NoError(t, e.rateRepo.Create(&newRates))

	recalced, err := e.lifecycleUC().Recalculate(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, recalced.Entries[0].IPN.Equal(oldIPN))
	assert.Equal(t, "rt-2024-2", recalced.Entries[0].CalculationSnapshot.RateTableID)
}

// Гонка двух операторов: проигравший получает ErrConcurrentModification.
func TestRecalculate_VersionConflict(t *testing.T) {
	e := newEnv()
	p := e.mustGenerate(t)

	e.payrollRepo.staleReads = true
	_, err := e.lifecycleUC().Recalculate(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
}

func TestRecalculate_ApprovedBlocked(t *testing.T) {
	e := newEnv()
	p := e.mustGenerate(t)

	_, err := e.lifecycleUC().Approve(context.Background(), p.ID)
	require.NoError(t, err)

	_, err = e.lifecycleUC().Recalculate(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Полный путь: approve ведомости → approve/mark-paid выплат ГПХ → mark-paid ведомости.
func TestLifecycle_FullPath(t *testing.T) {
	e := newEnv()
	p := e.mustGenerate(t)
	ctx := context.Background()

	_, err := e.lifecycleUC().Approve(ctx, p.ID)
	require.NoError(t, err)

	// mark-paid блокируется: выплата ГПХ ещё pending
	_, err = e.lifecycleUC().MarkPaid(ctx, p.ID)
	require.ErrorIs(t, err, domain.ErrIncompleteGPHPayments)

	paymentID := p.GPHPayments[0].ID
	g, err := e.gphUC().Approve(ctx, paymentID, true)
	require.NoError(t, err)
	assert.Equal(t, entity.GPHStatusApproved, g.Status)
	require.NotNil(t, g.ApplyMRPDeduction)
	assert.True(t, *g.ApplyMRPDeduction)

	// утверждённой выплаты достаточно для закрытия ведомости
	paid, err := e.lifecycleUC().MarkPaid(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PayrollStatusPaid, paid.Status)
}

// Повторное утверждение выплаты невозможно: слепок заморожен.
func TestGPHApprove_FrozenAfterApprove(t *testing.T) {
	e := newEnv()
	p := e.mustGenerate(t)
	ctx := context.Background()
	paymentID := p.GPHPayments[0].ID

	g, err := e.gphUC().Approve(ctx, paymentID, false)
	require.NoError(t, err)
	frozenNet := g.NetAmount

	_, err = e.gphUC().Approve(ctx, paymentID, true)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, err := e.payrollRepo.GetPaymentByID(paymentID)
	require.NoError(t, err)
	assert.True(t, stored.NetAmount.Equal(frozenNet))
	assert.False(t, *stored.ApplyMRPDeduction)
}

// Гонка двух approve одной выплаты: второй запрос прочитал её ещё pending,
// но фиксируется после первого — он проигрывает и не затирает заморозку.
func TestGPHApprove_ConcurrentApproveConflict(t *testing.T) {
	e := newEnv()
	p := e.mustGenerate(t)
	ctx := context.Background()
	paymentID := p.GPHPayments[0].ID

	first, err := e.gphUC().Approve(ctx, paymentID, true)
	require.NoError(t, err)

	e.payrollRepo.stalePaymentReads = true
	_, err = e.gphUC().Approve(ctx, paymentID, false)
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)

	e.payrollRepo.stalePaymentReads = false
	stored, err := e.payrollRepo.GetPaymentByID(paymentID)
	require.NoError(t, err)
	assert.Equal(t, entity.GPHStatusApproved, stored.Status)
	require.NotNil(t, stored.ApplyMRPDeduction)
	assert.True(t, *stored.ApplyMRPDeduction)
	assert.True(t, stored.NetAmount.Equal(first.NetAmount))
}

// mark-paid выплаты закрывает связанный акт.
func TestGPHMarkPaid_ClosesAct(t *testing.T) {
	e := newEnv()
	p := e.mustGenerate(t)
	ctx := context.Background()
	paymentID := p.GPHPayments[0].ID

	_, err := e.gphUC().Approve(ctx, paymentID, true)
	require.NoError(t, err)
	g, err := e.gphUC().MarkPaid(ctx, paymentID)
	require.NoError(t, err)
	assert.Equal(t, entity.GPHStatusPaid, g.Status)

	act, err := e.actRepo.GetByID("act1")
	require.NoError(t, err)
	assert.True(t, act.Paid)
}

// Оплата из pending напрямую запрещена.
func TestGPHMarkPaid_PendingBlocked(t *testing.T) {
	e := newEnv()
	p := e.mustGenerate(t)

	_, err := e.gphUC().MarkPaid(context.Background(), p.GPHPayments[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDelete_OnlyDraft(t *testing.T) {
	e := newEnv()
	p := e.mustGenerate(t)
	ctx := context.Background()

	_, err := e.lifecycleUC().Approve(ctx, p.ID)
	require.NoError(t, err)
	err = e.lifecycleUC().Delete(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Ведомость утверждена между чтением и удалением: DELETE со статусом в WHERE
// не срабатывает, ведомость остаётся.
func TestDelete_ApprovedMidFlightConflict(t *testing.T) {
	e := newEnv()
	p := e.mustGenerate(t)
	ctx := context.Background()

	_, err := e.lifecycleUC().Approve(ctx, p.ID)
	require.NoError(t, err)

	e.payrollRepo.staleStatusReads = true
	err = e.lifecycleUC().Delete(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)

	e.payrollRepo.staleStatusReads = false
	got, err := e.payrollRepo.GetByID(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.PayrollStatusApproved, got.Status)
}

func TestDelete_Draft(t *testing.T) {
	e := newEnv()
	p := e.mustGenerate(t)
	ctx := context.Background()

	require.NoError(t, e.lifecycleUC().Delete(ctx, p.ID))
	got, err := e.payrollRepo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
