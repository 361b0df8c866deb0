package payroll

import (
	"fmt"

	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
)

// Переходы ведомости: draft → calculated → approved → paid.
// Любая попытка из недопустимого статуса возвращает TransitionError и не трогает состояние.

// MarkCalculated помечает ведомость рассчитанной после успешного пересчёта.
func MarkCalculated(p *entity.Payroll) error {
	if !p.Editable() {
		return domain.NewTransitionError("payroll", p.ID, p.Status, "recalculate")
	}
	p.Status = entity.PayrollStatusCalculated
	return nil
}

// EnsureRecalculable проверяет, что пересчёт разрешён (только draft и calculated).
func EnsureRecalculable(p *entity.Payroll) error {
	if !p.Editable() {
		return domain.NewTransitionError("payroll", p.ID, p.Status, "recalculate")
	}
	return nil
}

// Approve утверждает ведомость и блокирует дальнейший пересчёт штатных записей.
// Статусы вложенных выплат ГПХ не трогает: они утверждаются отдельно.
func Approve(p *entity.Payroll) error {
	if !p.Editable() {
		return domain.NewTransitionError("payroll", p.ID, p.Status, "approve")
	}
	p.Status = entity.PayrollStatusApproved
	return nil
}

// MarkPaid переводит ведомость в терминальный статус paid.
// Требует, чтобы каждая выплата ГПХ была утверждена или оплачена.
func MarkPaid(p *entity.Payroll) error {
	if p.Status != entity.PayrollStatusApproved {
		return domain.NewTransitionError("payroll", p.ID, p.Status, "mark_paid")
	}
	for _, g := range p.GPHPayments {
		if g.Status == entity.GPHStatusPending {
			return fmt.Errorf("%w: выплата %s по акту %s в статусе pending",
				domain.ErrIncompleteGPHPayments, g.ID, g.CompletionActRef)
		}
	}
	p.Status = entity.PayrollStatusPaid
	return nil
}

// EnsureDeletable проверяет, что ведомость можно удалить (только draft).
func EnsureDeletable(p *entity.Payroll) error {
	if p.Status != entity.PayrollStatusDraft {
		return domain.NewTransitionError("payroll", p.ID, p.Status, "delete")
	}
	return nil
}

// ApprovePayment утверждает выплату ГПХ: пересчитывает её с обязательным
// значением флага вычета МРП и замораживает результат в слепке.
// Повторное утверждение запрещено — поля после approve неизменяемы.
func ApprovePayment(g *entity.GPHPayment, applyMRPDeduction bool, rt entity.RateTable) error {
	if g.Status != entity.GPHStatusPending {
		return domain.NewTransitionError("gph_payment", g.ID, g.Status, "approve")
	}
	calc, err := CalculateGPH(g.GrossAmount, rt, applyMRPDeduction)
	if err != nil {
		return err
	}
	calc.Apply(g)
	g.Status = entity.GPHStatusApproved
	return nil
}

// MarkPaymentPaid переводит выплату ГПХ в терминальный статус paid.
// Из pending напрямую нельзя; из paid никаких переходов нет.
func MarkPaymentPaid(g *entity.GPHPayment) error {
	if g.Status != entity.GPHStatusApproved {
		return domain.NewTransitionError("gph_payment", g.ID, g.Status, "mark_paid")
	}
	g.Status = entity.GPHStatusPaid
	return nil
}
