package domain

import (
	"errors"
	"fmt"
)

// Ошибки домена (без внешних зависимостей).
var (
	ErrNotFound               = errors.New("запись не найдена")
	ErrUserNotFound           = errors.New("пользователь не найден")
	ErrEmailAlreadyExists     = errors.New("email уже зарегистрирован")
	ErrInvalidInput           = errors.New("некорректные входные данные")
	ErrDuplicate              = errors.New("дублирующая запись")
	ErrUnauthorized           = errors.New("не авторизован")
	ErrForbidden              = errors.New("доступ запрещён")
	ErrInvalidTransition      = errors.New("недопустимый переход статуса")
	ErrIncompleteGPHPayments  = errors.New("не все выплаты по ГПХ утверждены или оплачены")
	ErrConcurrentModification = errors.New("запись изменена параллельной операцией")
)

// TransitionError — недопустимый переход статуса с контекстом: кто, откуда, куда.
// Оборачивает ErrInvalidTransition, так что errors.Is(err, ErrInvalidTransition) работает.
type TransitionError struct {
	Entity string // "payroll" | "gph_payment"
	ID     string
	From   string
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s %s: действие %q недоступно из статуса %q", e.Entity, e.ID, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// NewTransitionError создаёт ошибку перехода для сущности.
func NewTransitionError(entity, id, from, action string) error {
	return &TransitionError{Entity: entity, ID: id, From: from, Action: action}
}
