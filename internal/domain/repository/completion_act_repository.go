package repository

import "github.com/dkairat/Esep-api/internal/domain/entity"

// CompletionActRepository — порт персистентности актов выполненных работ.
type CompletionActRepository interface {
	Create(a *entity.CompletionAct) error
	GetByID(id string) (*entity.CompletionAct, error)
	List(limit, offset int) ([]entity.CompletionAct, error)
	// ListUnpaidByPeriod возвращает неоплаченные акты с датой внутри периода.
	ListUnpaidByPeriod(year, month int) ([]entity.CompletionAct, error)
	MarkPaid(id string) error
}
