package repository

import "github.com/dkairat/Esep-api/internal/domain/entity"

// PayrollRepository — порт персистентности ведомости, её записей и выплат ГПХ.
type PayrollRepository interface {
	Create(p *entity.Payroll) error
	// GetByID возвращает ведомость с записями и выплатами; nil если нет.
	GetByID(id string) (*entity.Payroll, error)
	GetByPeriod(year, month int) (*entity.Payroll, error)
	// List возвращает заголовки ведомостей (без записей).
	List(limit, offset int) ([]entity.Payroll, error)
	// UpdateStatus меняет статус с оптимистической проверкой версии:
	// ErrConcurrentModification, если версия в БД уже не expectedVersion.
	UpdateStatus(id, status string, expectedVersion int) error
	// ReplaceEntries атомарно заменяет записи ведомости результатами пересчёта
	// и обновляет сводные суммы заголовка.
	ReplaceEntries(p *entity.Payroll) error
	// Delete удаляет ведомость с записями и выплатами. Удаляется только draft:
	// ведомость, сменившая статус после чтения, остаётся на месте,
	// а caller получает ErrConcurrentModification.
	Delete(id string) error

	CreateEntry(e *entity.PayrollEntry) error
	CreatePayment(g *entity.GPHPayment) error
	GetPaymentByID(id string) (*entity.GPHPayment, error)
	// UpdatePayment сохраняет расчётные поля, слепок и статус выплаты.
	// Переход выполняется, только если статус в БД всё ещё fromStatus;
	// иначе ErrConcurrentModification — проигравший гонку не перезаписывает
	// замороженное утверждение.
	UpdatePayment(g *entity.GPHPayment, fromStatus string) error
}
