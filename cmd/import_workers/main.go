// import_workers импортирует реестр работников из CSV-выгрузки 1С
// (кодировка Windows-1251, разделитель ";").
//
// Формат строк: ФИО;ИИН;должность;оклад;категория;резидент(1/0);дата_приёма(2006-01-02)
// Первая строка — заголовок, пропускается.
//
// Использование: go run ./cmd/import_workers выгрузка.csv
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/dkairat/Esep-api/internal/domain/entity"
	"github.com/dkairat/Esep-api/internal/infrastructure/postgres"
	"github.com/dkairat/Esep-api/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "использование: import_workers <файл.csv>")
		os.Exit(1)
	}
	csvPath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "загрузка конфигурации: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "подключение к PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "открытие CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// 1С выгружает в Windows-1251; перекодируем на лету
	r := csv.NewReader(transform.NewReader(f, charmap.Windows1251.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = 7

	workerRepo := postgres.NewWorkerRepository(pool)

	var imported, skipped int
	line := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			fmt.Fprintf(os.Stderr, "строка %d: %v\n", line, err)
			skipped++
			continue
		}
		if line == 1 {
			// заголовок
			continue
		}

		w, err := parseRow(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "строка %d: %v\n", line, err)
			skipped++
			continue
		}

		existing, err := workerRepo.GetByIIN(w.IIN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "строка %d: проверка ИИН: %v\n", line, err)
			skipped++
			continue
		}
		if existing != nil {
			skipped++
			continue
		}
		if err := workerRepo.Create(w); err != nil {
			fmt.Fprintf(os.Stderr, "строка %d: вставка: %v\n", line, err)
			skipped++
			continue
		}
		imported++
	}

	fmt.Printf("Импортировано %d работников, пропущено %d\n", imported, skipped)
}

// parseRow разбирает одну строку выгрузки в сущность.
func parseRow(rec []string) (*entity.Worker, error) {
	fullName := strings.TrimSpace(rec[0])
	iin := strings.TrimSpace(rec[1])
	if fullName == "" || len(iin) != 12 {
		return nil, fmt.Errorf("пустое ФИО или ИИН не из 12 цифр: %q %q", fullName, iin)
	}

	salary, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[3]), ",", "."))
	if err != nil {
		return nil, fmt.Errorf("оклад: %w", err)
	}
	if salary.IsNegative() {
		return nil, fmt.Errorf("отрицательный оклад %s", salary)
	}

	taxCategory := strings.TrimSpace(rec[4])
	switch taxCategory {
	case "":
		taxCategory = entity.TaxCategoryStandard
	case entity.TaxCategoryStandard, entity.TaxCategoryPensioner, entity.TaxCategoryDisabled:
	default:
		return nil, fmt.Errorf("неизвестная категория %q", taxCategory)
	}

	isResident := strings.TrimSpace(rec[5]) != "0"

	hiredAt := time.Now()
	if raw := strings.TrimSpace(rec[6]); raw != "" {
		hiredAt, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("дата приёма: %w", err)
		}
	}

	now := time.Now()
	return &entity.Worker{
		ID:           uuid.New().String(),
		FullName:     fullName,
		IIN:          iin,
		Position:     strings.TrimSpace(rec[2]),
		SalaryAmount: salary,
		TaxCategory:  taxCategory,
		IsResident:   isResident,
		HiredAt:      hiredAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
