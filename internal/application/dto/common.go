package dto

// PageRequest — пагинация списков.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage применяет значения по умолчанию, если Limit/Offset нулевые.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse — метаданные страницы в ответах.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse — тело HTTP-ошибки.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
