package response

// Pagination carries the collaborator's standard pagination shape.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Envelope is the uniform response wrapper for every endpoint. Failure is
// signalled through Success and Message only; transport status stays 200.
type Envelope struct {
	Data       any         `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Errors     []string    `json:"errors,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// OK wraps a successful result.
func OK(data any, message string) Envelope {
	return Envelope{Data: data, Message: message, Success: true}
}

// Paginated wraps a successful page of results.
func Paginated(data any, message string, page, perPage int, total int64) Envelope {
	totalPages := int(total) / perPage
	if int(total)%perPage != 0 {
		totalPages++
	}
	return Envelope{
		Data:    data,
		Message: message,
		Success: true,
		Pagination: &Pagination{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

// Fail wraps a failed outcome with an empty data list.
func Fail(message string) Envelope {
	return Envelope{Data: []any{}, Message: message, Success: false}
}

// Invalid wraps a validation failure with its field messages.
func Invalid(message string, errs []string) Envelope {
	return Envelope{Data: []any{}, Message: message, Success: false, Errors: errs}
}
