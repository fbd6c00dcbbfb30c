package handler

// errorBody documents the error envelope rendered by the API error handler.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type deleteBookResponse struct {
	Message string `json:"message"`
	BookID  int64  `json:"libroId"`
}

// recordLoanRequest takes libro_id as given; only its presence is checked.
type recordLoanRequest struct {
	BookID          *int64 `json:"libro_id"       validate:"required"`
	ReadingDuration int    `json:"tiempo_lectura" validate:"gte=0,lte=2147483647"`
}
