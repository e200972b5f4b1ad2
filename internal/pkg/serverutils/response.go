package serverutils

// BaseResponse is the standard API envelope.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) BaseResponse[any] {
	return BaseResponse[any]{
		Success: false,
		Message: message,
	}
}

func ErrorResponseWithKind(code int, kind, message string) BaseResponse[any] {
	return BaseResponse[any]{
		Success: false,
		Message: message,
		Kind:    kind,
	}
}
