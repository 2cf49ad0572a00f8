package api

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func OK(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

func Fail(message string, err string) Response {
	return Response{Success: false, Message: message, Error: err}
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
