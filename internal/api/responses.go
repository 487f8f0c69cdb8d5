package api

// Response is the uniform envelope every endpoint renders. Success implies
// error_code "none" and no messages; failure implies a non-"none" code and at
// least one message, with no payload.
type Response struct {
	Success       bool        `json:"success"`
	ErrorCode     string      `json:"error_code"`
	ErrorMessages []string    `json:"error_messages"`
	Payload       interface{} `json:"payload,omitempty"`
}

func OK(payload interface{}) Response {
	return Response{
		Success:       true,
		ErrorCode:     "none",
		ErrorMessages: []string{},
		Payload:       payload,
	}
}

func Fail(code string, messages []string) Response {
	return Response{
		Success:       false,
		ErrorCode:     code,
		ErrorMessages: messages,
	}
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
