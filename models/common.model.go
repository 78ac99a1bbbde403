package models

// APIResponse is the envelope every endpoint answers with:
// {success, data?, count?, error?: {message}}
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int64      `json:"count,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody carries the single user-facing message of a failed request
type ErrorBody struct {
	Message string `json:"message"`
}

// SuccessResponse creates a standardized success response
func SuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

// CountResponse is SuccessResponse plus the number of returned records,
// used by the listing endpoints
func CountResponse(count int64, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
		Count:   &count,
	}
}

// ErrorResponse creates a standardized error response
func ErrorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   &ErrorBody{Message: message},
	}
}
