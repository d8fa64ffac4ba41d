package dto

// SuccessResponse wraps every successful response.
type SuccessResponse struct {
	Status string `json:"status"`
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Data   any    `json:"data"`
}

// FailResponse wraps every failed response. Code mirrors the HTTP status.
type FailResponse struct {
	Status string `json:"status"`
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
}
