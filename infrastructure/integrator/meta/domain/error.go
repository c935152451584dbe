package metadomain

import (
	"encoding/json"
	"fmt"
)

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// RequestError é um erro de requisição à API do Meta, com o envelope de erro
// parseado quando a resposta é JSON válido
type RequestError struct {
	StatusCode int
	Response   *ErrorResponse
	Body       string
}

// NewRequestError cria um RequestError a partir do corpo bruto da resposta
func NewRequestError(statusCode int, body []byte) *RequestError {
	reqErr := &RequestError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
		reqErr.Response = &errorResp
	}

	return reqErr
}

// Error implementa a interface error
func (e *RequestError) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("erro na resposta da API. Status: %d, Tipo: %s, Mensagem: %s",
			e.StatusCode, e.Response.Error.Type, e.Response.Error.Message)
	}
	return fmt.Sprintf("erro na resposta da API. Status: %d, Corpo: %s", e.StatusCode, e.Body)
}

// IsTokenExpired verifica se a falha foi causada por token expirado
func (e *RequestError) IsTokenExpired() bool {
	return e.Response != nil && e.Response.IsTokenExpired()
}

// RemoteMessage retorna a mensagem de erro reportada pela plataforma, se houver
func (e *RequestError) RemoteMessage() string {
	if e.Response != nil {
		return e.Response.Error.Message
	}
	return e.Body
}
