package publishing

import (
	"errors"

	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

// ErrorCode classifica a falha de publicação para o chamador
type ErrorCode string

const (
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeAlreadyPublished ErrorCode = "already_published"
	CodePublishFailed    ErrorCode = "publish_failed"
	CodeInternalError    ErrorCode = "internal_error"
)

// Erros internos do pipeline de publicação
var (
	ErrAdNotFound       = errors.New("anúncio não encontrado")
	ErrCampaignNotFound = errors.New("campanha não encontrada")
)

// PublishError carrega a classificação da falha e o contexto necessário para a
// resposta ao chamador: a lista de pendências quando a validação reprova e o
// identificador remoto original quando o anúncio já foi publicado.
type PublishError struct {
	Err              error
	Code             ErrorCode
	RemoteAdID       *string
	ValidationErrors []domain.ValidationError
}

func (e *PublishError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

func newValidationError(validationErrors []domain.ValidationError) *PublishError {
	return &PublishError{
		Err:              errors.New("anúncio reprovado na validação pré-publicação"),
		Code:             CodeValidationFailed,
		ValidationErrors: validationErrors,
	}
}

func newAlreadyPublishedError(remoteAdID *string) *PublishError {
	return &PublishError{
		Err:        errors.New("anúncio já publicado na plataforma externa"),
		Code:       CodeAlreadyPublished,
		RemoteAdID: remoteAdID,
	}
}

func newPublishFailedError(err error) *PublishError {
	return &PublishError{
		Err:  err,
		Code: CodePublishFailed,
	}
}

func newInternalError(err error) *PublishError {
	return &PublishError{
		Err:  err,
		Code: CodeInternalError,
	}
}
