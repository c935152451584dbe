package domain

// ValidationError descreve uma pendência que impede a publicação de um anúncio.
// É transitório: produzido pelo validador e consumido pelo chamador, nunca persistido.
type ValidationError struct {
	Code            string `json:"code"`
	Message         string `json:"message"`
	UserMessage     string `json:"user_message"`
	Recoverable     bool   `json:"recoverable"`
	SuggestedAction string `json:"suggested_action"`
}
