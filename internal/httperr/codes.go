package httperr

import "net/http"

// Business codes shared by use cases and handlers.
const (
	CodeInvalidRequest          = "invalid_request"
	CodeMissingFields           = "missing_fields"
	CodePastDateTime            = "past_datetime"
	CodeInvalidDateTime         = "invalid_date_or_time"
	CodeInvalidStatus           = "invalid_status"
	CodeNoFields                = "no_fields"
	CodeWeakPassword            = "weak_password"
	CodePasswordTooLong         = "password_too_long"
	CodeWrongPassword           = "wrong_password"
	CodeInvalidEmail            = "invalid_email"
	CodeResetTokenInvalid       = "reset_token_invalid"
	CodeResetTokenExpired       = "reset_token_expired"
	CodeInvalidImage            = "invalid_image"
	CodeInvalidCredentials      = "invalid_credentials"
	CodeUnauthenticated         = "unauthenticated"
	CodeInvalidRefreshToken     = "invalid_refresh_token"
	CodeAccountDisabled         = "account_disabled"
	CodeForbidden               = "forbidden"
	CodeNotFound                = "not_found"
	CodeAppointmentNotFound     = "appointment_not_found"
	CodeServiceNotFound         = "service_not_found"
	CodeBarberNotFound          = "barber_not_found"
	CodeAccountNotFound         = "account_not_found"
	CodeEstablishmentNotFound   = "establishment_not_found"
	CodeSlotConflict            = "slot_conflict"
	CodeEmailTaken              = "email_taken"
	CodeInvalidStatusTransition = "invalid_status_transition"
	CodeRateLimited             = "rate_limited"
	CodeInternal                = "internal_error"
)

type mapping struct {
	status  int
	message string
}

var table = map[string]mapping{
	CodeInvalidRequest:          {http.StatusBadRequest, "Dados inválidos."},
	CodeMissingFields:           {http.StatusBadRequest, "Campos obrigatórios não informados."},
	CodePastDateTime:            {http.StatusBadRequest, "Não é possível agendar para uma data ou horário no passado."},
	CodeInvalidDateTime:         {http.StatusBadRequest, "Data ou hora inválida."},
	CodeInvalidStatus:           {http.StatusBadRequest, "Status inválido."},
	CodeNoFields:                {http.StatusBadRequest, "Nenhum campo para atualizar."},
	CodeWeakPassword:            {http.StatusBadRequest, "A senha deve ter pelo menos 6 caracteres."},
	CodePasswordTooLong:         {http.StatusBadRequest, "A senha deve ter no máximo 72 bytes."},
	CodeWrongPassword:           {http.StatusBadRequest, "Senha atual incorreta."},
	CodeInvalidEmail:            {http.StatusBadRequest, "E-mail inválido."},
	CodeResetTokenInvalid:       {http.StatusBadRequest, "Token inválido ou já utilizado."},
	CodeResetTokenExpired:       {http.StatusBadRequest, "Token expirado."},
	CodeInvalidImage:            {http.StatusBadRequest, "Apenas imagens são permitidas."},
	CodeInvalidCredentials:      {http.StatusUnauthorized, "E-mail ou senha inválidos."},
	CodeUnauthenticated:         {http.StatusUnauthorized, "Token não fornecido ou inválido."},
	CodeInvalidRefreshToken:     {http.StatusUnauthorized, "Refresh token inválido."},
	CodeAccountDisabled:         {http.StatusForbidden, "Conta bloqueada."},
	CodeForbidden:               {http.StatusForbidden, "Acesso negado."},
	CodeNotFound:                {http.StatusNotFound, "Recurso não encontrado."},
	CodeAppointmentNotFound:     {http.StatusNotFound, "Agendamento não encontrado."},
	CodeServiceNotFound:         {http.StatusNotFound, "Serviço não encontrado."},
	CodeBarberNotFound:          {http.StatusNotFound, "Barbeiro não encontrado."},
	CodeAccountNotFound:         {http.StatusNotFound, "Usuário não encontrado."},
	CodeEstablishmentNotFound:   {http.StatusNotFound, "Estabelecimento não encontrado."},
	CodeSlotConflict:            {http.StatusConflict, "Horário já ocupado para este barbeiro."},
	CodeEmailTaken:              {http.StatusConflict, "E-mail já cadastrado."},
	CodeInvalidStatusTransition: {http.StatusConflict, "Transição de status não permitida."},
	CodeRateLimited:             {http.StatusTooManyRequests, "Muitas tentativas. Tente novamente em instantes."},
}

// Lookup returns the HTTP status and default message for a business code.
func Lookup(code string) (int, string, bool) {
	m, ok := table[code]
	return m.status, m.message, ok
}
