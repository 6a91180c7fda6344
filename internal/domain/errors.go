package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Fallos de autorización (esperados, visibles al usuario, nunca se reintentan).
var (
	ErrOutOfScope     = errors.New("empresa fuera del alcance del usuario")
	ErrModuleDisabled = errors.New("módulo no activo para esta empresa")
)

// Fallos del asignador de códigos y consecutivos.
var (
	// Validación: el caller debe corregir el código y reintentar.
	ErrInvalidCodeFormat = errors.New("formato de código de referencia inválido")
	ErrDuplicateCode     = errors.New("el código de referencia ya existe en la empresa")

	// Agotamiento: raro; el caller debe suministrar un código manual.
	ErrCodeGenerationExhausted = errors.New("no se encontró un código de referencia libre")

	// Integridad: un cliente sin contador es un defecto de datos.
	// Se registra con severidad alta, nunca se recupera en silencio.
	ErrCounterNotFound = errors.New("contador de secuencia no encontrado para el cliente")
)
