package domain

import "errors"

// Errores de dominio (sin dependencias externas). La frontera HTTP los traduce a códigos de estado;
// los casos de uso los envuelven con fmt.Errorf("...: %w", ...) para añadir detalle.
var (
	ErrValidation         = errors.New("datos inválidos")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrNotConfigured      = errors.New("funcionalidad no configurada")
)
