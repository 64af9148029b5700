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

	// ErrMissingClosureNumber: el reporte no trae "Numero:" en el RESUMEN; el cierre no se persiste.
	ErrMissingClosureNumber = errors.New("el cierre no tiene número Z")
	ErrUnsupportedUpload    = errors.New("formato de archivo no soportado")
	ErrEmptyReport          = errors.New("el reporte está vacío")
)
