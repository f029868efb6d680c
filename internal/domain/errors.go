package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los errores de argumentos se resuelven antes de cualquier acceso a datos;
// la capa HTTP los traduce a códigos de estado.
var (
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidDateRange = errors.New("rango de fechas inválido")
	ErrUnknownDimension = errors.New("dimensión de análisis desconocida")
	ErrUnknownInterval  = errors.New("intervalo de evolución desconocido")
	ErrUnknownSource    = errors.New("fuente de métricas desconocida")
)
