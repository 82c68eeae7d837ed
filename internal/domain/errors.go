package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrProductNotFound = errors.New("produto não encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrConflict        = errors.New("conflicto con el estado actual")

	// ErrInvalidKind se devuelve cuando el tipo de movimiento no es entrada ni saida.
	// errors.Is(ErrInvalidKind, ErrInvalidInput) es verdadero.
	ErrInvalidKind = fmt.Errorf("%w: tipo deve ser 'entrada' ou 'saida'", ErrInvalidInput)

	// ErrInvalidAmount valor monetario con más de 2 decimales o fuera de NUMERIC(14,2).
	ErrInvalidAmount = fmt.Errorf("%w: valor deve ter no máximo 2 casas decimais e 12 dígitos inteiros", ErrInvalidInput)
)
