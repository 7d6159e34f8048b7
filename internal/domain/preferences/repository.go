package preferences

import "context"

type Repository interface {
	// Get devuelve ErrNotFound si el tutor todavía no tiene fila.
	Get(ctx context.Context, tutorID string) (Preference, error)

	// Upsert inserta la fila completa si no existe; si existe, actualiza
	// solo las columnas de touched. Devuelve la fila persistida.
	Upsert(ctx context.Context, p Preference, touched ColumnSet) (Preference, error)
}
