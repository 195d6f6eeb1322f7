package events

import "time"

// Event agrupa perfiles en un rango de tiempo. Start/End se guardan en UTC;
// Timezone es la etiqueta con la que se creó/editó (solo para mostrar).
type Event struct {
	ID string

	ProfileIDs []string // orden de alta, sin repetidos
	Timezone   string

	Start time.Time
	End   time.Time

	// Logs es append-only: nunca se reordena ni se borra.
	Logs []LogEntry

	// Revision se incrementa en cada Save (compare-and-swap en el store).
	Revision int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LogEntry es inmutable una vez agregada al evento.
type LogEntry struct {
	ProfileID string // quien hizo el cambio; "" = sin actor. No se valida.
	Action    string
	Timestamp time.Time
}

func (e Event) HasProfile(id string) bool {
	for _, p := range e.ProfileIDs {
		if p == id {
			return true
		}
	}
	return false
}

// Clone copia los slices para que las mutaciones no toquen el snapshot original.
func (e Event) Clone() Event {
	out := e
	out.ProfileIDs = append([]string(nil), e.ProfileIDs...)
	out.Logs = append([]LogEntry(nil), e.Logs...)
	return out
}
