package profiles

import "time"

// DefaultTimezone se usa cuando el perfil se crea sin zona.
const DefaultTimezone = "UTC"

// Profile representa a una persona que puede participar en eventos.
// El core nunca lo modifica después de creado.
type Profile struct {
	ID string

	Name     string
	Timezone string // etiqueta del registry de zonas
	Email    string // opcional

	CreatedAt time.Time
}
