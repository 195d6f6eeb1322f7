package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const actorKey ctxKey = "acting_profile"

// ProfileHeader identifica al perfil que ejecuta la acción.
const ProfileHeader = "X-Profile-ID"

// ActingProfile:
// - Si viene X-Profile-ID => lo deja en el contexto.
// - Si no viene, el request sigue igual; los handlers deciden qué hacer.
// No valida que el perfil exista: los logs aceptan actores desconocidos.
func ActingProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(ProfileHeader))
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ActingProfileID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(actorKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
