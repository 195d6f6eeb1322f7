package events

import "time"

// Field es un campo opcional de un PATCH: Present distingue "no enviado"
// de "enviado con valor cero".
type Field[T any] struct {
	Present bool
	Value   T
}

func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: v}
}

// Patch describe un update parcial ya normalizado (instantes en UTC).
type Patch struct {
	Start    Field[time.Time]
	End      Field[time.Time]
	Timezone Field[string]

	AddProfiles    Field[[]string]
	RemoveProfiles Field[[]string]
}

func (p Patch) IsEmpty() bool {
	return !p.Start.Present && !p.End.Present && !p.Timezone.Present &&
		!p.AddProfiles.Present && !p.RemoveProfiles.Present
}
