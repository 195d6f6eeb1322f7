package scheduling

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // no dependemos del zoneinfo del host

	"gopkg.in/yaml.v3"
)

// Zone asocia una etiqueta amigable (la que ve el usuario) con un id IANA.
type Zone struct {
	Label string `yaml:"label" json:"label"`
	ID    string `yaml:"zone" json:"zone"`
}

// DefaultZones es la lista curada de zonas que acepta la API.
// El orden es el que se muestra en el selector del frontend.
func DefaultZones() []Zone {
	return []Zone{
		{"UTC", "Etc/UTC"},

		// US & Canada
		{"Eastern Time (US & Canada)", "America/New_York"},
		{"Central Time (US & Canada)", "America/Chicago"},
		{"Mountain Time (US & Canada)", "America/Denver"},
		{"Pacific Time (US & Canada)", "America/Los_Angeles"},
		{"Alaska Time", "America/Anchorage"},
		{"Hawaii Time", "Pacific/Honolulu"},

		// Latinoamérica
		{"Mexico City", "America/Mexico_City"},
		{"Bogotá", "America/Bogota"},
		{"Buenos Aires", "America/Argentina/Buenos_Aires"},
		{"Santiago", "America/Santiago"},
		{"São Paulo", "America/Sao_Paulo"},

		// Europa
		{"London (GMT/BST)", "Europe/London"},
		{"Paris / Berlin / Rome (CET/CEST)", "Europe/Paris"},
		{"Istanbul", "Europe/Istanbul"},
		{"Moscow", "Europe/Moscow"},
		{"Athens", "Europe/Athens"},
		{"Warsaw", "Europe/Warsaw"},

		// África
		{"Cairo", "Africa/Cairo"},
		{"Johannesburg", "Africa/Johannesburg"},
		{"Nairobi", "Africa/Nairobi"},
		{"Lagos", "Africa/Lagos"},

		// Medio Oriente y Asia
		{"Dubai", "Asia/Dubai"},
		{"Tehran", "Asia/Tehran"},
		{"Karachi", "Asia/Karachi"},
		{"Kathmandu", "Asia/Kathmandu"},
		{"India Standard Time (IST)", "Asia/Kolkata"},
		{"Dhaka", "Asia/Dhaka"},
		{"Bangkok", "Asia/Bangkok"},
		{"Hong Kong", "Asia/Hong_Kong"},
		{"Tokyo", "Asia/Tokyo"},
		{"Seoul", "Asia/Seoul"},
		{"Jakarta", "Asia/Jakarta"},

		// Australia y Oceanía
		{"Sydney", "Australia/Sydney"},
		{"Melbourne", "Australia/Melbourne"},
		{"Brisbane", "Australia/Brisbane"},
		{"Adelaide", "Australia/Adelaide"},
		{"Perth", "Australia/Perth"},
		{"Auckland", "Pacific/Auckland"},
		{"Fiji", "Pacific/Fiji"},
	}
}

// Registry es la tabla label -> zona. Se arma una sola vez al arrancar
// y después es de solo lectura (segura para uso concurrente).
type Registry struct {
	zones     []Zone
	ids       map[string]string
	locations map[string]*time.Location
}

// NewRegistry valida y carga todas las zonas. Si alguna no existe en tzdata
// falla en el arranque, no en el primer request.
func NewRegistry(zones []Zone) (*Registry, error) {
	if len(zones) == 0 {
		return nil, errors.New("timezone registry: empty zone list")
	}

	r := &Registry{
		zones:     make([]Zone, 0, len(zones)),
		ids:       make(map[string]string, len(zones)),
		locations: make(map[string]*time.Location, len(zones)),
	}

	for _, z := range zones {
		label := strings.TrimSpace(z.Label)
		id := strings.TrimSpace(z.ID)
		if label == "" || id == "" {
			return nil, fmt.Errorf("timezone registry: label and zone are required (got %q -> %q)", z.Label, z.ID)
		}
		if _, dup := r.ids[label]; dup {
			return nil, fmt.Errorf("timezone registry: duplicated label %q", label)
		}

		loc, err := time.LoadLocation(id)
		if err != nil {
			return nil, fmt.Errorf("timezone registry: load %q: %w", id, err)
		}

		r.zones = append(r.zones, Zone{Label: label, ID: id})
		r.ids[label] = id
		r.locations[label] = loc
	}

	return r, nil
}

// DefaultRegistry arma el registry con DefaultZones. Las zonas están
// embebidas (time/tzdata), así que un error acá es un bug.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultZones())
	if err != nil {
		panic(err)
	}
	return r
}

type registryFile struct {
	Zones []Zone `yaml:"zones"`
}

// LoadRegistryFile lee un YAML con el formato:
//
//	zones:
//	  - label: Tokyo
//	    zone: Asia/Tokyo
func LoadRegistryFile(path string) (*Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("timezone registry: read %s: %w", path, err)
	}

	var f registryFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("timezone registry: parse %s: %w", path, err)
	}
	return NewRegistry(f.Zones)
}

// WriteYAML escribe las zonas en el mismo formato que lee LoadRegistryFile.
func (r *Registry) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(registryFile{Zones: r.zones}); err != nil {
		return fmt.Errorf("timezone registry: encode: %w", err)
	}
	return enc.Close()
}

// Lookup resuelve la etiqueta exacta (sin normalizar mayúsculas ni espacios).
func (r *Registry) Lookup(label string) (string, bool) {
	id, ok := r.ids[label]
	return id, ok
}

func (r *Registry) Location(label string) (*time.Location, bool) {
	loc, ok := r.locations[label]
	return loc, ok
}

// Zones devuelve una copia, en el orden de carga.
func (r *Registry) Zones() []Zone {
	out := make([]Zone, len(r.zones))
	copy(out, r.zones)
	return out
}
