package checkout

// Request is the raw checkout payload: a schema-less bag of submitted
// fields. Stages interpret the keys they recognize and mark them consumed.
type Request map[string]any

func (r Request) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String returns the value for key when it is a non-empty string.
func (r Request) String(key string) (string, bool) {
	s, ok := r[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Map returns the value for key when it is a nested object.
func (r Request) Map(key string) (map[string]any, bool) {
	m, ok := r[key].(map[string]any)
	return m, ok
}

func (r Request) All() map[string]any {
	return map[string]any(r)
}
