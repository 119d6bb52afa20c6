package directive

// ParsedLine is the result of parsing a buffer's header line.
// The zero value is the empty state: no non-blank line exists yet.
type ParsedLine struct {
	Directive *Directive
}

// IsEmpty reports whether the buffer had no header line at all.
func (p ParsedLine) IsEmpty() bool {
	return p.Directive == nil
}

// Directive is a successfully parsed header.
type Directive struct {
	Name  string `json:"name" yaml:"name"`
	Pairs []Pair `json:"pairs" yaml:"pairs"`
}

// Pair is one key=value setting. Pairs keep source order and duplicates.
type Pair struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Get returns the first value set for key.
func (d *Directive) Get(key string) (string, bool) {
	for _, p := range d.Pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Last returns the last value set for key.
func (d *Directive) Last(key string) (string, bool) {
	for i := len(d.Pairs) - 1; i >= 0; i-- {
		if d.Pairs[i].Key == key {
			return d.Pairs[i].Value, true
		}
	}
	return "", false
}

// All returns every value set for key, in source order.
func (d *Directive) All(key string) []string {
	var values []string
	for _, p := range d.Pairs {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}
