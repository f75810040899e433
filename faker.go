package fixture

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/syssam/fixture/schema"
	"github.com/syssam/fixture/schema/field"
)

// Faker produces a value for every fakeable field of a model schema. It is
// called once per synthesized instance and its values are not validated.
type Faker interface {
	Fake(*schema.Model) (map[string]any, error)
}

// The FakerFunc type is an adapter to allow the use of ordinary functions as
// Faker.
type FakerFunc func(*schema.Model) (map[string]any, error)

// Fake calls f(m).
func (f FakerFunc) Fake(m *schema.Model) (map[string]any, error) {
	return f(m)
}

// NewFaker returns the default Faker, backed by gofakeit. A zero seed picks
// a random one. Optional and generated fields are left out, fields with a
// default use it verbatim.
func NewFaker(seed uint64) Faker {
	return &fakeit{f: gofakeit.New(seed)}
}

type fakeit struct {
	mu sync.Mutex
	f  *gofakeit.Faker
}

func (g *fakeit) Fake(m *schema.Model) (map[string]any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	values := make(map[string]any, len(m.Fields))
	for _, fd := range m.Fields {
		if fd.Optional || fd.Generated {
			continue
		}
		switch {
		case fd.DefaultFunc != nil:
			values[fd.Name] = fd.DefaultFunc()
			continue
		case fd.Default != nil:
			values[fd.Name] = fd.Default
			continue
		}
		v, err := g.value(fd)
		if err != nil {
			return nil, fmt.Errorf("fixture: fake %s.%s: %w", m.Name, fd.Name, err)
		}
		values[fd.Name] = v
	}
	return values, nil
}

func (g *fakeit) value(fd *field.Descriptor) (any, error) {
	switch fd.Type {
	case field.TypeBool:
		return g.f.Bool(), nil
	case field.TypeInt:
		return g.f.IntRange(g.intRange(fd)), nil
	case field.TypeInt64:
		return int64(g.f.IntRange(g.intRange(fd))), nil
	case field.TypeFloat:
		lo, hi := 0.0, 1000.0
		if fd.Min != nil {
			lo = *fd.Min
		}
		if fd.Max != nil {
			hi = *fd.Max
		}
		if hi < lo {
			hi = lo
		}
		return g.f.Float64Range(lo, hi), nil
	case field.TypeString:
		return truncate(g.str(fd.Format), fd.MaxLen), nil
	case field.TypeText:
		return truncate(g.sentence(8), fd.MaxLen), nil
	case field.TypeTime:
		return g.f.Date().UTC(), nil
	case field.TypeUUID:
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(g.f.LetterN(16))).String(), nil
	case field.TypeEnum:
		return g.f.RandomString(fd.Values), nil
	case field.TypeJSON:
		b, err := json.Marshal(map[string]any{g.f.Word(): g.f.Word()})
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case field.TypeBytes:
		return []byte(g.f.LetterN(16)), nil
	default:
		return nil, fmt.Errorf("unsupported field type %s", fd.Type)
	}
}

func (g *fakeit) intRange(fd *field.Descriptor) (int, int) {
	lo, hi := 1, 1_000_000
	if fd.Min != nil {
		lo = int(*fd.Min)
	}
	if fd.Max != nil {
		hi = int(*fd.Max)
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func (g *fakeit) str(format string) string {
	switch format {
	case field.FormatEmail:
		return g.f.Email()
	case field.FormatUsername:
		return g.f.Username()
	case field.FormatName:
		return g.f.Name()
	case field.FormatURL:
		return g.f.URL()
	case field.FormatPhone:
		return g.f.Phone()
	case field.FormatWord:
		return g.f.Word()
	case field.FormatSentence:
		return g.sentence(6)
	default:
		return g.f.LetterN(12)
	}
}

func (g *fakeit) sentence(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = g.f.Word()
	}
	return strings.Join(words, " ")
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}
