package field

import (
	"fmt"
	"strings"
)

// Type is the type of a field, as seen by the faker.
type Type uint8

// Field types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeInt
	TypeInt64
	TypeFloat
	TypeString
	TypeText
	TypeTime
	TypeUUID
	TypeEnum
	TypeJSON
	TypeBytes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeInt:     "int",
	TypeInt64:   "int64",
	TypeFloat:   "float",
	TypeString:  "string",
	TypeText:    "text",
	TypeTime:    "time",
	TypeUUID:    "uuid",
	TypeEnum:    "enum",
	TypeJSON:    "json",
	TypeBytes:   "bytes",
}

// String returns the string representation of a type.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", t)
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t == TypeInt || t == TypeInt64 || t == TypeFloat
}

// UnmarshalText parses a type name, as written in YAML model files.
func (t *Type) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	switch name {
	case "integer":
		name = "int"
	case "float64", "number":
		name = "float"
	case "boolean":
		name = "bool"
	}
	for i, n := range typeNames {
		if n == name && Type(i) != TypeInvalid {
			*t = Type(i)
			return nil
		}
	}
	return fmt.Errorf("field: unknown type %q", text)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Format hints for string fields.
const (
	FormatEmail    = "email"
	FormatUsername = "username"
	FormatName     = "name"
	FormatURL      = "url"
	FormatPhone    = "phone"
	FormatWord     = "word"
	FormatSentence = "sentence"
)

// A Descriptor for field configuration.
type Descriptor struct {
	Name      string   `yaml:"name"`
	Type      Type     `yaml:"type"`
	Optional  bool     `yaml:"optional"`  // not faked, left to the database default
	Nillable  bool     `yaml:"nillable"`  // nullable column
	Generated bool     `yaml:"generated"` // filled in by the database, never faked
	Min       *float64 `yaml:"min"`
	Max       *float64 `yaml:"max"`
	MaxLen    int      `yaml:"max_len"`
	Values    []string `yaml:"values"` // enum values
	Format    string   `yaml:"format"`
	Default   any      `yaml:"default"`
	Comment   string   `yaml:"comment"`

	// DefaultFunc is called for every row when set. It takes precedence
	// over Default.
	DefaultFunc func() any `yaml:"-"`
}

// Validate reports a descriptor that cannot be faked.
func (d *Descriptor) Validate() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("field: missing name")
	case d.Type == TypeInvalid:
		return fmt.Errorf("field %q: missing type", d.Name)
	case d.Type == TypeEnum && len(d.Values) == 0:
		return fmt.Errorf("field %q: enum without values", d.Name)
	case d.Min != nil && d.Max != nil && *d.Min > *d.Max:
		return fmt.Errorf("field %q: min %v is greater than max %v", d.Name, *d.Min, *d.Max)
	case d.MaxLen < 0:
		return fmt.Errorf("field %q: negative max length", d.Name)
	}
	return nil
}

// Builder is the builder for fields.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, t Type) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: t}}
}

// Bool returns a new Field with type bool.
func Bool(name string) *Builder { return newBuilder(name, TypeBool) }

// Int returns a new Field with type int.
func Int(name string) *Builder { return newBuilder(name, TypeInt) }

// Int64 returns a new Field with type int64.
func Int64(name string) *Builder { return newBuilder(name, TypeInt64) }

// Float returns a new Field with type float64.
func Float(name string) *Builder { return newBuilder(name, TypeFloat) }

// String returns a new Field with type string.
func String(name string) *Builder { return newBuilder(name, TypeString) }

// Text returns a new string field without a length limit.
func Text(name string) *Builder { return newBuilder(name, TypeText) }

// Time returns a new Field with type timestamp.
func Time(name string) *Builder { return newBuilder(name, TypeTime) }

// UUID returns a new Field with type UUID.
func UUID(name string) *Builder { return newBuilder(name, TypeUUID) }

// JSON returns a new Field holding a JSON object.
func JSON(name string) *Builder { return newBuilder(name, TypeJSON) }

// Bytes returns a new Field with type bytes/buffer.
func Bytes(name string) *Builder { return newBuilder(name, TypeBytes) }

// Enum returns a new Field with type enum.
//
//	field.Enum("state").Values("on", "off")
func Enum(name string) *Builder { return newBuilder(name, TypeEnum) }

// Values adds the given values to the enum values.
func (b *Builder) Values(values ...string) *Builder {
	b.desc.Values = append(b.desc.Values, values...)
	return b
}

// Optional indicates that this field is not faked and is left to its
// database default.
func (b *Builder) Optional() *Builder {
	b.desc.Optional = true
	return b
}

// Nillable indicates that this field is a nullable column.
func (b *Builder) Nillable() *Builder {
	b.desc.Nillable = true
	return b
}

// Generated indicates that the value of this field is generated by the
// database, like an auto-increment key.
func (b *Builder) Generated() *Builder {
	b.desc.Generated = true
	return b
}

// Min sets the minimum value of a numeric field.
func (b *Builder) Min(i float64) *Builder {
	b.desc.Min = &i
	return b
}

// Max sets the maximum value of a numeric field.
func (b *Builder) Max(i float64) *Builder {
	b.desc.Max = &i
	return b
}

// Range sets the inclusive range of a numeric field.
func (b *Builder) Range(i, j float64) *Builder {
	return b.Min(i).Max(j)
}

// Positive restricts a numeric field to values greater than zero.
func (b *Builder) Positive() *Builder {
	return b.Min(1)
}

// MaxLen sets the maximum length of a string field.
func (b *Builder) MaxLen(n int) *Builder {
	b.desc.MaxLen = n
	return b
}

// Format sets a format hint for string fields, like FormatEmail.
func (b *Builder) Format(f string) *Builder {
	b.desc.Format = f
	return b
}

// Default sets a value used verbatim instead of a fake.
func (b *Builder) Default(v any) *Builder {
	b.desc.Default = v
	return b
}

// DefaultFunc sets a function producing the value of the field for each
// row, like the current time.
//
//	field.Time("created_at").DefaultFunc(func() any { return time.Now().UTC() })
func (b *Builder) DefaultFunc(fn func() any) *Builder {
	b.desc.DefaultFunc = fn
	return b
}

// Comment sets the comment of the field.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the schema.Field interface by returning its descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
