// Package field provides fluent builders for describing the fields of a
// fixture model. A field description tells the faker what kind of value to
// synthesize.
//
// # Field Types
//
//	field.Int("id").Generated()          // filled in by the database
//	field.Int64("account_id")
//	field.Float("price").Range(0, 100)
//	field.String("email").Format(field.FormatEmail)
//	field.String("code").MaxLen(8)
//	field.Text("body")
//	field.Bool("active")
//	field.Time("created_at")
//	field.UUID("token")
//	field.Enum("status").Values("pending", "active")
//	field.JSON("metadata")
//	field.Bytes("avatar")
//
// # Field Options
//
//	field.String("nickname").
//	    Optional().        // never faked
//	    Nillable().        // nullable column
//	    Default("anon")    // used verbatim instead of a fake
package field
