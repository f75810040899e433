// Package schema describes the models a fixture client can synthesize.
//
// A Model names a table, lists its fields (the schema description handed to
// the faker) and declares its relations to other models:
//
//   - [field]: field descriptors and builders
//   - [edge]: relation declarations and builders
//   - [mixin]: reusable field sets, added with Model.AddMixins
//
// # Quick Start
//
//	var Account = schema.New("Account").
//	    SetTable("account").
//	    AddFields(
//	        field.Int("id").Generated(),
//	        field.String("username").Format(field.FormatUsername),
//	        field.String("email").Format(field.FormatEmail),
//	    ).
//	    AddEdges(
//	        edge.M2M("roles", "Role").
//	            Join("account.id", "role.id").
//	            Through("account_role", "account_id", "role_id"),
//	    )
//
// # YAML Models
//
// Models can also be kept next to the tests in a YAML file and loaded with
// Load or LoadFile. Field types are written by name (int, string, enum, ...).
package schema
