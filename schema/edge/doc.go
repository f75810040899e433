// Package edge provides fluent builders for declaring relations between
// fixture models.
//
// # Relation Classes
//
//	// Profile holds profile.account_id referencing account.id.
//	edge.BelongsTo("account", "Account").Join("profile.account_id", "account.id")
//
//	// Account is referenced by exactly one Profile.
//	edge.HasOne("profile", "Profile").Join("account.id", "profile.account_id")
//
//	// Account is referenced by many Blogs.
//	edge.HasMany("blogs", "Blog").Join("account.id", "blog.account_id")
//
//	// Account and Role are linked through account_role.
//	edge.M2M("roles", "Role").
//	    Join("account.id", "role.id").
//	    Through("account_role", "account_id", "role_id")
//
// # Join Columns
//
// Join columns are written in storage naming. When a column is not a field of
// the model schema, the fixture client resolves it through its naming
// fallback (snake_case to lowerCamelCase, and back).
//
// # Optional Foreign Keys
//
// A nullable foreign key is declared with Optional. It lets the fixture client
// break relation cycles by leaving the key unset:
//
//	edge.BelongsTo("parent", "Category").Join("parent_id", "id").Optional()
package edge
