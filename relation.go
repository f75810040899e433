package fixture

import (
	"github.com/syssam/fixture/schema"
)

// Rel is a relation kind.
type Rel int

// Relation kinds.
const (
	Unk            Rel = iota // Unknown.
	OwnedLink                 // The model holds the join column (belongs to).
	ReferencedLink            // The target holds the join column (has one).
	ToMany                    // Many targets hold the join column (has many).
	ManyToMany                // Linked through a join table.
)

// String returns the relation name.
func (r Rel) String() string {
	s := "Unknown"
	switch r {
	case OwnedLink:
		s = "OwnedLink"
	case ReferencedLink:
		s = "ReferencedLink"
	case ToMany:
		s = "ToMany"
	case ManyToMany:
		s = "ManyToMany"
	}
	return s
}

// Many reports whether an override for the relation is a sequence of instances.
func (r Rel) Many() bool {
	return r == ToMany || r == ManyToMany
}

// Relation is the normalized view of one edge declared on a model.
type Relation struct {
	// Name of the edge, also the override key and the Instance edge name.
	Name string
	Rel  Rel
	// Owner is the model declaring the edge, Target the related model.
	Owner  *schema.Model
	Target *schema.Model
	// LocalField is the join field on Owner, RemoteField the one on Target.
	// Both are resolved to field names of the model schemas.
	LocalField  string
	RemoteField string
	// Through is set for ManyToMany relations only.
	Through *JoinTable
	// Optional is true when an OwnedLink can be left unset.
	Optional bool
}

// OwnFK indicates if the foreign-key of this relation resides in the owner table.
func (r *Relation) OwnFK() bool {
	return r.Rel == OwnedLink
}

// JoinTable holds the join table of a ManyToMany relation. LocalColumn
// references the owner, RemoteColumn the target.
type JoinTable struct {
	Table        string
	LocalColumn  string
	RemoteColumn string
}
