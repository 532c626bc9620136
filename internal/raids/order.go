package raids

// defaultOrder is the raid release sequence, oldest first. It spans four
// expansion eras and governs iteration order everywhere a collection is
// built without an explicit override.
var defaultOrder = []string{
	// Battle for Azeroth (8.x)
	"Uldir (8.1)",
	"Battle of Dazar'alor",
	"Crucible of Storms",
	"Eternal Palace",
	"Nya'lotha (Pre-Nerf)",

	// Shadowlands (9.x)
	"Castle Nathria (DF Pre-Patch)",
	"Sanctum of Domination (DF Pre-Patch)",
	"Sepulcher of the First Ones (9.2)",

	// Dragonflight (10.x)
	"Vault of the Incarnates",
	"Aberrus, The Shadowed Crucible",
	"Amirdrassil, the Dream's Hope",

	// The War Within (11.x)
	"Nerub-ar Palace",
}

// DefaultOrder returns a copy of the built-in chronological raid order.
// Callers get their own slice so the reference data stays immutable.
func DefaultOrder() []string {
	order := make([]string, len(defaultOrder))
	copy(order, defaultOrder)
	return order
}
