package ruleset

// Location is the zone where a job is available.
// The zero value (LocationUnknown) is intentionally invalid.
type Location int

const (
	LocationUnknown Location = iota
	Camp
	MapleIsland
	Outland
)

var locationNames = map[Location]string{
	Camp:        "Camp",
	MapleIsland: "MapleIsland",
	Outland:     "Outland",
}

// ParseLocation resolves a location by its symbolic name.
func ParseLocation(name string) (Location, bool) {
	for l, n := range locationNames {
		if n == name {
			return l, true
		}
	}
	return LocationUnknown, false
}

// Name returns the symbolic name used in job files, or "" for invalid values.
func (l Location) Name() string {
	return locationNames[l]
}

// String returns the human-readable label.
func (l Location) String() string {
	switch l {
	case Camp:
		return "Camp"
	case MapleIsland:
		return "Maple Island"
	case Outland:
		return "outland"
	default:
		return "unknown"
	}
}

// Stat is one of the six trainable character stats.
// The zero value (StatUnknown) is intentionally invalid.
type Stat int

const (
	StatUnknown Stat = iota
	STR
	DEX
	INT
	LUK
	MAXHP
	MAXMP
)

var statNames = [...]string{
	STR:   "STR",
	DEX:   "DEX",
	INT:   "INT",
	LUK:   "LUK",
	MAXHP: "MAXHP",
	MAXMP: "MAXMP",
}

// ParseStat resolves a stat by its symbolic name, e.g. "MAXMP".
func ParseStat(name string) (Stat, bool) {
	for s := STR; s <= MAXMP; s++ {
		if statNames[s] == name {
			return s, true
		}
	}
	return StatUnknown, false
}

// Valid reports whether s is one of the six stats.
func (s Stat) Valid() bool {
	return s >= STR && s <= MAXMP
}

// String returns the stat's label, which is also its name in job files.
func (s Stat) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return statNames[s]
}

// ConstraintKind selects the rule a StatConstraint applies to its stat.
type ConstraintKind int

const (
	ConstraintUnknown ConstraintKind = iota
	// LessThan requires the stat to stay below some reference value.
	LessThan
	// MustEqualFull requires the stat to be fully allocated.
	MustEqualFull
	// Pure requires that no other stat is trained.
	Pure
)

// Key returns the mapping key that selects this kind in job files.
func (k ConstraintKind) Key() string {
	switch k {
	case LessThan:
		return "less"
	case MustEqualFull:
		return "full"
	case Pure:
		return "pure"
	default:
		return ""
	}
}

func parseConstraintKind(key string) (ConstraintKind, bool) {
	switch key {
	case "less":
		return LessThan, true
	case "full":
		return MustEqualFull, true
	case "pure":
		return Pure, true
	default:
		return ConstraintUnknown, false
	}
}

// StatConstraint is a rule over a single stat.
type StatConstraint struct {
	Kind ConstraintKind
	Stat Stat
}

// Less returns a LessThan constraint on s.
func Less(s Stat) StatConstraint { return StatConstraint{Kind: LessThan, Stat: s} }

// Full returns a MustEqualFull constraint on s.
func Full(s Stat) StatConstraint { return StatConstraint{Kind: MustEqualFull, Stat: s} }

// PureStat returns a Pure constraint on s.
func PureStat(s Stat) StatConstraint { return StatConstraint{Kind: Pure, Stat: s} }

// String renders the constraint as in job files, e.g. "less(DEX)".
func (c StatConstraint) String() string {
	key := c.Kind.Key()
	if key == "" {
		key = "unknown"
	}
	return key + "(" + c.Stat.String() + ")"
}

// Stats describes which stats a job trains and the rules on them.
//
// No cross-field rule is enforced: a stat may appear in Primary and in a
// Pure constraint naming another stat.
type Stats struct {
	Primary     []Stat
	Secondary   []Stat
	Constraints [][]StatConstraint
}
