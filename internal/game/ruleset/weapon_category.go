package ruleset

import "fmt"

// WeaponCategory is a broad weapon type identified by its 8-bit code. Codes
// are the weapon slice (130-149) of the wider item-category space; 134-136
// and 139 are not weapon categories.
type WeaponCategory uint8

const (
	OneHandedSword WeaponCategory = 130
	OneHandedAxe   WeaponCategory = 131
	OneHandedMace  WeaponCategory = 132
	Dagger         WeaponCategory = 133
	Wand           WeaponCategory = 137
	Staff          WeaponCategory = 138
	TwoHandedSword WeaponCategory = 140
	TwoHandedAxe   WeaponCategory = 141
	TwoHandedMace  WeaponCategory = 142
	Spear          WeaponCategory = 143
	Polearm        WeaponCategory = 144
	Bow            WeaponCategory = 145
	Crossbow       WeaponCategory = 146
	Claw           WeaponCategory = 147
	Knuckler       WeaponCategory = 148
	Gun            WeaponCategory = 149
)

type weaponCategoryInfo struct {
	category WeaponCategory
	name     string
	label    string
	plural   string
}

var weaponCategoryTable = []weaponCategoryInfo{
	{OneHandedSword, "OneHandedSword", "one-handed sword", "one-handed swords"},
	{OneHandedAxe, "OneHandedAxe", "one-handed axe", "one-handed axes"},
	{OneHandedMace, "OneHandedMace", "one-handed BW", "one-handed BWs"},
	{Dagger, "Dagger", "dagger", "daggers"},
	{Wand, "Wand", "wand", "wands"},
	{Staff, "Staff", "staff", "staves"},
	{TwoHandedSword, "TwoHandedSword", "two-handed sword", "two-handed swords"},
	{TwoHandedAxe, "TwoHandedAxe", "two-handed axe", "two-handed axes"},
	{TwoHandedMace, "TwoHandedMace", "two-handed BW", "two-handed BWs"},
	{Spear, "Spear", "spear", "spears"},
	{Polearm, "Polearm", "polearm", "polearms"},
	{Bow, "Bow", "bow", "bows"},
	{Crossbow, "Crossbow", "crossbow", "crossbows"},
	{Claw, "Claw", "claw", "claws"},
	{Knuckler, "Knuckler", "knuckler", "knucklers"},
	{Gun, "Gun", "gun", "guns"},
}

var (
	weaponCategoryByCode map[uint8]*weaponCategoryInfo
	weaponCategoryByName map[string]WeaponCategory
)

func init() {
	weaponCategoryByCode = make(map[uint8]*weaponCategoryInfo, len(weaponCategoryTable))
	weaponCategoryByName = make(map[string]WeaponCategory, len(weaponCategoryTable))
	for i := range weaponCategoryTable {
		info := &weaponCategoryTable[i]
		code := info.category.Code()
		if _, dup := weaponCategoryByCode[code]; dup {
			panic(fmt.Sprintf("ruleset: weapon category code %d declared twice", code))
		}
		weaponCategoryByCode[code] = info
		weaponCategoryByName[info.name] = info.category
	}
}

// Code returns the canonical numeric code for w.
func (w WeaponCategory) Code() uint8 {
	return uint8(w)
}

// WeaponCategoryFromCode decodes a canonical weapon category code.
//
// Postcondition: Returns the WeaponCategory whose Code() equals code, or an
// *UnrecognizedIdentifierError for every other value.
func WeaponCategoryFromCode(code uint8) (WeaponCategory, error) {
	info, ok := weaponCategoryByCode[code]
	if !ok {
		return 0, &UnrecognizedIdentifierError{Kind: "weapon category", Code: uint32(code)}
	}
	return info.category, nil
}

// ParseWeaponCategory resolves a weapon category by its symbolic name.
func ParseWeaponCategory(name string) (WeaponCategory, bool) {
	w, ok := weaponCategoryByName[name]
	return w, ok
}

// Valid reports whether w is a member of the modeled category set.
func (w WeaponCategory) Valid() bool {
	_, ok := weaponCategoryByCode[uint8(w)]
	return ok
}

// Name returns the symbolic name used in job files, or "" if w is not valid.
func (w WeaponCategory) Name() string {
	if info, ok := weaponCategoryByCode[uint8(w)]; ok {
		return info.name
	}
	return ""
}

// String returns the singular label, e.g. "one-handed BW".
func (w WeaponCategory) String() string {
	if info, ok := weaponCategoryByCode[uint8(w)]; ok {
		return info.label
	}
	return fmt.Sprintf("WeaponCategory(%d)", uint8(w))
}

// Plural returns the plural label, e.g. "staves".
func (w WeaponCategory) Plural() string {
	if info, ok := weaponCategoryByCode[uint8(w)]; ok {
		return info.plural
	}
	return w.String()
}

// WeaponCategories returns every modeled category in ascending code order.
func WeaponCategories() []WeaponCategory {
	out := make([]WeaponCategory, len(weaponCategoryTable))
	for i, info := range weaponCategoryTable {
		out[i] = info.category
	}
	return out
}
