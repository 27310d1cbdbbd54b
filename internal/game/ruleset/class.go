package ruleset

import "fmt"

// Class is a character class identified by its canonical 16-bit code.
//
// The code space is hierarchical (branch, then grade within the branch), but
// only the base, first and second grades listed below are modeled. Codes for
// later grades, such as 111 (crusader), are not members of this enumeration.
type Class uint16

const (
	Beginner          Class = 0
	Swordman          Class = 100
	Fighter           Class = 110
	Page              Class = 120
	Spearman          Class = 130
	Magician          Class = 200
	FP                Class = 210
	IL                Class = 220
	Cleric            Class = 230
	Archer            Class = 300
	Hunter            Class = 310
	Crossbowman       Class = 320
	Rogue             Class = 400
	Assassin          Class = 410
	Bandit            Class = 420
	DualBlade         Class = 430
	Pirate            Class = 500
	Brawler           Class = 510
	Gunslinger        Class = 520
	Noblesse          Class = 1000
	DawnWarrior1st    Class = 1100
	DawnWarrior       Class = 1110
	BlazeWizard1st    Class = 1200
	BlazeWizard       Class = 1210
	WindArcher1st     Class = 1300
	WindArcher        Class = 1310
	NightWalker1st    Class = 1400
	NightWalker       Class = 1410
	ThunderBreaker1st Class = 1500
	ThunderBreaker    Class = 1510
	AranBeginner      Class = 2000
	EvanBeginner      Class = 2001
	Aran1st           Class = 2100
	Aran              Class = 2110
	Evan1st           Class = 2200
	Evan              Class = 2210
)

type classInfo struct {
	class Class
	name  string
	label string
}

// classTable lists every modeled class in declaration order.
var classTable = []classInfo{
	{Beginner, "Beginner", "beginner"},
	{Swordman, "Swordman", "sword(wo)man"},
	{Fighter, "Fighter", "fighter"},
	{Page, "Page", "page"},
	{Spearman, "Spearman", "spear(wo)man"},
	{Magician, "Magician", "magician"},
	{FP, "FP", "F/P"},
	{IL, "IL", "I/L"},
	{Cleric, "Cleric", "cleric"},
	{Archer, "Archer", "archer"},
	{Hunter, "Hunter", "hunter"},
	{Crossbowman, "Crossbowman", "crossbow(o)man"},
	{Rogue, "Rogue", "rogue"},
	{Assassin, "Assassin", "assassin"},
	{Bandit, "Bandit", "bandit"},
	{DualBlade, "DualBlade", "dual blade"},
	{Pirate, "Pirate", "pirate"},
	{Brawler, "Brawler", "brawler"},
	{Gunslinger, "Gunslinger", "gunslinger"},
	{Noblesse, "Noblesse", "noblesse"},
	{DawnWarrior1st, "DawnWarrior1st", "dawn warrior (1st grade)"},
	{DawnWarrior, "DawnWarrior", "dawn warrior"},
	{BlazeWizard1st, "BlazeWizard1st", "blaze wizard (1st grade)"},
	{BlazeWizard, "BlazeWizard", "blaze wizard"},
	{WindArcher1st, "WindArcher1st", "wind archer (1st grade)"},
	{WindArcher, "WindArcher", "wind archer"},
	{NightWalker1st, "NightWalker1st", "night walker (1st grade)"},
	{NightWalker, "NightWalker", "night walker"},
	{ThunderBreaker1st, "ThunderBreaker1st", "thunder breaker (1st grade)"},
	{ThunderBreaker, "ThunderBreaker", "thunder breaker"},
	{AranBeginner, "AranBeginner", "aran (beginner)"},
	{EvanBeginner, "EvanBeginner", "evan (beginner)"},
	{Aran1st, "Aran1st", "aran (1st grade)"},
	{Aran, "Aran", "aran"},
	{Evan1st, "Evan1st", "evan (1st grade)"},
	{Evan, "Evan", "evan"},
}

var (
	classByCode map[uint16]*classInfo
	classByName map[string]Class
)

func init() {
	classByCode = make(map[uint16]*classInfo, len(classTable))
	classByName = make(map[string]Class, len(classTable))
	for i := range classTable {
		info := &classTable[i]
		code := info.class.Code()
		if _, dup := classByCode[code]; dup {
			panic(fmt.Sprintf("ruleset: class code %d declared twice", code))
		}
		classByCode[code] = info
		classByName[info.name] = info.class
	}
}

// Code returns the canonical numeric code for c.
func (c Class) Code() uint16 {
	return uint16(c)
}

// ClassFromCode decodes a canonical class code.
//
// Postcondition: Returns the Class whose Code() equals code, or an
// *UnrecognizedIdentifierError for every other value. Codes of unmodeled
// grades are rejected, never rounded to a modeled neighbour.
func ClassFromCode(code uint16) (Class, error) {
	info, ok := classByCode[code]
	if !ok {
		return 0, &UnrecognizedIdentifierError{Kind: "class", Code: uint32(code)}
	}
	return info.class, nil
}

// ParseClass resolves a class by its symbolic name, e.g. "EvanBeginner".
func ParseClass(name string) (Class, bool) {
	c, ok := classByName[name]
	return c, ok
}

// Valid reports whether c is a member of the modeled class set.
func (c Class) Valid() bool {
	_, ok := classByCode[uint16(c)]
	return ok
}

// Name returns the symbolic name used in job files, or "" if c is not valid.
func (c Class) Name() string {
	if info, ok := classByCode[uint16(c)]; ok {
		return info.name
	}
	return ""
}

// String returns the human-readable label, e.g. "evan (beginner)".
func (c Class) String() string {
	if info, ok := classByCode[uint16(c)]; ok {
		return info.label
	}
	return fmt.Sprintf("Class(%d)", uint16(c))
}

// Classes returns every modeled class in declaration order.
func Classes() []Class {
	out := make([]Class, len(classTable))
	for i, info := range classTable {
		out[i] = info.class
	}
	return out
}
