package ruleset

import (
	"fmt"
	"io"
)

// WeaponSet is the set of weapons a job refers to. Its variants are
// AllWeapons, ByCategory and ByExactID; no other type implements it.
type WeaponSet interface {
	isWeaponSet()
}

// AllWeapons places no restriction on weapons.
type AllWeapons struct{}

// ByCategory admits any weapon in the listed categories, in declaration order.
type ByCategory []WeaponCategory

// ByExactID admits exactly the listed weapon item IDs, in declaration order.
type ByExactID []uint32

func (AllWeapons) isWeaponSet() {}
func (ByCategory) isWeaponSet() {}
func (ByExactID) isWeaponSet()  {}

// Weaponry pairs the weapons a job may legally equip with the canonical
// reference weapons for the job. The two sets are independent.
type Weaponry struct {
	Allowed   WeaponSet
	Canonical WeaponSet
}

// Job defines a job that characters of any listed class may take.
//
// Skills distinguishes absence from emptiness: nil means skills do not apply
// to the job; a non-nil pointer to an empty slice means they apply but none
// are assigned yet.
type Job struct {
	Classes  []Class
	Location Location
	Stats    Stats
	Weaponry Weaponry
	Ammo     bool
	Skills   *[]uint32
}

// SkillList returns a present skill list holding ids. SkillList() with no
// arguments is present and empty, which differs from a nil list.
func SkillList(ids ...uint32) *[]uint32 {
	out := make([]uint32, len(ids))
	copy(out, ids)
	return &out
}

// HasClass reports whether c may take the job.
func (j *Job) HasClass(c Class) bool {
	for _, jc := range j.Classes {
		if jc == c {
			return true
		}
	}
	return false
}

// describeWeaponSet renders s for diagnostics, e.g. "spears, one-handed BWs".
func describeWeaponSet(s WeaponSet) string {
	switch set := s.(type) {
	case AllWeapons:
		return "any weapon"
	case ByCategory:
		if len(set) == 0 {
			return "no categories"
		}
		out := ""
		for i, w := range set {
			if i > 0 {
				out += ", "
			}
			out += w.Plural()
		}
		return out
	case ByExactID:
		return fmt.Sprintf("weapon IDs %v", []uint32(set))
	case nil:
		return "none"
	default:
		panic(fmt.Sprintf("ruleset: unhandled WeaponSet %T", s))
	}
}

// Describe returns a one-line human-readable summary of the job.
func (j *Job) Describe() string {
	return fmt.Sprintf("%d classes at %s, weapons: %s", len(j.Classes), j.Location, describeWeaponSet(j.Weaponry.Allowed))
}

// ParseJob parses a single job record from YAML source.
//
// Precondition: src holds one YAML document.
// Postcondition: Returns a fully populated Job or a *StructuralError; the Job
// shares no memory with src.
func ParseJob(src []byte) (*Job, error) {
	root, err := parseDocument(src)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, &StructuralError{Reason: "empty document", Err: ErrMissingField}
	}
	return decodeJob(root, "")
}

// ReadJob reads r to the end and parses it as a single job record.
func ReadJob(r io.Reader) (*Job, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading job source: %w", err)
	}
	return ParseJob(src)
}
