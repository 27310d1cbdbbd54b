package ruleset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	jobFields       = []string{"classes", "location", "stats", "weaponry", "ammo", "skills"}
	statsFields     = []string{"primary", "secondary", "constraints"}
	weaponryFields  = []string{"allowed", "canonical"}
	weaponSetFields = []string{"categories", "ids"}
	constraintKeys  = []string{"less", "full", "pure"}
)

// parseDocument tokenizes src and returns the root content node, or nil for
// an empty document. A source holding more than one document is rejected.
func parseDocument(src []byte) (*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &StructuralError{Reason: err.Error(), Err: ErrSyntax}
	}
	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return nil, &StructuralError{Reason: err.Error(), Err: ErrSyntax}
	default:
		at := &extra
		if len(extra.Content) > 0 {
			at = extra.Content[0]
		}
		return nil, structErr(at, "", ErrSyntax, "multiple documents")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	return resolve(doc.Content[0]), nil
}

// resolve follows alias nodes to their anchors.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func fieldPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

func structErr(n *yaml.Node, path string, cause error, format string, args ...any) *StructuralError {
	e := &StructuralError{Path: path, Reason: fmt.Sprintf(format, args...), Err: cause}
	if n != nil {
		e.Line, e.Column = n.Line, n.Column
	}
	return e
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return "null"
		}
		return "scalar " + n.ShortTag()
	default:
		return "unknown node"
	}
}

// isInteger reports whether n is an integer scalar. Plain integers too wide
// for 64 bits are tagged !!float by the YAML resolver but still count.
func isInteger(n *yaml.Node) bool {
	if n.Kind != yaml.ScalarNode {
		return false
	}
	switch n.ShortTag() {
	case "!!int":
		return true
	case "!!float":
		digits := strings.ReplaceAll(strings.TrimLeft(n.Value, "+-"), "_", "")
		if digits == "" || len(n.Value)-len(strings.TrimLeft(n.Value, "+-")) > 1 {
			return false
		}
		for _, r := range digits {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// mappingFields indexes the entries of a mapping node by key. Keys outside
// allowed and repeated keys are errors.
func mappingFields(n *yaml.Node, path string, allowed []string) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, structErr(n, path, ErrWrongKind, "expected mapping, got %s", kindName(n))
	}
	out := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolve(n.Content[i])
		if key.Kind != yaml.ScalarNode {
			return nil, structErr(key, path, ErrWrongKind, "field name must be a scalar, got %s", kindName(key))
		}
		name := key.Value
		known := false
		for _, a := range allowed {
			if a == name {
				known = true
				break
			}
		}
		if !known {
			return nil, structErr(key, fieldPath(path, name), ErrUnknownField,
				"unknown field %q (expected one of %s)", name, strings.Join(allowed, ", "))
		}
		if _, dup := out[name]; dup {
			return nil, structErr(key, fieldPath(path, name), ErrDuplicateKey, "field %q repeated", name)
		}
		out[name] = resolve(n.Content[i+1])
	}
	return out, nil
}

func requireField(parent *yaml.Node, fields map[string]*yaml.Node, path, name string) (*yaml.Node, error) {
	n, ok := fields[name]
	if !ok {
		return nil, structErr(parent, fieldPath(path, name), ErrMissingField, "missing required field %q", name)
	}
	return n, nil
}

func sequenceItems(n *yaml.Node, path string) ([]*yaml.Node, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, structErr(n, path, ErrWrongKind, "expected sequence, got %s", kindName(n))
	}
	items := make([]*yaml.Node, len(n.Content))
	for i, c := range n.Content {
		items[i] = resolve(c)
	}
	return items, nil
}

func decodeString(n *yaml.Node, path string) (string, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return "", structErr(n, path, ErrWrongKind, "expected name, got %s", kindName(n))
	}
	return n.Value, nil
}

func decodeBool(n *yaml.Node, path string) (bool, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!bool" {
		return false, structErr(n, path, ErrWrongKind, "expected boolean, got %s", kindName(n))
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false, structErr(n, path, ErrWrongKind, "invalid boolean %q", n.Value)
	}
	return b, nil
}

// decodeUint reads a non-negative integer scalar no larger than max.
func decodeUint(n *yaml.Node, path string, max uint64) (uint64, error) {
	if !isInteger(n) {
		return 0, structErr(n, path, ErrWrongKind, "expected integer, got %s", kindName(n))
	}
	plain := strings.TrimPrefix(strings.ReplaceAll(n.Value, "_", ""), "+")
	if strings.HasPrefix(plain, "-") {
		return 0, structErr(n, path, ErrOutOfRange, "%s is negative", n.Value)
	}
	v, err := strconv.ParseUint(plain, 0, 64)
	if err != nil || v > max {
		return 0, structErr(n, path, ErrOutOfRange, "%s exceeds %d", n.Value, max)
	}
	return v, nil
}

func decodeClass(n *yaml.Node, path string) (Class, error) {
	if isInteger(n) {
		code, err := decodeUint(n, path, math.MaxUint16)
		if err != nil {
			return 0, err
		}
		c, err := ClassFromCode(uint16(code))
		if err != nil {
			return 0, structErr(n, path, err, "unrecognized class code %d", code)
		}
		return c, nil
	}
	name, err := decodeString(n, path)
	if err != nil {
		return 0, err
	}
	c, ok := ParseClass(name)
	if !ok {
		return 0, structErr(n, path, ErrUnknownMember, "unknown class %q", name)
	}
	return c, nil
}

func decodeWeaponCategory(n *yaml.Node, path string) (WeaponCategory, error) {
	if isInteger(n) {
		code, err := decodeUint(n, path, math.MaxUint8)
		if err != nil {
			return 0, err
		}
		w, err := WeaponCategoryFromCode(uint8(code))
		if err != nil {
			return 0, structErr(n, path, err, "unrecognized weapon category code %d", code)
		}
		return w, nil
	}
	name, err := decodeString(n, path)
	if err != nil {
		return 0, err
	}
	w, ok := ParseWeaponCategory(name)
	if !ok {
		return 0, structErr(n, path, ErrUnknownMember, "unknown weapon category %q", name)
	}
	return w, nil
}

func decodeLocation(n *yaml.Node, path string) (Location, error) {
	name, err := decodeString(n, path)
	if err != nil {
		return LocationUnknown, err
	}
	l, ok := ParseLocation(name)
	if !ok {
		return LocationUnknown, structErr(n, path, ErrUnknownMember, "unknown location %q", name)
	}
	return l, nil
}

func decodeStat(n *yaml.Node, path string) (Stat, error) {
	name, err := decodeString(n, path)
	if err != nil {
		return StatUnknown, err
	}
	s, ok := ParseStat(name)
	if !ok {
		return StatUnknown, structErr(n, path, ErrUnknownMember, "unknown stat %q", name)
	}
	return s, nil
}

// decodeList decodes every item of a sequence node with fn, keeping order.
// An empty sequence yields a nil slice.
func decodeList[T any](n *yaml.Node, path string, fn func(*yaml.Node, string) (T, error)) ([]T, error) {
	items, err := sequenceItems(n, path)
	if err != nil {
		return nil, err
	}
	var out []T
	for i, item := range items {
		v, err := fn(item, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeUint32(n *yaml.Node, path string) (uint32, error) {
	v, err := decodeUint(n, path, math.MaxUint32)
	return uint32(v), err
}

func decodeConstraint(n *yaml.Node, path string) (StatConstraint, error) {
	fields, err := mappingFields(n, path, constraintKeys)
	if err != nil {
		return StatConstraint{}, err
	}
	if len(fields) == 1 {
		for _, key := range constraintKeys {
			value, ok := fields[key]
			if !ok {
				continue
			}
			kind, _ := parseConstraintKind(key)
			s, err := decodeStat(value, fieldPath(path, key))
			if err != nil {
				return StatConstraint{}, err
			}
			return StatConstraint{Kind: kind, Stat: s}, nil
		}
	}
	return StatConstraint{}, structErr(n, path, ErrWrongKind,
		"constraint must have exactly one of %s", strings.Join(constraintKeys, ", "))
}

func decodeConstraintGroup(n *yaml.Node, path string) ([]StatConstraint, error) {
	return decodeList(n, path, decodeConstraint)
}

func decodeStats(n *yaml.Node, path string) (Stats, error) {
	fields, err := mappingFields(n, path, statsFields)
	if err != nil {
		return Stats{}, err
	}
	var s Stats
	primary, err := requireField(n, fields, path, "primary")
	if err != nil {
		return Stats{}, err
	}
	if s.Primary, err = decodeList(primary, fieldPath(path, "primary"), decodeStat); err != nil {
		return Stats{}, err
	}
	secondary, err := requireField(n, fields, path, "secondary")
	if err != nil {
		return Stats{}, err
	}
	if s.Secondary, err = decodeList(secondary, fieldPath(path, "secondary"), decodeStat); err != nil {
		return Stats{}, err
	}
	constraints, err := requireField(n, fields, path, "constraints")
	if err != nil {
		return Stats{}, err
	}
	if s.Constraints, err = decodeList(constraints, fieldPath(path, "constraints"), decodeConstraintGroup); err != nil {
		return Stats{}, err
	}
	return s, nil
}

// decodeWeaponSet accepts the scalar "all", {categories: [...]} or {ids: [...]}.
func decodeWeaponSet(n *yaml.Node, path string) (WeaponSet, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" {
		if n.Value == "all" {
			return AllWeapons{}, nil
		}
		return nil, structErr(n, path, ErrUnknownMember, "unknown weapon set %q (expected all)", n.Value)
	}
	fields, err := mappingFields(n, path, weaponSetFields)
	if err != nil {
		return nil, err
	}
	if len(fields) != 1 {
		return nil, structErr(n, path, ErrWrongKind, "weapon set must be all or have exactly one of categories, ids")
	}
	if cats, ok := fields["categories"]; ok {
		list, err := decodeList(cats, fieldPath(path, "categories"), decodeWeaponCategory)
		if err != nil {
			return nil, err
		}
		return ByCategory(list), nil
	}
	list, err := decodeList(fields["ids"], fieldPath(path, "ids"), decodeUint32)
	if err != nil {
		return nil, err
	}
	return ByExactID(list), nil
}

func decodeWeaponry(n *yaml.Node, path string) (Weaponry, error) {
	fields, err := mappingFields(n, path, weaponryFields)
	if err != nil {
		return Weaponry{}, err
	}
	var w Weaponry
	allowed, err := requireField(n, fields, path, "allowed")
	if err != nil {
		return Weaponry{}, err
	}
	if w.Allowed, err = decodeWeaponSet(allowed, fieldPath(path, "allowed")); err != nil {
		return Weaponry{}, err
	}
	canonical, err := requireField(n, fields, path, "canonical")
	if err != nil {
		return Weaponry{}, err
	}
	if w.Canonical, err = decodeWeaponSet(canonical, fieldPath(path, "canonical")); err != nil {
		return Weaponry{}, err
	}
	return w, nil
}

func decodeJob(n *yaml.Node, path string) (*Job, error) {
	fields, err := mappingFields(n, path, jobFields)
	if err != nil {
		return nil, err
	}
	var j Job

	classes, err := requireField(n, fields, path, "classes")
	if err != nil {
		return nil, err
	}
	if j.Classes, err = decodeList(classes, fieldPath(path, "classes"), decodeClass); err != nil {
		return nil, err
	}

	location, err := requireField(n, fields, path, "location")
	if err != nil {
		return nil, err
	}
	if j.Location, err = decodeLocation(location, fieldPath(path, "location")); err != nil {
		return nil, err
	}

	stats, err := requireField(n, fields, path, "stats")
	if err != nil {
		return nil, err
	}
	if j.Stats, err = decodeStats(stats, fieldPath(path, "stats")); err != nil {
		return nil, err
	}

	weaponry, err := requireField(n, fields, path, "weaponry")
	if err != nil {
		return nil, err
	}
	if j.Weaponry, err = decodeWeaponry(weaponry, fieldPath(path, "weaponry")); err != nil {
		return nil, err
	}

	ammo, err := requireField(n, fields, path, "ammo")
	if err != nil {
		return nil, err
	}
	if j.Ammo, err = decodeBool(ammo, fieldPath(path, "ammo")); err != nil {
		return nil, err
	}

	// skills is the only optional field; explicit null also means absent.
	if skills, ok := fields["skills"]; ok && !isNull(skills) {
		ids, err := decodeList(skills, fieldPath(path, "skills"), decodeUint32)
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []uint32{}
		}
		j.Skills = &ids
	}
	return &j, nil
}
