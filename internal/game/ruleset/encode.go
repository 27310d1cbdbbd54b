package ruleset

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

func strNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func intNode(v uint64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(v, 10)}
}

func boolNode(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}

func flowSeq(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle, Content: items}
}

func mapping(style yaml.Style, kv ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Style: style, Content: kv}
}

func encodeList[T any](items []T, path string, fn func(T, string) (*yaml.Node, error)) (*yaml.Node, error) {
	seq := flowSeq()
	for i, item := range items {
		n, err := fn(item, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, n)
	}
	return seq, nil
}

func encodeClass(c Class, path string) (*yaml.Node, error) {
	name := c.Name()
	if name == "" {
		return nil, &StructuralError{Path: path, Reason: fmt.Sprintf("class code %d is not modeled", c.Code()),
			Err: &UnrecognizedIdentifierError{Kind: "class", Code: uint32(c.Code())}}
	}
	return strNode(name), nil
}

func encodeWeaponCategory(w WeaponCategory, path string) (*yaml.Node, error) {
	name := w.Name()
	if name == "" {
		return nil, &StructuralError{Path: path, Reason: fmt.Sprintf("weapon category code %d is not modeled", w.Code()),
			Err: &UnrecognizedIdentifierError{Kind: "weapon category", Code: uint32(w.Code())}}
	}
	return strNode(name), nil
}

func encodeStat(s Stat, path string) (*yaml.Node, error) {
	if !s.Valid() {
		return nil, &StructuralError{Path: path, Reason: fmt.Sprintf("invalid stat %d", int(s)), Err: ErrUnknownMember}
	}
	return strNode(s.String()), nil
}

func encodeUint32(v uint32, _ string) (*yaml.Node, error) {
	return intNode(uint64(v)), nil
}

func encodeConstraint(c StatConstraint, path string) (*yaml.Node, error) {
	key := c.Kind.Key()
	if key == "" {
		return nil, &StructuralError{Path: path, Reason: fmt.Sprintf("invalid constraint kind %d", int(c.Kind)), Err: ErrUnknownMember}
	}
	stat, err := encodeStat(c.Stat, fieldPath(path, key))
	if err != nil {
		return nil, err
	}
	return mapping(yaml.FlowStyle, strNode(key), stat), nil
}

func encodeStats(s Stats, path string) (*yaml.Node, error) {
	primary, err := encodeList(s.Primary, fieldPath(path, "primary"), encodeStat)
	if err != nil {
		return nil, err
	}
	secondary, err := encodeList(s.Secondary, fieldPath(path, "secondary"), encodeStat)
	if err != nil {
		return nil, err
	}
	constraints := &yaml.Node{Kind: yaml.SequenceNode}
	if len(s.Constraints) == 0 {
		constraints.Style = yaml.FlowStyle
	}
	for i, group := range s.Constraints {
		g, err := encodeList(group, indexPath(fieldPath(path, "constraints"), i), encodeConstraint)
		if err != nil {
			return nil, err
		}
		constraints.Content = append(constraints.Content, g)
	}
	return mapping(0,
		strNode("primary"), primary,
		strNode("secondary"), secondary,
		strNode("constraints"), constraints,
	), nil
}

func encodeWeaponSet(s WeaponSet, path string) (*yaml.Node, error) {
	switch set := s.(type) {
	case AllWeapons:
		return strNode("all"), nil
	case ByCategory:
		list, err := encodeList([]WeaponCategory(set), fieldPath(path, "categories"), encodeWeaponCategory)
		if err != nil {
			return nil, err
		}
		return mapping(yaml.FlowStyle, strNode("categories"), list), nil
	case ByExactID:
		list, err := encodeList([]uint32(set), fieldPath(path, "ids"), encodeUint32)
		if err != nil {
			return nil, err
		}
		return mapping(yaml.FlowStyle, strNode("ids"), list), nil
	case nil:
		return nil, &StructuralError{Path: path, Reason: "weapon set is not set", Err: ErrMissingField}
	default:
		panic(fmt.Sprintf("ruleset: unhandled WeaponSet %T", s))
	}
}

func encodeJob(j *Job, path string) (*yaml.Node, error) {
	classes, err := encodeList(j.Classes, fieldPath(path, "classes"), encodeClass)
	if err != nil {
		return nil, err
	}
	location := j.Location.Name()
	if location == "" {
		return nil, &StructuralError{Path: fieldPath(path, "location"),
			Reason: fmt.Sprintf("invalid location %d", int(j.Location)), Err: ErrUnknownMember}
	}
	stats, err := encodeStats(j.Stats, fieldPath(path, "stats"))
	if err != nil {
		return nil, err
	}
	allowed, err := encodeWeaponSet(j.Weaponry.Allowed, fieldPath(path, "weaponry.allowed"))
	if err != nil {
		return nil, err
	}
	canonical, err := encodeWeaponSet(j.Weaponry.Canonical, fieldPath(path, "weaponry.canonical"))
	if err != nil {
		return nil, err
	}
	n := mapping(0,
		strNode("classes"), classes,
		strNode("location"), strNode(location),
		strNode("stats"), stats,
		strNode("weaponry"), mapping(0, strNode("allowed"), allowed, strNode("canonical"), canonical),
		strNode("ammo"), boolNode(j.Ammo),
	)
	if j.Skills != nil {
		skills, err := encodeList(*j.Skills, fieldPath(path, "skills"), encodeUint32)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, strNode("skills"), skills)
	}
	return n, nil
}

func render(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalJob renders j in the form ParseJob reads, using symbolic names for
// every identifier.
//
// Precondition: j must be non-nil.
// Postcondition: ParseJob of the output yields a Job equal to j, or a
// *StructuralError names the first value that cannot be written.
func MarshalJob(j *Job) ([]byte, error) {
	n, err := encodeJob(j, "")
	if err != nil {
		return nil, err
	}
	return render(n)
}

// MarshalJobs renders a job collection with names in sorted order.
//
// Precondition: no value in jobs may be nil.
func MarshalJobs(jobs map[string]*Job) ([]byte, error) {
	names := make([]string, 0, len(jobs))
	for name := range jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	root := mapping(0)
	for _, name := range names {
		n, err := encodeJob(jobs[name], name)
		if err != nil {
			return nil, err
		}
		root.Content = append(root.Content, strNode(name), n)
	}
	return render(root)
}
