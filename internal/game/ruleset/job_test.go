package ruleset_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/cory-johannsen/oddjobs/internal/game/ruleset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notARealJob = `
classes: [Beginner, 2001, Spearman, DualBlade]
location: MapleIsland
stats:
  primary: [STR, MAXMP]
  secondary: [LUK]
  constraints:
    - [{less: DEX}]
    - [{full: STR}, {full: LUK}]
weaponry:
  allowed: {categories: [Spear, 132]}
  canonical: {ids: [1322003, 1322006]}
ammo: true
skills: []
`

// notARealJobExplicit builds the value notARealJob must parse to, decoding
// EvanBeginner and OneHandedMace from their numeric codes.
func notARealJobExplicit(t *testing.T) *ruleset.Job {
	t.Helper()
	evan, err := ruleset.ClassFromCode(2001)
	require.NoError(t, err)
	mace, err := ruleset.WeaponCategoryFromCode(132)
	require.NoError(t, err)
	return &ruleset.Job{
		Classes:  []ruleset.Class{ruleset.Beginner, evan, ruleset.Spearman, ruleset.DualBlade},
		Location: ruleset.MapleIsland,
		Stats: ruleset.Stats{
			Primary:   []ruleset.Stat{ruleset.STR, ruleset.MAXMP},
			Secondary: []ruleset.Stat{ruleset.LUK},
			Constraints: [][]ruleset.StatConstraint{
				{ruleset.Less(ruleset.DEX)},
				{ruleset.Full(ruleset.STR), ruleset.Full(ruleset.LUK)},
			},
		},
		Weaponry: ruleset.Weaponry{
			Allowed:   ruleset.ByCategory{ruleset.Spear, mace},
			Canonical: ruleset.ByExactID{1322003, 1322006},
		},
		Ammo:   true,
		Skills: ruleset.SkillList(),
	}
}

func requireStructural(t *testing.T, err error, path string, cause error) *ruleset.StructuralError {
	t.Helper()
	require.Error(t, err)
	var se *ruleset.StructuralError
	require.True(t, errors.As(err, &se), "expected *StructuralError, got %T: %v", err, err)
	assert.Equal(t, path, se.Path)
	if cause != nil {
		assert.ErrorIs(t, err, cause)
	}
	return se
}

func TestParseJob_NotARealJob(t *testing.T) {
	job, err := ruleset.ParseJob([]byte(notARealJob))
	require.NoError(t, err)
	assert.Equal(t, notARealJobExplicit(t), job)
}

func TestReadJob_NotARealJob(t *testing.T) {
	job, err := ruleset.ReadJob(strings.NewReader(notARealJob))
	require.NoError(t, err)
	assert.Equal(t, notARealJobExplicit(t), job)
}

func TestParseJob_ClassOrderPreserved(t *testing.T) {
	job, err := ruleset.ParseJob([]byte(notARealJob))
	require.NoError(t, err)
	assert.Equal(t, []ruleset.Class{ruleset.Beginner, ruleset.EvanBeginner, ruleset.Spearman, ruleset.DualBlade}, job.Classes)
}

func TestParseJob_SkillsAbsentVersusEmpty(t *testing.T) {
	withoutSkills := strings.Replace(notARealJob, "skills: []\n", "", 1)
	absent, err := ruleset.ParseJob([]byte(withoutSkills))
	require.NoError(t, err)
	assert.Nil(t, absent.Skills)

	empty, err := ruleset.ParseJob([]byte(notARealJob))
	require.NoError(t, err)
	require.NotNil(t, empty.Skills)
	assert.Empty(t, *empty.Skills)

	assert.NotEqual(t, absent, empty)
}

func TestParseJob_SkillsNullIsAbsent(t *testing.T) {
	src := strings.Replace(notARealJob, "skills: []", "skills: ~", 1)
	job, err := ruleset.ParseJob([]byte(src))
	require.NoError(t, err)
	assert.Nil(t, job.Skills)
}

func TestParseJob_SkillsKeepOrder(t *testing.T) {
	src := strings.Replace(notARealJob, "skills: []", "skills: [4001003, 1001, 4000000]", 1)
	job, err := ruleset.ParseJob([]byte(src))
	require.NoError(t, err)
	require.NotNil(t, job.Skills)
	assert.Equal(t, []uint32{4001003, 1001, 4000000}, *job.Skills)
}

func TestParseJob_AllWeapons(t *testing.T) {
	src := strings.Replace(notARealJob, "allowed: {categories: [Spear, 132]}", "allowed: all", 1)
	job, err := ruleset.ParseJob([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, ruleset.AllWeapons{}, job.Weaponry.Allowed)
	assert.Equal(t, ruleset.ByExactID{1322003, 1322006}, job.Weaponry.Canonical)
}

func TestParseJob_PureConstraint(t *testing.T) {
	src := strings.Replace(notARealJob, "- [{less: DEX}]", "- [{pure: INT}]", 1)
	job, err := ruleset.ParseJob([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []ruleset.StatConstraint{ruleset.PureStat(ruleset.INT)}, job.Stats.Constraints[0])
}

func TestParseJob_Errors(t *testing.T) {
	tests := []struct {
		name  string
		old   string
		new   string
		path  string
		cause error
	}{
		{"unknown stat", "primary: [STR, MAXMP]", "primary: [STR, CHA]", "stats.primary[1]", ruleset.ErrUnknownMember},
		{"negative weapon id", "ids: [1322003, 1322006]", "ids: [1322003, -1322006]", "weaponry.canonical.ids[1]", ruleset.ErrOutOfRange},
		{"weapon id too large", "ids: [1322003, 1322006]", "ids: [4294967296]", "weaponry.canonical.ids[0]", ruleset.ErrOutOfRange},
		{"class code too large", "[Beginner, 2001,", "[Beginner, 70000,", "classes[1]", ruleset.ErrOutOfRange},
		{"unknown class name", "Spearman, DualBlade", "Spearman, Crusader", "classes[2]", ruleset.ErrUnknownMember},
		{"unknown location", "location: MapleIsland", "location: Ellinia", "location", ruleset.ErrUnknownMember},
		{"missing location", "location: MapleIsland\n", "", "location", ruleset.ErrMissingField},
		{"missing ammo", "ammo: true\n", "", "ammo", ruleset.ErrMissingField},
		{"unknown field", "ammo: true", "ammo: true\nmesos: 100", "mesos", ruleset.ErrUnknownField},
		{"duplicate field", "ammo: true", "ammo: true\nammo: false", "ammo", ruleset.ErrDuplicateKey},
		{"ammo not bool", "ammo: true", "ammo: yes please", "ammo", ruleset.ErrWrongKind},
		{"classes not a sequence", "classes: [Beginner, 2001, Spearman, DualBlade]", "classes: Beginner", "classes", ruleset.ErrWrongKind},
		{"unknown weapon set", "allowed: {categories: [Spear, 132]}", "allowed: some", "weaponry.allowed", ruleset.ErrUnknownMember},
		{"ambiguous weapon set", "allowed: {categories: [Spear, 132]}", "allowed: {categories: [Spear], ids: [1]}", "weaponry.allowed", ruleset.ErrWrongKind},
		{"unknown constraint", "- [{less: DEX}]", "- [{more: DEX}]", "stats.constraints[0][0].more", ruleset.ErrUnknownField},
		{"empty constraint", "- [{less: DEX}]", "- [{}]", "stats.constraints[0][0]", ruleset.ErrWrongKind},
		{"skills not integers", "skills: []", "skills: [fireball]", "skills[0]", ruleset.ErrWrongKind},
		{"weapon id wider than 64 bits", "ids: [1322003, 1322006]", "ids: [99999999999999999999999]", "weaponry.canonical.ids[0]", ruleset.ErrOutOfRange},
		{"negative weapon id wider than 64 bits", "ids: [1322003, 1322006]", "ids: [-99999999999999999999999]", "weaponry.canonical.ids[0]", ruleset.ErrOutOfRange},
		{"class code wider than 64 bits", "[Beginner, 2001,", "[Beginner, 99999999999999999999999,", "classes[1]", ruleset.ErrOutOfRange},
		{"weapon category code wider than 64 bits", "[Spear, 132]", "[Spear, 99999999999999999999999]", "weaponry.allowed.categories[1]", ruleset.ErrOutOfRange},
		{"fractional weapon id", "ids: [1322003, 1322006]", "ids: [1322003.5]", "weaponry.canonical.ids[0]", ruleset.ErrWrongKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := strings.Replace(notARealJob, tt.old, tt.new, 1)
			require.NotEqual(t, notARealJob, src, "fixture replacement did not apply")
			job, err := ruleset.ParseJob([]byte(src))
			assert.Nil(t, job)
			requireStructural(t, err, tt.path, tt.cause)
		})
	}
}

func TestParseJob_UnrecognizedClassCode(t *testing.T) {
	src := strings.Replace(notARealJob, "[Beginner, 2001,", "[Beginner, 111,", 1)
	_, err := ruleset.ParseJob([]byte(src))
	se := requireStructural(t, err, "classes[1]", nil)
	assert.Equal(t, 2, se.Line)

	var unrecognized *ruleset.UnrecognizedIdentifierError
	require.True(t, errors.As(err, &unrecognized))
	assert.Equal(t, uint32(111), unrecognized.Code)
}

func TestParseJob_UnrecognizedWeaponCategoryCode(t *testing.T) {
	src := strings.Replace(notARealJob, "[Spear, 132]", "[Spear, 134]", 1)
	_, err := ruleset.ParseJob([]byte(src))
	var unrecognized *ruleset.UnrecognizedIdentifierError
	require.True(t, errors.As(err, &unrecognized))
	assert.Equal(t, "weapon category", unrecognized.Kind)
	assert.Equal(t, uint32(134), unrecognized.Code)
	var se *ruleset.StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "weaponry.allowed.categories[1]", se.Path)
}

func TestParseJob_EmptyDocument(t *testing.T) {
	_, err := ruleset.ParseJob([]byte("  \n"))
	requireStructural(t, err, "", ruleset.ErrMissingField)
}

func TestParseJob_Syntax(t *testing.T) {
	_, err := ruleset.ParseJob([]byte(`{{{ not yaml`))
	requireStructural(t, err, "", ruleset.ErrSyntax)
}

func TestParseJob_TrailingDocumentRejected(t *testing.T) {
	job, err := ruleset.ParseJob([]byte(notARealJob + "---\n" + notARealJob))
	assert.Nil(t, job)
	se := requireStructural(t, err, "", ruleset.ErrSyntax)
	assert.Equal(t, "multiple documents", se.Reason)
	assert.Greater(t, se.Line, 10)
}

func TestParseJob_MalformedTrailingDocument(t *testing.T) {
	job, err := ruleset.ParseJob([]byte(notARealJob + "---\ngarbage: [\n"))
	assert.Nil(t, job)
	requireStructural(t, err, "", ruleset.ErrSyntax)
}

func TestParseJob_RootNotMapping(t *testing.T) {
	_, err := ruleset.ParseJob([]byte(`[1, 2, 3]`))
	requireStructural(t, err, "", ruleset.ErrWrongKind)
}

func TestStructuralError_Message(t *testing.T) {
	src := strings.Replace(notARealJob, "primary: [STR, MAXMP]", "primary: [STR, CHA]", 1)
	_, err := ruleset.ParseJob([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stats.primary[1]")
	assert.Contains(t, err.Error(), `unknown stat "CHA"`)
	assert.Contains(t, err.Error(), "line 5")
}

func TestJob_HasClassAndDescribe(t *testing.T) {
	job := notARealJobExplicit(t)
	assert.True(t, job.HasClass(ruleset.EvanBeginner))
	assert.False(t, job.HasClass(ruleset.Evan))
	assert.Equal(t, "4 classes at Maple Island, weapons: spears, one-handed BWs", job.Describe())
}

func TestJob_DescribeEmptyCategories(t *testing.T) {
	job := notARealJobExplicit(t)
	job.Weaponry.Allowed = ruleset.ByCategory{}
	assert.Equal(t, "4 classes at Maple Island, weapons: no categories", job.Describe())
}

func TestSkillList_CopiesInput(t *testing.T) {
	ids := []uint32{1, 2}
	list := ruleset.SkillList(ids...)
	ids[0] = 99
	assert.Equal(t, []uint32{1, 2}, *list)
}
