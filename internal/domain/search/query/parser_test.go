package query

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		text    string
		clauses []Clause
	}{
		{
			name: "free text only",
			in:   "fire ball",
			text: "fire ball",
		},
		{
			name: "empty",
			in:   "   ",
			text: "",
		},
		{
			name: "space separated clauses default to OR",
			in:   "class:wizard class:paladin",
			clauses: []Clause{
				{FieldClass, "wizard", OpOr},
				{FieldClass, "paladin", OpOr},
			},
		},
		{
			name: "AND applies to the next clause",
			in:   "class:wizard AND class:paladin",
			clauses: []Clause{
				{FieldClass, "wizard", OpOr},
				{FieldClass, "paladin", OpAnd},
			},
		},
		{
			name: "operators are case insensitive",
			in:   "descriptor:fire and descriptor:cold or descriptor:acid",
			clauses: []Clause{
				{FieldDescriptor, "fire", OpOr},
				{FieldDescriptor, "cold", OpAnd},
				{FieldDescriptor, "acid", OpOr},
			},
		},
		{
			name: "aliases resolve to canonical fields",
			in:   "cast:swift casting_time:immediate target:creature targets:you",
			clauses: []Clause{
				{FieldCastingTime, "swift", OpOr},
				{FieldCastingTime, "immediate", OpOr},
				{FieldTargets, "creature", OpOr},
				{FieldTargets, "you", OpOr},
			},
		},
		{
			name: "quoted value stays one token",
			in:   `cast:"full round" blast`,
			text: "blast",
			clauses: []Clause{
				{FieldCastingTime, "full round", OpOr},
			},
		},
		{
			name: "unknown prefix is free text",
			in:   "foo:bar school:evocation",
			text: "foo:bar",
			clauses: []Clause{
				{FieldSchool, "evocation", OpOr},
			},
		},
		{
			name: "operator before free text has no lingering effect",
			in:   "class:wizard AND burning class:cleric",
			text: "burning",
			clauses: []Clause{
				{FieldClass, "wizard", OpOr},
				{FieldClass, "cleric", OpOr},
			},
		},
		{
			name: "trailing operator dropped",
			in:   "class:wizard AND",
			clauses: []Clause{
				{FieldClass, "wizard", OpOr},
			},
		},
		{
			name: "operators never become free text",
			in:   "fire OR ice",
			text: "fire ice",
		},
		{
			name: "unbalanced quotes fall back to whitespace",
			in:   `"fire school:evocation`,
			text: `"fire`,
			clauses: []Clause{
				{FieldSchool, "evocation", OpOr},
			},
		},
		{
			name: "fallback strips one layer of quotes from values",
			in:   `it's school:"evocation"`,
			text: "it's",
			clauses: []Clause{
				{FieldSchool, "evocation", OpOr},
			},
		},
		{
			name: "empty value is free text",
			in:   `class:""`,
			text: "class:",
		},
		{
			name: "quoted multi word free text is re-quoted",
			in:   `"magic missile" level:1`,
			text: `"magic missile"`,
			clauses: []Clause{
				{FieldLevel, "1", OpOr},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if got.Text != tt.text {
				t.Errorf("Text = %q, want %q", got.Text, tt.text)
			}
			if !reflect.DeepEqual(got.Clauses, tt.clauses) {
				t.Errorf("Clauses = %+v, want %+v", got.Clauses, tt.clauses)
			}
		})
	}
}

func TestLookupField(t *testing.T) {
	tests := []struct {
		prefix string
		want   Field
		ok     bool
	}{
		{"cast", FieldCastingTime, true},
		{"CAST", FieldCastingTime, true},
		{"target", FieldTargets, true},
		{"sr", FieldSpellResistance, true},
		{"components", "", false},
		{"foo", "", false},
	}
	for _, tt := range tests {
		got, ok := LookupField(tt.prefix)
		if got != tt.want || ok != tt.ok {
			t.Errorf("LookupField(%q) = %q, %v; want %q, %v", tt.prefix, got, ok, tt.want, tt.ok)
		}
	}
}

func TestField_IsValid(t *testing.T) {
	for _, f := range Fields {
		if !f.IsValid() {
			t.Errorf("%q.IsValid() = false", f)
		}
	}
	if Field("bogus").IsValid() {
		t.Error(`"bogus".IsValid() = true`)
	}
}
