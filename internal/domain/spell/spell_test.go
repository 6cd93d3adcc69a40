package spell

import (
	"reflect"
	"testing"
)

func TestFallbackCategories(t *testing.T) {
	tests := []struct {
		school, subschool string
		want              []string
	}{
		{"divination", "", []string{"Divination"}},
		{"Divination", "scrying", []string{"Divination"}},
		{"conjuration", "healing", []string{"Healing"}},
		{"conjuration", "Summoning", []string{"Summoning"}},
		{"conjuration", "calling", []string{"Calling"}},
		{"transmutation", "polymorph", []string{"Polymorph"}},
		{"evocation", "", []string{"Other"}},
		{"conjuration", "creation", []string{"Other"}},
		{"", "", []string{"Other"}},
	}

	for _, tt := range tests {
		t.Run(tt.school+"/"+tt.subschool, func(t *testing.T) {
			got := FallbackCategories(tt.school, tt.subschool)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FallbackCategories(%q, %q) = %v, want %v", tt.school, tt.subschool, got, tt.want)
			}
		})
	}
}

func TestResolveCategories_KeepsStored(t *testing.T) {
	s := Spell{School: "divination"}
	s.ResolveCategories([]string{"Utility"})
	if !reflect.DeepEqual(s.Categories, []string{"Utility"}) {
		t.Errorf("Categories = %v", s.Categories)
	}
}

func TestResolveCategories_Fallback(t *testing.T) {
	s := Spell{School: "conjuration", Subschool: "healing"}
	s.ResolveCategories(nil)
	if !reflect.DeepEqual(s.Categories, []string{"Healing"}) {
		t.Errorf("Categories = %v", s.Categories)
	}
}

func TestMinClassLevel(t *testing.T) {
	s := Spell{Classes: []ClassLevel{{"wizard", 3}, {"bard", 2}, {"cleric", 4}}}
	if got := s.MinClassLevel(); got != 2 {
		t.Errorf("MinClassLevel() = %d, want 2", got)
	}

	empty := Spell{}
	if got := empty.MinClassLevel(); got != -1 {
		t.Errorf("MinClassLevel() on no classes = %d, want -1", got)
	}
}

func TestDescriptorColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Fire", "fire", true},
		{"fire", "fire", true},
		{"Mind-Affecting", "mind_affecting", true},
		{"mind affecting", "mind_affecting", true},
		{"language_dependent", "language_dependent", true},
		{"plasma", "", false},
	}
	for _, tt := range tests {
		got, ok := DescriptorColumn(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DescriptorColumn(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestComponentColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Verbal", "verbal", true},
		{"Divine Focus", "divine_focus", true},
		{"DF", "divine_focus", true},
		{"m", "material", true},
		{"xp", "", false},
	}
	for _, tt := range tests {
		got, ok := ComponentColumn(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ComponentColumn(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
