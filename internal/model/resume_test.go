package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestHeaderSummary(t *testing.T) {
	tests := []struct {
		name string
		r    Resume
		want string
	}{
		{"personal wins", Resume{Personal: &Personal{Summary: "pitch"}, Summary: "long"}, "pitch"},
		{"falls back to summary", Resume{Personal: &Personal{}, Summary: "long"}, "long"},
		{"nil personal", Resume{Summary: "long"}, "long"},
		{"nothing", Resume{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.HeaderSummary(); got != tt.want {
				t.Errorf("HeaderSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContactLine(t *testing.T) {
	tests := []struct {
		name string
		p    *Personal
		want string
	}{
		{"both", &Personal{Email: "a@b.c", Phone: "123"}, "a@b.c | 123"},
		{"email only", &Personal{Email: "a@b.c"}, "a@b.c"},
		{"phone only", &Personal{Phone: "123"}, "123"},
		{"neither", &Personal{}, ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resume{Personal: tt.p}
			if got := r.ContactLine(); got != tt.want {
				t.Errorf("ContactLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProjectDisplayName(t *testing.T) {
	if got := (Project{Name: "n", Title: "t"}).DisplayName(); got != "n" {
		t.Errorf("DisplayName() = %q, want n", got)
	}
	if got := (Project{Title: "t"}).DisplayName(); got != "t" {
		t.Errorf("DisplayName() = %q, want t", got)
	}
}

func TestNormalize(t *testing.T) {
	r := Resume{
		Personal: &Personal{FullName: "  Ada Lovelace "},
		Summary:  " hi ",
		Experience: []Experience{
			{Company: " Acme ", Position: "Eng"},
			{},
		},
		Education: []Education{{Degree: "BSc"}, {StartDate: "2020"}},
		Projects:  []Project{{Title: "tool"}, {Technologies: "Go"}},
		Social:    []SocialLink{{Platform: "GitHub", URL: "https://github.com/ada"}, {Platform: "X"}},
		Skills:    []string{" Go ", "", "SQL"},
		Interests: []string{"  "},
		Languages: []Language{{Name: "English", Proficiency: " Native "}, {Proficiency: "B2"}},
	}
	r.Normalize()

	if r.Personal.FullName != "Ada Lovelace" {
		t.Errorf("FullName = %q", r.Personal.FullName)
	}
	if r.Summary != "hi" {
		t.Errorf("Summary = %q", r.Summary)
	}
	if len(r.Experience) != 1 || r.Experience[0].Company != "Acme" || r.Experience[0].ID == "" {
		t.Errorf("Experience = %+v", r.Experience)
	}
	if len(r.Education) != 1 || r.Education[0].ID == "" {
		t.Errorf("Education = %+v", r.Education)
	}
	if len(r.Projects) != 1 || r.Projects[0].Title != "tool" {
		t.Errorf("Projects = %+v", r.Projects)
	}
	if len(r.Social) != 1 {
		t.Errorf("Social = %+v", r.Social)
	}
	if !reflect.DeepEqual(r.Skills, []string{"Go", "SQL"}) {
		t.Errorf("Skills = %v", r.Skills)
	}
	if len(r.Interests) != 0 {
		t.Errorf("Interests = %v", r.Interests)
	}
	if len(r.Languages) != 1 || r.Languages[0].Proficiency != "Native" {
		t.Errorf("Languages = %+v", r.Languages)
	}

	before, _ := json.Marshal(r)
	r.Normalize()
	after, _ := json.Marshal(r)
	if string(before) != string(after) {
		t.Errorf("Normalize not idempotent:\n%s\n%s", before, after)
	}
}

func TestNormalizeKeepsExistingIDs(t *testing.T) {
	r := Resume{Experience: []Experience{{ID: "1", Company: "Tech Corp"}}}
	r.Normalize()
	if r.Experience[0].ID != "1" {
		t.Errorf("ID = %q, want 1", r.Experience[0].ID)
	}
}

func TestJSONRoundTripPreservesEditorShape(t *testing.T) {
	in := `{"personal":{"fullName":"John Doe","position":"Software Engineer","email":"john.doe@email.com"},` +
		`"summary":"Experienced engineer.","experience":[{"id":"1","company":"Tech Corp","position":"Senior",` +
		`"startDate":"2021-01","endDate":"Present","description":"Led development."}],` +
		`"skills":["JavaScript","Go"],"social":[{"platform":"GitHub","url":"https://github.com/johndoe"}]}`

	var r Resume
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var a, b map[string]any
	_ = json.Unmarshal([]byte(in), &a)
	_ = json.Unmarshal(out, &b)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("round trip changed data:\nin:  %s\nout: %s", in, out)
	}
}

func TestScratchRecordKeepsEmptyKeys(t *testing.T) {
	out, err := json.Marshal(ScratchRecord())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"experience", "education", "skills", "social"} {
		list, ok := got[key].([]any)
		if !ok || len(list) != 0 {
			t.Errorf("%s = %#v, want []", key, got[key])
		}
	}
	personal, _ := got["personal"].(map[string]any)
	for _, key := range []string{"fullName", "position", "email", "phone", "address"} {
		if v, ok := personal[key]; !ok || v != "" {
			t.Errorf("personal.%s = %#v, want \"\"", key, v)
		}
	}
	if err := Validate(out); err != nil {
		t.Errorf("scratch record fails validation: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"empty object", `{}`, false},
		{"template and labels", `{"template":"modern","labels":{"skills":"Tools"}}`, false},
		{"full editor payload", `{"personal":{"fullName":"A"},"skills":["Go"],"experience":[{"company":"X"}]}`, false},
		{"null lists", `{"skills":null,"experience":null}`, false},
		{"null labels", `{"labels":null,"personal":{"fullName":"A"}}`, false},
		{"skills not strings", `{"skills":[1,2]}`, true},
		{"experience not array", `{"experience":"lots"}`, true},
		{"personal wrong type", `{"personal":"me"}`, true},
		{"not json", `{`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidResume) {
				t.Errorf("error %v does not wrap ErrInvalidResume", err)
			}
		})
	}
}

func TestValidateReportsEveryViolation(t *testing.T) {
	err := Validate([]byte(`{"skills":[1],"summary":3}`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if len(verr.Violations) < 2 {
		t.Errorf("Violations = %v, want at least 2", verr.Violations)
	}
}
