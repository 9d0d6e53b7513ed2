package validation

import (
	"strings"
	"testing"

	"swdb/internal/config"
	"swdb/internal/httpx"
)

func testEnums() *config.Enums {
	return &config.Enums{
		LevelOfCare:    []string{"LOW", "MEDIUM", "HIGH"},
		Status:         []string{"DEVEL", "RDY_TEST", "RDY_INST", "DEP"},
		InstStatus:     []string{"RDY_INST", "RDY_VER", "RDY_BEAM", "RETIRED"},
		Area:           []string{"Global", "LINAC"},
		VersionControl: []string{"Git", "Other"},
	}
}

func validSoftwareBody() map[string]interface{} {
	return map[string]interface{}{
		"swName":      "Beast",
		"owner":       "Jane Doe",
		"levelOfCare": "LOW",
		"status":      "DEVEL",
		"statusDate":  "2024-01-01",
	}
}

func hasViolation(violations []httpx.Violation, field string) bool {
	for _, v := range violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

func TestValidate_ValidCreate(t *testing.T) {
	violations := Validate(SoftwareRules, validSoftwareBody(), ModeCreate, testEnums())
	if violations != nil {
		t.Errorf("Expected no violations, got %v", violations)
	}
}

func TestValidate_RequiredMissingOnCreate(t *testing.T) {
	body := validSoftwareBody()
	delete(body, "swName")

	violations := Validate(SoftwareRules, body, ModeCreate, testEnums())
	if !hasViolation(violations, "swName") {
		t.Errorf("Expected a violation naming swName, got %v", violations)
	}
}

func TestValidate_AllRequiredMissingAreReported(t *testing.T) {
	violations := Validate(SoftwareRules, map[string]interface{}{}, ModeCreate, testEnums())

	for _, field := range []string{"swName", "owner", "levelOfCare", "status", "statusDate"} {
		if !hasViolation(violations, field) {
			t.Errorf("Expected a violation naming %s, got %v", field, violations)
		}
	}
}

func TestValidate_RequiredSkippedOnUpdate(t *testing.T) {
	// Partial update: a body naming only one field is acceptable
	body := map[string]interface{}{"owner": "John Doe"}

	violations := Validate(SoftwareRules, body, ModeUpdate, testEnums())
	if violations != nil {
		t.Errorf("Expected no violations on partial update, got %v", violations)
	}
}

func TestValidate_EmptyUpdateIsValid(t *testing.T) {
	violations := Validate(SoftwareRules, map[string]interface{}{}, ModeUpdate, testEnums())
	if violations != nil {
		t.Errorf("Expected no violations for empty update, got %v", violations)
	}
}

func TestValidate_PresentFieldCheckedOnUpdate(t *testing.T) {
	body := map[string]interface{}{"owner": "x"} // below 2-char minimum

	violations := Validate(SoftwareRules, body, ModeUpdate, testEnums())
	if !hasViolation(violations, "owner") {
		t.Errorf("Expected a violation naming owner, got %v", violations)
	}
}

func TestValidate_LengthBounds(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		valid bool
	}{
		{"name too short", "swName", "x", false},
		{"name at minimum", "swName", "xy", true},
		{"name at maximum", "swName", strings.Repeat("a", 40), true},
		{"name too long", "swName", strings.Repeat("a", 41), false},
		{"owner too long", "owner", strings.Repeat("a", 81), false},
		{"platforms too short", "platforms", "abc", false},
		{"platforms ok", "platforms", "linux-x86_64", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validSoftwareBody()
			body[tt.field] = tt.value

			violations := Validate(SoftwareRules, body, ModeCreate, testEnums())
			if tt.valid && hasViolation(violations, tt.field) {
				t.Errorf("Expected %s=%q to be valid, got %v", tt.field, tt.value, violations)
			}
			if !tt.valid && !hasViolation(violations, tt.field) {
				t.Errorf("Expected a violation for %s=%q", tt.field, tt.value)
			}
		})
	}
}

func TestValidate_TypeMismatch(t *testing.T) {
	body := validSoftwareBody()
	body["owner"] = 42.0

	violations := Validate(SoftwareRules, body, ModeCreate, testEnums())
	if !hasViolation(violations, "owner") {
		t.Errorf("Expected a type violation for owner, got %v", violations)
	}
}

func TestValidate_EnumMembership(t *testing.T) {
	body := validSoftwareBody()
	body["levelOfCare"] = "EXTREME"

	violations := Validate(SoftwareRules, body, ModeCreate, testEnums())
	if !hasViolation(violations, "levelOfCare") {
		t.Errorf("Expected an enum violation for levelOfCare, got %v", violations)
	}
}

func TestValidate_EnumAgainstCurrentConfigOnly(t *testing.T) {
	// A value removed from the configured list is rejected even if it was
	// valid under a previous configuration.
	enums := testEnums()
	enums.Status = []string{"RDY_INST", "DEP"}

	body := validSoftwareBody()
	body["status"] = "DEVEL"

	violations := Validate(SoftwareRules, body, ModeCreate, enums)
	if !hasViolation(violations, "status") {
		t.Errorf("Expected DEVEL to be rejected under the narrowed enum list, got %v", violations)
	}
}

func TestValidate_ASCIIOnly(t *testing.T) {
	body := validSoftwareBody()
	body["owner"] = "Jäne Doe"

	violations := Validate(SoftwareRules, body, ModeCreate, testEnums())
	if !hasViolation(violations, "owner") {
		t.Errorf("Expected an ASCII violation for owner, got %v", violations)
	}
}

func TestValidate_DateField(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"2024-01-01", true},
		{"2024-01-01T12:00:00Z", true},
		{"01/02/2024", false},
		{"not-a-date", false},
	}

	for _, tt := range tests {
		body := validSoftwareBody()
		body["statusDate"] = tt.value

		violations := Validate(SoftwareRules, body, ModeCreate, testEnums())
		got := hasViolation(violations, "statusDate")
		if tt.valid && got {
			t.Errorf("Expected statusDate=%q to be valid, got %v", tt.value, violations)
		}
		if !tt.valid && !got {
			t.Errorf("Expected a violation for statusDate=%q", tt.value)
		}
	}
}

func TestValidate_URLField(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"https://docs.example.org/design.pdf", true},
		{"http://docs.example.org/design.pdf", true},
		{"ftp://docs.example.org/design.pdf", false},
		{"not a url", false},
	}

	for _, tt := range tests {
		body := validSoftwareBody()
		body["designDescDocLoc"] = tt.value

		violations := Validate(SoftwareRules, body, ModeCreate, testEnums())
		got := hasViolation(violations, "designDescDocLoc")
		if tt.valid && got {
			t.Errorf("Expected designDescDocLoc=%q to be valid, got %v", tt.value, violations)
		}
		if !tt.valid && !got {
			t.Errorf("Expected a violation for designDescDocLoc=%q", tt.value)
		}
	}
}

func TestValidate_URLArray(t *testing.T) {
	body := validSoftwareBody()
	body["vvProcLoc"] = []interface{}{"https://docs.example.org/a", "nope"}

	violations := Validate(SoftwareRules, body, ModeCreate, testEnums())
	if !hasViolation(violations, "vvProcLoc") {
		t.Errorf("Expected a violation for the bad vvProcLoc element, got %v", violations)
	}

	body["vvProcLoc"] = []interface{}{"https://docs.example.org/a"}
	violations = Validate(SoftwareRules, body, ModeCreate, testEnums())
	if hasViolation(violations, "vvProcLoc") {
		t.Errorf("Expected vvProcLoc to be valid, got %v", violations)
	}
}

func validInstallationBody() map[string]interface{} {
	return map[string]interface{}{
		"host":       "vacuum-ioc-01",
		"software":   12.0,
		"status":     "RDY_INST",
		"statusDate": "2024-01-01",
	}
}

func TestValidate_Installation_ValidCreate(t *testing.T) {
	violations := Validate(InstallationRules, validInstallationBody(), ModeCreate, testEnums())
	if violations != nil {
		t.Errorf("Expected no violations, got %v", violations)
	}
}

func TestValidate_Installation_RequiredFields(t *testing.T) {
	violations := Validate(InstallationRules, map[string]interface{}{}, ModeCreate, testEnums())

	for _, field := range []string{"host", "software", "status", "statusDate"} {
		if !hasViolation(violations, field) {
			t.Errorf("Expected a violation naming %s, got %v", field, violations)
		}
	}
}

func TestValidate_Installation_SoftwareIDRef(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		valid bool
	}{
		{"numeric id", 12.0, true},
		{"numeric string", "12", true},
		{"zero", 0.0, false},
		{"negative", -3.0, false},
		{"fractional", 1.5, false},
		{"garbage string", "abc", false},
		{"wrong type", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validInstallationBody()
			body["software"] = tt.value

			violations := Validate(InstallationRules, body, ModeCreate, testEnums())
			got := hasViolation(violations, "software")
			if tt.valid && got {
				t.Errorf("Expected software=%v to be valid, got %v", tt.value, violations)
			}
			if !tt.valid && !got {
				t.Errorf("Expected a violation for software=%v", tt.value)
			}
		})
	}
}

func TestValidate_Installation_AreaEnumArray(t *testing.T) {
	body := validInstallationBody()
	body["area"] = []interface{}{"Global", "Basement"}

	violations := Validate(InstallationRules, body, ModeCreate, testEnums())
	if !hasViolation(violations, "area") {
		t.Errorf("Expected a violation for the unknown area value, got %v", violations)
	}

	body["area"] = []interface{}{"Global", "LINAC"}
	violations = Validate(InstallationRules, body, ModeCreate, testEnums())
	if hasViolation(violations, "area") {
		t.Errorf("Expected area to be valid, got %v", violations)
	}
}

func TestValidate_Installation_SlotsArray(t *testing.T) {
	body := validInstallationBody()
	body["slots"] = []interface{}{"LINAC-010", 7.0}

	violations := Validate(InstallationRules, body, ModeCreate, testEnums())
	if !hasViolation(violations, "slots") {
		t.Errorf("Expected a violation for the non-string slot, got %v", violations)
	}
}

func TestValidate_UnknownFieldsIgnored(t *testing.T) {
	body := validSoftwareBody()
	body["unknownField"] = "whatever"

	violations := Validate(SoftwareRules, body, ModeCreate, testEnums())
	if violations != nil {
		t.Errorf("Expected unknown fields to be ignored, got %v", violations)
	}
}
