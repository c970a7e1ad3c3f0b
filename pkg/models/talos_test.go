package models

import (
	"encoding/json"
	"testing"
)

func TestSkill_DecodeWireShape(t *testing.T) {
	raw := `[{"skill_id":"sum_csv","version":"1.2","code":{"language":"python"},"quarantine_state":"awaiting_promotion"}]`

	var skills []Skill
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(skills) != 1 {
		t.Fatalf("decoded %d skills, want 1", len(skills))
	}

	s := skills[0]
	if s.SkillID != "sum_csv" || s.Version != "1.2" || s.Code.Language != "python" {
		t.Errorf("decoded skill = %+v", s)
	}
	if !s.Promotable() {
		t.Error("Promotable() = false for awaiting_promotion")
	}

	s.QuarantineState = "quarantined"
	if s.Promotable() {
		t.Error("Promotable() = true for quarantined")
	}
}

func TestMetricsSnapshot_AbsentFieldsStayNil(t *testing.T) {
	var snap MetricsSnapshot
	if err := json.Unmarshal([]byte(`{"total_vectors":42}`), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap.VRAM != nil || snap.Gemini != nil || snap.Skills != nil {
		t.Errorf("absent sections decoded non-nil: %+v", snap)
	}
	if snap.TotalVectors == nil || *snap.TotalVectors != 42 {
		t.Errorf("TotalVectors = %v, want 42", snap.TotalVectors)
	}
}
