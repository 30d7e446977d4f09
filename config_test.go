package rosomaxa

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsSmallEliteSize(t *testing.T) {
	c := NewDefaultConfig()
	c.EliteSize = 0
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for elite_size < 1")
	}
}

func TestValidateRejectsSmallNodeSize(t *testing.T) {
	c := NewDefaultConfig()
	c.NodeSize = 0
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for node_size < 1")
	}
}

func TestValidateRejectsSmallSelectionSize(t *testing.T) {
	c := NewDefaultConfig()
	c.SelectionSize = 1
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for selection_size < 2")
	}
}

func TestPresetsValidate(t *testing.T) {
	for preset := range ListPresets() {
		c, err := NewPresetConfig(preset)
		if err != nil {
			t.Fatalf("preset %s: %v", preset, err)
		}
		if err := c.Validate(); err != nil {
			t.Fatalf("preset %s should validate, got %v", preset, err)
		}
	}
}

func TestNewPresetConfigRejectsUnknownPreset(t *testing.T) {
	if _, err := NewPresetConfig("bogus"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}
