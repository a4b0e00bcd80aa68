package types

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"default", DefaultConfig(), nil},
		{"empty engine", Config{Types: DefaultTypeTable()}, ErrEngineEmpty},
		{"unknown engine", Config{Engine: "web-ifc", Types: DefaultTypeTable()}, ErrEngineUnknown},
		{"negative depth", Config{Engine: EngineSnapshot, MaxDerefDepth: -1, Types: DefaultTypeTable()}, ErrDerefDepthInvalid},
		{"no types", Config{Engine: EngineSnapshot}, ErrTypeTableEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDerefDepth(t *testing.T) {
	if got := (Config{}).DerefDepth(); got != DefaultMaxDerefDepth {
		t.Errorf("DerefDepth() = %d, want %d", got, DefaultMaxDerefDepth)
	}
	if got := (Config{MaxDerefDepth: 3}).DerefDepth(); got != 3 {
		t.Errorf("DerefDepth() = %d, want 3", got)
	}
}
