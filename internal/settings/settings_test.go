package settings

import (
	"sync"
	"testing"
)

func TestDefaults(t *testing.T) {
	s := Default()
	if !s.ProtonExtensions || s.StrictMode || s.MaxErrors != 100 || !s.SemanticAnalysis {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestDecode(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    Settings
		wantErr bool
	}{
		{
			name:    "empty object keeps defaults",
			payload: `{}`,
			want:    Default(),
		},
		{
			name:    "partial payload",
			payload: `{"maxErrors": 2}`,
			want:    Settings{ProtonExtensions: true, MaxErrors: 2, SemanticAnalysis: true},
		},
		{
			name:    "full payload",
			payload: `{"protonExtensions": false, "strictMode": true, "maxErrors": 10, "semanticAnalysis": false}`,
			want:    Settings{StrictMode: true, MaxErrors: 10},
		},
		{
			name:    "unknown fields ignored",
			payload: `{"protonExtensions": false, "telemetry": "off"}`,
			want:    Settings{StrictMode: false, MaxErrors: 100, SemanticAnalysis: true},
		},
		{
			name:    "non-positive cap falls back to default",
			payload: `{"maxErrors": 0}`,
			want:    Default(),
		},
		{
			name:    "malformed payload rejected",
			payload: `{"maxErrors": "lots"}`,
			wantErr: true,
		},
		{
			name:    "non-object rejected",
			payload: `[1, 2]`,
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode([]byte(tc.payload))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected decode error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestStateSwap(t *testing.T) {
	st := NewState()
	before := st.Get()
	if before != Default() {
		t.Fatalf("initial state = %+v", before)
	}
	next := Settings{MaxErrors: 5, SemanticAnalysis: true}
	st.Set(next)
	if got := st.Get(); got != next {
		t.Fatalf("after Set: %+v", got)
	}
	// The clone taken before the swap is unaffected.
	if before.MaxErrors != 100 {
		t.Fatalf("snapshot mutated: %+v", before)
	}
}

func TestStateConcurrentReaders(t *testing.T) {
	st := NewState()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s := st.Get()
				if s.MaxErrors <= 0 {
					t.Error("observed invalid settings")
					return
				}
			}
		}()
	}
	for j := 0; j < 100; j++ {
		st.Set(Settings{ProtonExtensions: j%2 == 0, MaxErrors: j + 1, SemanticAnalysis: true})
	}
	wg.Wait()
}
