package ui

import "testing"

func TestComposerTransitions(t *testing.T) {
	tests := []struct {
		name  string
		steps []func(*Composer) bool
		oks   []bool
		want  Screen
	}{
		{
			name: "happy path",
			steps: []func(*Composer) bool{
				(*Composer).FinishSplash,
				(*Composer).EnterPlaylist,
				(*Composer).Back,
			},
			oks:  []bool{true, true, true},
			want: ScreenLanding,
		},
		{
			name:  "enter before splash",
			steps: []func(*Composer) bool{(*Composer).EnterPlaylist},
			oks:   []bool{false},
			want:  ScreenLoading,
		},
		{
			name:  "back from landing",
			steps: []func(*Composer) bool{(*Composer).FinishSplash, (*Composer).Back},
			oks:   []bool{true, false},
			want:  ScreenLanding,
		},
		{
			name:  "splash fires twice",
			steps: []func(*Composer) bool{(*Composer).FinishSplash, (*Composer).EnterPlaylist, (*Composer).FinishSplash},
			oks:   []bool{true, true, false},
			want:  ScreenPlaylist,
		},
		{
			name:  "playlist again after back",
			steps: []func(*Composer) bool{(*Composer).FinishSplash, (*Composer).EnterPlaylist, (*Composer).Back, (*Composer).EnterPlaylist},
			oks:   []bool{true, true, true, true},
			want:  ScreenPlaylist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposer()
			for i, step := range tt.steps {
				if got := step(c); got != tt.oks[i] {
					t.Errorf("step %d = %v, want %v", i, got, tt.oks[i])
				}
			}
			if c.Screen() != tt.want {
				t.Errorf("Screen() = %v, want %v", c.Screen(), tt.want)
			}
		})
	}
}

func TestScreenString(t *testing.T) {
	if ScreenPlaylist.String() != "playlist" || Screen(9).String() != "unknown" {
		t.Error("unexpected Screen.String() output")
	}
}
