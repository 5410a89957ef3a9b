package webplayer

import (
	"reflect"
	"testing"
)

func str(s string) *string { return &s }

func TestSessionApply(t *testing.T) {
	base := Session{
		Identifier: "S1",
		ProjectID:  "p1",
		InstanceID: "i1",
		Features:   Features{"disableMobile": true},
		URL:        "https://play.example.com/S1",
		Token:      "tok",
		Expiration: "2030-01-01T00:00:00Z",
	}

	tests := []struct {
		name  string
		patch Patch
		want  Session
	}{
		{
			name:  "empty patch changes nothing",
			patch: Patch{},
			want:  base,
		},
		{
			name:  "token only",
			patch: Patch{Token: str("newtok")},
			want: Session{
				Identifier: "S1", ProjectID: "p1", InstanceID: "i1",
				Features: Features{"disableMobile": true},
				URL:      "https://play.example.com/S1", Token: "newtok",
				Expiration: "2030-01-01T00:00:00Z",
			},
		},
		{
			name: "full server record",
			patch: Patch{
				Identifier: str("S2"), URL: str("u2"), Token: str("t2"),
				Expiration: str("2031-01-01T00:00:00Z"),
			},
			want: Session{
				Identifier: "S2", ProjectID: "p1", InstanceID: "i1",
				Features: Features{"disableMobile": true},
				URL:      "u2", Token: "t2", Expiration: "2031-01-01T00:00:00Z",
			},
		},
		{
			name:  "explicit empty overwrites",
			patch: Patch{URL: str("")},
			want: Session{
				Identifier: "S1", ProjectID: "p1", InstanceID: "i1",
				Features: Features{"disableMobile": true},
				URL:      "", Token: "tok", Expiration: "2030-01-01T00:00:00Z",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := base.Apply(test.patch); !reflect.DeepEqual(got, test.want) {
				t.Errorf("Apply() = %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestSessionReset(t *testing.T) {
	s := Session{
		Identifier: "S1", ProjectID: "p1", InstanceID: "i1",
		Features: Features{"disableMobile": true},
		URL:      "u", Token: "t", Expiration: "2030-01-01T00:00:00Z",
	}
	got := s.reset()
	want := Session{ProjectID: "p1", InstanceID: "i1", Features: Features{"disableMobile": true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reset() = %+v, want %+v", got, want)
	}
	if got.Live() {
		t.Error("a reset session shouldn't be live")
	}
}
