package rsenv

import (
	"os"
	"testing"
)

func TestForceBufsz(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		unset  bool
		wantN  int
		wantOK bool
	}{
		{name: "unset", unset: true},
		{name: "valid", value: "65536", wantN: 65536, wantOK: true},
		{name: "non-numeric", value: "banana"},
		{name: "zero", value: "0"},
		{name: "negative", value: "-1"},
		{name: "at max", value: "2147483648", wantN: 1 << 31, wantOK: true},
		{name: "over max", value: "2147483649"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.unset {
				t.Setenv(ForceBufszVar, "placeholder")
				if err := os.Unsetenv(ForceBufszVar); err != nil {
					t.Fatal(err)
				}
			} else {
				t.Setenv(ForceBufszVar, tt.value)
			}

			n, ok := ForceBufsz()
			if ok != tt.wantOK || (ok && n != tt.wantN) {
				t.Errorf("ForceBufsz() = (%d, %v), want (%d, %v)", n, ok, tt.wantN, tt.wantOK)
			}
		})
	}
}
