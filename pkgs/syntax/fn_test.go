package syntax

import (
	"reflect"
	"testing"
)

func TestParseFnString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  []FnEntry
		separator string
		wantErr   bool
	}{
		{
			name:  "bare numbers default to on",
			input: "0, 3, 5",
			expected: []FnEntry{
				{Number: 0, On: true},
				{Number: 3, On: true},
				{Number: 5, On: true},
			},
		},
		{
			name:  "explicit states",
			input: "f1=on, f2=off",
			expected: []FnEntry{
				{Number: 1, On: true},
				{Number: 2, On: false},
			},
		},
		{
			name:  "upper case prefix and numeric state",
			input: "F0=1,F4=0",
			expected: []FnEntry{
				{Number: 0, On: true},
				{Number: 4, On: false},
			},
		},
		{
			name:  "later entry wins",
			input: "3=on,3=off",
			expected: []FnEntry{
				{Number: 3, On: false},
			},
		},
		{
			name:      "space separated",
			input:     "1 2",
			separator: " ",
			expected: []FnEntry{
				{Number: 1, On: true},
				{Number: 2, On: true},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:    "invalid number",
			input:   "fx=on",
			wantErr: true,
		},
		{
			name:    "invalid state",
			input:   "3=maybe",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFnString(tt.input, tt.separator)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("got %v; want %v", got, tt.expected)
			}
		})
	}
}
