package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"empty", "", false},
		{"two chars", "Jo", false},
		{"spaces only", "   ", false},
		{"two chars padded", "  Jo  ", false},
		{"three chars", "Ama", true},
		{"full name", "Jean Kouassi", true},
		{"inner spaces do not count", "a b", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Form{FullName: tt.input}
			assert.Equal(t, tt.valid, f.NameValid())
		})
	}
}

func TestPhoneValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"eight digits", "90123456", false},
		{"ten digits", "0701020304", true},
		{"ten digits with spaces", "07 01 02 03 04", true},
		{"eleven digits", "07010203045", false},
		{"letters", "07010203ab", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Form{PhoneNumber: tt.input}
			assert.Equal(t, tt.valid, f.PhoneValid())
		})
	}
}

func TestNormalizedPhone(t *testing.T) {
	assert.Equal(t, "+2290701020304", Form{PhoneNumber: "0701020304"}.NormalizedPhone())
	assert.Equal(t, "+2290701020304", Form{PhoneNumber: "07 01 02 03 04"}.NormalizedPhone())
	// already international numbers keep their prefix
	assert.Equal(t, "+2290701020304", Form{PhoneNumber: "+229 07 01 02 03 04"}.NormalizedPhone())
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		input     string
		firstname string
		lastname  string
	}{
		{"Jean Kouassi", "Jean", "Kouassi"},
		{"Jean", "Jean", ""},
		{"  Jean   Baptiste Kouassi ", "Jean", "Baptiste Kouassi"},
		{"", "", ""},
	}
	for _, tt := range tests {
		first, last := Form{FullName: tt.input}.SplitName()
		assert.Equal(t, tt.firstname, first)
		assert.Equal(t, tt.lastname, last)
	}
}
