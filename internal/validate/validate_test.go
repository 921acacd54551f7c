package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanAadhaar(t *testing.T) {
	got, ok := CleanAadhaar("1234 5678 9012")
	assert.True(t, ok)
	assert.Equal(t, "123456789012", got)

	_, ok = CleanAadhaar("1234 5678 901") // 11 digits
	assert.False(t, ok)
	_, ok = CleanAadhaar("1234 5678 90123") // 13 digits
	assert.False(t, ok)
}

func TestCleanPAN(t *testing.T) {
	got, ok := CleanPAN(" abcde 1234 f ")
	assert.True(t, ok)
	assert.Equal(t, "ABCDE1234F", got)

	_, ok = CleanPAN("ABCD51234F") // digit in letter block
	assert.False(t, ok)
	_, ok = CleanPAN("ABCDE1234") // missing trailing letter
	assert.False(t, ok)
}

func TestCleanDL(t *testing.T) {
	got, ok := CleanDL("MH12 20110012345")
	assert.True(t, ok)
	assert.Equal(t, "MH1220110012345", got)

	_, ok = CleanDL("M112 20110012345") // digit where letter expected
	assert.False(t, ok)
	_, ok = CleanDL("MH12 2011001234") // 10 trailing digits
	assert.False(t, ok)
}

func TestCleanRC(t *testing.T) {
	for _, in := range []string{"MH 12 AB 1234", "MH-12-AB-1234", "mh12ab1234", "KA01ABC1234"} {
		_, ok := CleanRC(in)
		assert.True(t, ok, "input %q", in)
	}

	// shape fits but the stripped value is only 8 chars
	_, ok := CleanRC("MH1A1234")
	assert.False(t, ok)
	_, ok = CleanRC("M112AB1234")
	assert.False(t, ok)
}

func TestCleanVIN(t *testing.T) {
	got, ok := CleanVIN("MA1TA2BC3DE456789")
	assert.True(t, ok)
	assert.Equal(t, "MA1TA2BC3DE456789", got)

	_, ok = CleanVIN("MA1TA2BC3DE45678") // 16 chars
	assert.False(t, ok)
	_, ok = CleanVIN("MA1TA2BC3DE45678I") // I excluded from VIN alphabet
	assert.False(t, ok)
}

func TestCleanEngine(t *testing.T) {
	got, ok := CleanEngine("eng 123456")
	assert.True(t, ok)
	assert.Equal(t, "ENG123456", got)

	_, ok = CleanEngine("ENG123") // 6 chars
	assert.False(t, ok)
	_, ok = CleanEngine("ENG1234567890") // 13 chars
	assert.False(t, ok)
}

func TestCleanGSTIN(t *testing.T) {
	got, ok := CleanGSTIN("27 ABCDE 1234 F 1 Z 5")
	assert.True(t, ok)
	assert.Equal(t, "27ABCDE1234F1Z5", got)

	// one required character mutated at a time
	_, ok = CleanGSTIN("27ABCDE1234F1X5") // wrong Z position
	assert.False(t, ok)
	_, ok = CleanGSTIN("2AABCDE1234F1Z5") // letter in state code
	assert.False(t, ok)
	_, ok = CleanGSTIN("27ABCDE1234F1Z") // wrong length
	assert.False(t, ok)
}

func TestCleanDate(t *testing.T) {
	cases := map[string]string{
		"15/08/1990":      "1990-08-15",
		"15-08-1990":      "1990-08-15",
		"15.08.1990":      "1990-08-15",
		"1990-08-15":      "1990-08-15",
		"15 Aug 1990":     "1990-08-15",
		"15 August 1990":  "1990-08-15",
		"Aug 15 1990":     "1990-08-15",
		"August 15, 1990": "1990-08-15",
		"03/04/1990":      "1990-04-03", // day before month
	}
	for in, want := range cases {
		got, ok := CleanDate(in)
		assert.True(t, ok, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	for _, in := range []string{"", "not a date", "99/99/1990"} {
		_, ok := CleanDate(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestCleanGender(t *testing.T) {
	assert.Equal(t, "Male", CleanGender("m"))
	assert.Equal(t, "Male", CleanGender(" MALE "))
	assert.Equal(t, "Female", CleanGender("F"))
	assert.Equal(t, "Female", CleanGender("woman"))
	// unrecognized tokens pass through verbatim, not nulled
	assert.Equal(t, "Other", CleanGender(" Other "))
}
