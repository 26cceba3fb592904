package nametag

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CodecSuite struct {
	suite.Suite
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecSuite))
}

// Decode

func (s *CodecSuite) TestDecodePlainName() {
	d := Decode("Alex")
	s.Equal("Alex", d.BaseWithJersey)
	s.False(d.IsCaptain)
	s.Empty(d.Tags)
}

func (s *CodecSuite) TestDecodeTags() {
	d := Decode("Alex #23 (PG, CAPTAIN)")
	s.Equal("Alex #23", d.BaseWithJersey)
	s.True(d.IsCaptain)
	s.Equal([]string{"PG"}, d.Tags)
}

func (s *CodecSuite) TestDecodeCenterIsNotCaptain() {
	d := Decode("Alex (C)")
	s.False(d.IsCaptain)
	s.Equal([]string{"C"}, d.Tags)
}

func (s *CodecSuite) TestDecodeCaptainMarkers() {
	s.True(Decode("Alex (CAPTAIN)").IsCaptain)
	s.True(Decode("Alex (cap)").IsCaptain)
	s.Empty(Decode("Alex (CAPTAIN)").Tags)
}

func (s *CodecSuite) TestDecodeCenterAndCaptainTogether() {
	d := Decode("Alex (C, CAPTAIN)")
	s.True(d.IsCaptain)
	s.Equal([]string{"C"}, d.Tags)
}

func (s *CodecSuite) TestDecodeDeduplicatesCaseInsensitive() {
	d := Decode("Alex (pg, PG, Vet, VET)")
	s.Equal([]string{"PG", "VET"}, d.Tags)
}

func (s *CodecSuite) TestDecodeUnbalancedParens() {
	d := Decode("Alex (PG")
	s.Equal("Alex (PG", d.BaseWithJersey)
	s.Empty(d.Tags)
	s.False(d.IsCaptain)
}

func (s *CodecSuite) TestDecodeEmptyString() {
	d := Decode("")
	s.Equal("", d.BaseWithJersey)
	s.Empty(d.Tags)
}

func (s *CodecSuite) TestDecodeParensInNameAreAmbiguous() {
	// A parenthesized chunk inside the name is indistinguishable from a
	// tag suffix; the first open paren wins. Accepted ambiguity.
	d := Decode("Smith (Jr) (PF)")
	s.Equal("Smith", d.BaseWithJersey)
	s.Equal([]string{"JR) (PF"}, d.Tags)
}

// Encode / Compose

func (s *CodecSuite) TestEncodeNoTags() {
	s.Equal("Alex", Encode("Alex", false, nil))
}

func (s *CodecSuite) TestEncodeCaptainAppendedLast() {
	s.Equal("Alex (PG, CAPTAIN)", Encode("Alex", true, []string{"PG"}))
}

func (s *CodecSuite) TestComposeScenario() {
	stored, err := Compose("Jordan", "7", "PF", true, nil)
	s.Require().NoError(err)
	s.Equal("Jordan #7 (PF, CAPTAIN)", stored)
}

func (s *CodecSuite) TestComposeRejectsEmptyName() {
	_, err := Compose("   ", "", "", false, nil)
	s.ErrorIs(err, ErrEmptyBaseName)
}

func (s *CodecSuite) TestComposeRejectsBadPosition() {
	_, err := Compose("Alex", "", "QB", false, nil)
	s.ErrorIs(err, ErrInvalidPosition)
}

func (s *CodecSuite) TestComposeNormalizesPositionCase() {
	stored, err := Compose("Alex", "", "pg", false, nil)
	s.Require().NoError(err)
	s.Equal("Alex (PG)", stored)
}

// Round-trip law

func (s *CodecSuite) TestRoundTrip() {
	cases := []struct {
		base, jersey, position string
		captain                bool
		extra                  []string
	}{
		{"Alex", "", "", false, nil},
		{"Alex", "23", "PG", false, nil},
		{"Jordan", "7", "PF", true, nil},
		{"Casey", "", "C", true, []string{"vet", "ROOKIE"}},
		{"Morgan", "00", "", true, nil},
	}

	for _, tc := range cases {
		stored, err := Compose(tc.base, tc.jersey, tc.position, tc.captain, tc.extra)
		s.Require().NoError(err)

		d := Decode(stored)
		s.Equal(tc.captain, d.IsCaptain, stored)

		name, jersey := SplitJersey(d.BaseWithJersey)
		s.Equal(tc.base, name, stored)
		s.Equal(tc.jersey, jersey, stored)
		s.Equal(tc.position, Position(d.Tags), stored)

		// Encoding the decoded form reproduces the stored string.
		s.Equal(stored, Encode(d.BaseWithJersey, d.IsCaptain, d.Tags))
	}
}

func (s *CodecSuite) TestCaptainExtraTagNormalizes() {
	// CAPTAIN smuggled in as a free tag collapses into the flag.
	stored, err := Compose("Alex", "", "", true, []string{"CAPTAIN"})
	s.Require().NoError(err)
	d := Decode(stored)
	s.True(d.IsCaptain)
	s.Empty(d.Tags)
}

// Jersey parsing

func (s *CodecSuite) TestSplitJersey() {
	name, jersey := SplitJersey("Alex #23")
	s.Equal("Alex", name)
	s.Equal("23", jersey)
}

func (s *CodecSuite) TestSplitJerseyAbsent() {
	name, jersey := SplitJersey("Alex")
	s.Equal("Alex", name)
	s.Equal("", jersey)
}

func (s *CodecSuite) TestSplitJerseyNonNumericSuffixStays() {
	name, jersey := SplitJersey("Alex #MVP")
	s.Equal("Alex #MVP", name)
	s.Equal("", jersey)
}

// Display

func (s *CodecSuite) TestDisplay() {
	s.Equal("Alex", Display("Alex"))
	s.Equal("Alex #23 (PG, Captain)", Display("Alex #23 (PG, CAPTAIN)"))
	s.Equal("Alex (Captain)", Display("Alex (CAP)"))
}
