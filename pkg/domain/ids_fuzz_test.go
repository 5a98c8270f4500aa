package domain

import (
	"testing"
)

// FuzzParseSessionID checks that parsing never panics and never yields a nil
// ID without an error, and that accepted IDs survive a text round trip.
func FuzzParseSessionID(f *testing.F) {
	for _, seed := range []string{
		"",
		"550e8400-e29b-41d4-a716-446655440000",
		"00000000-0000-0000-0000-000000000000",
		"  550e8400-e29b-41d4-a716-446655440000  ",
		"not-a-uuid",
		string([]byte{0x00, 0x01, 0x02}),
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		sid, err := ParseSessionID(input)
		if err != nil {
			return
		}
		if sid.IsNil() {
			t.Fatalf("parsed nil session id from %q without error", input)
		}
		text, _ := sid.MarshalText()
		var back SessionID
		if err := back.UnmarshalText(text); err != nil || back != sid {
			t.Fatalf("round trip of %q failed: %v", input, err)
		}
	})
}
