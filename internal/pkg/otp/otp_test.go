package otp

import "testing"

func TestGenerate(t *testing.T) {

	t.Run("LengthAndCharset", func(t *testing.T) {
		g := NewGenerator(DefaultDigits)

		for i := 0; i < 200; i++ {
			code, err := g.Generate()
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if len(code) != DefaultDigits {
				t.Fatalf("expected %d digits, got %q", DefaultDigits, code)
			}
			for _, c := range code {
				if c < '0' || c > '9' {
					t.Fatalf("expected numeric code, got %q", code)
				}
			}
		}
	})

	t.Run("NonPositiveLengthFallsBack", func(t *testing.T) {
		g := NewGenerator(0)

		code, err := g.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != DefaultDigits {
			t.Fatalf("expected fallback to %d digits, got %q", DefaultDigits, code)
		}
	})

	t.Run("CustomLength", func(t *testing.T) {
		g := NewGenerator(8)

		code, err := g.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 8 {
			t.Fatalf("expected 8 digits, got %q", code)
		}
	})

	t.Run("NotConstant", func(t *testing.T) {
		g := NewGenerator(DefaultDigits)

		seen := map[string]struct{}{}
		for i := 0; i < 50; i++ {
			code, err := g.Generate()
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			seen[code] = struct{}{}
		}
		if len(seen) < 2 {
			t.Fatal("expected varied codes across draws")
		}
	})
}

func TestMatch(t *testing.T) {
	cases := []struct {
		name      string
		stored    string
		submitted string
		want      bool
	}{
		{"Equal", "123456", "123456", true},
		{"LeadingZeros", "000042", "000042", true},
		{"Different", "123456", "123457", false},
		{"ShorterSubmission", "000042", "42", false},
		{"Whitespace", "123456", " 123456", false},
		{"Empty", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Match(tc.stored, tc.submitted); got != tc.want {
				t.Fatalf("Match(%q, %q) = %v, want %v", tc.stored, tc.submitted, got, tc.want)
			}
		})
	}
}
