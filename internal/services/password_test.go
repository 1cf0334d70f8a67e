package services

import (
	"strings"
	"testing"
)

func TestGeneratePasswordCoversAllClasses(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		pw, err := GeneratePassword(GeneratedPasswordLen)
		if err != nil {
			t.Fatalf("generate password: %v", err)
		}
		if len(pw) != GeneratedPasswordLen {
			t.Fatalf("unexpected length: got=%d want=%d", len(pw), GeneratedPasswordLen)
		}
		for _, class := range []string{passwordLower, passwordUpper, passwordDigits, passwordSymbols} {
			if !strings.ContainsAny(pw, class) {
				t.Fatalf("password %q missing class %q", pw, class)
			}
		}
	}
}

func TestGeneratePasswordFloorsShortLengths(t *testing.T) {
	t.Parallel()

	pw, err := GeneratePassword(4)
	if err != nil {
		t.Fatalf("generate password: %v", err)
	}
	if len(pw) < 10 {
		t.Fatalf("length below floor: got=%d want>=10", len(pw))
	}
}
