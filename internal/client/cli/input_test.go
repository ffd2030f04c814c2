package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// stubPasswords makes readPassword return answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := readPassword
	i := 0
	readPassword = func(int) ([]byte, error) {
		if i >= len(answers) {
			return nil, io.EOF
		}
		pw := []byte(answers[i])
		i++
		return pw, nil
	}
	t.Cleanup(func() { readPassword = orig })
}

func newPrompter(input string) (prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return prompter{r: bufio.NewReader(strings.NewReader(input)), w: &out}, &out
}

func TestPrompter_Line(t *testing.T) {
	p, out := newPrompter("  Ann Smith \nrest")
	got, err := p.line("Name")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got != "Ann Smith" {
		t.Errorf("got %q", got)
	}
	if out.String() != "Name: " {
		t.Errorf("prompt = %q", out.String())
	}

	got, err = p.line("Name")
	if err != nil || got != "rest" {
		t.Fatalf("partial last line: got %q, %v", got, err)
	}

	if _, err := p.line("Name"); !errors.Is(err, io.EOF) {
		t.Fatalf("want EOF, got %v", err)
	}
}

func TestPrompter_LineRejectsBlank(t *testing.T) {
	p, _ := newPrompter("   \n")
	if _, err := p.line("Name"); !errors.Is(err, errEmptyInput) {
		t.Fatalf("err = %v", err)
	}
}

func TestPrompter_Email(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{"ann@x.com\n", "ann@x.com", nil},
		{" Ann@X.com \n", "Ann@X.com", nil},
		{"ann.x.com\n", "", errInvalidEmail},
		{"@x.com\n", "", errInvalidEmail},
		{"ann@\n", "", errInvalidEmail},
		{"an n@x.com\n", "", errInvalidEmail},
		{"\n", "", errEmptyInput},
	}
	for _, tt := range tests {
		p, _ := newPrompter(tt.input)
		got, err := p.email()
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%q: err = %v, want %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPrompter_Password(t *testing.T) {
	stubPasswords(t, "pw123", "")
	p, out := newPrompter("")

	pw, err := p.password("Password")
	if err != nil || string(pw) != "pw123" {
		t.Fatalf("got %q, %v", pw, err)
	}
	if out.String() != "Password: \n" {
		t.Errorf("prompt = %q", out.String())
	}

	if _, err := p.password("Password"); !errors.Is(err, errEmptyInput) {
		t.Fatalf("empty password: err = %v", err)
	}
}

func TestPrompter_NewPassword(t *testing.T) {
	stubPasswords(t, "pw123", "pw123")
	p, out := newPrompter("")

	pw, err := p.newPassword()
	if err != nil || string(pw) != "pw123" {
		t.Fatalf("got %q, %v", pw, err)
	}
	if !strings.Contains(out.String(), "Repeat password: ") {
		t.Errorf("no confirmation prompt: %q", out.String())
	}
}

func TestPrompter_NewPasswordMismatch(t *testing.T) {
	stubPasswords(t, "pw123", "pw124")
	p, _ := newPrompter("")

	if _, err := p.newPassword(); !errors.Is(err, errPasswordMismatch) {
		t.Fatalf("err = %v", err)
	}
}

func TestPrompter_PasswordReadError(t *testing.T) {
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	t.Cleanup(func() { readPassword = orig })

	p, _ := newPrompter("")
	if _, err := p.password("Password"); err == nil {
		t.Fatal("expected error")
	}
}
