package cli

import (
	"bufio"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/brewhaven/internal/common"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var (
	errEmptyInput       = errors.New("input must not be empty")
	errInvalidEmail     = errors.New("email must look like name@domain")
	errPasswordMismatch = errors.New("passwords do not match")
)

// prompter asks for account fields on w and reads answers from r. Passwords
// bypass r and come from the terminal without echo.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

// line reads one trimmed, non-empty answer. A final line without a newline
// is accepted.
func (p prompter) line(label string) (string, error) {
	fmt.Fprintf(p.w, "%s: ", label)

	s, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), errEmptyInput)
	}
	return s, nil
}

// email rejects answers the server would refuse anyway, saving a round trip.
// The server remains the authority on format.
func (p prompter) email() (string, error) {
	s, err := p.line("Email")
	if err != nil {
		return "", err
	}

	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || domain == "" || strings.ContainsAny(s, " \t") {
		return "", errInvalidEmail
	}
	return s, nil
}

// password reads without echo. The caller wipes the result.
func (p prompter) password(label string) ([]byte, error) {
	fmt.Fprintf(p.w, "%s: ", label)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(p.w)
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, fmt.Errorf("password: %w", errEmptyInput)
	}
	return pw, nil
}

// newPassword asks twice and returns the first answer when both match.
func (p prompter) newPassword() ([]byte, error) {
	pw, err := p.password("Password")
	if err != nil {
		return nil, err
	}

	confirm, err := p.password("Repeat password")
	if err != nil {
		common.WipeByteArray(pw)
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if subtle.ConstantTimeCompare(pw, confirm) != 1 {
		common.WipeByteArray(pw)
		return nil, errPasswordMismatch
	}
	return pw, nil
}
