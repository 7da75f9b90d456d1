package application

import (
	"strconv"
	"strings"
	"unicode"

	"shopping-list-bot/internal/domain"
	"shopping-list-bot/internal/domain/model"
)

// parseCommand splits "/add@shopbot 2 Milk" into ("add", "2 Milk", true).
// The command word is lower-cased; the leading slash and the @bot suffix are
// optional. Blank text yields an empty command.
func parseCommand(text string) (cmd, args string, slash bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", false
	}
	word, rest := splitFirst(text)
	slash = strings.HasPrefix(word, "/")
	word = strings.TrimPrefix(word, "/")
	if i := strings.IndexByte(word, '@'); i >= 0 {
		word = word[:i]
	}
	return strings.ToLower(word), rest, slash
}

// parseAddArgs implements "[<quantity>] <name>". A leading integer is the
// quantity only when something follows it. A name made only of digits is
// refused because delete reads a bare number as a list position.
func parseAddArgs(args string) (int, string, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return 0, "", domain.ErrEmptyItemName
	}
	first, rest := splitFirst(args)
	if rest == "" || !isInteger(first) {
		if isDigits(args) {
			return 0, "", domain.ErrNumericItemName
		}
		return model.DefaultQuantity, args, nil
	}
	n, err := strconv.Atoi(first)
	if err != nil || n < 1 || n > model.MaxQuantity {
		return 0, "", domain.ErrInvalidQuantity
	}
	if isDigits(rest) {
		return 0, "", domain.ErrNumericItemName
	}
	return n, rest, nil
}

// parseDeleteArgs returns a 1-based index for a positive integer argument and
// the verbatim name otherwise.
func parseDeleteArgs(args string) (index int, name string, err error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return 0, "", domain.ErrEmptySelector
	}
	if isDigits(args) {
		if n, err := strconv.Atoi(args); err == nil && n > 0 {
			return n, "", nil
		}
	}
	return 0, args, nil
}

func splitFirst(s string) (string, string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	return isDigits(s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
