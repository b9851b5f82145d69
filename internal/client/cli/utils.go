package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// parseIndex converts the first argument, a 1-based item number as shown
// in listings, into a 0-based index bounded by n.
func parseIndex(args []string, n int) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("missing item number")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("invalid item number %q", args[0])
	}
	return i - 1, nil
}

// promptOr reads one line, falling back to def when the user just presses
// Enter. Used by the edit flows so unchanged fields keep their values.
func (a *App) promptOr(prompt, def string) (string, error) {
	v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", prompt, def), os.Stdout)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}
