package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func addPasswordFlags(fs *pflag.FlagSet) {
	fs.StringP("password", "p", "", "PFX password (prefer --password-stdin or --password-file)")
	fs.Bool("password-stdin", false, "Read the PFX password from stdin")
	fs.String("password-file", "", "Read the PFX password from a file ('-' for stdin)")
}

// resolvePassword picks the PFX password from exactly one of the password
// flags. CERTCHECK_PASSWORD is honoured through viper like any other flag.
func resolvePassword(cmd *cobra.Command, v *viper.Viper) (string, error) {
	value := v.GetString("password")
	fromStdin := v.GetBool("password-stdin")
	fromFile := strings.TrimSpace(v.GetString("password-file"))

	specified := 0
	for _, set := range []bool{value != "", fromStdin, fromFile != ""} {
		if set {
			specified++
		}
	}
	if specified > 1 {
		return "", usageError("use only one of --password, --password-stdin, or --password-file")
	}

	switch {
	case fromStdin:
		return readPasswordStdin(cmd, "password-stdin")
	case fromFile == "-":
		return readPasswordStdin(cmd, "password-file")
	case fromFile != "":
		b, err := os.ReadFile(fromFile)
		if err != nil {
			return "", fmt.Errorf("read password file: %w", err)
		}
		return trimNewlines(b), nil
	}
	if cmd.Flags().Changed("password") {
		warnInlinePassword()
	}
	return value, nil
}

func readPasswordStdin(cmd *cobra.Command, flagName string) (string, error) {
	// Refuse to block on an interactive terminal.
	if isTerminalFn(os.Stdin) {
		return "", usageError(fmt.Sprintf("--%s requires stdin to be piped/redirected", flagName))
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}
	return trimNewlines(b), nil
}

// Passwords may contain spaces, so only line endings are trimmed.
func trimNewlines(b []byte) string {
	return strings.TrimRight(string(b), "\r\n")
}

var inlinePasswordWarned sync.Once

func warnInlinePassword() {
	// Only nudge in interactive terminals. Avoid polluting agent logs.
	if !isTerminalFn(os.Stderr) {
		return
	}
	inlinePasswordWarned.Do(func() {
		warn("--password may leak secrets via shell history. Prefer --password-stdin or --password-file.")
	})
}
