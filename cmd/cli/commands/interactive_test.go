package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoot(calls *[]string) *cobra.Command {
	root := &cobra.Command{Use: "shiftplan"}

	echo := &cobra.Command{
		Use:   "echo <word>",
		Short: "Echo a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loud, _ := cmd.Flags().GetBool("loud")
			ids, _ := cmd.Flags().GetStringSlice("ids")
			word := args[0]
			if loud {
				word = strings.ToUpper(word)
			}
			*calls = append(*calls, word+"|"+strings.Join(ids, ","))
			return nil
		},
	}
	echo.Flags().Bool("loud", false, "")
	echo.Flags().StringSlice("ids", nil, "")

	root.AddCommand(echo, &cobra.Command{Use: "serve", Run: func(*cobra.Command, []string) {}})
	return root
}

func TestSession_RunsCommandsAndResetsFlags(t *testing.T) {
	var calls []string
	var out bytes.Buffer
	s := newSession(testRoot(&calls), &out)

	input := strings.Join([]string{
		"echo hello --loud --ids a,b",
		"echo again",
		"",
		"exit",
		"echo never",
	}, "\n")

	require.NoError(t, s.run(strings.NewReader(input)))

	assert.Equal(t, []string{"HELLO|a,b", "again|"}, calls)
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestSession_ReportsErrors(t *testing.T) {
	var calls []string
	var out bytes.Buffer
	s := newSession(testRoot(&calls), &out)

	require.NoError(t, s.run(strings.NewReader("unknown\necho\nserve\n")))

	assert.Empty(t, calls)
	assert.Contains(t, out.String(), "unknown command unknown")
	assert.Contains(t, out.String(), "accepts 1 arg(s), received 0")
	assert.Contains(t, out.String(), "unknown command serve")
}

func TestSession_Help(t *testing.T) {
	var calls []string
	var out bytes.Buffer
	s := newSession(testRoot(&calls), &out)

	require.NoError(t, s.run(strings.NewReader("help\n")))

	assert.Contains(t, out.String(), "echo <word>")
	assert.Contains(t, out.String(), "Echo a word")
	assert.NotContains(t, out.String(), "serve")
}
