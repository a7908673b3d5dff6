package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// confirmBiometric runs the simulated fingerprint check that gates every
// money-movement command. Pressing Enter stands in for a successful scan;
// any other input cancels. The engine never sees the prompt: it is either
// invoked after approval or not at all.
func confirmBiometric(cmd *cobra.Command, in io.Reader, action string, approved bool) error {
	if approved {
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Authenticate to %s\n", action)
	fmt.Fprint(out, "Place your finger on the sensor (press Enter to scan, type anything else to cancel): ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("authentication aborted")
	}
	if strings.TrimSpace(line) != "" {
		return fmt.Errorf("authentication cancelled")
	}

	fmt.Fprintln(out, "Fingerprint verified.")
	return nil
}

func addApproveFlag(cmd *cobra.Command, approved *bool) {
	cmd.Flags().BoolVar(approved, "approve", false, "skip the fingerprint prompt (for scripts)")
}
