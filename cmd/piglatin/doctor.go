package main

import (
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/example/go-piglatin/internal/doctor"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the dictionary and separator configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			result := doctor.Run(doctor.Config{
				DictionaryPath: cfg.Paths.DictionaryPath,
				Separators:     cfg.Translator.Separators,
			}, cmd.OutOrStdout())
			checkListenAddr(&result, cfg.Server.ListenAddr, cmd.OutOrStdout())

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "doctor checks passed")

			return nil
		},
	}

	return cmd
}

// checkListenAddr verifies that serve would get a usable host:port.
func checkListenAddr(res *doctor.Result, addr string, w io.Writer) {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		res.AddFailure(fmt.Sprintf("listen address %q: %v", addr, err))
		fmt.Fprintf(w, "%s listen address %q: %v\n", doctor.FailMark, addr, err)
		return
	}
	fmt.Fprintf(w, "%s listen address %s\n", doctor.PassMark, addr)
}
