package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scuttlekit/ssbkeys"
	"github.com/scuttlekit/ssbkeys/canonical"
)

func (a *app) signCommand() *cobra.Command {
	var value bool
	cmd := &cobra.Command{
		Use:   "sign [message]",
		Short: "Sign a message read from the argument or stdin",
		Long: `Sign a message with the current identity.

With --value the input is parsed as JSON and its canonical encoding is
signed, so key order in the input is significant.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := input(cmd, args)
			if err != nil {
				return err
			}
			k, err := a.keypair()
			if err != nil {
				return err
			}
			defer k.Zero()

			var sig string
			if value {
				v, err := canonical.Unmarshal(data)
				if err != nil {
					return err
				}
				sig, err = k.SignValue(v)
				if err != nil {
					return err
				}
			} else {
				sig, err = k.Sign(data)
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), sig)
			return nil
		},
	}
	cmd.Flags().BoolVar(&value, "value", false, "sign the canonical encoding of a JSON value")
	return cmd
}

func (a *app) verifyCommand() *cobra.Command {
	var (
		value     bool
		public    string
		signature string
	)
	cmd := &cobra.Command{
		Use:   "verify [message]",
		Short: "Verify a signature over a message read from the argument or stdin",
		Long: `Verify a signature. The public key defaults to the current identity.

Prints true or false. A signature that does not verify also exits non-zero.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := input(cmd, args)
			if err != nil {
				return err
			}
			if public == "" {
				k, err := a.keypair()
				if err != nil {
					return err
				}
				public = k.PublicString()
				k.Zero()
			}

			var ok bool
			if value {
				v, err := canonical.Unmarshal(data)
				if err != nil {
					return err
				}
				ok, err = ssbkeys.VerifyValueString(public, signature, v)
				if err != nil {
					return err
				}
			} else {
				ok, err = ssbkeys.VerifyString(public, signature, string(data))
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			if !ok {
				return errBadSignature
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&value, "value", false, "verify the canonical encoding of a JSON value")
	cmd.Flags().StringVarP(&public, "pub", "p", "", "public key or @id of the signer")
	cmd.Flags().StringVarP(&signature, "sig", "s", "", "signature to check")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}

func (a *app) hashCommand() *cobra.Command {
	var value bool
	cmd := &cobra.Command{
		Use:   "hash [message]",
		Short: "Print the sha256 id of a message",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := input(cmd, args)
			if err != nil {
				return err
			}
			if !value {
				fmt.Fprintln(cmd.OutOrStdout(), ssbkeys.Hash(data))
				return nil
			}
			v, err := canonical.Unmarshal(data)
			if err != nil {
				return err
			}
			h, err := ssbkeys.HashValue(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
	cmd.Flags().BoolVar(&value, "value", false, "hash the canonical encoding of a JSON value")
	return cmd
}
