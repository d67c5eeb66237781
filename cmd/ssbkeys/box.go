package main

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scuttlekit/ssbkeys"
	"github.com/scuttlekit/ssbkeys/canonical"
)

func (a *app) boxCommand() *cobra.Command {
	var (
		to   []string
		self bool
	)
	cmd := &cobra.Command{
		Use:   "box [value]",
		Short: "Encrypt a JSON value for one or more recipients",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := input(cmd, args)
			if err != nil {
				return err
			}
			v, err := canonical.Unmarshal(data)
			if err != nil {
				return err
			}

			refs := to
			if self {
				k, err := a.keypair()
				if err != nil {
					return err
				}
				refs = append(refs, k.ID)
				k.Zero()
			}
			recipients, err := ssbkeys.RecipientKeys(refs...)
			if err != nil {
				return err
			}

			boxed, err := ssbkeys.Box(v, recipients)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), boxed)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&to, "to", "t", nil, "recipient public key or @id (repeatable)")
	cmd.Flags().BoolVar(&self, "self", false, "add the current identity as a recipient")
	return cmd
}

func (a *app) unboxCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unbox [boxed]",
		Short: "Decrypt a boxed message with the current identity",
		Args:  cobra.MaximumNArgs(1),
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

			b64, _, _ := strings.Cut(strings.TrimSpace(string(data)), ".")
			dec := base64.NewDecoder(base64.StdEncoding, strings.NewReader(b64))
			v, ok, err := ssbkeys.UnboxReader(dec, k.Private)
			if err != nil {
				return err
			}
			if !ok {
				return errNotRecipient
			}

			out, err := canonical.MarshalString(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
