package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scuttlekit/ssbkeys"
)

func (a *app) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage named identities in the keystore",
	}
	cmd.AddCommand(
		a.storeCreateCommand(),
		a.storeLoadCommand(),
		a.storeRemoveCommand(),
		a.storeListCommand(),
	)
	return cmd
}

func (a *app) storeCreateCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a named identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := a.openKeystore()
			if err != nil {
				return err
			}
			defer ks.Close()

			var k *ssbkeys.Keypair
			if force {
				k, err = ks.LoadOrCreate(args[0])
			} else {
				k, err = ks.Create(args[0])
			}
			if err != nil {
				return err
			}
			defer k.Zero()
			fmt.Fprintln(cmd.OutOrStdout(), k.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "if-missing", false, "load the identity instead of failing when it exists")
	return cmd
}

func (a *app) storeLoadCommand() *cobra.Command {
	var private bool
	cmd := &cobra.Command{
		Use:   "load NAME",
		Short: "Print a named identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := a.openKeystore()
			if err != nil {
				return err
			}
			defer ks.Close()

			k, err := ks.Load(args[0])
			if err != nil {
				return err
			}
			defer k.Zero()
			if !private {
				fmt.Fprintln(cmd.OutOrStdout(), k.ID)
				return nil
			}
			text, err := ssbkeys.EncodeKeypair(k)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&private, "private", false, "print the full key text including the private key")
	return cmd
}

func (a *app) storeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove"},
		Short:   "Remove a named identity",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ks, err := a.openKeystore()
			if err != nil {
				return err
			}
			defer ks.Close()
			return ks.Remove(args[0])
		},
	}
}

func (a *app) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List named identities",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ks, err := a.openKeystore()
			if err != nil {
				return err
			}
			defer ks.Close()

			names, err := ks.Names()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
