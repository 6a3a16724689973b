// Package main implements the envconf CLI for decoding configuration
// values and connection URLs.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"axonflow/envconf/backends"
	"axonflow/envconf/env"
)

var version = "1.0.0"

func main() {
	var dotenvPath string

	rootCmd := &cobra.Command{
		Use:     "envconf",
		Short:   "Typed environment and connection-URL decoding",
		Long:    `envconf reads typed values from the environment and decodes database, cache and email connection URLs into structured configurations.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if dotenvPath == "" {
				return nil
			}
			return env.LoadDotenv(dotenvPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dotenvPath, "dotenv", "", "load a .env file before resolving values")

	rootCmd.AddCommand(databaseCmd())
	rootCmd.AddCommand(cacheCmd())
	rootCmd.AddCommand(emailCmd())
	rootCmd.AddCommand(getCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveURL accepts either a literal connection URL or the name of an
// environment variable holding one.
func resolveURL(arg string) (string, error) {
	if strings.Contains(arg, "://") {
		return arg, nil
	}
	return env.New().Str(arg)
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func databaseCmd() *cobra.Command {
	var engine string

	cmd := &cobra.Command{
		Use:   "database <url-or-var>",
		Short: "Decode a database connection URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := resolveURL(args[0])
			if err != nil {
				return err
			}
			cfg, err := backends.ParseDatabase(raw, engine)
			if err != nil {
				return err
			}
			return printJSON(cfg)
		},
	}
	cmd.Flags().StringVar(&engine, "engine", "", "override the engine derived from the scheme")

	return cmd
}

func cacheCmd() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "cache <url-or-var>",
		Short: "Decode a cache connection URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := resolveURL(args[0])
			if err != nil {
				return err
			}
			cfg, err := backends.ParseCache(raw, backend)
			if err != nil {
				return err
			}
			return printJSON(cfg)
		},
	}
	cmd.Flags().StringVar(&backend, "backend", "", "override the backend derived from the scheme")

	return cmd
}

func emailCmd() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "email <url-or-var>",
		Short: "Decode an email connection URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := resolveURL(args[0])
			if err != nil {
				return err
			}
			cfg, err := backends.ParseEmail(raw, backend)
			if err != nil {
				return err
			}
			return printJSON(cfg)
		},
	}
	cmd.Flags().StringVar(&backend, "backend", "", "override the backend derived from the scheme")

	return cmd
}

// castsByName maps --cast values to their Cast implementations.
var castsByName = map[string]env.Cast{
	"string": env.String,
	"bool":   env.Bool,
	"int":    env.Int,
	"float":  env.Float,
	"json":   env.JSON,
	"path":   env.Path,
	"list":   env.Strings,
	"map":    env.Map,
}

func getCmd() *cobra.Command {
	var castName string

	cmd := &cobra.Command{
		Use:   "get <var>",
		Short: "Print a casted environment value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cast env.Cast
			if castName != "" {
				c, ok := castsByName[castName]
				if !ok {
					return fmt.Errorf("unknown cast %q", castName)
				}
				cast = c
			}

			v, err := env.New().Value(args[0], cast)
			if err != nil {
				return err
			}
			if s, ok := v.(string); ok {
				fmt.Println(s)
				return nil
			}
			return printJSON(v)
		},
	}
	cmd.Flags().StringVar(&castName, "cast", "", "cast to apply: string, bool, int, float, json, path, list, map")

	return cmd
}
