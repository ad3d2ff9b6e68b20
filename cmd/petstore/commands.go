package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samvad-hq/petstore-client/internal/app"
	"github.com/samvad-hq/petstore-client/internal/storage"
	"github.com/samvad-hq/petstore-client/pkg/petstore"
)

func runOps(args []string, stdout io.Writer) error {
	fs := newFlagSet("ops")
	cfg, _, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	ops, err := app.LoadOperations(cfg.OpenAPIFile)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMETHOD\tPATH\tAUTH\tCONSUMES\tPRODUCES")
	for _, id := range ops.IDs() {
		op := ops[id]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			op.ID, op.Method, op.PathPattern, op.Auth.Scheme,
			dashIfEmpty(strings.Join(op.Consumes, ",")),
			dashIfEmpty(strings.Join(op.Produces, ",")),
		)
	}
	return tw.Flush()
}

func runCall(ctx context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("call")
	params := fs.StringArrayP("param", "p", nil, "operation argument as name=value (repeatable; @file reads a body or upload)")
	observe := fs.String("observe", "body", "what to print: body or response")
	format := fs.String("format", "json", "output format: json, yaml or xml")

	cfg, log, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("call needs exactly one operation id")
	}
	mode, err := petstore.ParseObserve(*observe)
	if err != nil {
		return err
	}

	store, err := storage.NewTokenFile(cfg.TokenPath)
	if err != nil {
		return err
	}

	client, err := app.NewPetService(cfg, store, log)
	if err != nil {
		return err
	}
	op, err := client.Operations().Lookup(fs.Arg(0))
	if err != nil {
		return err
	}
	callArgs, err := buildArgs(op, *params)
	if err != nil {
		return err
	}

	out, err := client.Invoke(ctx, op.ID, callArgs, mode)
	if err != nil {
		return err
	}
	return render(stdout, out, *format)
}

func runLogin(args []string, stdout io.Writer) error {
	fs := newFlagSet("login")
	token := fs.String("token", "", "bearer token to store")
	ttl := fs.Duration("ttl", 0, "token lifetime when it carries no exp claim (0 keeps it until logout)")

	cfg, _, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(*token) == "" {
		return fmt.Errorf("login needs --token")
	}

	store, err := storage.NewTokenFile(cfg.TokenPath)
	if err != nil {
		return err
	}

	tok := storage.NewToken(*token, *ttl)
	if err := store.SaveToken(tok); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if tok.ExpiresAt.IsZero() {
		_, err = fmt.Fprintln(stdout, "token saved")
	} else {
		_, err = fmt.Fprintf(stdout, "token saved, expires %s\n", tok.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return err
}

func runLogout(args []string, stdout io.Writer) error {
	fs := newFlagSet("logout")
	cfg, _, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	store, err := storage.NewTokenFile(cfg.TokenPath)
	if err != nil {
		return err
	}

	if err := store.ClearToken(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	_, err = fmt.Fprintln(stdout, "token removed")
	return err
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
