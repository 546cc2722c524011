// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"jobs-api/commons"
	"jobs-api/crypto"
	"jobs-api/db"
	"jobs-api/repository"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

type keyStore interface {
	Issue(ctx context.Context, p repository.IssueParams) (*repository.Principal, string, error)
	FindByEmail(ctx context.Context, email string) (*repository.Principal, error)
	List(ctx context.Context, includeInactive bool) ([]repository.Principal, error)
	Revoke(ctx context.Context, id uint) (bool, error)
	History(ctx context.Context, id uint) ([]repository.KeyEvent, error)
}

const usage = `Usage: keyadmin <command> [flags]

Commands:
  create   --name NAME --email EMAIL [--company NAME] [--rate-limit N] [--expires-at YYYY-MM-DD]
  list     [--all] [--email EMAIL]
  revoke   --id N
  history  --id N

Every command accepts --env-file PATH.
`

var errUsage = errors.New("invalid usage")

func main() {
	commons.LoadEnvFile()
	cfg := commons.LoadConfig()

	conn, err := db.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close(conn)

	if err := db.Migrate(conn); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := repository.NewAPIKeyRepository(conn, crypto.NewCrypto(cfg), cfg.APIKeyPrefix)
	if err := run(context.Background(), store, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		db.Close(conn)
		os.Exit(1)
	}
}

func run(ctx context.Context, store keyStore, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errUsage
	}

	switch args[0] {
	case "create":
		return createKey(ctx, store, args[1:], out)
	case "list":
		return listKeys(ctx, store, args[1:], out)
	case "revoke":
		return revokeKey(ctx, store, args[1:], out)
	case "history":
		return keyHistory(ctx, store, args[1:], out)
	case "-h", "--help", "help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprintf(out, "Unknown command %q\n\n%s", args[0], usage)
		return errUsage
	}
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	// Consumed by commons.LoadEnvFile before parsing.
	fs.String("env-file", "", "Path to a KEY=VALUE environment file")
	return fs
}

func createKey(ctx context.Context, store keyStore, args []string, out io.Writer) error {
	fs := newFlagSet("create", out)
	name := fs.String("name", "", "Name of the key owner (required)")
	email := fs.String("email", "", "Email of the key owner (required)")
	company := fs.String("company", "", "Company name")
	rateLimit := fs.Int("rate-limit", repository.DefaultRateLimit, "Requests per hour")
	expiresAt := fs.String("expires-at", "", "Expiry date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *name == "" || *email == "" {
		fmt.Fprintln(out, "create: --name and --email are required")
		fs.PrintDefaults()
		return errUsage
	}

	params := repository.IssueParams{
		Name:      *name,
		Email:     *email,
		RateLimit: *rateLimit,
	}
	if *company != "" {
		params.Company = company
	}
	if *expiresAt != "" {
		t, err := time.Parse(time.DateOnly, *expiresAt)
		if err != nil {
			return fmt.Errorf("invalid --expires-at %q: expected YYYY-MM-DD", *expiresAt)
		}
		params.ExpiresAt = &t
	}

	principal, plaintext, err := store.Issue(ctx, params)
	if err != nil {
		var conflict *commons.ConflictError
		if errors.As(err, &conflict) {
			if existing, findErr := store.FindByEmail(ctx, *email); findErr == nil && existing != nil {
				return fmt.Errorf("%w (key prefix %s, created %s)",
					err, existing.KeyPrefix, existing.CreatedAt.Format(time.RFC3339))
			}
		}
		return err
	}

	fmt.Fprintln(out, "API key generated successfully")
	fmt.Fprintf(out, "  ID:         %d\n", principal.ID)
	fmt.Fprintf(out, "  Name:       %s\n", principal.Name)
	fmt.Fprintf(out, "  Email:      %s\n", principal.Email)
	if principal.Company != nil {
		fmt.Fprintf(out, "  Company:    %s\n", *principal.Company)
	}
	fmt.Fprintf(out, "  Rate limit: %d requests/hour\n", principal.RateLimit)
	if principal.ExpiresAt != nil {
		fmt.Fprintf(out, "  Expires:    %s\n", principal.ExpiresAt.Format(time.DateOnly))
	}
	fmt.Fprintf(out, "\n  API key:    %s\n\n", plaintext)
	fmt.Fprintln(out, "Store this key securely. It will not be shown again.")
	return nil
}

func listKeys(ctx context.Context, store keyStore, args []string, out io.Writer) error {
	fs := newFlagSet("list", out)
	all := fs.Bool("all", false, "Include revoked keys")
	email := fs.String("email", "", "Filter by email address")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	principals, err := store.List(ctx, *all)
	if err != nil {
		return err
	}
	if *email != "" {
		want := strings.ToLower(strings.TrimSpace(*email))
		filtered := principals[:0]
		for _, p := range principals {
			if p.Email == want {
				filtered = append(filtered, p)
			}
		}
		principals = filtered
	}

	if len(principals) == 0 {
		fmt.Fprintln(out, "No API keys found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPREFIX\tNAME\tEMAIL\tACTIVE\tREQUESTS\tLAST USED\tCREATED")
	for _, p := range principals {
		lastUsed := "never"
		if p.LastUsedAt != nil {
			lastUsed = p.LastUsedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\t%d\t%s\t%s\n",
			p.ID, p.KeyPrefix, p.Name, p.Email, p.IsActive, p.RequestCount,
			lastUsed, p.CreatedAt.Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nTotal: %d key(s)\n", len(principals))
	return nil
}

func revokeKey(ctx context.Context, store keyStore, args []string, out io.Writer) error {
	fs := newFlagSet("revoke", out)
	id := fs.Uint("id", 0, "API key ID to revoke (required)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *id == 0 {
		fmt.Fprintln(out, "revoke: --id is required")
		return errUsage
	}

	revoked, err := store.Revoke(ctx, *id)
	if err != nil {
		return err
	}
	if !revoked {
		return &commons.NotFoundError{Resource: "API key", ID: fmt.Sprint(*id)}
	}
	fmt.Fprintf(out, "API key #%d has been revoked.\n", *id)
	return nil
}

func keyHistory(ctx context.Context, store keyStore, args []string, out io.Writer) error {
	fs := newFlagSet("history", out)
	id := fs.Uint("id", 0, "API key ID (required)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *id == 0 {
		fmt.Fprintln(out, "history: --id is required")
		return errUsage
	}

	events, err := store.History(ctx, *id)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintf(out, "No events recorded for API key #%d.\n", *id)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tEVENT\tDETAILS")
	for _, ev := range events {
		details := ""
		if ev.Description != nil {
			details = *ev.Description
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ev.CreatedAt.Format(time.RFC3339), ev.Type, details)
	}
	return tw.Flush()
}
